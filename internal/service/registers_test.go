package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodFriend/internal/testutil"
	"floodFriend/models"
	"floodFriend/repository"
)

func TestAddAlert_StampsAuthorAndTime(t *testing.T) {
	f := newFixture(t)
	a, err := f.svc.AddAlert(context.Background(), f.admin, validAlert())
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, a.AuthorID)
	assert.Equal(t, f.clock.Now().UTC(), a.Timestamp)
	assert.InDelta(t, 23.81, a.Latitude, 1e-9)
	assert.Equal(t, "River overflow", a.Title)
}

func TestAlertMutations_AdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	viewer := testutil.CreateUser(t, f.users, "vera", models.RoleViewer)
	existing, err := f.svc.AddAlert(ctx, f.admin, validAlert())
	require.NoError(t, err)

	for _, actor := range []*models.User{nil, alice, viewer} {
		_, err := f.svc.AddAlert(ctx, actor, validAlert())
		require.ErrorIs(t, err, ErrForbidden)
		require.ErrorIs(t, f.svc.DeleteAlert(ctx, actor, existing.ID), ErrForbidden)
	}

	got := collect(t, f.svc.Alerts(ctx, repository.NewestFirst))
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID, got[0].ID)
}

func TestAddAlert_RejectsBadCoordinates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, lat := range []string{"NaN", "abc", "", "91", "-90.5", "Inf"} {
		in := validAlert()
		in.Latitude = lat
		_, err := f.svc.AddAlert(ctx, f.admin, in)
		var v *ValidationError
		require.ErrorAs(t, err, &v, "latitude %q", lat)
		assert.Equal(t, "latitude", v.Fields[0].Field)
	}
	in := validAlert()
	in.Longitude = "180.01"
	_, err := f.svc.AddAlert(ctx, f.admin, in)
	require.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, collect(t, f.svc.Alerts(ctx, repository.Unordered)))
}

func TestDeleteAlert_NotFoundBeforeForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)

	require.ErrorIs(t, f.svc.DeleteAlert(ctx, alice, 404), ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteAlert(ctx, nil, 404), ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteAlert(ctx, f.admin, 404), ErrNotFound)

	a, err := f.svc.AddAlert(ctx, f.admin, validAlert())
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteAlert(ctx, f.admin, a.ID))
	require.ErrorIs(t, f.svc.DeleteAlert(ctx, f.admin, a.ID), ErrNotFound)
}

func TestAlerts_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var ids []int64
	for range 3 {
		a, err := f.svc.AddAlert(ctx, f.admin, validAlert())
		require.NoError(t, err)
		ids = append(ids, a.ID)
		f.clock.Advance(time.Minute)
	}
	got := collect(t, f.svc.Alerts(ctx, repository.NewestFirst))
	require.Len(t, got, 3)
	assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestAddResource_Capacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		capacity string
		want     *int64
		invalid  bool
	}{
		{"150", ptr(int64(150)), false},
		{"0", ptr(int64(0)), false},
		{"", nil, false},
		{"  ", nil, false},
		{"-1", nil, true},
		{"lots", nil, true},
	}
	for _, tt := range tests {
		t.Run("capacity="+tt.capacity, func(t *testing.T) {
			in := validResource()
			in.Capacity = tt.capacity
			r, err := f.svc.AddResource(ctx, f.admin, in)
			if tt.invalid {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Capacity)
		})
	}
}

func TestResourceMutations_AdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	r, err := f.svc.AddResource(ctx, f.admin, validResource())
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, r.AuthorID)

	_, err = f.svc.AddResource(ctx, alice, validResource())
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteResource(ctx, alice, r.ID), ErrForbidden)
	require.ErrorIs(t, f.svc.DeleteResource(ctx, alice, r.ID+100), ErrNotFound)
	require.Len(t, collect(t, f.svc.Resources(ctx, repository.Unordered)), 1)

	require.NoError(t, f.svc.DeleteResource(ctx, f.admin, r.ID))
	assert.Empty(t, collect(t, f.svc.Resources(ctx, repository.Unordered)))
}

func TestAddResource_RequiredFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddResource(context.Background(), f.admin, ResourceInput{Latitude: "1", Longitude: "2"})
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	fields := make([]string, 0, len(v.Fields))
	for _, fe := range v.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Equal(t, []string{"name", "type", "location"}, fields)
}

func ptr[T any](v T) *T { return &v }
