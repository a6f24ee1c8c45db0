package service

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodFriend/internal/testutil"
	"floodFriend/models"
)

func food() RequestInput {
	return RequestInput{ResourceType: "food", Description: "family of 4"}
}

func TestCreateRequest_OnlyRoleUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	viewer := testutil.CreateUser(t, f.users, "vera", models.RoleViewer)

	for _, actor := range []*models.User{nil, viewer, f.admin} {
		_, err := f.svc.CreateRequest(ctx, actor, food())
		require.ErrorIs(t, err, ErrForbidden)
	}

	req, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, req.Status)
	assert.Equal(t, alice.ID, req.RequesterID)
	assert.Nil(t, req.ApprovedBy)
	assert.Equal(t, f.clock.Now().UTC(), req.Timestamp)

	_, err = f.svc.CreateRequest(ctx, alice, RequestInput{ResourceType: " ", Description: "x"})
	require.ErrorIs(t, err, ErrValidation)
}

// Register, request, approve, check: the end-to-end path of one citizen.
func TestRequestLifecycle_Alice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, _, err := f.svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)
	alice, _, err = f.svc.Authenticate(ctx, "alice", "pw1")
	require.NoError(t, err)

	req, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)

	_, err = f.svc.UpdateRequestStatus(ctx, alice, req.ID, "approved")
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedBy)
	assert.Equal(t, f.admin.ID, *updated.ApprovedBy)

	seq, err := f.svc.ListRequests(ctx, alice)
	require.NoError(t, err)
	mine := collect(t, seq)
	require.Len(t, mine, 1)
	assert.Equal(t, models.RequestStatusApproved, mine[0].Status)
	assert.Equal(t, f.admin.ID, *mine[0].ApprovedBy)
}

func TestUpdateRequestStatus_ApprovedByFollowsLastActor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	other := testutil.CreateUser(t, f.users, "ops", models.RoleAdmin)
	req, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)

	r, err := f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID, *r.ApprovedBy)

	r, err = f.svc.UpdateRequestStatus(ctx, other, req.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, r.Status)
	assert.Equal(t, other.ID, *r.ApprovedBy)

	// moving back keeps the previous approver
	r, err = f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, r.Status)
	require.NotNil(t, r.ApprovedBy)
	assert.Equal(t, other.ID, *r.ApprovedBy)

	// terminal states are not locked
	r, err = f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDelivered, r.Status)
	assert.Equal(t, f.admin.ID, *r.ApprovedBy)
}

func TestUpdateRequestStatus_ErrorOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	req, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)

	_, err = f.svc.UpdateRequestStatus(ctx, alice, 999, "bogus")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.UpdateRequestStatus(ctx, f.admin, 999, "bogus")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "bogus")
	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "status", v.Fields[0].Field)

	_, err = f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "Approved")
	require.ErrorIs(t, err, ErrValidation, "statuses are case sensitive")

	seq, err := f.svc.ListRequests(ctx, f.admin)
	require.NoError(t, err)
	got := collect(t, seq)
	require.Len(t, got, 1)
	assert.Equal(t, models.RequestStatusPending, got[0].Status)
}

func TestListRequests_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, f.users, "bob", models.RoleUser)
	viewer := testutil.CreateUser(t, f.users, "vera", models.RoleViewer)

	a1, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	b1, err := f.svc.CreateRequest(ctx, bob, RequestInput{ResourceType: "boat", Description: "stranded"})
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	a2, err := f.svc.CreateRequest(ctx, alice, RequestInput{ResourceType: "medicine", Description: "insulin"})
	require.NoError(t, err)

	_, err = f.svc.ListRequests(ctx, nil)
	require.ErrorIs(t, err, ErrForbidden)

	ids := func(actor *models.User) []int64 {
		seq, err := f.svc.ListRequests(ctx, actor)
		require.NoError(t, err)
		var out []int64
		for _, r := range collect(t, seq) {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []int64{a2.ID, b1.ID, a1.ID}, ids(f.admin))
	assert.Equal(t, []int64{a2.ID, a1.ID}, ids(alice))
	assert.Equal(t, []int64{b1.ID}, ids(bob))
	assert.Empty(t, ids(viewer))
}

func TestUpdateRequestStatus_CountsTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, f.users, "alice", models.RoleUser)
	req, err := f.svc.CreateRequest(ctx, alice, food())
	require.NoError(t, err)

	for _, s := range []string{"approved", "delivered", "approved"} {
		_, err := f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, s)
		require.NoError(t, err)
	}
	_, _ = f.svc.UpdateRequestStatus(ctx, f.admin, req.ID, "lost")

	assert.Equal(t, 2.0, promtest.ToFloat64(f.svc.metrics.RequestTransitions.WithLabelValues("approved")))
	assert.Equal(t, 1.0, promtest.ToFloat64(f.svc.metrics.RequestTransitions.WithLabelValues("delivered")))
	n, err := promtest.GatherAndCount(f.registry, "floodfriend_request_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "rejected updates add no series")
}
