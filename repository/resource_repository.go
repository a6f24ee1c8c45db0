package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"floodFriend/models"
)

// ResourceRepository stores aid resources.
type ResourceRepository struct {
	db *sql.DB
}

// NewResourceRepository creates a new ResourceRepository.
func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const resourceColumns = `id, name, type, location, description, latitude, longitude, capacity, contact, author_id, timestamp`

// Create inserts a new resource. A nil Capacity is stored as NULL.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) (*models.Resource, error) {
	if res == nil {
		return nil, errors.New("resource is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := r.db.ExecContext(ctx, `INSERT INTO resources (name, type, location, description, latitude, longitude, capacity, contact, author_id, timestamp) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		res.Name, res.Type, res.Location, nullString(res.Description), res.Latitude, res.Longitude, res.Capacity, nullString(res.Contact), res.AuthorID, formatTime(res.Timestamp))
	if err != nil {
		return nil, translate(err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return nil, err
	}
	created := *res
	created.ID = id
	created.Timestamp = res.Timestamp.UTC()
	return &created, nil
}

// GetByID fetches a resource by its ID. Returns nil, nil when absent.
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := scanResource(r.db.QueryRowContext(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

// Delete removes a resource permanently. Returns sql.ErrNoRows if it did not exist.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	out, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := out.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// All streams every resource. Each range over the returned sequence runs a fresh query.
func (r *ResourceRepository) All(ctx context.Context, order Order) iter.Seq2[models.Resource, error] {
	q := `SELECT ` + resourceColumns + ` FROM resources`
	if order == NewestFirst {
		q += ` ORDER BY timestamp DESC, id DESC`
	}
	return queryRows(ctx, r.db, scanResource, q)
}

// CountByType groups resources by their type text.
func (r *ResourceRepository) CountByType(ctx context.Context) ([]GroupCount, error) {
	return groupCounts(ctx, r.db, `SELECT type, COUNT(id) FROM resources GROUP BY type ORDER BY type`)
}

func scanResource(s rowScanner) (models.Resource, error) {
	var res models.Resource
	var description, contact sql.NullString
	var capacity sql.NullInt64
	var ts string
	if err := s.Scan(&res.ID, &res.Name, &res.Type, &res.Location, &description, &res.Latitude, &res.Longitude, &capacity, &contact, &res.AuthorID, &ts); err != nil {
		return models.Resource{}, err
	}
	res.Description = description.String
	res.Contact = contact.String
	if capacity.Valid {
		v := capacity.Int64
		res.Capacity = &v
	}
	t, err := parseTime(ts)
	if err != nil {
		return models.Resource{}, fmt.Errorf("resource %d: %w", res.ID, err)
	}
	res.Timestamp = t
	return res, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
