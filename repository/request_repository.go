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

// RequestRepository is the core repository for aid requests.
type RequestRepository struct {
	db *sql.DB
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `id, requester_id, resource_type, description, status, timestamp, approved_by`

// Create inserts a new request. Status defaults to 'pending' if empty.
func (r *RequestRepository) Create(ctx context.Context, req *models.AidRequest) (*models.AidRequest, error) {
	if req == nil {
		return nil, errors.New("request is nil")
	}
	if req.Status == "" {
		req.Status = models.RequestStatusPending
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO requests (requester_id, resource_type, description, status, timestamp, approved_by) VALUES (?,?,?,?,?,?)`,
		req.RequesterID, req.ResourceType, req.Description, string(req.Status), formatTime(req.Timestamp), req.ApprovedBy)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *req
	out.ID = id
	out.Timestamp = req.Timestamp.UTC()
	return &out, nil
}

// GetByID fetches a request by its ID. Returns nil, nil when absent.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.AidRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	req, err := scanRequest(r.db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// UpdateStatus sets the status of a request. approved_by is only written when
// approvedBy is non-nil, so an existing value is never cleared.
// Returns sql.ErrNoRows if the request does not exist.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus, approvedBy *int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `UPDATE requests SET status = ?, approved_by = COALESCE(?, approved_by) WHERE id = ?`,
		string(status), approvedBy, id)
	if err != nil {
		return translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// All streams every request ordered by timestamp desc, id desc.
func (r *RequestRepository) All(ctx context.Context) iter.Seq2[models.AidRequest, error] {
	return queryRows(ctx, r.db, scanRequest, `SELECT `+requestColumns+` FROM requests ORDER BY timestamp DESC, id DESC`)
}

// ByRequester streams the requests filed by userID ordered by timestamp desc, id desc.
func (r *RequestRepository) ByRequester(ctx context.Context, userID int64) iter.Seq2[models.AidRequest, error] {
	return queryRows(ctx, r.db, scanRequest, `SELECT `+requestColumns+` FROM requests WHERE requester_id = ? ORDER BY timestamp DESC, id DESC`, userID)
}

func scanRequest(s rowScanner) (models.AidRequest, error) {
	var req models.AidRequest
	var status, ts string
	var approvedBy sql.NullInt64
	if err := s.Scan(&req.ID, &req.RequesterID, &req.ResourceType, &req.Description, &status, &ts, &approvedBy); err != nil {
		return models.AidRequest{}, err
	}
	req.Status = models.RequestStatus(status)
	if approvedBy.Valid {
		v := approvedBy.Int64
		req.ApprovedBy = &v
	}
	t, err := parseTime(ts)
	if err != nil {
		return models.AidRequest{}, fmt.Errorf("request %d: %w", req.ID, err)
	}
	req.Timestamp = t
	return req, nil
}
