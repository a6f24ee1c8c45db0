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

// AlertRepository stores hazard alerts.
type AlertRepository struct {
	db *sql.DB
}

// NewAlertRepository creates a new AlertRepository.
func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

const alertColumns = `id, title, location, severity, description, latitude, longitude, timestamp, author_id`

// Create inserts a new alert and returns it with its generated ID.
func (r *AlertRepository) Create(ctx context.Context, a *models.Alert) (*models.Alert, error) {
	if a == nil {
		return nil, errors.New("alert is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO alerts (title, location, severity, description, latitude, longitude, timestamp, author_id) VALUES (?,?,?,?,?,?,?,?)`,
		a.Title, a.Location, a.Severity, a.Description, a.Latitude, a.Longitude, formatTime(a.Timestamp), a.AuthorID)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *a
	out.ID = id
	out.Timestamp = a.Timestamp.UTC()
	return &out, nil
}

// GetByID fetches an alert by its ID. Returns nil, nil when absent.
func (r *AlertRepository) GetByID(ctx context.Context, id int64) (*models.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	a, err := scanAlert(r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an alert permanently. Returns sql.ErrNoRows if it did not exist.
func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// All streams every alert. Each range over the returned sequence runs a fresh query.
func (r *AlertRepository) All(ctx context.Context, order Order) iter.Seq2[models.Alert, error] {
	q := `SELECT ` + alertColumns + ` FROM alerts`
	if order == NewestFirst {
		q += ` ORDER BY timestamp DESC, id DESC`
	}
	return queryRows(ctx, r.db, scanAlert, q)
}

// Recent returns the newest alerts, at most limit of them.
func (r *AlertRepository) Recent(ctx context.Context, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 10
	}
	return Collect(queryRows(ctx, r.db, scanAlert, `SELECT `+alertColumns+` FROM alerts ORDER BY timestamp DESC, id DESC LIMIT ?`, limit))
}

// CountBySeverity groups alerts by their severity text.
func (r *AlertRepository) CountBySeverity(ctx context.Context) ([]GroupCount, error) {
	return groupCounts(ctx, r.db, `SELECT severity, COUNT(id) FROM alerts GROUP BY severity ORDER BY severity`)
}

func scanAlert(s rowScanner) (models.Alert, error) {
	var a models.Alert
	var ts string
	if err := s.Scan(&a.ID, &a.Title, &a.Location, &a.Severity, &a.Description, &a.Latitude, &a.Longitude, &ts, &a.AuthorID); err != nil {
		return models.Alert{}, err
	}
	t, err := parseTime(ts)
	if err != nil {
		return models.Alert{}, fmt.Errorf("alert %d: %w", a.ID, err)
	}
	a.Timestamp = t
	return a, nil
}
