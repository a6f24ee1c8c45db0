package models

import "time"

// Alert is a hazard report published by an admin.
// Severity is free text; no vocabulary is enforced.
type Alert struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Location    string    `db:"location" json:"location"`
	Severity    string    `db:"severity" json:"severity"`
	Description string    `db:"description" json:"description"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
	AuthorID    int64     `db:"author_id" json:"author_id"`
}
