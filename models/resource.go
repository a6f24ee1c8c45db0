package models

import "time"

// Resource is an aid location (shelter, boats, food, ...) published by an admin.
type Resource struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Type        string    `db:"type" json:"type"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description,omitempty"`
	Latitude    float64   `db:"latitude" json:"latitude"`
	Longitude   float64   `db:"longitude" json:"longitude"`
	// Capacity is nil when unknown, which is not the same as zero.
	Capacity  *int64    `db:"capacity" json:"capacity"`
	Contact   string    `db:"contact" json:"contact,omitempty"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}
