package models

import "time"

// RequestStatus represents the progress of an aid request.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusDelivered RequestStatus = "delivered"
	RequestStatusRejected  RequestStatus = "rejected"
)

// Valid reports whether s belongs to the status vocabulary.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDelivered, RequestStatusRejected:
		return true
	}
	return false
}

// StampsActor reports whether moving into s records the acting admin in ApprovedBy.
func (s RequestStatus) StampsActor() bool {
	return s == RequestStatusApproved || s == RequestStatusDelivered || s == RequestStatusRejected
}

// IsTerminal reports whether s is not expected to change again.
// Informational only: transitions out of terminal states are still accepted.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusDelivered || s == RequestStatusRejected
}

// AidRequest is a user's request for aid, with a one-to-one relation to User via RequesterID.
type AidRequest struct {
	ID           int64         `db:"id" json:"id"`
	RequesterID  int64         `db:"requester_id" json:"requester_id"`
	ResourceType string        `db:"resource_type" json:"resource_type"`
	Description  string        `db:"description" json:"description"`
	Status       RequestStatus `db:"status" json:"status"`
	Timestamp    time.Time     `db:"timestamp" json:"timestamp"`
	// ApprovedBy is the last admin to move the request into approved,
	// delivered or rejected. Nil until that first happens.
	ApprovedBy *int64 `db:"approved_by" json:"approved_by"`
}
