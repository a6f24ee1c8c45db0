package grpcserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"floodFriend/models"
)

// flexString accepts either a JSON string or a JSON number and keeps the
// text, so coordinates and capacity can be sent as "12.5" or 12.5 and are
// parsed once by the core.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

type Empty struct{}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login. Token goes into the
// authorization metadata of later calls as "Bearer <token>".
type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

type PromoteUserRequest struct {
	UserID int64 `json:"user_id"`
}

type AddAlertRequest struct {
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	Latitude    flexString `json:"latitude"`
	Longitude   flexString `json:"longitude"`
}

type AlertResponse struct {
	Alert *models.Alert `json:"alert"`
}

type AddResourceRequest struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Latitude    flexString `json:"latitude"`
	Longitude   flexString `json:"longitude"`
	Capacity    flexString `json:"capacity"`
	Contact     string     `json:"contact"`
}

type ResourceResponse struct {
	Resource *models.Resource `json:"resource"`
}

// DeleteRequest names the alert or resource to remove.
type DeleteRequest struct {
	ID int64 `json:"id"`
}

// PageRequest selects one page of a newest-first listing. PageToken is the
// NextPageToken of the previous page.
type PageRequest struct {
	PageSize  int32  `json:"page_size"`
	PageToken string `json:"page_token"`
}

type ListAlertsResponse struct {
	Alerts        []models.Alert `json:"alerts"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type ListResourcesResponse struct {
	Resources     []models.Resource `json:"resources"`
	NextPageToken string            `json:"next_page_token,omitempty"`
}

type CreateRequestRequest struct {
	ResourceType string `json:"resource_type"`
	Description  string `json:"description"`
}

type UpdateRequestStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type AidRequestResponse struct {
	Request *models.AidRequest `json:"request"`
}

type ListRequestsResponse struct {
	Requests      []models.AidRequest `json:"requests"`
	NextPageToken string              `json:"next_page_token,omitempty"`
}
