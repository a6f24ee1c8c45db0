package service

import (
	"strconv"
	"strings"

	"floodFriend/internal/auth"
	"floodFriend/internal/geo"
)

// RegisterInput is the payload of a self-service registration.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (in RegisterInput) validate() (RegisterInput, error) {
	var v ValidationError
	out := RegisterInput{
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	required(&v, "username", out.Username)
	required(&v, "email", out.Email)
	if out.Email != "" && !strings.Contains(out.Email, "@") {
		v.add("email", "must be an email address")
	}
	switch {
	case out.Password == "":
		v.add("password", "is required")
	case len(out.Password) > auth.MaxPasswordBytes:
		v.add("password", "must be at most 72 bytes")
	}
	return out, v.err()
}

// AlertInput carries the raw fields of a new alert. Coordinates arrive as
// text and must parse as floats.
type AlertInput struct {
	Title       string
	Location    string
	Severity    string
	Description string
	Latitude    string
	Longitude   string
}

type alertFields struct {
	title, location, severity, description string
	lat, lng                               float64
}

func (in AlertInput) validate() (alertFields, error) {
	var v ValidationError
	f := alertFields{
		title:       strings.TrimSpace(in.Title),
		location:    strings.TrimSpace(in.Location),
		severity:    strings.TrimSpace(in.Severity),
		description: strings.TrimSpace(in.Description),
	}
	required(&v, "title", f.title)
	required(&v, "location", f.location)
	required(&v, "severity", f.severity)
	required(&v, "description", f.description)
	f.lat, f.lng = coordinates(&v, in.Latitude, in.Longitude)
	return f, v.err()
}

// ResourceInput carries the raw fields of a new resource. Description,
// Capacity and Contact are optional; an empty Capacity means unknown.
type ResourceInput struct {
	Name        string
	Type        string
	Location    string
	Description string
	Latitude    string
	Longitude   string
	Capacity    string
	Contact     string
}

type resourceFields struct {
	name, kind, location, description, contact string
	lat, lng                                   float64
	capacity                                   *int64
}

func (in ResourceInput) validate() (resourceFields, error) {
	var v ValidationError
	f := resourceFields{
		name:        strings.TrimSpace(in.Name),
		kind:        strings.TrimSpace(in.Type),
		location:    strings.TrimSpace(in.Location),
		description: strings.TrimSpace(in.Description),
		contact:     strings.TrimSpace(in.Contact),
	}
	required(&v, "name", f.name)
	required(&v, "type", f.kind)
	required(&v, "location", f.location)
	f.lat, f.lng = coordinates(&v, in.Latitude, in.Longitude)
	if c := strings.TrimSpace(in.Capacity); c != "" {
		n, err := strconv.ParseInt(c, 10, 64)
		switch {
		case err != nil:
			v.add("capacity", "must be an integer")
		case n < 0:
			v.add("capacity", "must not be negative")
		default:
			f.capacity = &n
		}
	}
	return f, v.err()
}

// RequestInput is the payload of a new aid request.
type RequestInput struct {
	ResourceType string
	Description  string
}

func (in RequestInput) validate() (RequestInput, error) {
	var v ValidationError
	out := RequestInput{
		ResourceType: strings.TrimSpace(in.ResourceType),
		Description:  strings.TrimSpace(in.Description),
	}
	required(&v, "resource_type", out.ResourceType)
	required(&v, "description", out.Description)
	return out, v.err()
}

func required(v *ValidationError, field, value string) {
	if value == "" {
		v.add(field, "is required")
	}
}

func coordinates(v *ValidationError, latText, lngText string) (lat, lng float64) {
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	switch {
	case latErr != nil:
		v.add("latitude", "must be a number")
	case !geo.ValidLatitude(lat):
		v.add("latitude", "must be between -90 and 90")
	}
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	switch {
	case lngErr != nil:
		v.add("longitude", "must be a number")
	case !geo.ValidLongitude(lng):
		v.add("longitude", "must be between -180 and 180")
	}
	return lat, lng
}
