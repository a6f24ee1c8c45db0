package geo

import "math"

const (
	// MaxLatitude is the absolute bound on latitude in degrees.
	MaxLatitude = 90.0
	// MaxLongitude is the absolute bound on longitude in degrees.
	MaxLongitude = 180.0
)

// ValidLatitude reports whether lat is a finite latitude in [-90, 90].
func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -MaxLatitude && lat <= MaxLatitude
}

// ValidLongitude reports whether lng is a finite longitude in [-180, 180].
func ValidLongitude(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -MaxLongitude && lng <= MaxLongitude
}

// Bounds is the smallest latitude/longitude box covering a set of points.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Extend grows b to include the point. A nil receiver starts a new box.
func (b *Bounds) Extend(lat, lng float64) *Bounds {
	if b == nil {
		return &Bounds{MinLat: lat, MinLng: lng, MaxLat: lat, MaxLng: lng}
	}
	b.MinLat = math.Min(b.MinLat, lat)
	b.MinLng = math.Min(b.MinLng, lng)
	b.MaxLat = math.Max(b.MaxLat, lat)
	b.MaxLng = math.Max(b.MaxLng, lng)
	return b
}

// Center returns the midpoint of the box.
func (b Bounds) Center() (lat, lng float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}
