package geo

import (
	"math"
	"testing"
)

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		ok       bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{90.0001, 0, false},
		{0, -180.5, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	}
	for _, c := range cases {
		got := ValidLatitude(c.lat) && ValidLongitude(c.lng)
		if got != c.ok {
			t.Fatalf("(%v, %v): got %v want %v", c.lat, c.lng, got, c.ok)
		}
	}
}

func TestBounds_Extend(t *testing.T) {
	var b *Bounds
	b = b.Extend(6.9, 79.8)
	if b.MinLat != 6.9 || b.MaxLat != 6.9 || b.MinLng != 79.8 || b.MaxLng != 79.8 {
		t.Fatalf("single point box: %+v", b)
	}
	b = b.Extend(8.1, 79.5)
	b = b.Extend(7.0, 81.2)
	want := Bounds{MinLat: 6.9, MinLng: 79.5, MaxLat: 8.1, MaxLng: 81.2}
	if *b != want {
		t.Fatalf("got %+v want %+v", *b, want)
	}

	lat, lng := b.Center()
	if math.Abs(lat-7.5) > 1e-9 || math.Abs(lng-80.35) > 1e-9 {
		t.Fatalf("center: %v, %v", lat, lng)
	}
}
