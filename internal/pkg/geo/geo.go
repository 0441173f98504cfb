// Package geo implements geofence geometry: circular and rectangular zones and
// the point-in-zone test used when an attendance marking is recorded.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean earth radius used by Distance.
const EarthRadiusMeters = 6371000

type Kind string

const (
	KindCircle    Kind = "circle"
	KindRectangle Kind = "rectangle"
)

func (k Kind) IsValid() bool {
	return k == KindCircle || k == KindRectangle
}

type Point struct {
	Lat float64
	Lng float64
}

func (p Point) IsValid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Zone is either a circle (Center and RadiusMeters) or an axis-aligned
// rectangle spanned by two opposite corners.
type Zone struct {
	Kind         Kind
	Center       *Point
	RadiusMeters *float64
	Corner1      *Point
	Corner2      *Point
}

var (
	ErrUnknownKind     = errors.New("zone type must be circle or rectangle")
	ErrMissingCenter   = errors.New("circle zone requires a center")
	ErrInvalidRadius   = errors.New("circle zone requires a positive radius")
	ErrMissingCorners  = errors.New("rectangle zone requires two corners")
	ErrInvalidPoint    = errors.New("coordinates out of range")
	ErrMixedGeometry   = errors.New("zone geometry does not match its type")
	ErrDegenerateShape = errors.New("rectangle corners must differ on both axes")
)

// Validate reports why a zone cannot be stored.
func (z Zone) Validate() error {
	switch z.Kind {
	case KindCircle:
		if z.Corner1 != nil || z.Corner2 != nil {
			return ErrMixedGeometry
		}
		if z.Center == nil {
			return ErrMissingCenter
		}
		if !z.Center.IsValid() {
			return fmt.Errorf("center: %w", ErrInvalidPoint)
		}
		if z.RadiusMeters == nil || math.IsNaN(*z.RadiusMeters) || *z.RadiusMeters <= 0 {
			return ErrInvalidRadius
		}
	case KindRectangle:
		if z.Center != nil || z.RadiusMeters != nil {
			return ErrMixedGeometry
		}
		if z.Corner1 == nil || z.Corner2 == nil {
			return ErrMissingCorners
		}
		if !z.Corner1.IsValid() || !z.Corner2.IsValid() {
			return fmt.Errorf("corners: %w", ErrInvalidPoint)
		}
		if z.Corner1.Lat == z.Corner2.Lat || z.Corner1.Lng == z.Corner2.Lng {
			return ErrDegenerateShape
		}
	default:
		return ErrUnknownKind
	}
	return nil
}

// Contains reports whether p lies inside the zone. Boundaries are inclusive.
// A zone with missing or malformed geometry contains nothing.
func (z Zone) Contains(p Point) bool {
	if !p.IsValid() {
		return false
	}

	switch z.Kind {
	case KindCircle:
		if z.Center == nil || z.RadiusMeters == nil || !z.Center.IsValid() {
			return false
		}
		r := *z.RadiusMeters
		if math.IsNaN(r) || r < 0 {
			return false
		}
		return Distance(*z.Center, p) <= r
	case KindRectangle:
		if z.Corner1 == nil || z.Corner2 == nil || !z.Corner1.IsValid() || !z.Corner2.IsValid() {
			return false
		}
		minLat, maxLat := math.Min(z.Corner1.Lat, z.Corner2.Lat), math.Max(z.Corner1.Lat, z.Corner2.Lat)
		minLng, maxLng := math.Min(z.Corner1.Lng, z.Corner2.Lng), math.Max(z.Corner1.Lng, z.Corner2.Lng)
		return p.Lat >= minLat && p.Lat <= maxLat && p.Lng >= minLng && p.Lng <= maxLng
	}
	return false
}

// DistanceFromCenter returns the distance from the zone center for circle
// zones. ok is false for any other zone.
func (z Zone) DistanceFromCenter(p Point) (meters float64, ok bool) {
	if z.Kind != KindCircle || z.Center == nil || !p.IsValid() {
		return 0, false
	}
	return Distance(*z.Center, p), true
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1)*math.Cos(lat2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
