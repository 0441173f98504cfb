package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func circle(lat, lng, radius float64) Zone {
	return Zone{Kind: KindCircle, Center: &Point{Lat: lat, Lng: lng}, RadiusMeters: ptr(radius)}
}

func TestDistance(t *testing.T) {
	a := Point{Lat: -17.78, Lng: -63.18}

	assert.Equal(t, 0.0, Distance(a, a))

	// One degree of latitude is roughly 111.2 km.
	d := Distance(a, Point{Lat: -16.78, Lng: -63.18})
	assert.InDelta(t, 111195, d, 5)

	assert.InDelta(t, Distance(a, Point{Lat: -17.7, Lng: -63.1}), Distance(Point{Lat: -17.7, Lng: -63.1}, a), 1e-9)
}

func TestZone_ContainsCircle(t *testing.T) {
	z := circle(-17.78, -63.18, 50)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"center", Point{Lat: -17.78, Lng: -63.18}, true},
		{"30m north", Point{Lat: -17.77973, Lng: -63.18}, true},
		{"200m north", Point{Lat: -17.778, Lng: -63.18}, false},
		{"far away", Point{Lat: 40.0, Lng: -3.7}, false},
		{"invalid latitude", Point{Lat: 91, Lng: -63.18}, false},
		{"NaN", Point{Lat: math.NaN(), Lng: -63.18}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, z.Contains(tt.p))
		})
	}
}

func TestZone_ContainsCircleBoundaryIsInside(t *testing.T) {
	center := Point{Lat: -17.78, Lng: -63.18}
	p := Point{Lat: -17.7795, Lng: -63.1797}

	z := circle(center.Lat, center.Lng, Distance(center, p))
	assert.True(t, z.Contains(p))

	z = circle(center.Lat, center.Lng, Distance(center, p)-0.01)
	assert.False(t, z.Contains(p))
}

func TestZone_ContainsRectangle(t *testing.T) {
	c1 := Point{Lat: -17.79, Lng: -63.19}
	c2 := Point{Lat: -17.77, Lng: -63.17}
	z := Zone{Kind: KindRectangle, Corner1: &c1, Corner2: &c2}
	swapped := Zone{Kind: KindRectangle, Corner1: &c2, Corner2: &c1}
	mixed := Zone{Kind: KindRectangle, Corner1: &Point{Lat: -17.79, Lng: -63.17}, Corner2: &Point{Lat: -17.77, Lng: -63.19}}

	points := []struct {
		p    Point
		want bool
	}{
		{Point{Lat: -17.78, Lng: -63.18}, true},
		{c1, true},
		{c2, true},
		{Point{Lat: -17.77, Lng: -63.18}, true},
		{Point{Lat: -17.769, Lng: -63.18}, false},
		{Point{Lat: -17.78, Lng: -63.20}, false},
	}
	for _, tt := range points {
		assert.Equal(t, tt.want, z.Contains(tt.p), "point %+v", tt.p)
		assert.Equal(t, z.Contains(tt.p), swapped.Contains(tt.p), "swapped corners, point %+v", tt.p)
		assert.Equal(t, z.Contains(tt.p), mixed.Contains(tt.p), "mixed corners, point %+v", tt.p)
	}
}

func TestZone_ContainsFailsClosed(t *testing.T) {
	p := Point{Lat: -17.78, Lng: -63.18}

	zones := map[string]Zone{
		"circle without center":   {Kind: KindCircle, RadiusMeters: ptr(100.0)},
		"circle without radius":   {Kind: KindCircle, Center: &p},
		"circle negative radius":  {Kind: KindCircle, Center: &p, RadiusMeters: ptr(-1.0)},
		"circle NaN radius":       {Kind: KindCircle, Center: &p, RadiusMeters: ptr(math.NaN())},
		"rectangle single corner": {Kind: KindRectangle, Corner1: &p},
		"unknown kind":            {Kind: "polygon", Center: &p, RadiusMeters: ptr(100.0)},
		"zero value":              {},
	}
	for name, z := range zones {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, z.Contains(p))
			})
		})
	}
}

func TestZone_Validate(t *testing.T) {
	p := Point{Lat: -17.78, Lng: -63.18}
	q := Point{Lat: -17.77, Lng: -63.17}

	tests := []struct {
		name string
		z    Zone
		want error
	}{
		{"valid circle", circle(-17.78, -63.18, 50), nil},
		{"valid rectangle", Zone{Kind: KindRectangle, Corner1: &p, Corner2: &q}, nil},
		{"unknown kind", Zone{Kind: "polygon"}, ErrUnknownKind},
		{"circle missing center", Zone{Kind: KindCircle, RadiusMeters: ptr(5.0)}, ErrMissingCenter},
		{"circle zero radius", Zone{Kind: KindCircle, Center: &p, RadiusMeters: ptr(0.0)}, ErrInvalidRadius},
		{"circle with corners", Zone{Kind: KindCircle, Center: &p, RadiusMeters: ptr(5.0), Corner1: &q}, ErrMixedGeometry},
		{"circle bad center", Zone{Kind: KindCircle, Center: &Point{Lat: 100}, RadiusMeters: ptr(5.0)}, ErrInvalidPoint},
		{"rectangle missing corner", Zone{Kind: KindRectangle, Corner1: &p}, ErrMissingCorners},
		{"rectangle flat", Zone{Kind: KindRectangle, Corner1: &p, Corner2: &Point{Lat: p.Lat, Lng: -63.1}}, ErrDegenerateShape},
		{"rectangle with radius", Zone{Kind: KindRectangle, Corner1: &p, Corner2: &q, RadiusMeters: ptr(1.0)}, ErrMixedGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.z.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestZone_DistanceFromCenter(t *testing.T) {
	z := circle(-17.78, -63.18, 50)
	d, ok := z.DistanceFromCenter(Point{Lat: -17.778, Lng: -63.18})
	assert.True(t, ok)
	assert.InDelta(t, 222.4, d, 1)

	c1, c2 := Point{Lat: -17.79, Lng: -63.19}, Point{Lat: -17.77, Lng: -63.17}
	_, ok = Zone{Kind: KindRectangle, Corner1: &c1, Corner2: &c2}.DistanceFromCenter(c1)
	assert.False(t, ok)
}
