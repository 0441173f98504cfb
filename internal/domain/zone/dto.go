package zone

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

// LatLng is a coordinate pair encoded as [lat, lng].
type LatLng [2]float64

func (l LatLng) Point() geo.Point {
	return geo.Point{Lat: l[0], Lng: l[1]}
}

func latLngOf(p *geo.Point) *LatLng {
	if p == nil {
		return nil
	}
	return &LatLng{p.Lat, p.Lng}
}

// Geometry is the wire form of a zone shape: center and radius for circles,
// start and end corners for rectangles.
type Geometry struct {
	Type   geo.Kind `json:"type"`
	Center *LatLng  `json:"center,omitempty"`
	Radius *float64 `json:"radius,omitempty"`
	Start  *LatLng  `json:"start,omitempty"`
	End    *LatLng  `json:"end,omitempty"`
}

func NewGeometry(z geo.Zone) Geometry {
	g := Geometry{Type: z.Kind}
	switch z.Kind {
	case geo.KindCircle:
		g.Center = latLngOf(z.Center)
		g.Radius = z.RadiusMeters
	case geo.KindRectangle:
		g.Start = latLngOf(z.Corner1)
		g.End = latLngOf(z.Corner2)
	}
	return g
}

// Zone converts the wire form, keeping only the fields that match Type.
func (g Geometry) Zone() geo.Zone {
	z := geo.Zone{Kind: g.Type}
	switch g.Type {
	case geo.KindCircle:
		if g.Center != nil {
			p := g.Center.Point()
			z.Center = &p
		}
		z.RadiusMeters = g.Radius
	case geo.KindRectangle:
		if g.Start != nil {
			p := g.Start.Point()
			z.Corner1 = &p
		}
		if g.End != nil {
			p := g.End.Point()
			z.Corner2 = &p
		}
	}
	return z
}

type ZoneResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Geometry
	CreatedBy *string   `json:"created_by"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewZoneResponse(z Zone) ZoneResponse {
	return ZoneResponse{
		ID:          z.ID,
		Name:        z.Name,
		Description: z.Description,
		Geometry:    NewGeometry(z.Geometry),
		CreatedBy:   z.CreatedBy,
		Active:      z.Active,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
}

type CreateZoneRequest struct {
	Name        string  `json:"name" validate:"notblank,max=150"`
	Description *string `json:"description,omitempty"`
	Geometry
}

func (r *CreateZoneRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateZone(r.Geometry, r)
}

type UpdateZoneRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name" validate:"notblank,max=150"`
	Description *string `json:"description,omitempty"`
	Geometry
}

func (r *UpdateZoneRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validateZone(r.Geometry, r)
}

func validateZone(g Geometry, req interface{}) error {
	var errs validator.ValidationErrors
	if err := validator.Struct(req); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if !g.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be circle or rectangle",
		})
	} else if err := g.Zone().Validate(); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   geometryField(g.Type),
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func geometryField(kind geo.Kind) string {
	if kind == geo.KindCircle {
		return "center"
	}
	return "start"
}
