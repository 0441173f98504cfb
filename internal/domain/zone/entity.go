package zone

import (
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
)

// Zone is an ubicacion geografica: a named geofence attendance is checked against.
type Zone struct {
	ID          string
	Name        string
	Description *string
	Geometry    geo.Zone
	CreatedBy   *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
