package assignment

import (
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
)

// Assignment binds a worker to a zone with a weekly schedule.
type Assignment struct {
	ID        string
	WorkerID  string
	ZoneID    string
	Plan      schedule.Plan
	CreatedBy *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	WorkerName      string
	SupervisorID    string
	ZoneName        string
	ZoneDescription *string
	ZoneActive      bool
	Zone            geo.Zone
	CreatorName     *string
}

type ListFilter struct {
	WorkerID        *string
	CreatorID       *string
	SupervisorID    *string // workers supervised by
	IncludeInactive bool
}
