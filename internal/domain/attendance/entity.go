package attendance

import (
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
)

type Status string

const (
	StatusOnTime               Status = "on_time"
	StatusLate                 Status = "late"
	StatusOutsideZone          Status = "outside_zone"
	StatusOutsideWindow        Status = "outside_window"
	StatusOutsideZoneAndWindow Status = "outside_zone_and_window"
)

var validStatuses = []string{
	string(StatusOnTime),
	string(StatusLate),
	string(StatusOutsideZone),
	string(StatusOutsideWindow),
	string(StatusOutsideZoneAndWindow),
}

// DefaultReportedStatus is stored when the client does not send a state.
const DefaultReportedStatus = "marcado"

// CombineStatus merges the zone and schedule evaluations into one label.
// inZone is nil when no position was reported; an unknown position never
// counts as outside the zone. Zone failure is reported ahead of window failure.
func CombineStatus(inZone *bool, ev schedule.Evaluation) Status {
	outsideZone := inZone != nil && !*inZone
	outsideWindow := !ev.InWindow

	switch {
	case outsideZone && outsideWindow:
		return StatusOutsideZoneAndWindow
	case outsideZone:
		return StatusOutsideZone
	case outsideWindow:
		return StatusOutsideWindow
	case ev.Status == schedule.StatusLate:
		return StatusLate
	default:
		return StatusOnTime
	}
}

// Record is one immutable marking in the attendance ledger.
type Record struct {
	ID             string
	AssignmentID   string
	WorkerID       string
	MarkedAt       time.Time
	Lat            *float64
	Lng            *float64
	Status         Status
	InZone         *bool
	InWindow       bool
	DistanceMeters *float64
	ReportedStatus string
	Comment        *string
	CreatedAt      time.Time

	// Join
	Days            schedule.DaySet
	EntryTime       schedule.ClockTime
	ExitTime        schedule.ClockTime
	WorkerName      string
	ZoneName        string
	ZoneDescription *string
	CreatorID       *string
}
