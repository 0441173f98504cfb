package attendance

import (
	"strings"
	"time"

	"github.com/cossmil/asistencia-backend/internal/pkg/geo"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

// MarkAttendanceRequest is the body a worker sends to mark attendance. The
// marking time is always taken from the server clock.
type MarkAttendanceRequest struct {
	AssignmentID   string   `json:"id_asignacion"`
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	ReportedStatus string   `json:"estado"`
	Comment        *string  `json:"comentario"`

	WorkerID  string    `json:"-"` // From JWT
	Timestamp time.Time `json:"-"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AssignmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id_asignacion",
			Message: "id_asignacion is required",
		})
	}

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "worker identity is required",
		})
	}

	// Position
	if (r.Lat == nil) != (r.Lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "lat",
			Message: "lat and lng must be sent together",
		})
	} else if r.Lat != nil && !(geo.Point{Lat: *r.Lat, Lng: *r.Lng}).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "lat",
			Message: "lat must be between -90 and 90 and lng between -180 and 180",
		})
	}

	if len(r.ReportedStatus) > 50 {
		errs = append(errs, validator.ValidationError{
			Field:   "estado",
			Message: "estado must not exceed 50 characters",
		})
	}

	if r.Comment != nil && len(*r.Comment) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "comentario",
			Message: "comentario must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ReportedStatus = strings.TrimSpace(r.ReportedStatus)
	if r.ReportedStatus == "" {
		r.ReportedStatus = DefaultReportedStatus
	}
	if r.Comment != nil && strings.TrimSpace(*r.Comment) == "" {
		r.Comment = nil
	}

	return nil
}

// Position returns the reported position, or nil when none was sent.
func (r *MarkAttendanceRequest) Position() *geo.Point {
	if r.Lat == nil || r.Lng == nil {
		return nil
	}
	return &geo.Point{Lat: *r.Lat, Lng: *r.Lng}
}

type AttendanceResponse struct {
	ID              string              `json:"id"`
	AssignmentID    string              `json:"id_asignacion"`
	WorkerID        string              `json:"id_personal_trabajador"`
	WorkerName      string              `json:"trabajador_nombre,omitempty"`
	MarkedAt        time.Time           `json:"fecha_hora"`
	Lat             *float64            `json:"lat"`
	Lng             *float64            `json:"lng"`
	Status          Status              `json:"status"`
	InZone          *bool               `json:"in_zone"`
	InWindow        bool                `json:"in_window"`
	DistanceMeters  *float64            `json:"distance_m,omitempty"`
	ReportedStatus  string              `json:"estado"`
	Comment         *string             `json:"comentario"`
	Days            *schedule.DaySet    `json:"dias,omitempty"`
	EntryTime       *schedule.ClockTime `json:"hora_entrada,omitempty"`
	ExitTime        *schedule.ClockTime `json:"hora_salida,omitempty"`
	ZoneName        string              `json:"ubicacion_nombre,omitempty"`
	ZoneDescription *string             `json:"ubicacion_descripcion,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

func NewAttendanceResponse(r Record) AttendanceResponse {
	resp := AttendanceResponse{
		ID:              r.ID,
		AssignmentID:    r.AssignmentID,
		WorkerID:        r.WorkerID,
		WorkerName:      r.WorkerName,
		MarkedAt:        r.MarkedAt,
		Lat:             r.Lat,
		Lng:             r.Lng,
		Status:          r.Status,
		InZone:          r.InZone,
		InWindow:        r.InWindow,
		DistanceMeters:  r.DistanceMeters,
		ReportedStatus:  r.ReportedStatus,
		Comment:         r.Comment,
		ZoneName:        r.ZoneName,
		ZoneDescription: r.ZoneDescription,
		CreatedAt:       r.CreatedAt,
	}
	if !r.Days.IsEmpty() {
		days, entry, exit := r.Days, r.EntryTime, r.ExitTime
		resp.Days = &days
		resp.EntryTime = &entry
		resp.ExitTime = &exit
	}
	return resp
}

type ListFilter struct {
	AssignmentID *string
	WorkerID     *string
	CreatorID    *string
	SupervisorID *string // workers supervised by
	Status       *string
	From         *time.Time
	To           *time.Time

	// Pagination
	Page  int
	Limit int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50 // Default limit
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	// Status validation
	if f.Status != nil && !validator.IsInSlice(*f.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "hasta",
			Message: "hasta must not be before desde",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
