package assignment

import (
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type AssignmentResponse struct {
	ID              string              `json:"id"`
	WorkerID        string              `json:"id_personal_trabajador"`
	WorkerName      string              `json:"trabajador_nombre"`
	ZoneID          string              `json:"id_ubicacion_geografica"`
	ZoneName        string              `json:"ubicacion_nombre"`
	ZoneDescription *string             `json:"ubicacion_descripcion"`
	ZoneType        string              `json:"ubicacion_tipo"`
	Geometry        *zone.Geometry      `json:"geometry"`
	Days            schedule.DaySet     `json:"dias"`
	EntryTime       schedule.ClockTime  `json:"hora_entrada"`
	ExitTime        schedule.ClockTime  `json:"hora_salida"`
	WindowStart     *schedule.ClockTime `json:"ventana_desde"`
	WindowEnd       *schedule.ClockTime `json:"ventana_hasta"`
	CreatedBy       *string             `json:"creado_por"`
	CreatorName     *string             `json:"creador_nombre"`
	Active          bool                `json:"activo"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewAssignmentResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:              a.ID,
		WorkerID:        a.WorkerID,
		WorkerName:      a.WorkerName,
		ZoneID:          a.ZoneID,
		ZoneName:        a.ZoneName,
		ZoneDescription: a.ZoneDescription,
		ZoneType:        string(a.Zone.Kind),
		Days:            a.Plan.Days,
		EntryTime:       a.Plan.Entry,
		ExitTime:        a.Plan.Exit,
		WindowStart:     a.Plan.WindowStart,
		WindowEnd:       a.Plan.WindowEnd,
		CreatedBy:       a.CreatedBy,
		CreatorName:     a.CreatorName,
		Active:          a.Active,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Zone.Validate() == nil {
		g := zone.NewGeometry(a.Zone)
		resp.Geometry = &g
	}
	return resp
}

// CreateAssignmentRequest holds the fields of a new assignment. Missing
// required fields are reported as validation errors rather than zero values.
type CreateAssignmentRequest struct {
	WorkerID    string              `json:"id_personal_trabajador" validate:"required"`
	ZoneID      string              `json:"id_ubicacion_geografica" validate:"required"`
	Days        *schedule.DaySet    `json:"dias" validate:"required"`
	EntryTime   *schedule.ClockTime `json:"hora_entrada" validate:"required"`
	ExitTime    *schedule.ClockTime `json:"hora_salida" validate:"required"`
	WindowStart *schedule.ClockTime `json:"ventana_desde"`
	WindowEnd   *schedule.ClockTime `json:"ventana_hasta"`
}

func (r *CreateAssignmentRequest) Validate() error {
	return validatePlan(r, r.Days, r.EntryTime, r.ExitTime, r.WindowStart, r.WindowEnd)
}

func (r *CreateAssignmentRequest) Plan() schedule.Plan {
	return buildPlan(r.Days, r.EntryTime, r.ExitTime, r.WindowStart, r.WindowEnd)
}

// UpdateAssignmentRequest replaces every mutable field. Active is kept when
// not provided.
type UpdateAssignmentRequest struct {
	ID          string              `json:"-"`
	WorkerID    string              `json:"id_personal_trabajador" validate:"required"`
	ZoneID      string              `json:"id_ubicacion_geografica" validate:"required"`
	Days        *schedule.DaySet    `json:"dias" validate:"required"`
	EntryTime   *schedule.ClockTime `json:"hora_entrada" validate:"required"`
	ExitTime    *schedule.ClockTime `json:"hora_salida" validate:"required"`
	WindowStart *schedule.ClockTime `json:"ventana_desde"`
	WindowEnd   *schedule.ClockTime `json:"ventana_hasta"`
	Active      *bool               `json:"activo"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	return validatePlan(r, r.Days, r.EntryTime, r.ExitTime, r.WindowStart, r.WindowEnd)
}

func (r *UpdateAssignmentRequest) Plan() schedule.Plan {
	return buildPlan(r.Days, r.EntryTime, r.ExitTime, r.WindowStart, r.WindowEnd)
}

func buildPlan(days *schedule.DaySet, entry, exit, windowStart, windowEnd *schedule.ClockTime) schedule.Plan {
	var p schedule.Plan
	if days != nil {
		p.Days = *days
	}
	if entry != nil {
		p.Entry = *entry
	}
	if exit != nil {
		p.Exit = *exit
	}
	p.WindowStart = windowStart
	p.WindowEnd = windowEnd
	return p
}

func validatePlan(req interface{}, days *schedule.DaySet, entry, exit, windowStart, windowEnd *schedule.ClockTime) error {
	var errs validator.ValidationErrors
	if err := validator.Struct(req); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if days != nil && days.IsEmpty() {
		errs = append(errs, validator.ValidationError{Field: "dias", Message: schedule.ErrNoDays.Error()})
	}
	if entry != nil && exit != nil && *entry == *exit {
		errs = append(errs, validator.ValidationError{Field: "hora_salida", Message: schedule.ErrEntryEqualsExit.Error()})
	}
	if (windowStart == nil) != (windowEnd == nil) {
		field := "ventana_hasta"
		if windowStart == nil {
			field = "ventana_desde"
		}
		errs = append(errs, validator.ValidationError{Field: field, Message: schedule.ErrIncompleteWindow.Error()})
	} else if windowStart != nil && *windowStart == *windowEnd {
		errs = append(errs, validator.ValidationError{Field: "ventana_hasta", Message: schedule.ErrWindowZeroLength.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
