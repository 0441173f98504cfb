package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
}

// NewAttendanceHandler reads bare dates in query filters as days in loc,
// the zone markings are evaluated in.
func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		location:          loc,
	}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Call service
	result, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r, h.location)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseAttendanceFilter(r *http.Request, loc *time.Location) (attendance.ListFilter, error) {
	var errs validator.ValidationErrors
	filter := attendance.ListFilter{
		AssignmentID: optionalQuery(r, "asignacionId", "id_asignacion"),
		WorkerID:     optionalQuery(r, "trabajadorId", "id_personal_trabajador"),
		CreatorID:    optionalQuery(r, "creadorId", "creado_por"),
		Status:       optionalQuery(r, "status"),
	}

	// Pagination
	for key, dst := range map[string]*int{"page": &filter.Page, "limit": &filter.Limit} {
		v := r.URL.Query().Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: key + " must be a number"})
			continue
		}
		*dst = n
	}

	// Date range
	for key, dst := range map[string]**time.Time{"desde": &filter.From, "hasta": &filter.To} {
		v := r.URL.Query().Get(key)
		if v == "" {
			continue
		}
		t, err := parseQueryTime(v, loc, key == "hasta")
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: key, Message: key + " must be a date (YYYY-MM-DD) or an RFC 3339 timestamp"})
			continue
		}
		*dst = &t
	}

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

// parseQueryTime accepts RFC 3339 or a bare date in loc. A bare date used as
// an upper bound covers the whole day.
func parseQueryTime(v string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
