package response

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

// PoolRetryAfter is advertised to clients when no database connection was free.
const PoolRetryAfter = 2 * time.Second

// LoginRetryAfter is advertised when a login is throttled.
const LoginRetryAfter = time.Second

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrTooManyRequests):
		TooManyRequests(w, err.Error(), LoginRetryAfter)

	// Master data
	case errors.Is(err, area.ErrAreaNotFound),
		errors.Is(err, role.ErrRoleNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, area.ErrAreaDescriptionExists),
		errors.Is(err, area.ErrAreaInUse),
		errors.Is(err, role.ErrRoleDescriptionExists),
		errors.Is(err, role.ErrRoleInUse):
		Conflict(w, err.Error())
	case errors.Is(err, role.ErrRoleAreaMismatch):
		BadRequest(w, err.Error(), map[string]string{"roles_ids": err.Error()})

	// Personnel
	case errors.Is(err, admin.ErrAdminNotFound),
		errors.Is(err, supervisor.ErrSupervisorNotFound),
		errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, admin.ErrUsernameExists),
		errors.Is(err, supervisor.ErrUsernameExists),
		errors.Is(err, worker.ErrUsernameExists),
		errors.Is(err, supervisor.ErrSupervisorInUse),
		errors.Is(err, worker.ErrWorkerInUse):
		Conflict(w, err.Error())
	case errors.Is(err, admin.ErrCannotDeleteSelf):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, worker.ErrCurrentPasswordRequired),
		errors.Is(err, worker.ErrCurrentPasswordInvalid):
		BadRequest(w, err.Error(), map[string]string{"currentPassword": err.Error()})

	// Zones
	case errors.Is(err, zone.ErrZoneNotFound),
		errors.Is(err, zone.ErrZoneInactive):
		NotFound(w, err.Error())
	case errors.Is(err, zone.ErrZoneNameExists):
		Conflict(w, err.Error())

	// Assignments and attendance
	case errors.Is(err, assignment.ErrAssignmentNotFound),
		errors.Is(err, assignment.ErrWorkerNotFound),
		errors.Is(err, assignment.ErrZoneNotFound),
		errors.Is(err, attendance.ErrAssignmentNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrNotAssignmentOwner):
		Forbidden(w, err.Error())

	// Store
	case errors.Is(err, database.ErrPoolExhausted):
		slog.Warn("Request rejected, connection pool exhausted")
		ServiceUnavailable(w, "Service temporarily unavailable, try again shortly", PoolRetryAfter)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
