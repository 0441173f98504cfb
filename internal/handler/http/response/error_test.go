package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.Field("dias", "dias is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", auth.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not owner", attendance.ErrNotAssignmentOwner, http.StatusForbidden, "FORBIDDEN"},
		{"wrapped not found", fmt.Errorf("failed to get area: %w", area.ErrAreaNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"in use", worker.ErrWorkerInUse, http.StatusConflict, "CONFLICT"},
		{"duplicate zone", zone.ErrZoneNameExists, http.StatusConflict, "CONFLICT"},
		{"throttled", auth.ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"pool", fmt.Errorf("acquire: %w", database.ErrPoolExhausted), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_DetailsAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{{Field: "lat", Message: "lat is invalid"}})

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"lat": "lat is invalid"}, body.Error.Details)

	rec = httptest.NewRecorder()
	HandleError(rec, database.ErrPoolExhausted)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	// The cause of a 500 is never echoed to the client.
	rec = httptest.NewRecorder()
	HandleError(rec, errors.New("pq: secret detail"))
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestLogin(t *testing.T) {
	rec := httptest.NewRecorder()
	Login(rec, LoginResponse{Message: "ok", Token: "t", User: map[string]string{"id": "1"}})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "t", body["token"])
	assert.Contains(t, body, "user")
	assert.NotContains(t, body, "admin")
}
