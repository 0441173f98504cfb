package middleware

import (
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
)

func AdminOnly(next http.Handler) http.Handler {
	return RequireRole(auth.KindAdmin)(next)
}
