package middleware

import (
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
)

// RequireRole allows the request through only for the given principal kinds.
func RequireRole(kinds ...auth.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := auth.RequirePrincipal(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			for _, kind := range kinds {
				if p.Kind == kind {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.HandleError(w, auth.ErrForbidden)
		})
	}
}

// RequireStaff allows admins and supervisors.
func RequireStaff(next http.Handler) http.Handler {
	return RequireRole(auth.KindAdmin, auth.KindSupervisor)(next)
}
