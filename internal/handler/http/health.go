package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			response.ServiceUnavailable(w, "Database unavailable", response.PoolRetryAfter)
			return
		}

		response.Success(w, map[string]string{"status": "ok"})
	}
}
