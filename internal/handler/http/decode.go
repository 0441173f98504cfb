package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
)

// decodeBody decodes the JSON request body into v and writes a 400 when it
// cannot be parsed.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Debug("Request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

func optionalQuery(r *http.Request, keys ...string) *string {
	for _, key := range keys {
		if v := r.URL.Query().Get(key); v != "" {
			return &v
		}
	}
	return nil
}
