package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(t *testing.T, kinds ...auth.Kind) (*chi.Mux, *jwt.JWTService) {
	t.Helper()
	svc, err := jwt.NewJWTService("middleware-test-secret", "1h", "1h")
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(svc.JWTAuth()))
		r.Use(AuthRequired(svc))
		if len(kinds) > 0 {
			r.Use(RequireRole(kinds...))
		}
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(string(p.Kind) + ":" + p.ID))
		})
	})
	return r, svc
}

func get(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	r, svc := newProtectedRouter(t)

	rec := get(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(t, r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := svc.GenerateAccessToken(auth.Principal{Kind: auth.KindSupervisor, ID: "s1", AreaID: "a1"})
	require.NoError(t, err)
	rec = get(t, r, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "supervisor:s1", rec.Body.String())

	other, err := jwt.NewJWTService("another-secret", "1h", "1h")
	require.NoError(t, err)
	forged, _, err := other.GenerateAccessToken(auth.Principal{Kind: auth.KindAdmin, ID: "x"})
	require.NoError(t, err)
	rec = get(t, r, forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	r, svc := newProtectedRouter(t, auth.KindAdmin)

	adminToken, _, err := svc.GenerateAccessToken(auth.Principal{Kind: auth.KindAdmin, ID: "root"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(t, r, adminToken).Code)

	workerToken, _, err := svc.GenerateAccessToken(auth.Principal{Kind: auth.KindWorker, ID: "w1", AreaID: "a1", SupervisorID: "s1"})
	require.NoError(t, err)
	rec := get(t, r, workerToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestLoginLimiter(t *testing.T) {
	limiter := NewLoginLimiter(1, 2)
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5001").Code)

	rec := call("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Other clients have their own budget.
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:5000").Code)

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5003").Code)
}

func TestLoginLimiter_SweepsIdleClients(t *testing.T) {
	limiter := NewLoginLimiter(1, 1)
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	now = now.Add(idleLimiterTTL + time.Minute)
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Len(t, limiter.clients, 2)

	dropped, err := limiter.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	assert.Len(t, limiter.clients, 1)
	assert.False(t, limiter.Allow("10.0.0.2"), "remaining client keeps its spent budget")
}
