package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/handler/http/response"
)

type AuthHandler interface {
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginSupervisor(w http.ResponseWriter, r *http.Request)
	LoginWorker(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

type loginFunc func(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)

func (a *AuthHandlerImpl) login(w http.ResponseWriter, r *http.Request, kind auth.Kind, fn loginFunc) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := fn(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "kind", kind, "username", loginReq.Username, "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Login successful", "kind", kind, "user_id", result.User.ID)

	body := response.LoginResponse{
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
	if kind == auth.KindAdmin {
		body.Admin = result.User
	} else {
		body.User = result.User
	}
	response.Login(w, body)
}

// LoginAdmin implements AuthHandler.
func (a *AuthHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	a.login(w, r, auth.KindAdmin, a.authService.LoginAdmin)
}

// LoginSupervisor implements AuthHandler.
func (a *AuthHandlerImpl) LoginSupervisor(w http.ResponseWriter, r *http.Request) {
	a.login(w, r, auth.KindSupervisor, a.authService.LoginSupervisor)
}

// LoginWorker implements AuthHandler.
func (a *AuthHandlerImpl) LoginWorker(w http.ResponseWriter, r *http.Request) {
	a.login(w, r, auth.KindWorker, a.authService.LoginWorker)
}
