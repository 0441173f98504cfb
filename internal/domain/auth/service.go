package auth

import "context"

type AuthService interface {
	LoginAdmin(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginSupervisor(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWorker(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
