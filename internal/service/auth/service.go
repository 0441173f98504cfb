package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/pkg/jwt"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
)

type AuthServiceImpl struct {
	adminRepo      admin.AdminRepository
	supervisorRepo supervisor.SupervisorRepository
	workerRepo     worker.WorkerRepository
	hasher         *password.Hasher
	jwtService     jwt.Service
}

func NewAuthService(
	adminRepo admin.AdminRepository,
	supervisorRepo supervisor.SupervisorRepository,
	workerRepo worker.WorkerRepository,
	hasher *password.Hasher,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		adminRepo:      adminRepo,
		supervisorRepo: supervisorRepo,
		workerRepo:     workerRepo,
		hasher:         hasher,
		jwtService:     jwtService,
	}
}

// account is the part of a stored principal login needs.
type account struct {
	principal    auth.Principal
	passwordHash string
	user         auth.UserResponse
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return a.login(ctx, req, func(ctx context.Context, username string) (account, error) {
		ad, err := a.adminRepo.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, admin.ErrAdminNotFound) {
				return account{}, auth.ErrInvalidCredentials
			}
			return account{}, err
		}
		return account{
			principal:    auth.Principal{Kind: auth.KindAdmin, ID: ad.ID, Username: ad.Username},
			passwordHash: ad.PasswordHash,
			user: auth.UserResponse{
				ID: ad.ID, Username: ad.Username, FullName: ad.FullName, Role: auth.KindAdmin,
			},
		}, nil
	})
}

// LoginSupervisor implements auth.AuthService.
func (a *AuthServiceImpl) LoginSupervisor(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return a.login(ctx, req, func(ctx context.Context, username string) (account, error) {
		s, err := a.supervisorRepo.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, supervisor.ErrSupervisorNotFound) {
				return account{}, auth.ErrInvalidCredentials
			}
			return account{}, err
		}
		return account{
			principal: auth.Principal{
				Kind: auth.KindSupervisor, ID: s.ID, Username: s.Username, AreaID: s.AreaID,
			},
			passwordHash: s.PasswordHash,
			user: auth.UserResponse{
				ID: s.ID, Username: s.Username, FullName: s.FullName, Role: auth.KindSupervisor,
				AreaID: &s.AreaID,
			},
		}, nil
	})
}

// LoginWorker implements auth.AuthService.
func (a *AuthServiceImpl) LoginWorker(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	return a.login(ctx, req, func(ctx context.Context, username string) (account, error) {
		w, err := a.workerRepo.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, worker.ErrWorkerNotFound) {
				return account{}, auth.ErrInvalidCredentials
			}
			return account{}, err
		}
		return account{
			principal: auth.Principal{
				Kind: auth.KindWorker, ID: w.ID, Username: w.Username,
				AreaID: w.AreaID, SupervisorID: w.SupervisorID,
			},
			passwordHash: w.PasswordHash,
			user: auth.UserResponse{
				ID: w.ID, Username: w.Username, FullName: w.FullName, Role: auth.KindWorker,
				AreaID: &w.AreaID, SupervisorID: &w.SupervisorID,
			},
		}, nil
	})
}

func (a *AuthServiceImpl) login(
	ctx context.Context,
	req auth.LoginRequest,
	lookup func(ctx context.Context, username string) (account, error),
) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	acc, err := lookup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// Unknown usernames still pay for a bcrypt comparison.
			a.hasher.CompareDummy(req.Password)
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := a.hasher.Compare(acc.passwordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to verify password: %w", err)
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(acc.principal)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      acc.user,
	}, nil
}
