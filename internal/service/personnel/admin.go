package personnel

import (
	"context"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
)

type AdminService interface {
	List(ctx context.Context) ([]admin.AdminResponse, error)
	Get(ctx context.Context, id string) (admin.AdminResponse, error)
	// Me returns the profile of the calling admin.
	Me(ctx context.Context) (admin.AdminResponse, error)
	Create(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error)
	Update(ctx context.Context, req admin.UpdateAdminRequest) (admin.AdminResponse, error)
	Delete(ctx context.Context, id string) error
}

type adminServiceImpl struct {
	adminRepo admin.AdminRepository
	hasher    *password.Hasher
}

func NewAdminService(adminRepo admin.AdminRepository, hasher *password.Hasher) AdminService {
	return &adminServiceImpl{
		adminRepo: adminRepo,
		hasher:    hasher,
	}
}

func (s *adminServiceImpl) List(ctx context.Context) ([]admin.AdminResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	responses := make([]admin.AdminResponse, 0, len(admins))
	for _, a := range admins {
		responses = append(responses, admin.NewAdminResponse(a))
	}
	return responses, nil
}

func (s *adminServiceImpl) Get(ctx context.Context, id string) (admin.AdminResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return admin.AdminResponse{}, err
	}

	a, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return admin.NewAdminResponse(a), nil
}

func (s *adminServiceImpl) Me(ctx context.Context) (admin.AdminResponse, error) {
	p, err := requireAdmin(ctx)
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return s.Get(ctx, p.ID)
}

func (s *adminServiceImpl) Create(ctx context.Context, req admin.CreateAdminRequest) (admin.AdminResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return admin.AdminResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return admin.AdminResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return admin.AdminResponse{}, err
	}

	created, err := s.adminRepo.Create(ctx, admin.Admin{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
	})
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return admin.NewAdminResponse(created), nil
}

func (s *adminServiceImpl) Update(ctx context.Context, req admin.UpdateAdminRequest) (admin.AdminResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return admin.AdminResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return admin.AdminResponse{}, err
	}

	entity := admin.Admin{ID: req.ID, Username: req.Username, FullName: req.FullName}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return admin.AdminResponse{}, err
		}
		entity.PasswordHash = hash
	}

	updated, err := s.adminRepo.Update(ctx, entity)
	if err != nil {
		return admin.AdminResponse{}, err
	}
	return admin.NewAdminResponse(updated), nil
}

func (s *adminServiceImpl) Delete(ctx context.Context, id string) error {
	p, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if p.ID == id {
		return admin.ErrCannotDeleteSelf
	}

	return s.adminRepo.Delete(ctx, id)
}
