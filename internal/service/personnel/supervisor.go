package personnel

import (
	"context"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
)

type SupervisorService interface {
	List(ctx context.Context) ([]supervisor.SupervisorResponse, error)
	ListByArea(ctx context.Context, areaID string) ([]supervisor.SupervisorResponse, error)
	Get(ctx context.Context, id string) (supervisor.SupervisorResponse, error)
	Create(ctx context.Context, req supervisor.CreateSupervisorRequest) (supervisor.SupervisorResponse, error)
	Update(ctx context.Context, req supervisor.UpdateSupervisorRequest) (supervisor.SupervisorResponse, error)
	Delete(ctx context.Context, id string) error
}

type supervisorServiceImpl struct {
	db             database.Transactor
	supervisorRepo supervisor.SupervisorRepository
	areaRepo       area.AreaRepository
	hasher         *password.Hasher
}

func NewSupervisorService(
	db database.Transactor,
	supervisorRepo supervisor.SupervisorRepository,
	areaRepo area.AreaRepository,
	hasher *password.Hasher,
) SupervisorService {
	return &supervisorServiceImpl{
		db:             db,
		supervisorRepo: supervisorRepo,
		areaRepo:       areaRepo,
		hasher:         hasher,
	}
}

func requireAdmin(ctx context.Context) (auth.Principal, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return auth.Principal{}, err
	}
	if !p.IsAdmin() {
		return auth.Principal{}, auth.ErrForbidden
	}
	return p, nil
}

func toSupervisorResponses(supervisors []supervisor.Supervisor) []supervisor.SupervisorResponse {
	responses := make([]supervisor.SupervisorResponse, 0, len(supervisors))
	for _, s := range supervisors {
		responses = append(responses, supervisor.NewSupervisorResponse(s))
	}
	return responses
}

func (s *supervisorServiceImpl) List(ctx context.Context) ([]supervisor.SupervisorResponse, error) {
	supervisors, err := s.supervisorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}
	return toSupervisorResponses(supervisors), nil
}

func (s *supervisorServiceImpl) ListByArea(ctx context.Context, areaID string) ([]supervisor.SupervisorResponse, error) {
	supervisors, err := s.supervisorRepo.ListByArea(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisors by area: %w", err)
	}
	return toSupervisorResponses(supervisors), nil
}

func (s *supervisorServiceImpl) Get(ctx context.Context, id string) (supervisor.SupervisorResponse, error) {
	sp, err := s.supervisorRepo.GetByID(ctx, id)
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}
	return supervisor.NewSupervisorResponse(sp), nil
}

func (s *supervisorServiceImpl) Create(ctx context.Context, req supervisor.CreateSupervisorRequest) (supervisor.SupervisorResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return supervisor.SupervisorResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	var created supervisor.Supervisor
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.areaRepo.GetByID(ctx, req.AreaID); err != nil {
			return err
		}

		created, err = s.supervisorRepo.Create(ctx, supervisor.Supervisor{
			Username:     req.Username,
			PasswordHash: hash,
			FullName:     req.FullName,
			AreaID:       req.AreaID,
		})
		return err
	})
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	return supervisor.NewSupervisorResponse(created), nil
}

func (s *supervisorServiceImpl) Update(ctx context.Context, req supervisor.UpdateSupervisorRequest) (supervisor.SupervisorResponse, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return supervisor.SupervisorResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	entity := supervisor.Supervisor{
		ID:       req.ID,
		Username: req.Username,
		FullName: req.FullName,
		AreaID:   req.AreaID,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return supervisor.SupervisorResponse{}, err
		}
		entity.PasswordHash = hash
	}

	var updated supervisor.Supervisor
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.supervisorRepo.GetByID(ctx, req.ID); err != nil {
			return err
		}
		if _, err := s.areaRepo.GetByID(ctx, req.AreaID); err != nil {
			return err
		}

		var err error
		updated, err = s.supervisorRepo.Update(ctx, entity)
		return err
	})
	if err != nil {
		return supervisor.SupervisorResponse{}, err
	}

	return supervisor.NewSupervisorResponse(updated), nil
}

func (s *supervisorServiceImpl) Delete(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.supervisorRepo.GetByID(ctx, id); err != nil {
			return err
		}

		workers, err := s.supervisorRepo.CountWorkers(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count supervisor workers: %w", err)
		}
		if workers > 0 {
			return supervisor.ErrSupervisorInUse
		}

		return s.supervisorRepo.Delete(ctx, id)
	})
}
