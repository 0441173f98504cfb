package personnel

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/password"
	"github.com/cossmil/asistencia-backend/internal/pkg/validator"
)

type WorkerService interface {
	List(ctx context.Context, filter worker.ListFilter) ([]worker.WorkerResponse, error)
	Get(ctx context.Context, id string) (worker.WorkerResponse, error)
	Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error)
	Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error)
	Delete(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, req worker.ChangePasswordRequest) error
}

type workerServiceImpl struct {
	db             database.Transactor
	workerRepo     worker.WorkerRepository
	supervisorRepo supervisor.SupervisorRepository
	areaRepo       area.AreaRepository
	roleRepo       role.RoleRepository
	hasher         *password.Hasher
}

func NewWorkerService(
	db database.Transactor,
	workerRepo worker.WorkerRepository,
	supervisorRepo supervisor.SupervisorRepository,
	areaRepo area.AreaRepository,
	roleRepo role.RoleRepository,
	hasher *password.Hasher,
) WorkerService {
	return &workerServiceImpl{
		db:             db,
		workerRepo:     workerRepo,
		supervisorRepo: supervisorRepo,
		areaRepo:       areaRepo,
		roleRepo:       roleRepo,
		hasher:         hasher,
	}
}

// requireManager allows admins and supervisors.
func requireManager(ctx context.Context) (auth.Principal, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return auth.Principal{}, err
	}
	if p.IsWorker() {
		return auth.Principal{}, auth.ErrForbidden
	}
	return p, nil
}

func (s *workerServiceImpl) List(ctx context.Context, filter worker.ListFilter) ([]worker.WorkerResponse, error) {
	if _, err := requireManager(ctx); err != nil {
		return nil, err
	}

	workers, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.NewWorkerResponse(w))
	}
	return responses, nil
}

func (s *workerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	if p.IsWorker() && p.ID != id {
		return worker.WorkerResponse{}, auth.ErrForbidden
	}

	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.NewWorkerResponse(w), nil
}

// checkPlacement verifies the supervisor and area exist, that the supervisor
// belongs to the area and that every role is defined in it.
func (s *workerServiceImpl) checkPlacement(ctx context.Context, supervisorID, areaID string, roleIDs []string) error {
	sp, err := s.supervisorRepo.GetByID(ctx, supervisorID)
	if err != nil {
		return err
	}
	if _, err := s.areaRepo.GetByID(ctx, areaID); err != nil {
		return err
	}
	if sp.AreaID != areaID {
		return validator.Field("id_area_laboral", "id_area_laboral must be the area of the supervisor")
	}

	if len(roleIDs) == 0 {
		return nil
	}
	roles, err := s.roleRepo.GetByIDs(ctx, roleIDs)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	found := make(map[string]role.Role, len(roles))
	for _, r := range roles {
		found[r.ID] = r
	}
	for _, id := range roleIDs {
		r, ok := found[id]
		if !ok {
			return role.ErrRoleNotFound
		}
		if r.AreaID != areaID {
			return role.ErrRoleAreaMismatch
		}
	}
	return nil
}

func (s *workerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	p, err := requireManager(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	if p.IsSupervisor() {
		if req.SupervisorID == "" {
			req.SupervisorID = p.ID
		}
		if req.AreaID == "" {
			req.AreaID = p.AreaID
		}
		if req.SupervisorID != p.ID {
			return worker.WorkerResponse{}, auth.ErrForbidden
		}
	}

	var errs validator.ValidationErrors
	if req.SupervisorID == "" {
		errs = append(errs, validator.ValidationError{Field: "id_personal_area", Message: "id_personal_area is required"})
	}
	if req.AreaID == "" {
		errs = append(errs, validator.ValidationError{Field: "id_area_laboral", Message: "id_area_laboral is required"})
	}
	if len(errs) > 0 {
		return worker.WorkerResponse{}, errs
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	var created worker.Worker
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkPlacement(ctx, req.SupervisorID, req.AreaID, req.RoleIDs); err != nil {
			return err
		}

		created, err = s.workerRepo.Create(ctx, worker.Worker{
			Username:     req.Username,
			PasswordHash: hash,
			FullName:     req.FullName,
			SupervisorID: req.SupervisorID,
			AreaID:       req.AreaID,
			RoleIDs:      req.RoleIDs,
		})
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return worker.NewWorkerResponse(created), nil
}

func (s *workerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	p, err := requireManager(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}
	if !p.Supervises(req.SupervisorID) {
		return worker.WorkerResponse{}, auth.ErrForbidden
	}

	entity := worker.Worker{
		ID:           req.ID,
		Username:     req.Username,
		FullName:     req.FullName,
		SupervisorID: req.SupervisorID,
		AreaID:       req.AreaID,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return worker.WorkerResponse{}, err
		}
		entity.PasswordHash = hash
	}

	var updated worker.Worker
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.workerRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !p.Supervises(current.SupervisorID) {
			return auth.ErrForbidden
		}

		roleIDs := current.RoleIDs
		if req.RoleIDs != nil {
			roleIDs = *req.RoleIDs
		}
		if err := s.checkPlacement(ctx, req.SupervisorID, req.AreaID, roleIDs); err != nil {
			return err
		}

		if err := s.workerRepo.Update(ctx, entity); err != nil {
			return err
		}
		if req.RoleIDs != nil {
			if err := s.workerRepo.ReplaceRoles(ctx, req.ID, *req.RoleIDs); err != nil {
				return err
			}
		}

		updated, err = s.workerRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	return worker.NewWorkerResponse(updated), nil
}

func (s *workerServiceImpl) Delete(ctx context.Context, id string) error {
	p, err := requireManager(ctx)
	if err != nil {
		return err
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.workerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.Supervises(current.SupervisorID) {
			return auth.ErrForbidden
		}

		assignments, err := s.workerRepo.CountAssignments(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count worker assignments: %w", err)
		}
		if assignments > 0 {
			return worker.ErrWorkerInUse
		}

		return s.workerRepo.Delete(ctx, id)
	})
}

// ChangePassword lets a worker change their own password, proving the current
// one. Admins may reset any worker's password without it.
func (s *workerServiceImpl) ChangePassword(ctx context.Context, req worker.ChangePasswordRequest) error {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	switch {
	case p.IsWorker():
		if req.ID == "" {
			req.ID = p.ID
		}
		if req.ID != p.ID {
			return auth.ErrForbidden
		}
		if req.CurrentPassword == "" {
			return worker.ErrCurrentPasswordRequired
		}
	case p.IsAdmin():
		if req.ID == "" {
			return validator.Field("id", "id is required")
		}
	default:
		return auth.ErrForbidden
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.workerRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if p.IsWorker() {
			if err := s.hasher.Compare(current.PasswordHash, req.CurrentPassword); err != nil {
				if errors.Is(err, password.ErrMismatch) {
					return worker.ErrCurrentPasswordInvalid
				}
				return err
			}
		}

		return s.workerRepo.UpdatePassword(ctx, req.ID, hash)
	})
}
