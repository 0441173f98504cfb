package master

import (
	"context"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
)

type MasterService interface {
	// Area operations
	ListAreas(ctx context.Context) ([]area.AreaResponse, error)
	GetArea(ctx context.Context, id string) (area.AreaResponse, error)
	CreateArea(ctx context.Context, req area.CreateAreaRequest) (area.AreaResponse, error)
	UpdateArea(ctx context.Context, req area.UpdateAreaRequest) (area.AreaResponse, error)
	DeleteArea(ctx context.Context, id string) error

	// Role operations
	ListRoles(ctx context.Context) ([]role.RoleResponse, error)
	ListRolesByArea(ctx context.Context, areaID string) ([]role.RoleResponse, error)
	ListRolesBySupervisor(ctx context.Context, supervisorID string) ([]role.RoleResponse, error)
	GetRole(ctx context.Context, id string) (role.RoleResponse, error)
	CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error)
	UpdateRole(ctx context.Context, req role.UpdateRoleRequest) (role.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	db             database.Transactor
	areaRepo       area.AreaRepository
	roleRepo       role.RoleRepository
	supervisorRepo supervisor.SupervisorRepository
}

func NewMasterService(
	db database.Transactor,
	areaRepo area.AreaRepository,
	roleRepo role.RoleRepository,
	supervisorRepo supervisor.SupervisorRepository,
) MasterService {
	return &masterServiceImpl{
		db:             db,
		areaRepo:       areaRepo,
		roleRepo:       roleRepo,
		supervisorRepo: supervisorRepo,
	}
}

func requireAdmin(ctx context.Context) error {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return err
	}
	if !p.IsAdmin() {
		return auth.ErrForbidden
	}
	return nil
}

// requireRoleWriter allows admins, and supervisors for roles of their own area.
func requireRoleWriter(ctx context.Context, areaIDs ...string) error {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return err
	}
	if p.IsAdmin() {
		return nil
	}
	if !p.IsSupervisor() {
		return auth.ErrForbidden
	}
	for _, id := range areaIDs {
		if id != p.AreaID {
			return auth.ErrForbidden
		}
	}
	return nil
}

// ==================== AREA OPERATIONS ====================

func (s *masterServiceImpl) ListAreas(ctx context.Context) ([]area.AreaResponse, error) {
	areas, err := s.areaRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}

	responses := make([]area.AreaResponse, 0, len(areas))
	for _, a := range areas {
		responses = append(responses, area.NewAreaResponse(a))
	}
	return responses, nil
}

func (s *masterServiceImpl) GetArea(ctx context.Context, id string) (area.AreaResponse, error) {
	a, err := s.areaRepo.GetByID(ctx, id)
	if err != nil {
		return area.AreaResponse{}, err
	}
	return area.NewAreaResponse(a), nil
}

func (s *masterServiceImpl) CreateArea(ctx context.Context, req area.CreateAreaRequest) (area.AreaResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return area.AreaResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return area.AreaResponse{}, err
	}

	created, err := s.areaRepo.Create(ctx, area.Area{Description: req.Description})
	if err != nil {
		return area.AreaResponse{}, err
	}
	return area.NewAreaResponse(created), nil
}

func (s *masterServiceImpl) UpdateArea(ctx context.Context, req area.UpdateAreaRequest) (area.AreaResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return area.AreaResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return area.AreaResponse{}, err
	}

	updated, err := s.areaRepo.Update(ctx, area.Area{ID: req.ID, Description: req.Description})
	if err != nil {
		return area.AreaResponse{}, err
	}
	return area.NewAreaResponse(updated), nil
}

func (s *masterServiceImpl) DeleteArea(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.areaRepo.GetByID(ctx, id); err != nil {
			return err
		}

		roles, supervisors, err := s.areaRepo.CountDependents(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count area dependents: %w", err)
		}
		if roles > 0 || supervisors > 0 {
			return area.ErrAreaInUse
		}

		return s.areaRepo.Delete(ctx, id)
	})
}

// ==================== ROLE OPERATIONS ====================

func toRoleResponses(roles []role.Role) []role.RoleResponse {
	responses := make([]role.RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, role.NewRoleResponse(r))
	}
	return responses
}

func (s *masterServiceImpl) ListRoles(ctx context.Context) ([]role.RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return toRoleResponses(roles), nil
}

func (s *masterServiceImpl) ListRolesByArea(ctx context.Context, areaID string) ([]role.RoleResponse, error) {
	roles, err := s.roleRepo.ListByArea(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles by area: %w", err)
	}
	return toRoleResponses(roles), nil
}

// ListRolesBySupervisor returns the roles of the supervisor's area.
func (s *masterServiceImpl) ListRolesBySupervisor(ctx context.Context, supervisorID string) ([]role.RoleResponse, error) {
	sp, err := s.supervisorRepo.GetByID(ctx, supervisorID)
	if err != nil {
		return nil, err
	}
	return s.ListRolesByArea(ctx, sp.AreaID)
}

func (s *masterServiceImpl) GetRole(ctx context.Context, id string) (role.RoleResponse, error) {
	r, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return role.RoleResponse{}, err
	}
	return role.NewRoleResponse(r), nil
}

func (s *masterServiceImpl) CreateRole(ctx context.Context, req role.CreateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}
	if err := requireRoleWriter(ctx, req.AreaID); err != nil {
		return role.RoleResponse{}, err
	}

	var created role.Role
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.areaRepo.GetByID(ctx, req.AreaID); err != nil {
			return err
		}

		var err error
		created, err = s.roleRepo.Create(ctx, role.Role{Description: req.Description, AreaID: req.AreaID})
		return err
	})
	if err != nil {
		return role.RoleResponse{}, err
	}

	return role.NewRoleResponse(created), nil
}

func (s *masterServiceImpl) UpdateRole(ctx context.Context, req role.UpdateRoleRequest) (role.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return role.RoleResponse{}, err
	}

	var updated role.Role
	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.roleRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if err := requireRoleWriter(ctx, current.AreaID, req.AreaID); err != nil {
			return err
		}
		if _, err := s.areaRepo.GetByID(ctx, req.AreaID); err != nil {
			return err
		}

		updated, err = s.roleRepo.Update(ctx, role.Role{ID: req.ID, Description: req.Description, AreaID: req.AreaID})
		return err
	})
	if err != nil {
		return role.RoleResponse{}, err
	}

	return role.NewRoleResponse(updated), nil
}

func (s *masterServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.roleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := requireRoleWriter(ctx, current.AreaID); err != nil {
			return err
		}

		workers, err := s.roleRepo.CountWorkers(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to count role workers: %w", err)
		}
		if workers > 0 {
			return role.ErrRoleInUse
		}

		return s.roleRepo.Delete(ctx, id)
	})
}
