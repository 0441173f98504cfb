package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/domain/zone"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
)

type assignmentServiceImpl struct {
	db             database.Transactor
	assignmentRepo assignment.AssignmentRepository
	workerRepo     worker.WorkerRepository
	zoneRepo       zone.ZoneRepository
}

func NewAssignmentService(
	db database.Transactor,
	assignmentRepo assignment.AssignmentRepository,
	workerRepo worker.WorkerRepository,
	zoneRepo zone.ZoneRepository,
) assignment.AssignmentService {
	return &assignmentServiceImpl{
		db:             db,
		assignmentRepo: assignmentRepo,
		workerRepo:     workerRepo,
		zoneRepo:       zoneRepo,
	}
}

// List implements assignment.AssignmentService. Workers only see their own
// assignments and supervisors those of the workers they supervise.
func (s *assignmentServiceImpl) List(ctx context.Context, filter assignment.ListFilter) ([]assignment.AssignmentResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case p.IsWorker():
		filter.WorkerID = &p.ID
		filter.SupervisorID = nil
		filter.IncludeInactive = false
	case p.IsSupervisor():
		filter.SupervisorID = &p.ID
	}

	assignments, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	responses := make([]assignment.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, assignment.NewAssignmentResponse(a))
	}
	return responses, nil
}

func canView(p auth.Principal, a assignment.Assignment) bool {
	if p.IsWorker() {
		return a.WorkerID == p.ID
	}
	return p.Supervises(a.SupervisorID)
}

// Get implements assignment.AssignmentService.
func (s *assignmentServiceImpl) Get(ctx context.Context, id string) (assignment.AssignmentResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if !canView(p, a) {
		return assignment.AssignmentResponse{}, auth.ErrForbidden
	}

	return assignment.NewAssignmentResponse(a), nil
}

// checkTargets verifies the worker exists and is managed by the caller and
// that the zone exists and is active.
func (s *assignmentServiceImpl) checkTargets(ctx context.Context, p auth.Principal, workerID, zoneID string) error {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return assignment.ErrWorkerNotFound
		}
		return err
	}
	if !p.Supervises(w.SupervisorID) {
		return auth.ErrForbidden
	}

	z, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return assignment.ErrZoneNotFound
		}
		return err
	}
	if !z.Active {
		return assignment.ErrZoneNotFound
	}

	return nil
}

// Create implements assignment.AssignmentService.
func (s *assignmentServiceImpl) Create(ctx context.Context, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if p.IsWorker() {
		return assignment.AssignmentResponse{}, auth.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	var created assignment.Assignment
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkTargets(ctx, p, req.WorkerID, req.ZoneID); err != nil {
			return err
		}

		created, err = s.assignmentRepo.Create(ctx, assignment.Assignment{
			WorkerID:  req.WorkerID,
			ZoneID:    req.ZoneID,
			Plan:      req.Plan(),
			CreatedBy: &p.ID,
		})
		return err
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	return assignment.NewAssignmentResponse(created), nil
}

// Update implements assignment.AssignmentService.
func (s *assignmentServiceImpl) Update(ctx context.Context, req assignment.UpdateAssignmentRequest) (assignment.AssignmentResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	if p.IsWorker() {
		return assignment.AssignmentResponse{}, auth.ErrForbidden
	}
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	var updated assignment.Assignment
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.assignmentRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !p.Supervises(current.SupervisorID) {
			return auth.ErrForbidden
		}
		if err := s.checkTargets(ctx, p, req.WorkerID, req.ZoneID); err != nil {
			return err
		}

		active := current.Active
		if req.Active != nil {
			active = *req.Active
		}

		err = s.assignmentRepo.Update(ctx, assignment.Assignment{
			ID:       req.ID,
			WorkerID: req.WorkerID,
			ZoneID:   req.ZoneID,
			Plan:     req.Plan(),
			Active:   active,
		})
		if err != nil {
			return err
		}

		updated, err = s.assignmentRepo.GetByID(ctx, req.ID)
		return err
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	return assignment.NewAssignmentResponse(updated), nil
}

// Delete implements assignment.AssignmentService. The assignment is
// deactivated; its attendance records are kept.
func (s *assignmentServiceImpl) Delete(ctx context.Context, id string) error {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return err
	}
	if p.IsWorker() {
		return auth.ErrForbidden
	}

	return s.db.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.assignmentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.Supervises(current.SupervisorID) {
			return auth.ErrForbidden
		}
		return s.assignmentRepo.Deactivate(ctx, id)
	})
}
