package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/domain/attendance"
	"github.com/cossmil/asistencia-backend/internal/domain/auth"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
)

type Options struct {
	// GracePeriod widens the derived marking window and the on-time limit.
	GracePeriod time.Duration
	// Location is the zone schedule clock times refer to. Defaults to UTC.
	Location *time.Location
	// Now returns the marking time. Defaults to time.Now.
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	db             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	assignmentRepo assignment.AssignmentRepository
	grace          time.Duration
	location       *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	assignmentRepo assignment.AssignmentRepository,
	opts Options,
) attendance.AttendanceService {
	if opts.GracePeriod < 0 {
		opts.GracePeriod = 0
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		assignmentRepo: assignmentRepo,
		grace:          opts.GracePeriod,
		location:       opts.Location,
		now:            opts.Now,
	}
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !p.IsWorker() {
		return attendance.AttendanceResponse{}, auth.ErrForbidden
	}

	req.WorkerID = p.ID
	req.Timestamp = s.now()
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var created attendance.Record
	err = s.db.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.assignmentRepo.GetByID(ctx, req.AssignmentID)
		if err != nil {
			if errors.Is(err, assignment.ErrAssignmentNotFound) {
				return attendance.ErrAssignmentNotFound
			}
			return fmt.Errorf("failed to get assignment: %w", err)
		}
		// A soft-deleted zone retires its assignments as well.
		if !a.Active || !a.ZoneActive {
			return attendance.ErrAssignmentNotFound
		}
		if a.WorkerID != req.WorkerID {
			return attendance.ErrNotAssignmentOwner
		}

		record := attendance.Record{
			AssignmentID:   a.ID,
			WorkerID:       req.WorkerID,
			MarkedAt:       req.Timestamp,
			Lat:            req.Lat,
			Lng:            req.Lng,
			ReportedStatus: req.ReportedStatus,
			Comment:        req.Comment,
		}

		// Unknown position: in_zone stays nil.
		if pos := req.Position(); pos != nil {
			inZone := a.Zone.Contains(*pos)
			record.InZone = &inZone
			if d, ok := a.Zone.DistanceFromCenter(*pos); ok {
				d = math.Round(d*100) / 100
				record.DistanceMeters = &d
			}
		}

		ev := a.Plan.Evaluate(req.Timestamp.In(s.location), s.grace)
		record.InWindow = ev.InWindow
		record.Status = attendance.CombineStatus(record.InZone, ev)

		created, err = s.attendanceRepo.Create(ctx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance marked",
		"record_id", created.ID,
		"assignment_id", created.AssignmentID,
		"worker_id", created.WorkerID,
		"status", created.Status,
	)

	return attendance.NewAttendanceResponse(created), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) (attendance.ListAttendanceResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	switch {
	case p.IsWorker():
		filter.WorkerID = &p.ID
		filter.SupervisorID = nil
	case p.IsSupervisor():
		filter.SupervisorID = &p.ID
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	switch {
	case p.IsWorker():
		if record.WorkerID != p.ID {
			return attendance.AttendanceResponse{}, auth.ErrForbidden
		}
	case p.IsSupervisor():
		a, err := s.assignmentRepo.GetByID(ctx, record.AssignmentID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get assignment: %w", err)
		}
		if !p.Supervises(a.SupervisorID) {
			return attendance.AttendanceResponse{}, auth.ErrForbidden
		}
	}

	return attendance.NewAttendanceResponse(record), nil
}
