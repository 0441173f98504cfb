package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cossmil/asistencia-backend/internal/domain/assignment"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type assignmentRepositoryImpl struct {
	db *database.DB
}

func NewAssignmentRepository(db *database.DB) assignment.AssignmentRepository {
	return &assignmentRepositoryImpl{db: db}
}

const assignmentSelect = `
	SELECT a.id, a.worker_id, a.zone_id, a.days, a.entry_time, a.exit_time,
		   a.window_start, a.window_end, a.created_by, a.active, a.created_at, a.updated_at,
		   w.full_name, w.supervisor_id,
		   z.name, z.description, z.active, z.kind,
		   z.center_lat, z.center_lng, z.radius_m,
		   z.corner1_lat, z.corner1_lng, z.corner2_lat, z.corner2_lng,
		   COALESCE(cs.full_name, ca.full_name)
	FROM assignments a
	JOIN workers w ON w.id = a.worker_id
	JOIN zones z ON z.id = a.zone_id
	LEFT JOIN supervisors cs ON cs.id = a.created_by
	LEFT JOIN admins ca ON ca.id = a.created_by
`

func scanAssignment(row pgx.Row) (assignment.Assignment, error) {
	var (
		a                             assignment.Assignment
		days                          int16
		entry, exit, winStart, winEnd pgtype.Time
		kind                          string
		g                             geometryColumns
	)
	err := row.Scan(
		&a.ID, &a.WorkerID, &a.ZoneID, &days, &entry, &exit,
		&winStart, &winEnd, &a.CreatedBy, &a.Active, &a.CreatedAt, &a.UpdatedAt,
		&a.WorkerName, &a.SupervisorID,
		&a.ZoneName, &a.ZoneDescription, &a.ZoneActive, &kind,
		&g.centerLat, &g.centerLng, &g.radius,
		&g.corner1Lat, &g.corner1Lng, &g.corner2Lat, &g.corner2Lng,
		&a.CreatorName,
	)
	if err != nil {
		return assignment.Assignment{}, err
	}

	a.Plan = schedule.Plan{
		Days:        schedule.DaySet(days),
		Entry:       clockFromPg(entry),
		Exit:        clockFromPg(exit),
		WindowStart: clockPtrFromPg(winStart),
		WindowEnd:   clockPtrFromPg(winEnd),
	}
	a.Zone = g.zone(kind)
	return a, nil
}

func mapAssignmentWriteError(err error) error {
	switch {
	case isForeignKeyViolation(err):
		if strings.Contains(violatedConstraint(err), "worker") {
			return assignment.ErrWorkerNotFound
		}
		return assignment.ErrZoneNotFound
	case isInvalidID(err):
		return assignment.ErrAssignmentNotFound
	}
	return nil
}

// Create implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Create(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return assignment.Assignment{}, err
	}

	query := `
		INSERT INTO assignments (
			id, worker_id, zone_id, days, entry_time, exit_time,
			window_start, window_end, created_by, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW(), NOW())
	`

	_, err = q.Exec(ctx, query,
		id, a.WorkerID, a.ZoneID, int16(a.Plan.Days),
		clockToPg(a.Plan.Entry), clockToPg(a.Plan.Exit),
		clockPtrToPg(a.Plan.WindowStart), clockPtrToPg(a.Plan.WindowEnd),
		a.CreatedBy,
	)
	if err != nil {
		if mapped := mapAssignmentWriteError(err); mapped != nil {
			return assignment.Assignment{}, mapped
		}
		return assignment.Assignment{}, fmt.Errorf("failed to create assignment: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) GetByID(ctx context.Context, id string) (assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAssignment(q.QueryRow(ctx, assignmentSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return assignment.Assignment{}, assignment.ErrAssignmentNotFound
		}
		return assignment.Assignment{}, fmt.Errorf("failed to get assignment: %w", err)
	}

	return a, nil
}

// List implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) List(ctx context.Context, filter assignment.ListFilter) ([]assignment.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if !filter.IncludeInactive {
		where += " AND a.active"
	}
	if filter.WorkerID != nil {
		where += fmt.Sprintf(" AND a.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.CreatorID != nil {
		where += fmt.Sprintf(" AND a.created_by = $%d", argIdx)
		args = append(args, *filter.CreatorID)
		argIdx++
	}
	if filter.SupervisorID != nil {
		where += fmt.Sprintf(" AND w.supervisor_id = $%d", argIdx)
		args = append(args, *filter.SupervisorID)
		argIdx++
	}

	rows, err := q.Query(ctx, assignmentSelect+where+` ORDER BY a.created_at DESC, a.id DESC`, args...)
	if err != nil {
		if isInvalidID(err) {
			return []assignment.Assignment{}, nil
		}
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []assignment.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return assignments, nil
}

// Update implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Update(ctx context.Context, a assignment.Assignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE assignments
		SET worker_id = $1,
			zone_id = $2,
			days = $3,
			entry_time = $4,
			exit_time = $5,
			window_start = $6,
			window_end = $7,
			active = $8,
			updated_at = NOW()
		WHERE id = $9
	`

	commandTag, err := q.Exec(ctx, query,
		a.WorkerID, a.ZoneID, int16(a.Plan.Days),
		clockToPg(a.Plan.Entry), clockToPg(a.Plan.Exit),
		clockPtrToPg(a.Plan.WindowStart), clockPtrToPg(a.Plan.WindowEnd),
		a.Active, a.ID,
	)
	if err != nil {
		if mapped := mapAssignmentWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update assignment: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}

	return nil
}

// Deactivate implements assignment.AssignmentRepository.
func (r *assignmentRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE assignments SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return assignment.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to deactivate assignment: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return assignment.ErrAssignmentNotFound
	}

	return nil
}
