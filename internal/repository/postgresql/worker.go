package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/domain/worker"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerSelect = `
	SELECT w.id, w.username, w.password_hash, w.full_name,
		   w.supervisor_id, s.full_name, w.area_id, a.description,
		   w.created_at, w.updated_at,
		   COALESCE((
			   SELECT json_agg(json_build_object('id', r.id, 'descripcion', r.description) ORDER BY r.description)
			   FROM worker_roles wr
			   JOIN roles r ON r.id = wr.role_id
			   WHERE wr.worker_id = w.id
		   ), '[]'::json)
	FROM workers w
	JOIN supervisors s ON s.id = w.supervisor_id
	JOIN areas a ON a.id = w.area_id
`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Username, &w.PasswordHash, &w.FullName,
		&w.SupervisorID, &w.SupervisorName, &w.AreaID, &w.AreaDescription,
		&w.CreatedAt, &w.UpdatedAt,
		&w.Roles,
	)
	if err != nil {
		return worker.Worker{}, err
	}

	w.RoleIDs = make([]string, 0, len(w.Roles))
	for _, r := range w.Roles {
		w.RoleIDs = append(w.RoleIDs, r.ID)
	}
	return w, nil
}

// mapWorkerWriteError translates constraint violations raised by inserts and updates.
func mapWorkerWriteError(err error) error {
	switch {
	case isUniqueViolation(err):
		return worker.ErrUsernameExists
	case isForeignKeyViolation(err):
		if strings.Contains(violatedConstraint(err), "supervisor") {
			return supervisor.ErrSupervisorNotFound
		}
		return area.ErrAreaNotFound
	}
	return nil
}

// Create implements worker.WorkerRepository. Roles are written alongside the
// worker, so callers should run it inside a transaction.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return worker.Worker{}, err
	}

	query := `
		INSERT INTO workers (id, username, password_hash, full_name, supervisor_id, area_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	if _, err := q.Exec(ctx, query, id, w.Username, w.PasswordHash, w.FullName, w.SupervisorID, w.AreaID); err != nil {
		if mapped := mapWorkerWriteError(err); mapped != nil {
			return worker.Worker{}, mapped
		}
		if isInvalidID(err) {
			return worker.Worker{}, supervisor.ErrSupervisorNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	if len(w.RoleIDs) > 0 {
		if err := r.ReplaceRoles(ctx, id, w.RoleIDs); err != nil {
			return worker.Worker{}, err
		}
	}

	return r.GetByID(ctx, id)
}

func (r *workerRepositoryImpl) getOne(ctx context.Context, where string, arg string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, workerSelect+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return r.getOne(ctx, ` WHERE w.id = $1`, id)
}

// GetByUsername implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByUsername(ctx context.Context, username string) (worker.Worker, error) {
	return r.getOne(ctx, ` WHERE w.username = $1`, username)
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context, filter worker.ListFilter) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.AreaID != nil {
		where += fmt.Sprintf(" AND w.area_id = $%d", argIdx)
		args = append(args, *filter.AreaID)
		argIdx++
	}
	if filter.SupervisorID != nil {
		where += fmt.Sprintf(" AND w.supervisor_id = $%d", argIdx)
		args = append(args, *filter.SupervisorID)
		argIdx++
	}

	rows, err := q.Query(ctx, workerSelect+where+` ORDER BY w.full_name ASC`, args...)
	if err != nil {
		if isInvalidID(err) {
			return []worker.Worker{}, nil
		}
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	workers := []worker.Worker{}
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET username = $1,
			full_name = $2,
			supervisor_id = $3,
			area_id = $4,
			password_hash = COALESCE(NULLIF($5::text, ''), password_hash),
			updated_at = NOW()
		WHERE id = $6
	`

	commandTag, err := q.Exec(ctx, query, w.Username, w.FullName, w.SupervisorID, w.AreaID, w.PasswordHash, w.ID)
	if err != nil {
		if mapped := mapWorkerWriteError(err); mapped != nil {
			return mapped
		}
		if isInvalidID(err) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to update worker: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// UpdatePassword implements worker.WorkerRepository.
func (r *workerRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE workers SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	if err != nil {
		if isInvalidID(err) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to update worker password: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// ReplaceRoles implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ReplaceRoles(ctx context.Context, workerID string, roleIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM worker_roles WHERE worker_id = $1`, workerID); err != nil {
		if isInvalidID(err) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to clear worker roles: %w", err)
	}

	if len(roleIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO worker_roles (worker_id, role_id)
		SELECT DISTINCT $1::uuid, role_id
		FROM unnest($2::text[]::uuid[]) AS role_id
	`

	if _, err := q.Exec(ctx, query, workerID, roleIDs); err != nil {
		switch {
		case isForeignKeyViolation(err):
			if strings.Contains(violatedConstraint(err), "worker_id") {
				return worker.ErrWorkerNotFound
			}
			return role.ErrRoleNotFound
		case isInvalidID(err):
			return role.ErrRoleNotFound
		}
		return fmt.Errorf("failed to assign worker roles: %w", err)
	}

	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		switch {
		case isInvalidID(err):
			return worker.ErrWorkerNotFound
		case isForeignKeyViolation(err):
			return worker.ErrWorkerInUse
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// CountAssignments implements worker.WorkerRepository.
func (r *workerRepositoryImpl) CountAssignments(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM assignments WHERE worker_id = $1`, id).Scan(&count); err != nil {
		if isInvalidID(err) {
			return 0, worker.ErrWorkerNotFound
		}
		return 0, fmt.Errorf("failed to count worker assignments: %w", err)
	}

	return count, nil
}
