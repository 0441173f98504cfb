package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/supervisor"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type supervisorRepositoryImpl struct {
	db *database.DB
}

func NewSupervisorRepository(db *database.DB) supervisor.SupervisorRepository {
	return &supervisorRepositoryImpl{db: db}
}

const supervisorSelect = `
	SELECT s.id, s.username, s.password_hash, s.full_name, s.area_id, a.description,
		   s.created_at, s.updated_at
	FROM supervisors s
	JOIN areas a ON a.id = s.area_id
`

func scanSupervisor(row pgx.Row) (supervisor.Supervisor, error) {
	var s supervisor.Supervisor
	err := row.Scan(
		&s.ID, &s.Username, &s.PasswordHash, &s.FullName, &s.AreaID, &s.AreaDescription,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *supervisorRepositoryImpl) getOne(ctx context.Context, where string, arg string) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSupervisor(q.QueryRow(ctx, supervisorSelect+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to get supervisor: %w", err)
	}
	return s, nil
}

func (r *supervisorRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []supervisor.Supervisor{}, nil
		}
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}
	defer rows.Close()

	supervisors := []supervisor.Supervisor{}
	for rows.Next() {
		s, err := scanSupervisor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supervisor: %w", err)
		}
		supervisors = append(supervisors, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return supervisors, nil
}

// Create implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) Create(ctx context.Context, s supervisor.Supervisor) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return supervisor.Supervisor{}, err
	}

	query := `
		INSERT INTO supervisors (id, username, password_hash, full_name, area_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	if _, err := q.Exec(ctx, query, id, s.Username, s.PasswordHash, s.FullName, s.AreaID); err != nil {
		switch {
		case isUniqueViolation(err):
			return supervisor.Supervisor{}, supervisor.ErrUsernameExists
		case isForeignKeyViolation(err), isInvalidID(err):
			return supervisor.Supervisor{}, area.ErrAreaNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to create supervisor: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) GetByID(ctx context.Context, id string) (supervisor.Supervisor, error) {
	return r.getOne(ctx, ` WHERE s.id = $1`, id)
}

// GetByUsername implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) GetByUsername(ctx context.Context, username string) (supervisor.Supervisor, error) {
	return r.getOne(ctx, ` WHERE s.username = $1`, username)
}

// List implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) List(ctx context.Context) ([]supervisor.Supervisor, error) {
	return r.list(ctx, supervisorSelect+` ORDER BY s.full_name ASC`)
}

// ListByArea implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) ListByArea(ctx context.Context, areaID string) ([]supervisor.Supervisor, error) {
	return r.list(ctx, supervisorSelect+` WHERE s.area_id = $1 ORDER BY s.full_name ASC`, areaID)
}

// Update implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) Update(ctx context.Context, s supervisor.Supervisor) (supervisor.Supervisor, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE supervisors
		SET username = $1,
			full_name = $2,
			area_id = $3,
			password_hash = COALESCE(NULLIF($4::text, ''), password_hash),
			updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, s.Username, s.FullName, s.AreaID, s.PasswordHash, s.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return supervisor.Supervisor{}, supervisor.ErrUsernameExists
		case isForeignKeyViolation(err):
			return supervisor.Supervisor{}, area.ErrAreaNotFound
		case isInvalidID(err):
			return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
		}
		return supervisor.Supervisor{}, fmt.Errorf("failed to update supervisor: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
	}

	return r.GetByID(ctx, s.ID)
}

// Delete implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM supervisors WHERE id = $1`, id)
	if err != nil {
		switch {
		case isInvalidID(err):
			return supervisor.ErrSupervisorNotFound
		case isForeignKeyViolation(err):
			return supervisor.ErrSupervisorInUse
		}
		return fmt.Errorf("failed to delete supervisor: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return supervisor.ErrSupervisorNotFound
	}

	return nil
}

// CountWorkers implements supervisor.SupervisorRepository.
func (r *supervisorRepositoryImpl) CountWorkers(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM workers WHERE supervisor_id = $1`, id).Scan(&count); err != nil {
		if isInvalidID(err) {
			return 0, supervisor.ErrSupervisorNotFound
		}
		return 0, fmt.Errorf("failed to count supervisor workers: %w", err)
	}

	return count, nil
}
