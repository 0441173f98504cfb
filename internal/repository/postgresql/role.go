package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/domain/master/role"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepositoryImpl struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepositoryImpl{db: db}
}

const roleSelect = `
	SELECT r.id, r.description, r.area_id, a.description, r.created_at, r.updated_at
	FROM roles r
	JOIN areas a ON a.id = r.area_id
`

func scanRole(row pgx.Row) (role.Role, error) {
	var result role.Role
	err := row.Scan(
		&result.ID,
		&result.Description,
		&result.AreaID,
		&result.AreaDescription,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	return result, err
}

func (r *roleRepositoryImpl) queryRoles(ctx context.Context, query string, args ...interface{}) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []role.Role{}, nil
		}
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roles := []role.Role{}
	for rows.Next() {
		result, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, result)
	}

	if err = rows.Err(); err != nil {
		if isInvalidID(err) {
			return []role.Role{}, nil
		}
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return roles, nil
}

// Create implements role.RoleRepository.
func (r *roleRepositoryImpl) Create(ctx context.Context, rl role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return role.Role{}, err
	}

	query := `
		INSERT INTO roles (id, description, area_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`

	if _, err := q.Exec(ctx, query, id, rl.Description, rl.AreaID); err != nil {
		switch {
		case isUniqueViolation(err):
			return role.Role{}, role.ErrRoleDescriptionExists
		case isForeignKeyViolation(err), isInvalidID(err):
			return role.Role{}, area.ErrAreaNotFound
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements role.RoleRepository.
func (r *roleRepositoryImpl) GetByID(ctx context.Context, id string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanRole(q.QueryRow(ctx, roleSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return result, nil
}

// GetByIDs implements role.RoleRepository. Unknown ids are skipped.
func (r *roleRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]role.Role, error) {
	if len(ids) == 0 {
		return []role.Role{}, nil
	}
	return r.queryRoles(ctx, roleSelect+` WHERE r.id = ANY($1::text[]::uuid[]) ORDER BY r.description ASC`, ids)
}

// List implements role.RoleRepository.
func (r *roleRepositoryImpl) List(ctx context.Context) ([]role.Role, error) {
	return r.queryRoles(ctx, roleSelect+` ORDER BY a.description ASC, r.description ASC`)
}

// ListByArea implements role.RoleRepository.
func (r *roleRepositoryImpl) ListByArea(ctx context.Context, areaID string) ([]role.Role, error) {
	return r.queryRoles(ctx, roleSelect+` WHERE r.area_id = $1 ORDER BY r.description ASC`, areaID)
}

// Update implements role.RoleRepository.
func (r *roleRepositoryImpl) Update(ctx context.Context, rl role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE roles
		SET description = $1, area_id = $2, updated_at = NOW()
		WHERE id = $3
	`

	commandTag, err := q.Exec(ctx, query, rl.Description, rl.AreaID, rl.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return role.Role{}, role.ErrRoleDescriptionExists
		case isForeignKeyViolation(err):
			return role.Role{}, area.ErrAreaNotFound
		case isInvalidID(err):
			return role.Role{}, role.ErrRoleNotFound
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return role.Role{}, role.ErrRoleNotFound
	}

	return r.GetByID(ctx, rl.ID)
}

// Delete implements role.RoleRepository.
func (r *roleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		switch {
		case isInvalidID(err):
			return role.ErrRoleNotFound
		case isForeignKeyViolation(err):
			return role.ErrRoleInUse
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}

// CountWorkers implements role.RoleRepository.
func (r *roleRepositoryImpl) CountWorkers(ctx context.Context, id string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM worker_roles WHERE role_id = $1`, id).Scan(&count); err != nil {
		if isInvalidID(err) {
			return 0, role.ErrRoleNotFound
		}
		return 0, fmt.Errorf("failed to count role workers: %w", err)
	}

	return count, nil
}
