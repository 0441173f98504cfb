package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/master/area"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type areaRepositoryImpl struct {
	db *database.DB
}

func NewAreaRepository(db *database.DB) area.AreaRepository {
	return &areaRepositoryImpl{db: db}
}

// Create implements area.AreaRepository.
func (r *areaRepositoryImpl) Create(ctx context.Context, a area.Area) (area.Area, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return area.Area{}, err
	}

	query := `
		INSERT INTO areas (id, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, description, created_at, updated_at
	`

	var result area.Area
	err = q.QueryRow(ctx, query, id, a.Description).Scan(
		&result.ID,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return area.Area{}, area.ErrAreaDescriptionExists
		}
		return area.Area{}, fmt.Errorf("failed to create area: %w", err)
	}

	return result, nil
}

// GetByID implements area.AreaRepository.
func (r *areaRepositoryImpl) GetByID(ctx context.Context, id string) (area.Area, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, created_at, updated_at
		FROM areas
		WHERE id = $1
	`

	var result area.Area
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return area.Area{}, area.ErrAreaNotFound
		}
		return area.Area{}, fmt.Errorf("failed to get area: %w", err)
	}

	return result, nil
}

// List implements area.AreaRepository.
func (r *areaRepositoryImpl) List(ctx context.Context) ([]area.Area, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, created_at, updated_at
		FROM areas
		ORDER BY description ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	areas := []area.Area{}
	for rows.Next() {
		var a area.Area
		if err := rows.Scan(&a.ID, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return areas, nil
}

// Update implements area.AreaRepository.
func (r *areaRepositoryImpl) Update(ctx context.Context, a area.Area) (area.Area, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE areas
		SET description = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, description, created_at, updated_at
	`

	var result area.Area
	err := q.QueryRow(ctx, query, a.Description, a.ID).Scan(
		&result.ID,
		&result.Description,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidID(err):
			return area.Area{}, area.ErrAreaNotFound
		case isUniqueViolation(err):
			return area.Area{}, area.ErrAreaDescriptionExists
		}
		return area.Area{}, fmt.Errorf("failed to update area: %w", err)
	}

	return result, nil
}

// Delete implements area.AreaRepository.
func (r *areaRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		switch {
		case isInvalidID(err):
			return area.ErrAreaNotFound
		case isForeignKeyViolation(err):
			return area.ErrAreaInUse
		}
		return fmt.Errorf("failed to delete area: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return area.ErrAreaNotFound
	}

	return nil
}

// CountDependents implements area.AreaRepository.
func (r *areaRepositoryImpl) CountDependents(ctx context.Context, id string) (roles int, supervisors int, err error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM roles WHERE area_id = $1),
			(SELECT COUNT(*) FROM supervisors WHERE area_id = $1)
	`

	if err := q.QueryRow(ctx, query, id).Scan(&roles, &supervisors); err != nil {
		if isInvalidID(err) {
			return 0, 0, area.ErrAreaNotFound
		}
		return 0, 0, fmt.Errorf("failed to count area dependents: %w", err)
	}

	return roles, supervisors, nil
}
