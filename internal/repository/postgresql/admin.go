package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/domain/admin"
	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepositoryImpl struct {
	db *database.DB
}

func NewAdminRepository(db *database.DB) admin.AdminRepository {
	return &adminRepositoryImpl{db: db}
}

const adminColumns = `id, username, password_hash, full_name, created_at, updated_at`

func scanAdmin(row pgx.Row) (admin.Admin, error) {
	var a admin.Admin
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// Create implements admin.AdminRepository.
func (r *adminRepositoryImpl) Create(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return admin.Admin{}, err
	}

	query := `
		INSERT INTO admins (id, username, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + adminColumns

	created, err := scanAdmin(q.QueryRow(ctx, query, id, a.Username, a.PasswordHash, a.FullName))
	if err != nil {
		if isUniqueViolation(err) {
			return admin.Admin{}, admin.ErrUsernameExists
		}
		return admin.Admin{}, fmt.Errorf("failed to create admin: %w", err)
	}

	return created, nil
}

func (r *adminRepositoryImpl) getOne(ctx context.Context, column string, value string) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + adminColumns + ` FROM admins WHERE ` + column + ` = $1`

	a, err := scanAdmin(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidID(err) {
			return admin.Admin{}, admin.ErrAdminNotFound
		}
		return admin.Admin{}, fmt.Errorf("failed to get admin: %w", err)
	}
	return a, nil
}

// GetByID implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetByID(ctx context.Context, id string) (admin.Admin, error) {
	return r.getOne(ctx, "id", id)
}

// GetByUsername implements admin.AdminRepository.
func (r *adminRepositoryImpl) GetByUsername(ctx context.Context, username string) (admin.Admin, error) {
	return r.getOne(ctx, "username", username)
}

// List implements admin.AdminRepository.
func (r *adminRepositoryImpl) List(ctx context.Context) ([]admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY full_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	admins := []admin.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return admins, nil
}

// Update implements admin.AdminRepository.
func (r *adminRepositoryImpl) Update(ctx context.Context, a admin.Admin) (admin.Admin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE admins
		SET username = $1,
			full_name = $2,
			password_hash = COALESCE(NULLIF($3::text, ''), password_hash),
			updated_at = NOW()
		WHERE id = $4
		RETURNING ` + adminColumns

	updated, err := scanAdmin(q.QueryRow(ctx, query, a.Username, a.FullName, a.PasswordHash, a.ID))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), isInvalidID(err):
			return admin.Admin{}, admin.ErrAdminNotFound
		case isUniqueViolation(err):
			return admin.Admin{}, admin.ErrUsernameExists
		}
		return admin.Admin{}, fmt.Errorf("failed to update admin: %w", err)
	}

	return updated, nil
}

// Delete implements admin.AdminRepository.
func (r *adminRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		if isInvalidID(err) {
			return admin.ErrAdminNotFound
		}
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return admin.ErrAdminNotFound
	}

	return nil
}
