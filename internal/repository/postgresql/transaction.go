package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cossmil/asistencia-backend/internal/pkg/database"
	"github.com/cossmil/asistencia-backend/internal/pkg/schedule"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	return db.QuerierFromContext(ctx)
}

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidTextRepr     = "22P02"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeForeignKeyViolation
}

// isInvalidID reports a malformed uuid passed as a lookup key.
func isInvalidID(err error) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == codeInvalidTextRepr
}

func violatedConstraint(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

func clockToPg(c schedule.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c) * 1_000_000, Valid: true}
}

func clockPtrToPg(c *schedule.ClockTime) pgtype.Time {
	if c == nil {
		return pgtype.Time{}
	}
	return clockToPg(*c)
}

func clockFromPg(t pgtype.Time) schedule.ClockTime {
	return schedule.ClockTime(t.Microseconds / 1_000_000)
}

func clockPtrFromPg(t pgtype.Time) *schedule.ClockTime {
	if !t.Valid {
		return nil
	}
	c := clockFromPg(t)
	return &c
}
