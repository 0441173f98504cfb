package attendance

import "context"

// AttendanceRepository is append-only: records are never updated or deleted.
type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record joined with its assignment, worker and zone
	GetByID(ctx context.Context, id string) (Record, error)

	// List retrieves records newest first with the total matching count
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}
