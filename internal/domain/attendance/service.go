package attendance

import (
	"context"
)

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// Mark evaluates the position and server time against the assignment and appends a record
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// List retrieves records visible to the caller; workers only see their own
	List(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)

	// Get retrieves a single record with the same visibility rules as List
	Get(ctx context.Context, id string) (AttendanceResponse, error)
}
