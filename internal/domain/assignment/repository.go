package assignment

import "context"

type AssignmentRepository interface {
	Create(ctx context.Context, a Assignment) (Assignment, error)
	// GetByID returns the assignment with its zone and worker joined in,
	// whether or not it is active.
	GetByID(ctx context.Context, id string) (Assignment, error)
	List(ctx context.Context, filter ListFilter) ([]Assignment, error)
	Update(ctx context.Context, a Assignment) error
	Deactivate(ctx context.Context, id string) error
}
