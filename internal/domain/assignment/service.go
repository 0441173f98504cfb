package assignment

import "context"

type AssignmentService interface {
	List(ctx context.Context, filter ListFilter) ([]AssignmentResponse, error)
	Get(ctx context.Context, id string) (AssignmentResponse, error)
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	Update(ctx context.Context, req UpdateAssignmentRequest) (AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}
