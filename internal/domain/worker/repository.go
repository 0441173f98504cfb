package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByUsername(ctx context.Context, username string) (Worker, error)
	List(ctx context.Context, filter ListFilter) ([]Worker, error)
	// Update writes the profile. PasswordHash is left untouched when empty.
	Update(ctx context.Context, worker Worker) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	ReplaceRoles(ctx context.Context, workerID string, roleIDs []string) error
	Delete(ctx context.Context, id string) error
	CountAssignments(ctx context.Context, id string) (int, error)
}
