package supervisor

import "context"

type SupervisorRepository interface {
	Create(ctx context.Context, supervisor Supervisor) (Supervisor, error)
	GetByID(ctx context.Context, id string) (Supervisor, error)
	GetByUsername(ctx context.Context, username string) (Supervisor, error)
	List(ctx context.Context) ([]Supervisor, error)
	ListByArea(ctx context.Context, areaID string) ([]Supervisor, error)
	// Update writes the profile. PasswordHash is left untouched when empty.
	Update(ctx context.Context, supervisor Supervisor) (Supervisor, error)
	Delete(ctx context.Context, id string) error
	CountWorkers(ctx context.Context, id string) (int, error)
}
