package admin

import "context"

type AdminRepository interface {
	Create(ctx context.Context, admin Admin) (Admin, error)
	GetByID(ctx context.Context, id string) (Admin, error)
	GetByUsername(ctx context.Context, username string) (Admin, error)
	List(ctx context.Context) ([]Admin, error)
	// Update writes the profile. PasswordHash is left untouched when empty.
	Update(ctx context.Context, admin Admin) (Admin, error)
	Delete(ctx context.Context, id string) error
}
