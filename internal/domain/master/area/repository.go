package area

import "context"

type AreaRepository interface {
	Create(ctx context.Context, area Area) (Area, error)
	GetByID(ctx context.Context, id string) (Area, error)
	List(ctx context.Context) ([]Area, error)
	Update(ctx context.Context, area Area) (Area, error)
	Delete(ctx context.Context, id string) error
	// CountDependents returns how many roles and supervisors reference the area.
	CountDependents(ctx context.Context, id string) (roles int, supervisors int, err error)
}
