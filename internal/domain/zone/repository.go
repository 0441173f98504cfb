package zone

import "context"

type ZoneRepository interface {
	Create(ctx context.Context, zone Zone) (Zone, error)
	// GetByID returns the zone whether or not it is active.
	GetByID(ctx context.Context, id string) (Zone, error)
	ListActive(ctx context.Context) ([]Zone, error)
	Update(ctx context.Context, zone Zone) (Zone, error)
	Deactivate(ctx context.Context, id string) error
}
