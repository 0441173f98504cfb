package area

import "time"

// Area is an area laboral, the organizational unit roles and personnel belong to.
type Area struct {
	ID          string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
