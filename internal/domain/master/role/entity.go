package role

import "time"

// Role is a job role defined within an area.
type Role struct {
	ID          string
	Description string
	AreaID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	AreaDescription string
}
