package supervisor

import "time"

// Supervisor is a member of the personal de area: the person who manages the
// workers of one area and their zones and assignments.
type Supervisor struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	AreaID       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	AreaDescription string
}
