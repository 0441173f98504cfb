package worker

import "time"

// Worker is a personal trabajador: the person who marks attendance.
type Worker struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	SupervisorID string
	AreaID       string
	RoleIDs      []string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	SupervisorName  string
	AreaDescription string
	Roles           []RoleRef
}

type RoleRef struct {
	ID          string `json:"id"`
	Description string `json:"descripcion"`
}

type ListFilter struct {
	AreaID       *string
	SupervisorID *string
}
