package role

import "errors"

var (
	ErrRoleNotFound          = errors.New("role not found")
	ErrRoleDescriptionExists = errors.New("role with this description already exists in the area")
	ErrRoleInUse             = errors.New("role is assigned to workers")
	ErrRoleAreaMismatch      = errors.New("role does not belong to the worker's area")
)
