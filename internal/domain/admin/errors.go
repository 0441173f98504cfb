package admin

import "errors"

var (
	ErrAdminNotFound    = errors.New("admin not found")
	ErrUsernameExists   = errors.New("username already registered")
	ErrCannotDeleteSelf = errors.New("an admin cannot delete their own account")
)
