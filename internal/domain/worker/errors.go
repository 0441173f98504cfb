package worker

import "errors"

var (
	ErrWorkerNotFound          = errors.New("worker not found")
	ErrUsernameExists          = errors.New("username already registered")
	ErrWorkerInUse             = errors.New("worker has assignments")
	ErrCurrentPasswordRequired = errors.New("current password is required")
	ErrCurrentPasswordInvalid  = errors.New("current password is incorrect")
)
