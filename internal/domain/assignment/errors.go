package assignment

import "errors"

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrZoneNotFound       = errors.New("zone not found or inactive")
)
