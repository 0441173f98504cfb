package attendance

import "errors"

// Attendance domain errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found or inactive")
	ErrNotAssignmentOwner = errors.New("assignment belongs to another worker")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
