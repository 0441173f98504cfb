package zone

import "errors"

var (
	ErrZoneNotFound   = errors.New("zone not found")
	ErrZoneNameExists = errors.New("an active zone with this name already exists")
	ErrZoneInactive   = errors.New("zone is not active")
)
