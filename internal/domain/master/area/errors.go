package area

import "errors"

var (
	ErrAreaNotFound          = errors.New("area not found")
	ErrAreaDescriptionExists = errors.New("area with this description already exists")
	ErrAreaInUse             = errors.New("area has roles or personnel assigned")
)
