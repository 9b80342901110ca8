package world

import "errors"

var (
	ErrUserExists     = errors.New("user already exists")
	ErrEntityNotFound = errors.New("entity not found")
)
