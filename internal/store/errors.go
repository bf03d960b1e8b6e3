package store

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("operation not permitted")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)
