package repository

import "errors"

var (
	// ErrDuplicateUser is returned when adding a name that is already
	// on the roster.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound is returned when deleting a name that is not on
	// the roster.
	ErrUserNotFound = errors.New("user not found")
)
