package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a row exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
)
