package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrNoMatchSelected       = errors.New("no match selected")
	ErrMatchNotFound         = errors.New("match not found")
)
