package core

import "errors"

// Common errors.
var (
	ErrNotFound = errors.New("document not found")
	ErrEmptyID  = errors.New("document ID cannot be empty")
)
