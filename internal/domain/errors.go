package domain

import "errors"

// Validation errors, surfaced to clients as 400
var (
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrNegativePrice       = errors.New("price must not be negative")
)
