package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound       = errors.New("snapshot not found")
	ErrFamilyMismatch = errors.New("timestamp family does not match league")
	ErrDecode         = errors.New("decode snapshot payload")
)
