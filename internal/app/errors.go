package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrBackpressure = errors.New("update queue is full")
	ErrStopped      = errors.New("service stopped")
	ErrEmptyUpdate  = errors.New("update carries no data")
)
