package service

import "errors"

// Every operation either succeeds or fails with exactly one of these,
// wrapped with context. Callers match with errors.Is.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrInactiveGame = errors.New("game is not active")
	ErrAlreadyEnded = errors.New("game already ended")
	ErrConsistency  = errors.New("inconsistent data")
)
