package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)
