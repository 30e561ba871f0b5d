// Package common defines shared constants and sentinel errors used across
// client and server layers of technotes. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorForeignKey    = errors.New("foreign key violation")
)
