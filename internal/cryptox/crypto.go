// Package cryptox hashes account secrets with bcrypt.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxSecretLen is the longest secret bcrypt accepts.
const MaxSecretLen = 72

// ErrSecretTooLong is returned by HashSecret for secrets over MaxSecretLen bytes.
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// HashSecret derives a salted bcrypt hash from secret using the given work
// factor. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func HashSecret(secret []byte, cost int) (string, error) {
	if len(secret) > MaxSecretLen {
		return "", ErrSecretTooLong
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(secret, cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(h), nil
}
