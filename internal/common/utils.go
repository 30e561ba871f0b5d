package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString returns size random bytes encoded as hex, so the result
// is 2*size characters long. Used for request ids.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewRequestID returns a 16-byte random request id, or "unknown" if the
// system random source fails.
func NewRequestID() string {
	id, err := MakeRandHexString(16)
	if err != nil {
		return "unknown"
	}
	return id
}

// WipeByteArray overwrites b with zeros. Plaintext secrets read from the
// terminal are wiped once they have been sent. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
