package store

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrPasswordTooLong is returned when a plaintext password exceeds bcrypt's input limit.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrPasswordMismatch is returned by ComparePassword when the candidate does not match.
	ErrPasswordMismatch = errors.New("credential mismatch")
)

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrInvalidEntity, ErrPasswordTooLong)
		}
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}

	return string(hash), nil
}

// ComparePassword checks password against a hash produced by HashPassword.
// A wrong password yields ErrPasswordMismatch; a corrupt hash yields a
// wrapped bcrypt error.
func ComparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("failed to compare credential: %w", err)
	}
}
