package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinPasswordLength is the minimum length accepted when a password is reset.
const MinPasswordLength = 6

// Account represents a registered user identity, including its credential hash.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"` // Plaintext, only set until the store hashes it
	PasswordHash string    `json:"-"` // Never expose the hash in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAccount creates a new Account with a fresh ID.
// Only presence of name, email and password is checked. The store assigns
// the timestamps and hashes the plaintext password before persisting.
func NewAccount(name, email, password string) (*Account, error) {
	account := &Account{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: password,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks that the Account carries everything the store needs.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrInvalidID)
	}
	if isBlank(a.Name) {
		return NewValidationError("name", "is required", ErrEmptyField)
	}
	if isBlank(a.Email) {
		return NewValidationError("email", "is required", ErrEmptyField)
	}
	if a.Password == "" && a.PasswordHash == "" {
		return NewValidationError("password", "is required", ErrEmptyField)
	}
	return nil
}

// AccountChanges holds the fields an update is allowed to touch.
// A nil pointer means "leave unchanged". Identity, credential hash and
// timestamps are never updated this way.
type AccountChanges struct {
	Name  *string
	Email *string
}

// Validate rejects provided-but-blank values.
func (c AccountChanges) Validate() error {
	if c.Name != nil && isBlank(*c.Name) {
		return NewValidationError("name", "cannot be empty", ErrEmptyField)
	}
	if c.Email != nil && isBlank(*c.Email) {
		return NewValidationError("email", "cannot be empty", ErrEmptyField)
	}
	return nil
}

// ApplyTo copies the provided fields onto the account.
func (c AccountChanges) ApplyTo(a *Account) {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Email != nil {
		a.Email = *c.Email
	}
}

// ValidateResetEmail performs the minimal structural check used by the
// password reset request: the address must be present and contain an "@".
func ValidateResetEmail(email string) error {
	if isBlank(email) {
		return NewValidationError("email", "is required", ErrEmptyField)
	}
	if !strings.Contains(email, "@") {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}

// ValidateNewPassword checks a replacement password.
func ValidateNewPassword(password string) error {
	if password == "" {
		return NewValidationError("newPassword", "is required", ErrEmptyField)
	}
	if len(password) < MinPasswordLength {
		return NewValidationError("newPassword", "must be at least 6 characters long", ErrPasswordTooShort)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
