package mocks

import "github.com/phrazzld/userhub/internal/store"

// PasswordCheck is one recorded call to MockPasswordVerifier.Compare.
type PasswordCheck struct {
	Hash     string
	Password string
}

// MockPasswordVerifier accepts exactly the passwords listed in Valid, keyed
// by hash, and records every comparison it is asked to make.
type MockPasswordVerifier struct {
	Valid  map[string]string
	Err    error
	Checks []PasswordCheck
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.Checks = append(m.Checks, PasswordCheck{Hash: hashedPassword, Password: password})
	if m.Err != nil {
		return m.Err
	}
	if want, ok := m.Valid[hashedPassword]; ok && want == password {
		return nil
	}
	return store.ErrPasswordMismatch
}
