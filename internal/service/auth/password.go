package auth

// PasswordVerifier checks a login attempt against the stored credential hash.
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

// PasswordVerifierFunc adapts a plain comparison function, such as
// store.ComparePassword, to PasswordVerifier.
type PasswordVerifierFunc func(hashedPassword, password string) error

// Compare implements PasswordVerifier.
func (f PasswordVerifierFunc) Compare(hashedPassword, password string) error {
	return f(hashedPassword, password)
}
