package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/userhub/internal/api/shared"
	"github.com/phrazzld/userhub/internal/domain"
	"github.com/phrazzld/userhub/internal/service"
	"github.com/phrazzld/userhub/internal/service/auth"
	"github.com/phrazzld/userhub/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error class. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	var fieldErrs validator.ValidationErrors

	switch {
	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.As(err, &fieldErrs),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrPasswordTooLong):
		return http.StatusBadRequest

	// Conflict errors are reported as bad requests
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusBadRequest

	// Reset token errors, the Access Gate reports its own 401s
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrTokenConsumed):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Internal
// details never appear in the result.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var ve *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &ve):
		return ve.Error()

	case errors.As(err, &fieldErrs):
		return SanitizeValidationError(fieldErrs)

	case errors.Is(err, store.ErrPasswordTooLong):
		return "password is too long"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid account data"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already in use"

	case errors.Is(err, store.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, auth.ErrTokenConsumed):
		return "Token has already been used"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid or expired token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator field errors into a short message
// naming the first offending field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fe.Field() + " " + getValidationTagMessage(fe.Tag())
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "has invalid format"
	case "min":
		return "is too short"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}

// ErrorOption adjusts how HandleAPIError reports a specific error class.
type ErrorOption func(*errorOptions)

type errorOptions struct {
	notFoundStatus int
}

// WithNotFoundStatus reports not found errors with status instead of 404.
func WithNotFoundStatus(status int) ErrorOption {
	return func(o *errorOptions) {
		o.notFoundStatus = status
	}
}

// HandleAPIError writes the single error response for err. 5xx responses
// carry a generic message and the redacted detail is only logged.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, opts ...ErrorOption) {
	var o errorOptions
	for _, opt := range opts {
		opt(&o)
	}

	status := MapErrorToStatusCode(err)
	if status == http.StatusNotFound && o.notFoundStatus != 0 {
		status = o.notFoundStatus
	}

	var respOpts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		respOpts = append(respOpts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, respOpts...)
}
