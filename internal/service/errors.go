package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error families. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// kindError keeps the user-facing message while unwrapping to its family.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

func invalid(format string, args ...any) error {
	return &kindError{kind: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

var (
	ErrProductNotFound     = notFound("product not found")
	ErrClientNotFound      = notFound("client not found")
	ErrRequirementNotFound = notFound("client requirement not found")
	ErrOrderNotFound       = notFound("order not found")
	ErrSaleNotFound        = notFound("sale not found")
	ErrRecoveryNotFound    = notFound("recovery item not found")
	ErrEventNotFound       = notFound("date event not found")
	ErrUserNotFound        = notFound("user not found")

	ErrAdsIDExists         = invalid("ads id already exists")
	ErrAdsIDImmutable      = invalid("ads id cannot be changed")
	ErrEmailExists         = invalid("email already exists")
	ErrUsernameExists      = invalid("username already exists")
	ErrProductNotSellable  = invalid("product is not available for sale")
	ErrOrderClientMismatch = invalid("order belongs to a different client")

	ErrInvalidCredentials = &kindError{kind: ErrUnauthorized, msg: "invalid username or password"}
	ErrUserInactive       = &kindError{kind: ErrUnauthorized, msg: "user account is inactive"}
	ErrSessionExpired     = &kindError{kind: ErrUnauthorized, msg: "session expired"}
	ErrWrongPassword      = invalid("current password is incorrect")
)

// mapNotFound turns gorm's record-not-found into the domain error.
func mapNotFound(err, domain error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain
	}
	return err
}

// validationError wraps a validator failure message.
func validationError(msg string) error {
	return invalid("Validation failed: %s", msg)
}
