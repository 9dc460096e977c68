package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password on login, so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("service: invalid email or password")

	// ErrEmailTaken reports a duplicate (case-insensitive) email on signup
	// or profile update.
	ErrEmailTaken = errors.New("service: email already registered")

	// ErrUserNotFound reports a missing account on lookups and admin ops.
	ErrUserNotFound = errors.New("service: user not found")

	// ErrWrongPassword reports a failed current-password check on password
	// change.
	ErrWrongPassword = errors.New("service: current password is incorrect")

	// ErrAccountInactive reports a deactivated account presenting otherwise
	// valid credentials.
	ErrAccountInactive = errors.New("service: account is deactivated")

	// ErrSelfStatusChange reports an admin targeting their own account with
	// an activate/deactivate call.
	ErrSelfStatusChange = errors.New("service: cannot change own account status")

	// ErrAlreadyActive / ErrAlreadyInactive report a redundant status
	// transition.
	ErrAlreadyActive   = errors.New("service: user is already active")
	ErrAlreadyInactive = errors.New("service: user is already inactive")
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level failures for one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
