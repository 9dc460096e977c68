package service

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// passwordSymbols is the fixed set of symbols the strength policy accepts.
const passwordSymbols = "@$!%*?&#^()-_=+"

var errWeakPassword = errors.New(
	"must be at least 8 characters and contain a lowercase letter, an uppercase letter, a digit and a symbol (" + passwordSymbols + ")")

// strongPassword enforces the password strength policy: >= 8 characters
// with at least one lowercase, one uppercase, one digit and one symbol
// from the allowed set.
func strongPassword(value any) error {
	s, _ := value.(string)
	if len(s) < 8 {
		return errWeakPassword
	}

	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}

	if !lower || !upper || !digit || !symbol {
		return errWeakPassword
	}
	return nil
}

// fieldErrors flattens an ozzo validation.Errors map into a deterministic,
// field-sorted *ValidationError. Non-validation errors pass through.
func fieldErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, 0, len(verrs))
	for name, ferr := range verrs {
		fields = append(fields, FieldError{Field: name, Message: ferr.Error()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })

	return &ValidationError{Fields: fields}
}

// SignupInput is the signup request payload.
type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the name and lowercases the email before validation and
// storage. Email uniqueness is case-insensitive by way of this.
func (in *SignupInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in SignupInput) Validate() error {
	return fieldErrors(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required, validation.By(strongPassword)),
	))
}

// LoginInput is the login request payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in LoginInput) Validate() error {
	return fieldErrors(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required),
	))
}

// UpdateProfileInput carries the only two fields the profile path may
// mutate. Role, status and password changes have their own paths.
type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (in *UpdateProfileInput) Normalize() {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in UpdateProfileInput) Validate() error {
	return fieldErrors(validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&in.Email, validation.Required, is.Email),
	))
}

// ChangePasswordInput is the password change payload.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (in ChangePasswordInput) Validate() error {
	return fieldErrors(validation.ValidateStruct(&in,
		validation.Field(&in.CurrentPassword, validation.Required),
		validation.Field(&in.NewPassword,
			validation.Required,
			validation.By(strongPassword),
			validation.By(in.differsFromCurrent),
		),
	))
}

func (in ChangePasswordInput) differsFromCurrent(value any) error {
	s, _ := value.(string)
	if s != "" && s == in.CurrentPassword {
		return errors.New("must differ from the current password")
	}
	return nil
}
