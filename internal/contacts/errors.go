package contacts

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// Sentinel errors. Length failures wrap ErrPhoneLength and lookup failures
// wrap ErrNotFound, so both families can be tested at either level.
var (
	ErrPhoneFormat    = errors.New(config.ErrPhoneFormat)
	ErrPhoneLength    = errors.New(config.ErrPhoneLength)
	ErrPhoneTooShort  = fmt.Errorf("%w: %s", ErrPhoneLength, config.ErrPhoneShort)
	ErrPhoneTooLong   = fmt.Errorf("%w: %s", ErrPhoneLength, config.ErrPhoneLong)
	ErrCountryCode    = errors.New(config.ErrCountryCode)
	ErrBirthdayFormat = errors.New(config.ErrBirthdayFormat)
	ErrNoBirthday     = errors.New(config.ErrNoBirthday)
	ErrDuplicatePhone = errors.New(config.ErrDuplicatePhone)
	ErrEmptyName      = errors.New(config.ErrEmptyName)

	ErrNotFound        = errors.New(config.ErrNotFound)
	ErrContactNotFound = fmt.Errorf("%s %w", config.ErrContactNotFound, ErrNotFound)
	ErrPhoneNotFound   = fmt.Errorf("%s %w", config.ErrPhoneNotFound, ErrNotFound)
)

// Error reports a rejected value together with the reason.
type Error struct {
	// Err is one of the package sentinel errors.
	Err error
	// Value is the input that was rejected (raw phone, date, contact name).
	Value string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Value)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(err error, value string) *Error {
	return &Error{Err: err, Value: value}
}
