package models

import (
	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

// bcrypt ignores bytes past 72.
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var (
	ErrPasswordEmpty    = domainerr.New(domainerr.KindEmpty, "password.empty", "password must not be empty")
	ErrPasswordTooShort = domainerr.Newf(domainerr.KindOutOfRange, "password.too_short",
		"password must be at least %d characters", minPasswordLength)
	ErrPasswordTooLong = domainerr.Newf(domainerr.KindOutOfRange, "password.too_long",
		"password must not exceed %d bytes", maxPasswordLength)
)

// ValidatePassword checks a plain password before it is hashed.
func ValidatePassword(s string) result.Result {
	switch {
	case s == "":
		return result.Failure(ErrPasswordEmpty)
	case len([]rune(s)) < minPasswordLength:
		return result.Failure(ErrPasswordTooShort)
	case len(s) > maxPasswordLength:
		return result.Failure(ErrPasswordTooLong)
	}
	return result.Success()
}
