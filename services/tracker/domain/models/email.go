package models

import (
	"regexp"
	"strings"

	"github.com/ghuser/worktrack/pkg/domainerr"
	"github.com/ghuser/worktrack/pkg/result"
)

const (
	maxEmailLocalLength  = 64
	maxEmailDomainLength = 255
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

var (
	ErrEmailEmpty          = domainerr.New(domainerr.KindEmpty, "email.empty", "email must not be empty")
	ErrEmailInvalidFormat  = domainerr.New(domainerr.KindInvalidFormat, "email.invalid_format", "email is not a valid address")
	ErrEmailConsecutiveDot = domainerr.New(domainerr.KindInvalidFormat, "email.consecutive_dots", "email must not contain consecutive dots")
	ErrEmailEdgeDot        = domainerr.New(domainerr.KindInvalidFormat, "email.edge_dot",
		"local part and domain must not start or end with a dot")
	ErrEmailLocalTooLong = domainerr.Newf(domainerr.KindOutOfRange, "email.local_too_long",
		"email local part must not exceed %d characters", maxEmailLocalLength)
	ErrEmailDomainTooLong = domainerr.Newf(domainerr.KindOutOfRange, "email.domain_too_long",
		"email domain must not exceed %d characters", maxEmailDomainLength)
)

// Email is a validated e-mail address.
type Email struct{ value string }

// ValidateEmail reports every rule s violates. An empty address reports
// only ErrEmailEmpty.
func ValidateEmail(s string) result.Result {
	if isBlank(s) {
		return result.Failure(ErrEmailEmpty)
	}

	local, domain := s, ""
	if at := strings.LastIndexByte(s, '@'); at >= 0 {
		local, domain = s[:at], s[at+1:]
	}

	var errs []error
	if !emailPattern.MatchString(s) {
		errs = append(errs, ErrEmailInvalidFormat)
	}
	if strings.Contains(s, "..") {
		errs = append(errs, ErrEmailConsecutiveDot)
	}
	if edgeDot(local) || edgeDot(domain) {
		errs = append(errs, ErrEmailEdgeDot)
	}
	if len(local) > maxEmailLocalLength {
		errs = append(errs, ErrEmailLocalTooLong)
	}
	if len(domain) > maxEmailDomainLength {
		errs = append(errs, ErrEmailDomainTooLong)
	}
	if len(errs) > 0 {
		return result.Failure(errs...)
	}
	return result.Success()
}

// NewEmail validates s and wraps it.
func NewEmail(s string) result.Of[Email] {
	if res := ValidateEmail(s); res.IsFailure() {
		return result.FailureOf[Email](res.Errors()...)
	}
	return result.SuccessOf(Email{s})
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

func edgeDot(s string) bool {
	return strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".")
}
