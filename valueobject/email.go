package valueobject

import (
	"regexp"

	"github.com/earnbaseio/earnbase-common/errors"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail validates and wraps an email address.
func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return Email{}, errors.Validation("Invalid email format")
	}
	return Email{value: value}, nil
}

// Value returns the address.
func (e Email) Value() string { return e.value }

// String implements fmt.Stringer.
func (e Email) String() string { return e.value }
