package valueobject

import (
	"regexp"

	"github.com/earnbaseio/earnbase-common/errors"
)

var (
	phoneNumberPattern = regexp.MustCompile(`^\d{7,15}$`)
	countryCodePattern = regexp.MustCompile(`^\d{1,2}$`)
)

// PhoneNumber is a validated subscriber number plus country code.
type PhoneNumber struct {
	value       string
	countryCode string
}

// NewPhoneNumber validates and wraps a phone number.
func NewPhoneNumber(value, countryCode string) (PhoneNumber, error) {
	if !phoneNumberPattern.MatchString(value) {
		return PhoneNumber{}, errors.Validation("Invalid phone number")
	}
	if !countryCodePattern.MatchString(countryCode) {
		return PhoneNumber{}, errors.Validation("Invalid phone country code")
	}
	return PhoneNumber{value: value, countryCode: countryCode}, nil
}

// Value returns the subscriber number without country code.
func (p PhoneNumber) Value() string { return p.value }

// CountryCode returns the country calling code.
func (p PhoneNumber) CountryCode() string { return p.countryCode }

// String renders the number in E.164-like form, e.g. "+11234567890".
func (p PhoneNumber) String() string { return "+" + p.countryCode + p.value }
