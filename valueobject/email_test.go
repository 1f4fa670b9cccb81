package valueobject

import (
	"testing"

	"github.com/earnbaseio/earnbase-common/errors"
)

func TestNewEmailAcceptsValidAddresses(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.example.io",
		"UPPER@EXAMPLE.COM",
	}

	for _, value := range valid {
		email, err := NewEmail(value)
		if err != nil {
			t.Fatalf("NewEmail(%q) returned error: %v", value, err)
		}
		if email.Value() != value {
			t.Errorf("Value() = %q, want %q", email.Value(), value)
		}
		if email.String() != value {
			t.Errorf("String() = %q, want %q", email.String(), value)
		}
	}
}

func TestNewEmailRejectsInvalidAddresses(t *testing.T) {
	invalid := []string{
		"",
		"plainstring",
		"@example.com",
		"user@",
		"user@example",
		"user@@example.com",
		"user @example.com",
	}

	for _, value := range invalid {
		_, err := NewEmail(value)
		if err == nil {
			t.Fatalf("NewEmail(%q) succeeded, want error", value)
		}
		if !errors.IsValidation(err) {
			t.Errorf("NewEmail(%q) error is not a validation error: %v", value, err)
		}
		if err.Error() != "Invalid email format" {
			t.Errorf("NewEmail(%q) message = %q", value, err.Error())
		}
	}
}
