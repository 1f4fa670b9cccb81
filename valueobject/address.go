package valueobject

import (
	"fmt"

	"github.com/earnbaseio/earnbase-common/errors"
)

const addressFieldMaxLen = 255

// Address is a validated postal address.
type Address struct {
	street     string
	city       string
	state      string
	country    string
	postalCode string
}

// NewAddress validates and wraps a postal address. All fields are required.
func NewAddress(street, city, state, country, postalCode string) (Address, error) {
	fields := map[string]string{
		"street":      street,
		"city":        city,
		"state":       state,
		"country":     country,
		"postal_code": postalCode,
	}
	for name, value := range fields {
		if value == "" {
			return Address{}, errors.Validation(fmt.Sprintf("Invalid address: field required: %s", name))
		}
		if len(value) > addressFieldMaxLen {
			return Address{}, errors.Validation(fmt.Sprintf("Invalid address: field too long: %s", name))
		}
	}

	return Address{
		street:     street,
		city:       city,
		state:      state,
		country:    country,
		postalCode: postalCode,
	}, nil
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or province.
func (a Address) State() string { return a.state }

// Country returns the country.
func (a Address) Country() string { return a.country }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// String renders the address on one line, e.g.
// "123 Test St, Test City, TC 12345, Test Country".
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.postalCode, a.country)
}
