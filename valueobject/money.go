package valueobject

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/earnbaseio/earnbase-common/errors"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a non-negative monetary amount in a single ISO 4217 currency.
// Amounts are rounded to two decimal places at construction.
type Money struct {
	amount   float64
	currency string
}

// NewMoney validates and wraps a monetary amount.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, errors.Validation("Invalid amount: must not be negative")
	}
	if !currencyPattern.MatchString(currency) {
		return Money{}, errors.Validation("Invalid currency code")
	}
	return Money{amount: roundCents(amount), currency: currency}, nil
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// Amount returns the amount rounded to two decimal places.
func (m Money) Amount() float64 { return m.amount }

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string { return m.currency }

// String renders the amount followed by its currency, e.g. "99.99 USD".
func (m Money) String() string {
	return strconv.FormatFloat(m.amount, 'f', -1, 64) + " " + m.currency
}

// Add returns the sum of two amounts in the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add %s to %s", other.currency, m.currency)
	}
	return Money{amount: roundCents(m.amount + other.amount), currency: m.currency}, nil
}

// Sub returns the difference of two amounts in the same currency.
func (m Money) Sub(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot subtract %s from %s", other.currency, m.currency)
	}
	result := roundCents(m.amount - other.amount)
	if result < 0 {
		return Money{}, errors.Validation("Invalid amount: must not be negative")
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Mul returns the amount scaled by factor.
func (m Money) Mul(factor float64) (Money, error) {
	if factor < 0 {
		return Money{}, errors.Validation("Invalid amount: must not be negative")
	}
	return Money{amount: roundCents(m.amount * factor), currency: m.currency}, nil
}

// Div returns the amount divided by divisor. Division by zero is an error.
func (m Money) Div(divisor float64) (Money, error) {
	if divisor == 0 {
		return Money{}, fmt.Errorf("division by zero")
	}
	if divisor < 0 {
		return Money{}, errors.Validation("Invalid amount: must not be negative")
	}
	return Money{amount: roundCents(m.amount / divisor), currency: m.currency}, nil
}
