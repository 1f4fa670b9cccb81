package valueobject

import (
	"testing"

	"github.com/earnbaseio/earnbase-common/errors"
)

func TestNewMoneyRoundsToCents(t *testing.T) {
	money, err := NewMoney(99.999, "USD")
	if err != nil {
		t.Fatalf("NewMoney returned error: %v", err)
	}
	if money.Amount() != 100.00 {
		t.Errorf("Amount() = %v, want 100", money.Amount())
	}

	money, err = NewMoney(99.994, "USD")
	if err != nil {
		t.Fatalf("NewMoney returned error: %v", err)
	}
	if money.Amount() != 99.99 {
		t.Errorf("Amount() = %v, want 99.99", money.Amount())
	}
}

func TestNewMoneyRejectsNegativeAmount(t *testing.T) {
	_, err := NewMoney(-1, "USD")
	if err == nil {
		t.Fatal("negative amount accepted, want error")
	}
	if !errors.IsValidation(err) {
		t.Errorf("error is not a validation error: %v", err)
	}
}

func TestNewMoneyRejectsInvalidCurrency(t *testing.T) {
	for _, currency := range []string{"", "usd", "US", "USDT", "12D"} {
		_, err := NewMoney(10, currency)
		if err == nil {
			t.Fatalf("currency %q accepted, want error", currency)
		}
		if err.Error() != "Invalid currency code" {
			t.Errorf("currency %q message = %q", currency, err.Error())
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		amount   float64
		currency string
		want     string
	}{
		{99.99, "USD", "99.99 USD"},
		{100, "USD", "100 USD"},
		{0.5, "EUR", "0.5 EUR"},
	}

	for _, tc := range cases {
		money, err := NewMoney(tc.amount, tc.currency)
		if err != nil {
			t.Fatalf("NewMoney(%v, %q) returned error: %v", tc.amount, tc.currency, err)
		}
		if got := money.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := mustMoney(t, 10.50, "USD")
	b := mustMoney(t, 4.25, "USD")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if sum.Amount() != 14.75 {
		t.Errorf("Add = %v, want 14.75", sum.Amount())
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	if diff.Amount() != 6.25 {
		t.Errorf("Sub = %v, want 6.25", diff.Amount())
	}

	doubled, err := a.Mul(2)
	if err != nil {
		t.Fatalf("Mul returned error: %v", err)
	}
	if doubled.Amount() != 21.00 {
		t.Errorf("Mul = %v, want 21", doubled.Amount())
	}

	half, err := a.Div(2)
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	if half.Amount() != 5.25 {
		t.Errorf("Div = %v, want 5.25", half.Amount())
	}
}

func TestMoneyArithmeticFailures(t *testing.T) {
	usd := mustMoney(t, 10, "USD")
	eur := mustMoney(t, 10, "EUR")

	if _, err := usd.Add(eur); err == nil {
		t.Error("Add across currencies succeeded, want error")
	}
	if _, err := usd.Sub(eur); err == nil {
		t.Error("Sub across currencies succeeded, want error")
	}

	small := mustMoney(t, 1, "USD")
	if _, err := small.Sub(usd); err == nil {
		t.Error("Sub below zero succeeded, want error")
	}

	if _, err := usd.Div(0); err == nil {
		t.Error("Div by zero succeeded, want error")
	}
	if _, err := usd.Mul(-1); err == nil {
		t.Error("Mul by negative factor succeeded, want error")
	}
}

func mustMoney(t *testing.T, amount float64, currency string) Money {
	t.Helper()
	money, err := NewMoney(amount, currency)
	if err != nil {
		t.Fatalf("NewMoney(%v, %q) returned error: %v", amount, currency, err)
	}
	return money
}
