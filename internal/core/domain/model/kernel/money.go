package kernel

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
	ErrMoneyIsNotConstructed = errors.New("money must be created via NewMoney, MoneyFromString or ZeroMoney")
)

// Money is an exact, non-negative amount in the platform currency.
// All prices, fees and totals of an order are Money; floats never reach the domain.
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// ZeroMoney returns a valid amount of zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// NewMoney wraps a decimal amount, rejecting negatives.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromInt is a convenience for whole amounts such as configured fees.
func MoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// MoneyFromString parses amounts like "12.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney panics on invalid input. Intended for constants and tests.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(fmt.Sprintf("kernel.MustMoney(%q): %v", s, err))
	}
	return m
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// Mul multiplies the amount by a positive quantity.
func (m Money) Mul(qty int) (Money, error) {
	if qty <= 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))), isConstructed: true}, nil
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Decimal exposes the amount for persistence and DTOs.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
