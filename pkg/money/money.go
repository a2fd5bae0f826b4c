// Copyright (c) 2026 Orderly. All rights reserved.
// Author: hoang.nmai.vn@gmail.com

/*
Package money provides an exact integer representation for monetary amounts.

Amounts are stored as whole cents (int64) to avoid the rounding drift of
binary floating point. The JSON representation is a two-decimal number
(e.g. 29.99) so API clients see conventional currency values while the
backend arithmetic stays exact.

Key Types:
  - Cents: the canonical amount type used across stores and services.
*/
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for malformed or negative decimal input.
var ErrInvalidAmount = errors.New("money: invalid amount")

// Cents is a monetary amount in whole cents.
type Cents int64

// # Constructors

// FromDecimalString parses a decimal currency string ("29.99", "30", "30.5")
// into cents. It rejects negative amounts, malformed input, and values with
// more than two fractional digits.
func FromDecimalString(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	whole, frac, hasFrac := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	cents := units * 100

	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		// pad "5" to "50" so tenths round out to cents
		if len(frac) == 1 {
			frac += "0"
		}
		sub, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		cents += int64(sub)
	}

	return Cents(cents), nil
}

// # Arithmetic

// MulQty multiplies the amount by a quantity, reporting overflow.
func (c Cents) MulQty(qty int) (Cents, error) {
	if qty > 0 && int64(c) > math.MaxInt64/int64(qty) {
		return 0, fmt.Errorf("money: overflow multiplying %d by %d", int64(c), qty)
	}
	return c * Cents(qty), nil
}

// # Formatting

// String renders the amount as a two-decimal currency string without symbol.
func (c Cents) String() string {
	return fmt.Sprintf("%d.%02d", int64(c)/100, int64(c)%100)
}

// MarshalJSON renders the amount as a two-decimal JSON number (29.99).
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a JSON number with at most two fractional digits.
func (c *Cents) UnmarshalJSON(data []byte) error {
	parsed, err := FromDecimalString(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
