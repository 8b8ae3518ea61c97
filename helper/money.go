package helper

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is a money amount in minor currency units. The wire format for
// prices and totals is a decimal number of major units (5.5 means $5.50),
// so Cents converts through shopspring/decimal instead of float64 to keep
// the amounts exact.
type Cents int64

// CentsFromDecimal converts a major-unit decimal amount to Cents,
// rounding half-up below one cent.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// ParsePrice parses a major-unit price string such as "5.50".
func ParsePrice(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return CentsFromDecimal(d), nil
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Format renders the amount as a display string, e.g. "$10.00".
func (c Cents) Format() string {
	return "$" + c.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a decimal number of major units.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal().String()), nil
}

// UnmarshalJSON reads a decimal number of major units. Quoted numbers are
// accepted too since some backends serialize prices as strings.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money value %s: %w", b, err)
	}
	*c = CentsFromDecimal(d)
	return nil
}
