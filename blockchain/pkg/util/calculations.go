package util

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed-point helpers. Every monetary value is a raw unsigned integer scaled by 10^decimals.
// Nothing here goes through float64.

// One is 10^18, the scale of an 18-decimal token
var One = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var (
	ErrDivideByZero    = errors.New("division by zero")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNegativeAmount  = errors.New("negative amount")
	ErrTooManyDecimals = errors.New("fractional component exceeds decimals")
)

// memo. same as the numeric input filter of the web form: digits with at most one dot
var amountPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// MulDiv returns floor(a * b / c). Intermediate product is kept unscaled.
func MulDiv(a, b, c *big.Int) (*big.Int, error) {
	if c == nil || c.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	num := new(big.Int).Mul(a, b)
	return num.Quo(num, c), nil
}

// ParseUnits converts a decimal string into a raw integer with the given decimals.
// "1.5" with 18 decimals is 1500000000000000000.
// Trailing zeros in the fraction are ignored when checking the precision.
func ParseUnits(text string, decimals uint8) (*big.Int, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "-") {
		return nil, fmt.Errorf("%w: %q", ErrNegativeAmount, text)
	}
	if text == "" || text == "." || !amountPattern.MatchString(text) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrInvalidAmount, text), err)
	}

	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrTooManyDecimals, text, decimals)
	}

	return shifted.BigInt(), nil
}

// FormatUnits renders a raw integer as an exact decimal string
func FormatUnits(raw *big.Int, decimals uint8) string {
	if raw == nil {
		return "0"
	}
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}
