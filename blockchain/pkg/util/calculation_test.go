package util

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {

	t.Run("floor_division", func(t *testing.T) {
		r, err := MulDiv(big.NewInt(7), big.NewInt(3), big.NewInt(2))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(10), r)
	})

	t.Run("no_overflow_on_wide_product", func(t *testing.T) {
		a, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10) // 2^128-1
		r, err := MulDiv(a, a, a)
		require.NoError(t, err)
		assert.Equal(t, a, r)
	})

	t.Run("zero_divisor", func(t *testing.T) {
		_, err := MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0))
		assert.ErrorIs(t, err, ErrDivideByZero)
	})
}

func TestParseUnits(t *testing.T) {

	tcs := []struct {
		name     string
		in       string
		decimals uint8
		want     string
		err      error
	}{
		{name: "integer", in: "100", decimals: 18, want: "100000000000000000000"},
		{name: "fraction", in: "1.5", decimals: 18, want: "1500000000000000000"},
		{name: "leading_dot", in: ".25", decimals: 6, want: "250000"},
		{name: "trailing_dot", in: "3.", decimals: 6, want: "3000000"},
		{name: "trailing_zeros_ignored", in: "1.1000", decimals: 1, want: "11"},
		{name: "zero", in: "0", decimals: 18, want: "0"},
		{name: "spaces", in: " 2 ", decimals: 0, want: "2"},
		{name: "too_precise", in: "0.0000001", decimals: 6, err: ErrTooManyDecimals},
		{name: "negative", in: "-1", decimals: 18, err: ErrNegativeAmount},
		{name: "empty", in: "", decimals: 18, err: ErrInvalidAmount},
		{name: "dot_only", in: ".", decimals: 18, err: ErrInvalidAmount},
		{name: "letters", in: "1a", decimals: 18, err: ErrInvalidAmount},
		{name: "exponent", in: "1e3", decimals: 18, err: ErrInvalidAmount},
		{name: "two_dots", in: "1.2.3", decimals: 18, err: ErrInvalidAmount},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseUnits(tc.in, tc.decimals)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	raw, _ := new(big.Int).SetString("1234500000000000000", 10)
	assert.Equal(t, "1.2345", FormatUnits(raw, 18))
	assert.Equal(t, "0", FormatUnits(nil, 18))
	assert.Equal(t, "42", FormatUnits(big.NewInt(42), 0))
}
