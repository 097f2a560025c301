package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	ErrTokenMismatch  = errors.New("token amounts of different tokens")
	ErrNegativeAmount = errors.New("token amount below zero")
	ErrDivideByZero   = errors.New("division by zero")
)

// TokenAmount is a non-negative raw integer quantity of a token.
// Values are immutable: every operation returns a new amount.
type TokenAmount struct {
	token Token
	raw   *big.Int
}

// NewTokenAmount copies raw. A nil raw is zero.
func NewTokenAmount(token Token, raw *big.Int) TokenAmount {
	r := new(big.Int)
	if raw != nil {
		r.Set(raw)
	}
	return TokenAmount{token: token, raw: r}
}

func ZeroAmount(token Token) TokenAmount {
	return TokenAmount{token: token, raw: new(big.Int)}
}

func (a TokenAmount) Token() Token {
	return a.token
}

// Raw returns a copy of the raw integer
func (a TokenAmount) Raw() *big.Int {
	if a.raw == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.raw)
}

func (a TokenAmount) IsZero() bool {
	return a.raw == nil || a.raw.Sign() == 0
}

func (a TokenAmount) Add(other TokenAmount) (TokenAmount, error) {
	if !a.token.Equals(other.token) {
		return TokenAmount{}, fmt.Errorf("%w: %s + %s", ErrTokenMismatch, a.token, other.token)
	}
	return TokenAmount{token: a.token, raw: new(big.Int).Add(a.Raw(), other.Raw())}, nil
}

func (a TokenAmount) Sub(other TokenAmount) (TokenAmount, error) {
	if !a.token.Equals(other.token) {
		return TokenAmount{}, fmt.Errorf("%w: %s - %s", ErrTokenMismatch, a.token, other.token)
	}
	r := new(big.Int).Sub(a.Raw(), other.Raw())
	if r.Sign() < 0 {
		return TokenAmount{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, a.Raw(), other.Raw())
	}
	return TokenAmount{token: a.token, raw: r}, nil
}

// MulRaw scales the amount by a raw scalar. The token identity is kept.
func (a TokenAmount) MulRaw(scalar *big.Int) TokenAmount {
	return TokenAmount{token: a.token, raw: new(big.Int).Mul(a.Raw(), scalar)}
}

// DivRaw divides by a raw scalar, truncating toward zero.
func (a TokenAmount) DivRaw(scalar *big.Int) (TokenAmount, error) {
	if scalar == nil || scalar.Sign() == 0 {
		return TokenAmount{}, ErrDivideByZero
	}
	return TokenAmount{token: a.token, raw: new(big.Int).Quo(a.Raw(), scalar)}, nil
}

// Cmp compares raw magnitudes only.
func (a TokenAmount) Cmp(other TokenAmount) int {
	return a.Raw().Cmp(other.Raw())
}

func (a TokenAmount) Equal(other TokenAmount) bool {
	return a.token.Equals(other.token) && a.Cmp(other) == 0
}

// ToExact renders the amount in whole-token units without rounding.
func (a TokenAmount) ToExact() string {
	return a.Decimal().String()
}

// Decimal is the exact whole-token value
func (a TokenAmount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(a.Raw(), -int32(a.token.Decimals))
}

func (a TokenAmount) String() string {
	return fmt.Sprintf("%s %s", a.ToExact(), a.token)
}

type tokenAmountJSON struct {
	Token  string `json:"token"`
	Symbol string `json:"symbol"`
	Raw    string `json:"raw"`
	Exact  string `json:"exact"`
}

func (a TokenAmount) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenAmountJSON{
		Token:  a.token.Address.Hex(),
		Symbol: a.token.Symbol,
		Raw:    a.Raw().String(),
		Exact:  a.ToExact(),
	})
}
