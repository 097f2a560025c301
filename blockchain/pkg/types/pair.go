package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PairState mirrors the lifecycle of a pair-reserve read
type PairState int

const (
	PairLoading PairState = iota
	PairNotExists
	PairExists
	PairInvalid
)

func (s PairState) String() string {
	switch s {
	case PairLoading:
		return "loading"
	case PairNotExists:
		return "not_exists"
	case PairExists:
		return "exists"
	case PairInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("PairState(%d)", int(s))
	}
}

// Factory describes the constant-product pair factory used to derive pair addresses
type Factory struct {
	Address      common.Address
	InitCodeHash common.Hash
	// LP token metadata minted by every pair of this factory
	LiquiditySymbol   string
	LiquidityDecimals uint8
}

// PairAddress derives the CREATE2 address of the pair for tokenA/tokenB.
// The result does not depend on argument order.
func (f Factory) PairAddress(tokenA, tokenB Token) (common.Address, error) {
	token0, token1, err := sortTokens(tokenA, tokenB)
	if err != nil {
		return common.Address{}, err
	}
	salt := crypto.Keccak256Hash(token0.Address.Bytes(), token1.Address.Bytes())
	return crypto.CreateAddress2(f.Address, salt, f.InitCodeHash.Bytes()), nil
}

// LiquidityToken returns the LP token of the tokenA/tokenB pair
func (f Factory) LiquidityToken(tokenA, tokenB Token) (Token, error) {
	addr, err := f.PairAddress(tokenA, tokenB)
	if err != nil {
		return Token{}, err
	}
	token0, token1, _ := sortTokens(tokenA, tokenB)
	return Token{
		ChainId:  tokenA.ChainId,
		Address:  addr,
		Decimals: f.LiquidityDecimals,
		Symbol:   f.LiquiditySymbol,
		Name:     fmt.Sprintf("%s-%s %s", token0.Symbol, token1.Symbol, f.LiquiditySymbol),
	}, nil
}

// Pair is an immutable reserve snapshot of a two-token liquidity pair
type Pair struct {
	liquidityToken Token
	reserve0       TokenAmount
	reserve1       TokenAmount
	totalSupply    TokenAmount
}

// NewPair sorts the reserves into token0/token1 order.
// totalSupply is the raw LP token supply of the pair.
func NewPair(liquidityToken Token, reserveA, reserveB TokenAmount, totalSupply *big.Int) (*Pair, error) {
	aFirst, err := reserveA.Token().SortsBefore(reserveB.Token())
	if err != nil {
		return nil, err
	}
	if !aFirst {
		reserveA, reserveB = reserveB, reserveA
	}
	return &Pair{
		liquidityToken: liquidityToken,
		reserve0:       reserveA,
		reserve1:       reserveB,
		totalSupply:    NewTokenAmount(liquidityToken, totalSupply),
	}, nil
}

func (p *Pair) Token0() Token {
	return p.reserve0.Token()
}

func (p *Pair) Token1() Token {
	return p.reserve1.Token()
}

func (p *Pair) LiquidityToken() Token {
	return p.liquidityToken
}

func (p *Pair) TotalSupply() TokenAmount {
	return p.totalSupply
}

func (p *Pair) InvolvesToken(t Token) bool {
	return t.Equals(p.Token0()) || t.Equals(p.Token1())
}

func (p *Pair) ReserveOf(t Token) (TokenAmount, error) {
	switch {
	case t.Equals(p.Token0()):
		return p.reserve0, nil
	case t.Equals(p.Token1()):
		return p.reserve1, nil
	default:
		return TokenAmount{}, fmt.Errorf("token %s not in pair %s/%s", t, p.Token0(), p.Token1())
	}
}

func sortTokens(tokenA, tokenB Token) (Token, Token, error) {
	aFirst, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return Token{}, Token{}, err
	}
	if aFirst {
		return tokenA, tokenB, nil
	}
	return tokenB, tokenA, nil
}
