package types

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ChainId identifies an EVM chain
type ChainId int64

const (
	Avalanche ChainId = 43114
	Fuji      ChainId = 43113
)

// Token is an immutable ERC20 identity.
// Two tokens are the same token iff chain id and address match.
type Token struct {
	ChainId  ChainId        `json:"chainId" yaml:"chainId"`
	Address  common.Address `json:"address" yaml:"address"`
	Decimals uint8          `json:"decimals" yaml:"decimals"`
	Symbol   string         `json:"symbol" yaml:"symbol"`
	Name     string         `json:"name,omitempty" yaml:"name"`
}

func NewToken(chainId ChainId, address string, decimals uint8, symbol string, name string) Token {
	return Token{
		ChainId:  chainId,
		Address:  common.HexToAddress(address),
		Decimals: decimals,
		Symbol:   symbol,
		Name:     name,
	}
}

func (t Token) Equals(other Token) bool {
	return t.ChainId == other.ChainId && t.Address == other.Address
}

// SortsBefore reports whether t is token0 of a pair made with other.
func (t Token) SortsBefore(other Token) (bool, error) {
	if t.ChainId != other.ChainId {
		return false, fmt.Errorf("tokens on different chains: %d, %d", t.ChainId, other.ChainId)
	}
	if t.Address == other.Address {
		return false, fmt.Errorf("identical token addresses: %s", t.Address.Hex())
	}
	return bytes.Compare(t.Address.Bytes(), other.Address.Bytes()) < 0, nil
}

func (t Token) String() string {
	if t.Symbol == "" {
		return t.Address.Hex()
	}
	return t.Symbol
}
