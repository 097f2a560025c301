package contractclient

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ErrEmptyResult is returned when the call hits an address without code
var ErrEmptyResult = errors.New("empty call result")

// ContractClient is a read-only view over a single deployed contract.
// *ethclient.Client satisfies the backend.
type ContractClient struct {
	contractAddress common.Address
	abi             *abi.ABI
	backend         ethereum.ContractCaller
	blockNumber     *big.Int
}

func NewContractClient(backend ethereum.ContractCaller, contractAddress common.Address, abi *abi.ABI, opts ...Option) *ContractClient {

	cc := &ContractClient{
		contractAddress: contractAddress,
		abi:             abi,
		backend:         backend,
	}

	for _, opt := range opts {
		opt(cc)
	}

	return cc
}

// Option is a functional option for configuring ContractClient
type Option func(*ContractClient)

// WithBlockNumber pins every call to the given block. nil means latest.
func WithBlockNumber(blockNumber *big.Int) Option {
	return func(cc *ContractClient) {
		cc.blockNumber = blockNumber
	}
}

func (cm *ContractClient) Call(ctx context.Context, from *common.Address, method string, args ...interface{}) ([]interface{}, error) {

	if from == nil {
		from = &common.Address{}
	}
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call, abi Pack Error", method), err)
	}

	raw, err := cm.backend.CallContract(ctx, ethereum.CallMsg{
		From: *from,
		To:   &cm.contractAddress,
		Data: packed,
	}, cm.blockNumber)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call, CallContract Error", method), err)
	}

	// memo. a contract-less address answers every call with 0x
	if len(raw) == 0 && len(cm.abi.Methods[method].Outputs) > 0 {
		return nil, fmt.Errorf("%s Call at %s: %w", method, cm.contractAddress.Hex(), ErrEmptyResult)
	}

	rtn, err := cm.abi.Unpack(method, raw)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Call, abi Unpack Error", method), err)
	}

	return rtn, nil
}

// Pack encodes calldata for a method without sending it
func (cm *ContractClient) Pack(method string, args ...interface{}) ([]byte, error) {
	packed, err := cm.abi.Pack(method, args...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%s Pack Error", method), err)
	}
	return packed, nil
}

func (cm *ContractClient) ContractAddress() common.Address {
	return cm.contractAddress
}

func (cm *ContractClient) Abi() *abi.ABI {
	return cm.abi
}

// GetFunctionSelectors returns a map of function selectors to function signatures
// Key: selector hex string (e.g., "70a08231")
func (cm *ContractClient) GetFunctionSelectors() map[string]string {
	selectors := make(map[string]string)

	for _, method := range cm.abi.Methods {
		selectors[hex.EncodeToString(method.ID)] = method.Sig
	}

	return selectors
}
