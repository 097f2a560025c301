package staking

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ContractCaller reads a single deployed contract
type ContractCaller interface {
	// Call executes a read-only contract method
	Call(ctx context.Context, from *common.Address, method string, args ...interface{}) ([]interface{}, error)

	// ContractAddress returns the contract address this caller is bound to
	ContractAddress() common.Address
}

// OmissionRecorder receives every pool dropped from a recomputation for a reason other than loading
type OmissionRecorder interface {
	RecordOmission(pool common.Address, reason OmissionReason)
}
