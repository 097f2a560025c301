package staking

import (
	"errors"
	"icequeen/blockchain/pkg/types"
	"math/big"
)

// StakeGasLimit is the fixed gas limit of stake and stakeWithPermit
const StakeGasLimit uint64 = 350000

var (
	ErrNoApprovalOrSignature = errors.New("attempting to stake without approval or a signature")
	ErrNoAmount              = errors.New("no amount to submit")
)

// ApprovalState of the staking contract's allowance over the LP token
type ApprovalState int

const (
	ApprovalUnknown ApprovalState = iota
	ApprovalNotApproved
	ApprovalPending
	ApprovalApproved
)

// PermitSignature is an EIP-2612 permit signed by the account for the staking contract
type PermitSignature struct {
	V        uint8
	R        [32]byte
	S        [32]byte
	Deadline *big.Int
}

// StakeCall is the reward-contract method and arguments a transaction builder should submit
type StakeCall struct {
	Method   string        `json:"method"`
	Args     []interface{} `json:"args"`
	GasLimit uint64        `json:"gasLimit,omitempty"`
}

// PlanStake picks stake when the allowance is approved, stakeWithPermit when a signature exists.
func PlanStake(parsed *types.TokenAmount, approval ApprovalState, permit *PermitSignature) (StakeCall, error) {
	if parsed == nil || parsed.IsZero() {
		return StakeCall{}, ErrNoAmount
	}

	switch {
	case approval == ApprovalApproved:
		return StakeCall{
			Method:   "stake",
			Args:     []interface{}{parsed.Raw()},
			GasLimit: StakeGasLimit,
		}, nil
	case permit != nil && permit.Deadline != nil:
		return StakeCall{
			Method:   "stakeWithPermit",
			Args:     []interface{}{parsed.Raw(), new(big.Int).Set(permit.Deadline), permit.V, permit.R, permit.S},
			GasLimit: StakeGasLimit,
		}, nil
	default:
		return StakeCall{}, ErrNoApprovalOrSignature
	}
}

func PlanWithdraw(parsed *types.TokenAmount) (StakeCall, error) {
	if parsed == nil || parsed.IsZero() {
		return StakeCall{}, ErrNoAmount
	}
	return StakeCall{
		Method: "withdraw",
		Args:   []interface{}{parsed.Raw()},
	}, nil
}
