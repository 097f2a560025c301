package staking

import (
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/pkg/util"
)

const (
	ErrMsgConnectWallet       = "Connect Wallet"
	ErrMsgEnterAmount         = "Enter an amount"
	ErrMsgInsufficientBalance = "Insufficient balance"
)

// ValidatedAmount is a typed amount checked against a ceiling.
// Parsed never exceeds the ceiling. Error is empty only when the amount can be submitted.
type ValidatedAmount struct {
	Parsed *types.TokenAmount `json:"parsed,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (v ValidatedAmount) Valid() bool {
	return v.Parsed != nil && v.Error == ""
}

// TryParseAmount returns nil for anything that is not a positive amount of token
func TryParseAmount(typed string, token types.Token) *types.TokenAmount {
	raw, err := util.ParseUnits(typed, token.Decimals)
	if err != nil || raw.Sign() == 0 {
		return nil
	}
	amount := types.NewTokenAmount(token, raw)
	return &amount
}

// DerivedStakeInfo validates an amount of stakingToken against the free (unstaked) balance.
// freeBalance is nil while the balance is unknown.
func DerivedStakeInfo(accountBound bool, typed string, stakingToken types.Token, freeBalance *types.TokenAmount) ValidatedAmount {
	return validateAmount(accountBound, typed, stakingToken, freeBalance)
}

// DerivedUnstakeInfo validates an amount against what is currently staked
func DerivedUnstakeInfo(accountBound bool, typed string, staked types.TokenAmount) ValidatedAmount {
	return validateAmount(accountBound, typed, staked.Token(), &staked)
}

func validateAmount(accountBound bool, typed string, token types.Token, ceiling *types.TokenAmount) ValidatedAmount {
	parsedInput := TryParseAmount(typed, token)

	var parsed *types.TokenAmount
	exceeds := false
	if parsedInput != nil && ceiling != nil {
		if parsedInput.Cmp(*ceiling) <= 0 {
			parsed = parsedInput
		} else {
			exceeds = true
		}
	}

	rtn := ValidatedAmount{Parsed: parsed}
	switch {
	case !accountBound:
		rtn.Error = ErrMsgConnectWallet
	case exceeds:
		rtn.Error = ErrMsgInsufficientBalance
	case parsed == nil:
		rtn.Error = ErrMsgEnterAmount
	}
	return rtn
}
