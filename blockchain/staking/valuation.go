package staking

import (
	"errors"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/pkg/util"
	"math/big"
)

var (
	ErrZeroTotalSupply = errors.New("pair total supply is zero")
	ErrZeroReserve     = errors.New("governance reserve of reference pair is zero")
)

var two = big.NewInt(2)

// TotalStakedInNative values the LP tokens held by a reward contract whose pair contains the native asset.
// value = totalStaked * reserveOfNative * 2 / lpTotalSupply
func TotalStakedInNative(native types.Token, totalStaked, reserveOfNative, lpTotalSupply *big.Int) (types.TokenAmount, error) {
	if lpTotalSupply == nil || lpTotalSupply.Sign() == 0 {
		return types.TokenAmount{}, ErrZeroTotalSupply
	}

	num := new(big.Int).Mul(totalStaked, reserveOfNative)
	value, err := util.MulDiv(num, two, lpTotalSupply)
	if err != nil {
		return types.TokenAmount{}, err
	}
	return types.NewTokenAmount(native, value), nil
}

// GovernanceNativeRatio is the native price of one governance token, scaled by util.One
func GovernanceNativeRatio(nativeReserveInRef, govReserveInRef *big.Int) (*big.Int, error) {
	if govReserveInRef == nil || govReserveInRef.Sign() == 0 {
		return nil, ErrZeroReserve
	}
	return util.MulDiv(nativeReserveInRef, util.One, govReserveInRef)
}

// TotalStakedInNativeViaGovernance values a governance/other pair through the native/governance reference pair.
func TotalStakedInNativeViaGovernance(
	native types.Token,
	totalStaked *big.Int,
	nativeReserveInRef *big.Int,
	govReserveInRef *big.Int,
	stakingPairGovReserve *big.Int,
	lpTotalSupply *big.Int,
) (types.TokenAmount, error) {
	if lpTotalSupply == nil || lpTotalSupply.Sign() == 0 {
		return types.TokenAmount{}, ErrZeroTotalSupply
	}

	ratio, err := GovernanceNativeRatio(nativeReserveInRef, govReserveInRef)
	if err != nil {
		return types.TokenAmount{}, err
	}

	valueOfGovInNative, err := util.MulDiv(stakingPairGovReserve, ratio, util.One)
	if err != nil {
		return types.TokenAmount{}, fmt.Errorf("governance reserve conversion: %w", err)
	}

	return TotalStakedInNative(native, totalStaked, valueOfGovInNative, lpTotalSupply)
}
