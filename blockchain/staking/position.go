package staking

import (
	"icequeen/blockchain/pkg/types"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

var positionLogger = zerolog.New(os.Stdout).With().Str("Module", "position").Timestamp().Logger()

// StakingPosition is the valued state of one reward pool for the tracked account.
// Records are rebuilt on every recomputation and never mutated.
type StakingPosition struct {
	StakingRewardAddress common.Address `json:"stakingRewardAddress"`
	Tokens               [2]types.Token `json:"tokens"`
	// LP token amounts
	StakedAmount      types.TokenAmount `json:"stakedAmount"`
	TotalStakedAmount types.TokenAmount `json:"totalStakedAmount"`
	// governance token amounts, rates per second
	EarnedAmount    types.TokenAmount `json:"earnedAmount"`
	TotalRewardRate types.TokenAmount `json:"totalRewardRate"`
	RewardRate      types.TokenAmount `json:"rewardRate"`

	TotalStakedInNative types.TokenAmount `json:"totalStakedInNative"`
	// nil when the reward period is open-ended
	PeriodFinish *time.Time `json:"periodFinish,omitempty"`
}

func (p StakingPosition) IsStaking() bool {
	return !p.StakedAmount.IsZero()
}

// IsActive reports whether rewards are still being distributed at now
func (p StakingPosition) IsActive(now time.Time) bool {
	return p.PeriodFinish == nil || p.PeriodFinish.After(now)
}

// HypotheticalRewardRate is the rate the account would earn with staked in this pool
func (p StakingPosition) HypotheticalRewardRate(staked types.TokenAmount) types.TokenAmount {
	return HypotheticalRewardRate(staked, p.TotalStakedAmount, p.TotalRewardRate)
}

// HypotheticalRewardRate = totalRewardRate * staked / totalStaked, zero when nothing is staked
func HypotheticalRewardRate(staked, totalStaked, totalRewardRate types.TokenAmount) types.TokenAmount {
	if totalStaked.IsZero() {
		return types.ZeroAmount(totalRewardRate.Token())
	}
	num := new(big.Int).Mul(totalRewardRate.Raw(), staked.Raw())
	return types.NewTokenAmount(totalRewardRate.Token(), num.Quo(num, totalStaked.Raw()))
}

// TotalEarned sums the governance token earned across positions
func TotalEarned(positions []StakingPosition, governance types.Token) types.TokenAmount {
	sum := types.ZeroAmount(governance)
	for _, p := range positions {
		next, err := sum.Add(p.EarnedAmount)
		if err != nil {
			positionLogger.Warn().Err(err).
				Str("pool", p.StakingRewardAddress.Hex()).
				Str("earned", p.EarnedAmount.String()).
				Msg("earned amount left out of total")
			continue
		}
		sum = next
	}
	return sum
}
