package staking

import (
	"fmt"
	"icequeen/blockchain/pkg/types"

	"github.com/ethereum/go-ethereum/common"
)

// PoolInfo describes one configured reward pool
type PoolInfo struct {
	StakingRewardAddress common.Address `json:"stakingRewardAddress" yaml:"address"`
	Tokens               [2]types.Token `json:"tokens" yaml:"tokens"`
}

func (p PoolInfo) Contains(t types.Token) bool {
	return p.Tokens[0].Equals(t) || p.Tokens[1].Equals(t)
}

func (p PoolInfo) String() string {
	return fmt.Sprintf("%s-%s(%s)", p.Tokens[0], p.Tokens[1], p.StakingRewardAddress.Hex())
}

// PairFilter restricts positions to pools of one token pair. Order of TokenA/TokenB does not matter.
type PairFilter struct {
	TokenA types.Token
	TokenB types.Token
}

func (f PairFilter) Matches(p PoolInfo) bool {
	return (p.Tokens[0].Equals(f.TokenA) && p.Tokens[1].Equals(f.TokenB)) ||
		(p.Tokens[0].Equals(f.TokenB) && p.Tokens[1].Equals(f.TokenA))
}

// FilterPools keeps the configured order. A nil filter keeps every pool.
func FilterPools(pools []PoolInfo, filter *PairFilter) []PoolInfo {
	if filter == nil {
		return pools
	}
	rtn := make([]PoolInfo, 0, len(pools))
	for _, p := range pools {
		if filter.Matches(p) {
			rtn = append(rtn, p)
		}
	}
	return rtn
}

// validatePools checks what the aggregator and the reader both rely on:
// unique pool addresses and every pool valued through native or governance token.
func validatePools(pools []PoolInfo, native, governance types.Token) error {
	seen := make(map[common.Address]struct{}, len(pools))
	for i, p := range pools {
		if _, ok := seen[p.StakingRewardAddress]; ok {
			return fmt.Errorf("pool[%d] %s: duplicated staking reward address", i, p)
		}
		seen[p.StakingRewardAddress] = struct{}{}

		if p.Tokens[0].Equals(p.Tokens[1]) {
			return fmt.Errorf("pool[%d] %s: identical tokens", i, p)
		}
		if !p.Contains(native) && !p.Contains(governance) {
			return fmt.Errorf("pool[%d] %s: contains neither %s nor %s", i, p, native, governance)
		}
	}
	return nil
}
