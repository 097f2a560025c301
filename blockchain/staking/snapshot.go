package staking

import (
	"icequeen/blockchain/pkg/types"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// PairSnapshot is one read of a pair's reserves. Pair is set only when State is PairExists.
type PairSnapshot struct {
	State types.PairState
	Pair  *types.Pair
}

// PoolSnapshot holds the raw reward-contract values of one pool for one account
type PoolSnapshot struct {
	Balance      types.Result[*big.Int]
	Earned       types.Result[*big.Int]
	TotalSupply  types.Result[*big.Int]
	RewardRate   types.Result[*big.Int]
	PeriodFinish types.Result[*big.Int]
	// LP tokens held by the account outside the reward contract. Never required for valuation.
	FreeBalance types.Result[*big.Int]
	Pair        PairSnapshot
}

// Snapshot is the immutable input of one recomputation
type Snapshot struct {
	Account   *common.Address
	Pools     map[common.Address]PoolSnapshot
	Reference PairSnapshot
	TakenAt   time.Time
}

// FreeBalance returns the unstaked LP balance of the pool, if known
func (s Snapshot) FreeBalance(pool common.Address) (*big.Int, bool) {
	ps, ok := s.Pools[pool]
	if !ok {
		return nil, false
	}
	return ps.FreeBalance.Value()
}
