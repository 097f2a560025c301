package handler

import (
	"context"
	"encoding/json"
	"icequeen"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	m "icequeen/internal/model"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type PositionRetriever interface {
	Ready() bool
	Pools() []staking.PoolInfo
	Positions(filter *staking.PairFilter) []staking.StakingPosition
	Position(pool common.Address) (staking.StakingPosition, bool)
	TotalEarned() types.TokenAmount
	FreeBalance(pool common.Address) (*types.TokenAmount, bool)
	AccountBound() bool
}

type PositionCacheRetriever interface {
	CachedPositions(ctx context.Context) (json.RawMessage, bool, error)
}

type HistoryRetriever interface {
	RetrievePositionHistory(pool common.Address, start, end time.Time) ([]m.PositionRecord, error)
}

type AmountValidator interface {
	ValidateStake(pool common.Address, typed string) (staking.ValidatedAmount, error)
	ValidateUnstake(pool common.Address, typed string) (staking.ValidatedAmount, error)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type EventRetriever interface {
	Events() []*icequeen.EnrolledEvent
}

type EventLauncher interface {
	LaunchEvent(id uint) error
}

type EventStatusChanger interface {
	SetEventStatus(id uint, active bool) error
}
