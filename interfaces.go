package icequeen

import (
	"context"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type snapshotReader interface {
	Snapshot(ctx context.Context, account *common.Address) staking.Snapshot
	LiquidityToken(pool common.Address) (types.Token, bool)
}

type Storage interface {
	SavePositions(takenAt time.Time, positions []staking.StakingPosition) error
	DeletePositionsBefore(before time.Time) (int64, error)

	CachePositions(ctx context.Context, v interface{}, exp time.Duration) error

	RetreiveEventIsActive(eventId uint) bool
	UpdateEventIsActive(eventId uint, isActive bool) error
}

type recorder interface {
	ObserveRefresh(start time.Time, err error)
	ObservePositions(positions []staking.StakingPosition)
}
