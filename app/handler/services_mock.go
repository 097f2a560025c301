package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"icequeen"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	m "icequeen/internal/model"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/kr/pretty"
)

/***************************** Position ***********************************/

type PositionRetrieverMock struct {
	ready     bool
	pools     []staking.PoolInfo
	positions []staking.StakingPosition
	free      map[common.Address]types.TokenAmount
	earned    types.TokenAmount
	bound     bool
}

func (mock PositionRetrieverMock) Ready() bool {
	return mock.ready
}

func (mock PositionRetrieverMock) Pools() []staking.PoolInfo {
	return mock.pools
}

func (mock PositionRetrieverMock) Positions(filter *staking.PairFilter) []staking.StakingPosition {
	fmt.Println("Positions Called")

	rtn := make([]staking.StakingPosition, 0, len(mock.positions))
	for _, p := range mock.positions {
		if filter != nil && !filter.Matches(staking.PoolInfo{StakingRewardAddress: p.StakingRewardAddress, Tokens: p.Tokens}) {
			continue
		}
		rtn = append(rtn, p)
	}
	return rtn
}

func (mock PositionRetrieverMock) Position(pool common.Address) (staking.StakingPosition, bool) {
	for _, p := range mock.positions {
		if p.StakingRewardAddress == pool {
			return p, true
		}
	}
	return staking.StakingPosition{}, false
}

func (mock PositionRetrieverMock) TotalEarned() types.TokenAmount {
	return mock.earned
}

func (mock PositionRetrieverMock) FreeBalance(pool common.Address) (*types.TokenAmount, bool) {
	b, ok := mock.free[pool]
	if !ok {
		return nil, false
	}
	return &b, true
}

func (mock PositionRetrieverMock) AccountBound() bool {
	return mock.bound
}

type PositionCacheRetrieverMock struct {
	raw json.RawMessage
	err error
}

func (mock PositionCacheRetrieverMock) CachedPositions(ctx context.Context) (json.RawMessage, bool, error) {
	fmt.Println("CachedPositions Called")

	if mock.err != nil {
		return nil, false, mock.err
	}
	return mock.raw, mock.raw != nil, nil
}

type HistoryRetrieverMock struct {
	records []m.PositionRecord
	err     error

	pool       common.Address
	start, end time.Time
}

func (mock *HistoryRetrieverMock) RetrievePositionHistory(pool common.Address, start, end time.Time) ([]m.PositionRecord, error) {
	mock.pool, mock.start, mock.end = pool, start, end
	if mock.err != nil {
		return nil, mock.err
	}
	return mock.records, nil
}

func (mock *HistoryRetrieverMock) prettyPrint() {
	pretty.Println(mock.records)
}

/***************************** Stake ***********************************/

type AmountValidatorMock struct {
	v   staking.ValidatedAmount
	err error

	calls []string
}

func (mock *AmountValidatorMock) ValidateStake(pool common.Address, typed string) (staking.ValidatedAmount, error) {
	mock.calls = append(mock.calls, "stake:"+typed)
	return mock.v, mock.err
}

func (mock *AmountValidatorMock) ValidateUnstake(pool common.Address, typed string) (staking.ValidatedAmount, error) {
	mock.calls = append(mock.calls, "unstake:"+typed)
	return mock.v, mock.err
}

/***************************** Admin ***********************************/

type RefresherMock struct {
	err   error
	calls int
}

func (mock *RefresherMock) Refresh(ctx context.Context) error {
	mock.calls++
	return mock.err
}

/***************************** Event ***********************************/

type EventMock struct {
	events   []*icequeen.EnrolledEvent
	launched []uint
}

func (mock *EventMock) Events() []*icequeen.EnrolledEvent {
	return mock.events
}

func (mock *EventMock) LaunchEvent(id uint) error {
	for _, e := range mock.events {
		if e.Id == id {
			if !e.IsActive {
				return fmt.Errorf("%w. Id : %d", icequeen.ErrEventInactive, id)
			}
			mock.launched = append(mock.launched, id)
			return nil
		}
	}
	return fmt.Errorf("%w. Id : %d", icequeen.ErrUnknownEvent, id)
}

func (mock *EventMock) SetEventStatus(id uint, active bool) error {
	for _, e := range mock.events {
		if e.Id == id {
			e.IsActive = active
			return nil
		}
	}
	return fmt.Errorf("%w. Id : %d", icequeen.ErrUnknownEvent, id)
}

func (mock *EventMock) prettyPrint() {
	pretty.Println(mock.events)
}
