package icequeen

import (
	"context"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type ReaderMock struct {
	mu       sync.Mutex
	snapshot staking.Snapshot
	lps      map[common.Address]types.Token
	calls    int
}

func (m *ReaderMock) Snapshot(ctx context.Context, account *common.Address) staking.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	s := m.snapshot
	s.Account = account
	s.TakenAt = time.Now()
	return s
}

func (m *ReaderMock) LiquidityToken(pool common.Address) (types.Token, bool) {
	t, ok := m.lps[pool]
	return t, ok
}

type RecorderMock struct {
	refreshes int
	lastErr   error
	valued    int
}

func (m *RecorderMock) ObserveRefresh(start time.Time, err error) {
	m.refreshes++
	m.lastErr = err
}

func (m *RecorderMock) ObservePositions(positions []staking.StakingPosition) {
	m.valued = len(positions)
}
