package icequeen

import (
	"context"
	"icequeen/blockchain/staking"
	"time"
)

type StorageMock struct {
	saved    [][]staking.StakingPosition
	cached   interface{}
	deleted  time.Time
	events   map[uint]bool
	err      error
	cacheErr error
}

func (m *StorageMock) SavePositions(takenAt time.Time, positions []staking.StakingPosition) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, positions)
	return nil
}

func (m *StorageMock) DeletePositionsBefore(before time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.deleted = before
	return 1, nil
}

func (m *StorageMock) CachePositions(ctx context.Context, v interface{}, exp time.Duration) error {
	if m.cacheErr != nil {
		return m.cacheErr
	}
	m.cached = v
	return nil
}

func (m *StorageMock) RetreiveEventIsActive(eventId uint) bool {
	active, ok := m.events[eventId]
	if !ok {
		return true
	}
	return active
}

func (m *StorageMock) UpdateEventIsActive(eventId uint, isActive bool) error {
	if m.err != nil {
		return m.err
	}
	if m.events == nil {
		m.events = make(map[uint]bool)
	}
	m.events[eventId] = isActive
	return nil
}
