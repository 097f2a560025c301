package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"icequeen/blockchain/staking"
	m "icequeen/internal/model"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func stgDsn(conf *MysqlConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", conf.user, conf.password, conf.ip, conf.port, conf.scheme)
}

func (s *Storage) initTables() error {
	err := s.db.AutoMigrate(&m.PositionRecord{}, &m.Event{})
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// NewPositionRecords converts one recomputation into rows sharing takenAt
func NewPositionRecords(takenAt time.Time, positions []staking.StakingPosition) ([]m.PositionRecord, error) {
	records := make([]m.PositionRecord, 0, len(positions))
	for _, p := range positions {
		tokens, err := json.Marshal(p.Tokens)
		if err != nil {
			return nil, fmt.Errorf("marshal tokens of %s: %w", p.StakingRewardAddress.Hex(), err)
		}
		records = append(records, m.PositionRecord{
			TakenAt:              takenAt,
			StakingRewardAddress: p.StakingRewardAddress.Hex(),
			Tokens:               datatypes.JSON(tokens),
			StakedAmount:         p.StakedAmount.Raw().String(),
			EarnedAmount:         p.EarnedAmount.Raw().String(),
			TotalStakedAmount:    p.TotalStakedAmount.Raw().String(),
			TotalRewardRate:      p.TotalRewardRate.Raw().String(),
			RewardRate:           p.RewardRate.Raw().String(),
			TotalStakedInNative:  p.TotalStakedInNative.Raw().String(),
			PeriodFinish:         p.PeriodFinish,
		})
	}
	return records, nil
}

// SavePositions records one recomputation. An empty list is not stored.
func (s *Storage) SavePositions(takenAt time.Time, positions []staking.StakingPosition) error {
	if len(positions) == 0 {
		return nil
	}

	records, err := NewPositionRecords(takenAt, positions)
	if err != nil {
		return err
	}

	result := s.db.Create(&records)
	if result.Error != nil {
		return fmt.Errorf("failed to record positions: %w", result.Error)
	}

	s.lg.Debug().Int("count", len(records)).Time("takenAt", takenAt).Msg("positions recorded")
	return nil
}

// RetrievePositionHistory returns the records of one pool within a time range, oldest first
func (s *Storage) RetrievePositionHistory(pool common.Address, start, end time.Time) ([]m.PositionRecord, error) {
	var records []m.PositionRecord
	result := s.db.Where("staking_reward_address = ? AND taken_at BETWEEN ? AND ?", pool.Hex(), start, end).
		Order("taken_at ASC").
		Find(&records)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get position history: %w", result.Error)
	}
	return records, nil
}

// DeletePositionsBefore prunes history older than before
func (s *Storage) DeletePositionsBefore(before time.Time) (int64, error) {
	result := s.db.Where("taken_at < ?", before).Delete(&m.PositionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *Storage) RetreiveEventIsActive(eventId uint) bool {
	var event m.Event
	result := s.db.First(&event, eventId)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			s.lg.Error().Err(result.Error).Uint("eventId", eventId).Msg("RetreiveEventIsActive")
		}
		return true // memo. 미등록 이벤트는 활성 상태로 간주
	}
	return event.IsActive
}

func (s *Storage) UpdateEventIsActive(eventId uint, isActive bool) error {
	result := s.db.Save(&m.Event{ID: eventId, IsActive: isActive})
	if result.Error != nil {
		return fmt.Errorf("failed to update event %d: %w", eventId, result.Error)
	}
	return nil
}
