package model

import (
	"time"

	"gorm.io/datatypes"
)

/*
memo. big.Int 값은 varchar(78)의 10진 문자열로 저장. uint256 최대값이 78자리.
*/

// PositionRecord is one valued staking position at the time of a refresh
type PositionRecord struct {
	ID                   uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	TakenAt              time.Time      `gorm:"index;not null" json:"takenAt"`
	StakingRewardAddress string         `gorm:"type:varchar(42);index;not null" json:"stakingRewardAddress"`
	Tokens               datatypes.JSON `json:"tokens"`
	StakedAmount         string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"stakedAmount"`
	EarnedAmount         string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"earnedAmount"`
	TotalStakedAmount    string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"totalStakedAmount"`
	TotalRewardRate      string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"totalRewardRate"`
	RewardRate           string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"rewardRate"`
	TotalStakedInNative  string         `gorm:"type:varchar(78);not null;comment:big.Int as string" json:"totalStakedInNative"`
	PeriodFinish         *time.Time     `json:"periodFinish,omitempty"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"-"`
}

// TableName specifies the table name for GORM
func (PositionRecord) TableName() string {
	return "position_snapshots"
}

// Event keeps the on/off switch of a scheduled job across restarts
type Event struct {
	ID       uint
	IsActive bool
}
