package handler

import (
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("unix_range", validUnixRange)
}

func validCheck(param interface{}) error {
	return validate.Struct(param)
}

// validUnixRange accepts a non-negative unix second that is not in the far future
func validUnixRange(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= 0 && v <= time.Now().Add(24*time.Hour).Unix()
}

/***************************************************************** request ****************************************************************/

type PositionsQuery struct {
	TokenA string `query:"tokenA" validate:"required_with=TokenB,omitempty,eth_addr"`
	TokenB string `query:"tokenB" validate:"required_with=TokenA,omitempty,eth_addr"`
}

type PositionParam struct {
	Address string `params:"address" validate:"required,eth_addr"`
}

type HistQuery struct {
	Start int64 `query:"start" validate:"unix_range"`
	End   int64 `query:"end" validate:"omitempty,unix_range,gtefield=Start"`
}

type AmountReq struct {
	Pool   string `json:"pool" validate:"required,eth_addr"`
	Amount string `json:"amount"`
}

type EventStatusChangeRequest struct {
	Id     uint `json:"id" validate:"required"`
	Active bool `json:"active"`
}

type EventLaunchRequest struct {
	Id uint `json:"id" validate:"required"`
}

/***************************************************************** resoponse ****************************************************************/

type earnedResponse struct {
	Earned    types.TokenAmount `json:"earned"`
	Positions int               `json:"positions"`
}

type freeBalanceResponse struct {
	Pool    string             `json:"pool"`
	Balance *types.TokenAmount `json:"balance,omitempty"`
}

type validateResponse struct {
	staking.ValidatedAmount
	Valid bool `json:"valid"`
}

type histResponse struct {
	TakenAt             time.Time  `json:"takenAt"`
	StakedAmount        string     `json:"stakedAmount"`
	EarnedAmount        string     `json:"earnedAmount"`
	TotalStakedAmount   string     `json:"totalStakedAmount"`
	RewardRate          string     `json:"rewardRate"`
	TotalStakedInNative string     `json:"totalStakedInNative"`
	PeriodFinish        *time.Time `json:"periodFinish,omitempty"`
}

type EventResponse struct {
	Id          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
