package handler

import (
	"errors"
	"fmt"
	"icequeen"
	"icequeen/blockchain/staking"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

type StakeHandler struct {
	av AmountValidator
}

func NewStakeHandler(av AmountValidator) *StakeHandler {
	return &StakeHandler{
		av: av,
	}
}

func (h *StakeHandler) InitRoute(app *fiber.App) {
	app.Post("/stake/validate", h.ValidateStake)
	app.Post("/unstake/validate", h.ValidateUnstake)
}

func (h *StakeHandler) ValidateStake(c *fiber.Ctx) error {
	return h.validate(c, h.av.ValidateStake)
}

func (h *StakeHandler) ValidateUnstake(c *fiber.Ctx) error {
	return h.validate(c, h.av.ValidateUnstake)
}

func (h *StakeHandler) validate(c *fiber.Ctx, fn func(common.Address, string) (staking.ValidatedAmount, error)) error {

	var param AmountReq
	err := c.BodyParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 BodyParse 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	v, err := fn(common.HexToAddress(param.Pool), param.Amount)
	switch {
	case errors.Is(err, icequeen.ErrUnknownPool), errors.Is(err, icequeen.ErrPositionNotReady):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case err != nil:
		return err
	}

	return c.Status(fiber.StatusOK).JSON(validateResponse{
		ValidatedAmount: v,
		Valid:           v.Valid(),
	})
}
