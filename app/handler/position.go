package handler

import (
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

type PositionHandler struct {
	pr PositionRetriever
	cr PositionCacheRetriever
	hr HistoryRetriever
}

// NewPositionHandler serves positions of the tracker. cr and hr may be nil.
func NewPositionHandler(pr PositionRetriever, cr PositionCacheRetriever, hr HistoryRetriever) *PositionHandler {
	return &PositionHandler{
		pr: pr,
		cr: cr,
		hr: hr,
	}
}

func (h *PositionHandler) InitRoute(app *fiber.App) {

	router := app.Group("/positions")
	router.Get("/", h.Positions)
	router.Get("/:address", h.Position)
	router.Get("/:address/hist", h.PositionHist)
	router.Get("/:address/free", h.FreeBalance)

	app.Get("/earned", h.Earned)
}

func (h *PositionHandler) Positions(c *fiber.Ctx) error {

	var param PositionsQuery
	err := c.QueryParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 QueryParser 시 오류 발생. %w", err)
	}

	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	var filter *staking.PairFilter
	if param.TokenA != "" {
		filter = h.pairFilter(common.HexToAddress(param.TokenA), common.HexToAddress(param.TokenB))
	}

	// 기동 직후 snapshot이 없으면 마지막 cache 응답
	if filter == nil && !h.pr.Ready() && h.cr != nil {
		raw, ok, err := h.cr.CachedPositions(c.UserContext())
		if err == nil && ok {
			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(fiber.StatusOK).Send(raw)
		}
	}

	return c.Status(fiber.StatusOK).JSON(h.pr.Positions(filter))
}

func (h *PositionHandler) Position(c *fiber.Ctx) error {

	pool, err := poolParam(c)
	if err != nil {
		return err
	}

	position, ok := h.pr.Position(pool)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("position not ready: %s", pool.Hex()))
	}

	return c.Status(fiber.StatusOK).JSON(position)
}

func (h *PositionHandler) PositionHist(c *fiber.Ctx) error {

	if h.hr == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "history store not configured")
	}

	pool, err := poolParam(c)
	if err != nil {
		return err
	}

	var param HistQuery
	err = c.QueryParser(&param)
	if err != nil {
		return fmt.Errorf("파라미터 QueryParser 시 오류 발생. %w", err)
	}
	err = validCheck(&param)
	if err != nil {
		return fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}

	end := time.Now()
	if param.End != 0 {
		end = time.Unix(param.End, 0)
	}
	start := end.Add(-24 * time.Hour)
	if param.Start != 0 {
		start = time.Unix(param.Start, 0)
	}

	records, err := h.hr.RetrievePositionHistory(pool, start, end)
	if err != nil {
		return fmt.Errorf("RetrievePositionHistory 시 오류 발생. %w", err)
	}

	rtn := make([]histResponse, 0, len(records))
	for _, r := range records {
		rtn = append(rtn, histResponse{
			TakenAt:             r.TakenAt,
			StakedAmount:        r.StakedAmount,
			EarnedAmount:        r.EarnedAmount,
			TotalStakedAmount:   r.TotalStakedAmount,
			RewardRate:          r.RewardRate,
			TotalStakedInNative: r.TotalStakedInNative,
			PeriodFinish:        r.PeriodFinish,
		})
	}

	return c.Status(fiber.StatusOK).JSON(rtn)
}

func (h *PositionHandler) FreeBalance(c *fiber.Ctx) error {

	pool, err := poolParam(c)
	if err != nil {
		return err
	}

	balance, ok := h.pr.FreeBalance(pool)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("free balance not ready: %s", pool.Hex()))
	}

	return c.Status(fiber.StatusOK).JSON(freeBalanceResponse{
		Pool:    pool.Hex(),
		Balance: balance,
	})
}

func (h *PositionHandler) Earned(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(earnedResponse{
		Earned:    h.pr.TotalEarned(),
		Positions: len(h.pr.Positions(nil)),
	})
}

// pairFilter resolves token addresses against the configured pools.
// An unknown address stays a bare token and matches no pool.
func (h *PositionHandler) pairFilter(a, b common.Address) *staking.PairFilter {

	var chainId types.ChainId
	tokens := make(map[common.Address]types.Token)
	for _, p := range h.pr.Pools() {
		tokens[p.Tokens[0].Address] = p.Tokens[0]
		tokens[p.Tokens[1].Address] = p.Tokens[1]
		chainId = p.Tokens[0].ChainId
	}

	resolve := func(addr common.Address) types.Token {
		if t, ok := tokens[addr]; ok {
			return t
		}
		return types.Token{ChainId: chainId, Address: addr}
	}

	return &staking.PairFilter{TokenA: resolve(a), TokenB: resolve(b)}
}

func poolParam(c *fiber.Ctx) (common.Address, error) {

	param := PositionParam{Address: c.Params("address")}
	err := validCheck(&param)
	if err != nil {
		return common.Address{}, fmt.Errorf("파라미터 유효성 검사 시 오류 발생. %w", err)
	}
	return common.HexToAddress(param.Address), nil
}
