package handler

import (
	"errors"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	m "icequeen/internal/model"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPositionRetrieverMock() PositionRetrieverMock {
	return PositionRetrieverMock{
		ready: true,
		pools: []staking.PoolInfo{wavaxEthPool, wavaxPngPool},
		positions: []staking.StakingPosition{
			samplePosition(wavaxEthPool, 10, 7, 1000),
			samplePosition(wavaxPngPool, 5, 11, 80),
		},
		free: map[common.Address]types.TokenAmount{
			wavaxPngPool.StakingRewardAddress: types.NewTokenAmount(pgl, big.NewInt(30)),
		},
		earned: types.NewTokenAmount(png, big.NewInt(18)),
		bound:  true,
	}
}

func TestPositionHandler(t *testing.T) {

	app := newTestApp()
	hist := &HistoryRetrieverMock{records: []m.PositionRecord{{
		TakenAt:              time.Unix(1760000000, 0).UTC(),
		StakingRewardAddress: wavaxPngPool.StakingRewardAddress.Hex(),
		StakedAmount:         "5",
		EarnedAmount:         "11",
		TotalStakedInNative:  "80",
	}}}
	NewPositionHandler(newPositionRetrieverMock(), nil, hist).InitRoute(app)

	t.Run("전체 조회", func(t *testing.T) {
		var resp []map[string]interface{}
		code, _, err := sendReqeust(app, "/positions", "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		require.Len(t, resp, 2)
		assert.Equal(t, wavaxEthPool.StakingRewardAddress.Hex(), resp[0]["stakingRewardAddress"])
	})

	t.Run("pair 필터", func(t *testing.T) {
		var resp []map[string]interface{}
		url := fmt.Sprintf("/positions?tokenA=%s&tokenB=%s", png.Address.Hex(), wavax.Address.Hex())
		code, _, err := sendReqeust(app, url, "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		require.Len(t, resp, 1)
		assert.Equal(t, wavaxPngPool.StakingRewardAddress.Hex(), resp[0]["stakingRewardAddress"])
	})

	t.Run("pair 필터 미일치", func(t *testing.T) {
		var resp []map[string]interface{}
		url := fmt.Sprintf("/positions?tokenA=%s&tokenB=%s", png.Address.Hex(), eth.Address.Hex())
		code, raw, err := sendReqeust(app, url, "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("token 하나만 지정", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/positions?tokenA="+png.Address.Hex(), "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("미등록 token", func(t *testing.T) {
		url := fmt.Sprintf("/positions?tokenA=%s&tokenB=%s", "0x00000000000000000000000000000000000000aa", wavax.Address.Hex())
		code, raw, err := sendReqeust(app, url, "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("잘못된 token 주소", func(t *testing.T) {
		url := fmt.Sprintf("/positions?tokenA=%s&tokenB=%s", "0x1234", wavax.Address.Hex())
		code, _, err := sendReqeust(app, url, "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("단건 조회", func(t *testing.T) {
		var resp map[string]interface{}
		code, _, err := sendReqeust(app, "/positions/"+wavaxPngPool.StakingRewardAddress.Hex(), "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		staked := resp["stakedAmount"].(map[string]interface{})
		assert.Equal(t, "5", staked["raw"])
	})

	t.Run("미준비 position", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/positions/0x88f26b81c9cae4ea168e31bc6353f493fda29661", "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("잘못된 주소", func(t *testing.T) {
		code, _, err := sendReqeust(app, "/positions/0x1234", "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})

	t.Run("free balance", func(t *testing.T) {
		var resp map[string]interface{}
		code, _, err := sendReqeust(app, "/positions/"+wavaxPngPool.StakingRewardAddress.Hex()+"/free", "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "30", resp["balance"].(map[string]interface{})["raw"])

		code, _, err = sendReqeust(app, "/positions/"+wavaxEthPool.StakingRewardAddress.Hex()+"/free", "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, code)
	})

	t.Run("earned", func(t *testing.T) {
		var resp map[string]interface{}
		code, _, err := sendReqeust(app, "/earned", "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "18", resp["earned"].(map[string]interface{})["raw"])
		assert.EqualValues(t, 2, resp["positions"])
	})

	t.Run("이력 조회", func(t *testing.T) {
		var resp []histResponse
		url := fmt.Sprintf("/positions/%s/hist?start=%d&end=%d", wavaxPngPool.StakingRewardAddress.Hex(), 1759990000, 1760010000)
		code, _, err := sendReqeust(app, url, "GET", nil, &resp)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		require.Len(t, resp, 1)
		assert.Equal(t, "80", resp[0].TotalStakedInNative)
		assert.Equal(t, wavaxPngPool.StakingRewardAddress, hist.pool)
		assert.Equal(t, int64(1759990000), hist.start.Unix())
		hist.prettyPrint()
	})

	t.Run("이력 조회 역순 범위", func(t *testing.T) {
		url := fmt.Sprintf("/positions/%s/hist?start=%d&end=%d", wavaxPngPool.StakingRewardAddress.Hex(), 1760010000, 1759990000)
		code, _, err := sendReqeust(app, url, "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, code)
	})
}

func TestPositionHandlerCache(t *testing.T) {

	mock := newPositionRetrieverMock()
	mock.ready = false
	mock.positions = nil

	t.Run("cache hit", func(t *testing.T) {
		app := newTestApp()
		cached := PositionCacheRetrieverMock{raw: []byte(`[{"stakingRewardAddress":"0x01"}]`)}
		NewPositionHandler(mock, cached, nil).InitRoute(app)

		res, err := app.Test(httptest.NewRequest("GET", "/positions", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, res.StatusCode)
		assert.Equal(t, "HIT", res.Header.Get("X-Cache"))
	})

	t.Run("cache error falls back to empty", func(t *testing.T) {
		app := newTestApp()
		NewPositionHandler(mock, PositionCacheRetrieverMock{err: errors.New("redis down")}, nil).InitRoute(app)

		code, raw, err := sendReqeust(app, "/positions", "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("history not configured", func(t *testing.T) {
		app := newTestApp()
		NewPositionHandler(mock, nil, nil).InitRoute(app)

		code, _, err := sendReqeust(app, "/positions/"+wavaxPngPool.StakingRewardAddress.Hex()+"/hist", "GET", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotImplemented, code)
	})
}
