package handler

import (
	"bytes"
	"encoding/json"
	"icequeen/app/middleware"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"io"
	"math/big"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testJwtKey = "test-key"

var (
	wavax = types.NewToken(types.Avalanche, "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", 18, "WAVAX", "Wrapped AVAX")
	png   = types.NewToken(types.Avalanche, "0x60781C2586D68229fde47564546784ab3fACA982", 18, "PNG", "Pangolin")
	eth   = types.NewToken(types.Avalanche, "0xf20d962a6c8f70c731bd838a3a388D20d578Da3C", 18, "ETH", "Ether")
	pgl   = types.NewToken(types.Avalanche, "0xd7538cABBf8605BdE1f4901B47B8D42c61DE0367", 18, "PGL", "")

	wavaxEthPool = staking.PoolInfo{StakingRewardAddress: common.HexToAddress("0xa16381eae6285123c323a665d4d99a6bcfaac307"), Tokens: [2]types.Token{wavax, eth}}
	wavaxPngPool = staking.PoolInfo{StakingRewardAddress: common.HexToAddress("0x8fd2755c6ae7252753361991bdcd6ff55bdc01ce"), Tokens: [2]types.Token{wavax, png}}
)

func samplePosition(pool staking.PoolInfo, staked, earned, tvl int64) staking.StakingPosition {
	return staking.StakingPosition{
		StakingRewardAddress: pool.StakingRewardAddress,
		Tokens:               pool.Tokens,
		StakedAmount:         types.NewTokenAmount(pgl, big.NewInt(staked)),
		TotalStakedAmount:    types.NewTokenAmount(pgl, big.NewInt(staked*10)),
		EarnedAmount:         types.NewTokenAmount(png, big.NewInt(earned)),
		TotalRewardRate:      types.NewTokenAmount(png, big.NewInt(100)),
		RewardRate:           types.NewTokenAmount(png, big.NewInt(10)),
		TotalStakedInNative:  types.NewTokenAmount(wavax, big.NewInt(tvl)),
	}
}

func newTestApp() *fiber.App {
	app := fiber.New()
	middleware.SetupMiddleware(app, "")
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := middleware.SignToken(testJwtKey, "test", time.Minute)
	require.NoError(t, err)
	return "Bearer " + token
}

// sendReqeust runs one request through app and decodes a JSON body into resp when resp is not nil
func sendReqeust(app *fiber.App, url string, method string, param interface{}, resp interface{}, authorization ...string) (int, []byte, error) {

	var body io.Reader
	if param != nil {
		b, err := json.Marshal(param)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	if len(authorization) > 0 {
		req.Header.Set("Authorization", authorization[0])
	}

	res, err := app.Test(req, -1)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}

	if resp != nil && res.StatusCode == fiber.StatusOK {
		err = json.Unmarshal(raw, resp)
	}
	return res.StatusCode, raw, err
}
