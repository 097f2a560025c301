package staking

import (
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/pkg/util"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivedStakeInfo(t *testing.T) {
	lp, err := pangolin.LiquidityToken(wavax, png)
	require.NoError(t, err)

	fifty := types.NewTokenAmount(lp, new(big.Int).Mul(big.NewInt(50), util.One))

	t.Run("ceiling_violation", func(t *testing.T) {
		v := DerivedStakeInfo(true, "100", lp, &fifty)
		assert.Nil(t, v.Parsed)
		assert.Equal(t, ErrMsgInsufficientBalance, v.Error)
		assert.False(t, v.Valid())
	})

	t.Run("boundary_inclusive", func(t *testing.T) {
		v := DerivedStakeInfo(true, "50", lp, &fifty)
		require.NotNil(t, v.Parsed)
		assert.True(t, v.Parsed.Equal(fifty))
		assert.Empty(t, v.Error)
		assert.True(t, v.Valid())
	})

	t.Run("fraction", func(t *testing.T) {
		v := DerivedStakeInfo(true, "0.25", lp, &fifty)
		require.NotNil(t, v.Parsed)
		assert.Equal(t, "0.25", v.Parsed.ToExact())
	})

	t.Run("connect_wallet_precedence", func(t *testing.T) {
		v := DerivedStakeInfo(false, "", lp, nil)
		assert.Nil(t, v.Parsed)
		assert.Equal(t, ErrMsgConnectWallet, v.Error)

		v = DerivedStakeInfo(false, "100", lp, &fifty)
		assert.Equal(t, ErrMsgConnectWallet, v.Error)
	})

	t.Run("enter_an_amount", func(t *testing.T) {
		for _, typed := range []string{"", "0", "0.000", "abc", "-1", "1.0000000000000000001"} {
			v := DerivedStakeInfo(true, typed, lp, &fifty)
			assert.Nil(t, v.Parsed, typed)
			assert.Equal(t, ErrMsgEnterAmount, v.Error, typed)
		}
	})

	t.Run("missing_ceiling", func(t *testing.T) {
		v := DerivedStakeInfo(true, "1", lp, nil)
		assert.Nil(t, v.Parsed)
		assert.Equal(t, ErrMsgEnterAmount, v.Error)
	})
}

func TestDerivedUnstakeInfo(t *testing.T) {
	lp, err := pangolin.LiquidityToken(wavax, eth)
	require.NoError(t, err)
	staked := types.NewTokenAmount(lp, big.NewInt(1500))

	v := DerivedUnstakeInfo(true, "0.0000000000000015", staked)
	require.NotNil(t, v.Parsed)
	assert.Equal(t, big.NewInt(1500), v.Parsed.Raw())

	v = DerivedUnstakeInfo(true, "0.0000000000000016", staked)
	assert.Nil(t, v.Parsed)
	assert.Equal(t, ErrMsgInsufficientBalance, v.Error)

	v = DerivedUnstakeInfo(true, "1", types.ZeroAmount(lp))
	assert.Equal(t, ErrMsgInsufficientBalance, v.Error)
}

func TestTryParseAmount(t *testing.T) {
	usdc := types.NewToken(types.Avalanche, "0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", 6, "USDC", "USD Coin")

	a := TryParseAmount("12.345600", usdc)
	require.NotNil(t, a)
	assert.Equal(t, big.NewInt(12345600), a.Raw())

	assert.Nil(t, TryParseAmount("0.0000001", usdc))
	assert.Nil(t, TryParseAmount("0", usdc))
}
