package staking

import (
	"icequeen/blockchain/pkg/types"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	wavax = types.NewToken(types.Avalanche, "0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", 18, "WAVAX", "Wrapped AVAX")
	png   = types.NewToken(types.Avalanche, "0x60781C2586D68229fde47564546784ab3fACA982", 18, "PNG", "Pangolin")
	eth   = types.NewToken(types.Avalanche, "0xf20d962a6c8f70c731bd838a3a388D20d578Da3C", 18, "ETH", "Ether")
	sushi = types.NewToken(types.Avalanche, "0x39cf1BD5f15fb22eC3D9Ff86b0727aFc203427cc", 18, "SUSHI", "SushiToken")

	pangolin = types.Factory{
		Address:           common.HexToAddress("0xefa94DE7a4656D787667C749f7E1223D71E9FD88"),
		InitCodeHash:      common.HexToHash("0x40231f6b438bce0797c9ada29b718a87ea0a5cea3fe9a771abdd76bd41a3e545"),
		LiquiditySymbol:   "PGL",
		LiquidityDecimals: 18,
	}

	wavaxEthPool  = PoolInfo{StakingRewardAddress: common.HexToAddress("0xa16381eae6285123c323a665d4d99a6bcfaac307"), Tokens: [2]types.Token{wavax, eth}}
	wavaxPngPool  = PoolInfo{StakingRewardAddress: common.HexToAddress("0x8fd2755c6ae7252753361991bdcd6ff55bdc01ce"), Tokens: [2]types.Token{wavax, png}}
	pngSushiPool  = PoolInfo{StakingRewardAddress: common.HexToAddress("0x6fa49bd916e392dc9264636b0b5cf2beee652dc3"), Tokens: [2]types.Token{png, sushi}}
	configuration = []PoolInfo{wavaxEthPool, wavaxPngPool, pngSushiPool}
)

func mustPair(t *testing.T, a types.Token, reserveA int64, b types.Token, reserveB int64, supply int64) *types.Pair {
	t.Helper()
	lp, err := pangolin.LiquidityToken(a, b)
	require.NoError(t, err)
	pair, err := types.NewPair(lp, types.NewTokenAmount(a, big.NewInt(reserveA)), types.NewTokenAmount(b, big.NewInt(reserveB)), big.NewInt(supply))
	require.NoError(t, err)
	return pair
}

func existing(p *types.Pair) PairSnapshot {
	return PairSnapshot{State: types.PairExists, Pair: p}
}

func readyPool(balance, earned, totalSupply, rewardRate, periodFinish int64, pair PairSnapshot) PoolSnapshot {
	return PoolSnapshot{
		Balance:      types.Ready(big.NewInt(balance)),
		Earned:       types.Ready(big.NewInt(earned)),
		TotalSupply:  types.Ready(big.NewInt(totalSupply)),
		RewardRate:   types.Ready(big.NewInt(rewardRate)),
		PeriodFinish: types.Ready(big.NewInt(periodFinish)),
		FreeBalance:  types.Ready(big.NewInt(0)),
		Pair:         pair,
	}
}

// fullSnapshot is a snapshot where all three configured pools are ready.
//
//	WAVAX/ETH  : 50 * 1000 * 2 / 100 = 1000
//	WAVAX/PNG  : 20 * 400 * 2 / 200 = 80
//	PNG/SUSHI  : ratio 400/800 = 0.5, 300 PNG = 150 WAVAX, 10 * 150 * 2 / 30 = 100
func fullSnapshot(t *testing.T) Snapshot {
	t.Helper()
	ref := existing(mustPair(t, wavax, 400, png, 800, 200))
	return Snapshot{
		Pools: map[common.Address]PoolSnapshot{
			wavaxEthPool.StakingRewardAddress: readyPool(10, 7, 50, 100, 1700000000, existing(mustPair(t, wavax, 1000, eth, 500, 100))),
			wavaxPngPool.StakingRewardAddress: readyPool(5, 11, 20, 60, 0, ref),
			pngSushiPool.StakingRewardAddress: readyPool(0, 13, 10, 30, 1800000000, existing(mustPair(t, png, 300, sushi, 900, 30))),
		},
		Reference: ref,
	}
}

type recorderMock struct {
	omissions map[common.Address][]OmissionReason
}

func newRecorderMock() *recorderMock {
	return &recorderMock{omissions: make(map[common.Address][]OmissionReason)}
}

func (m *recorderMock) RecordOmission(pool common.Address, reason OmissionReason) {
	m.omissions[pool] = append(m.omissions[pool], reason)
}
