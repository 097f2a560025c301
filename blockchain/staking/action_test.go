package staking

import (
	"icequeen/blockchain/pkg/contractclient"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/pkg/util"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanStake(t *testing.T) {
	lp, err := pangolin.LiquidityToken(wavax, png)
	require.NoError(t, err)
	amount := types.NewTokenAmount(lp, big.NewInt(42))

	stakingAbi, err := util.LoadEmbeddedABI(util.StakingRewardsABI)
	require.NoError(t, err)
	cc := contractclient.NewContractClient(nil, wavaxPngPool.StakingRewardAddress, stakingAbi)

	permit := &PermitSignature{
		V:        27,
		R:        common.HexToHash("0x01"),
		S:        common.HexToHash("0x02"),
		Deadline: big.NewInt(1700000000),
	}

	t.Run("approved", func(t *testing.T) {
		call, err := PlanStake(&amount, ApprovalApproved, permit)
		require.NoError(t, err)
		assert.Equal(t, "stake", call.Method)
		assert.Equal(t, StakeGasLimit, call.GasLimit)

		_, err = cc.Pack(call.Method, call.Args...)
		assert.NoError(t, err)
	})

	t.Run("permit", func(t *testing.T) {
		call, err := PlanStake(&amount, ApprovalNotApproved, permit)
		require.NoError(t, err)
		assert.Equal(t, "stakeWithPermit", call.Method)
		assert.Len(t, call.Args, 5)

		_, err = cc.Pack(call.Method, call.Args...)
		assert.NoError(t, err)
	})

	t.Run("neither", func(t *testing.T) {
		_, err := PlanStake(&amount, ApprovalPending, nil)
		assert.ErrorIs(t, err, ErrNoApprovalOrSignature)
	})

	t.Run("no_amount", func(t *testing.T) {
		_, err := PlanStake(nil, ApprovalApproved, nil)
		assert.ErrorIs(t, err, ErrNoAmount)
	})
}

func TestPlanWithdraw(t *testing.T) {
	lp, err := pangolin.LiquidityToken(wavax, png)
	require.NoError(t, err)

	call, err := PlanWithdraw(&types.TokenAmount{})
	assert.ErrorIs(t, err, ErrNoAmount)

	amount := types.NewTokenAmount(lp, big.NewInt(7))
	call, err = PlanWithdraw(&amount)
	require.NoError(t, err)
	assert.Equal(t, "withdraw", call.Method)
	assert.Equal(t, big.NewInt(7), call.Args[0])
	assert.Zero(t, call.GasLimit)
}
