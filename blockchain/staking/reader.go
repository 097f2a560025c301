package staking

import (
	"context"
	"errors"
	"fmt"
	"icequeen/blockchain/pkg/contractclient"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/pkg/util"
	"math/big"
	"os"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// ChainReader fetches Snapshots with read-only calls against the reward contracts and their pairs
type ChainReader struct {
	pools      []PoolInfo
	native     types.Token
	governance types.Token
	factory    types.Factory

	stakingCallers map[common.Address]ContractCaller // key: staking reward address
	pairCallers    map[common.Address]ContractCaller // key: pair address
	pairs          map[common.Address]pairInfo       // key: pair address
	poolPairs      map[common.Address]common.Address // staking reward address -> pair address
	refPair        common.Address

	concurrency int
	logger      zerolog.Logger

	// rewardRate and periodFinish are read once per pool
	mu     sync.Mutex
	static map[common.Address]staticValues
}

type pairInfo struct {
	lp     types.Token
	token0 types.Token
	token1 types.Token
}

type staticValues struct {
	rewardRate   *big.Int
	periodFinish *big.Int
}

type ReaderOption func(*ChainReader)

func WithConcurrency(n int) ReaderOption {
	return func(r *ChainReader) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithReaderLogger(logger zerolog.Logger) ReaderOption {
	return func(r *ChainReader) {
		r.logger = logger
	}
}

// NewChainReader binds one contract client per reward contract and per pair.
// *ethclient.Client satisfies backend.
func NewChainReader(backend ethereum.ContractCaller, pools []PoolInfo, native, governance types.Token, factory types.Factory, opts ...ReaderOption) (*ChainReader, error) {
	if err := validatePools(pools, native, governance); err != nil {
		return nil, err
	}

	stakingAbi, err := util.LoadEmbeddedABI(util.StakingRewardsABI)
	if err != nil {
		return nil, err
	}
	pairAbi, err := util.LoadEmbeddedABI(util.PairABI)
	if err != nil {
		return nil, err
	}

	r := &ChainReader{
		pools:          append([]PoolInfo(nil), pools...),
		native:         native,
		governance:     governance,
		factory:        factory,
		stakingCallers: make(map[common.Address]ContractCaller),
		pairCallers:    make(map[common.Address]ContractCaller),
		pairs:          make(map[common.Address]pairInfo),
		poolPairs:      make(map[common.Address]common.Address),
		concurrency:    defaultConcurrency,
		logger:         zerolog.New(os.Stdout).With().Str("Module", "chainreader").Timestamp().Logger(),
		static:         make(map[common.Address]staticValues),
	}
	for _, opt := range opts {
		opt(r)
	}

	addPair := func(a, b types.Token) (common.Address, error) {
		lp, err := factory.LiquidityToken(a, b)
		if err != nil {
			return common.Address{}, fmt.Errorf("pair %s/%s: %w", a, b, err)
		}
		if _, ok := r.pairCallers[lp.Address]; !ok {
			token0, token1 := a, b
			if aFirst, _ := a.SortsBefore(b); !aFirst {
				token0, token1 = b, a
			}
			r.pairCallers[lp.Address] = contractclient.NewContractClient(backend, lp.Address, pairAbi)
			r.pairs[lp.Address] = pairInfo{lp: lp, token0: token0, token1: token1}
		}
		return lp.Address, nil
	}

	for _, p := range pools {
		r.stakingCallers[p.StakingRewardAddress] = contractclient.NewContractClient(backend, p.StakingRewardAddress, stakingAbi)
		pairAddr, err := addPair(p.Tokens[0], p.Tokens[1])
		if err != nil {
			return nil, err
		}
		r.poolPairs[p.StakingRewardAddress] = pairAddr
	}

	r.refPair, err = addPair(native, governance)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Snapshot reads every configured pool once. Individual call failures become Failed results, never an error.
// account nil means no wallet is bound: balances are zero.
func (r *ChainReader) Snapshot(ctx context.Context, account *common.Address) Snapshot {

	var mu sync.Mutex
	pools := make(map[common.Address]PoolSnapshot, len(r.pools))
	pairs := make(map[common.Address]PairSnapshot, len(r.pairCallers))
	freeBalances := make(map[common.Address]types.Result[*big.Int], len(r.pairCallers))

	g := new(errgroup.Group)
	g.SetLimit(r.concurrency)

	for _, p := range r.pools {
		pool := p
		g.Go(func() error {
			ps := r.readPool(ctx, pool.StakingRewardAddress, account)
			mu.Lock()
			pools[pool.StakingRewardAddress] = ps
			mu.Unlock()
			return nil
		})
	}

	for addr := range r.pairCallers {
		pairAddr := addr
		g.Go(func() error {
			s := r.readPair(ctx, pairAddr)
			mu.Lock()
			pairs[pairAddr] = s
			mu.Unlock()
			return nil
		})
		g.Go(func() error {
			fb := r.readBalance(ctx, r.pairCallers[pairAddr], account)
			mu.Lock()
			freeBalances[pairAddr] = fb
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	for addr, ps := range pools {
		pairAddr := r.poolPairs[addr]
		ps.Pair = pairs[pairAddr]
		ps.FreeBalance = freeBalances[pairAddr]
		pools[addr] = ps
	}

	return Snapshot{
		Account:   account,
		Pools:     pools,
		Reference: pairs[r.refPair],
		TakenAt:   time.Now(),
	}
}

func (r *ChainReader) readPool(ctx context.Context, addr common.Address, account *common.Address) PoolSnapshot {
	cc := r.stakingCallers[addr]

	ps := PoolSnapshot{
		Balance:     r.readBalance(ctx, cc, account),
		TotalSupply: r.callBigInt(ctx, cc, "totalSupply"),
	}
	if account == nil {
		ps.Earned = types.Ready(new(big.Int))
	} else {
		ps.Earned = r.callBigInt(ctx, cc, "earned", *account)
	}

	r.mu.Lock()
	cached, ok := r.static[addr]
	r.mu.Unlock()
	if ok {
		ps.RewardRate = types.Ready(cached.rewardRate)
		ps.PeriodFinish = types.Ready(cached.periodFinish)
		return ps
	}

	ps.RewardRate = r.callBigInt(ctx, cc, "rewardRate")
	ps.PeriodFinish = r.callBigInt(ctx, cc, "periodFinish")

	rate, rateOk := ps.RewardRate.Value()
	finish, finishOk := ps.PeriodFinish.Value()
	if rateOk && finishOk {
		r.mu.Lock()
		r.static[addr] = staticValues{rewardRate: rate, periodFinish: finish}
		r.mu.Unlock()
	}
	return ps
}

func (r *ChainReader) readBalance(ctx context.Context, cc ContractCaller, account *common.Address) types.Result[*big.Int] {
	if account == nil {
		return types.Ready(new(big.Int))
	}
	return r.callBigInt(ctx, cc, "balanceOf", *account)
}

func (r *ChainReader) readPair(ctx context.Context, pairAddr common.Address) PairSnapshot {
	cc := r.pairCallers[pairAddr]
	info := r.pairs[pairAddr]

	reserves, err := cc.Call(ctx, nil, "getReserves")
	if err != nil {
		return r.pairFailure(pairAddr, "getReserves", err)
	}
	if len(reserves) < 2 {
		return r.pairFailure(pairAddr, "getReserves", fmt.Errorf("unexpected output length %d", len(reserves)))
	}
	reserve0, ok0 := reserves[0].(*big.Int)
	reserve1, ok1 := reserves[1].(*big.Int)
	if !ok0 || !ok1 {
		return r.pairFailure(pairAddr, "getReserves", fmt.Errorf("unexpected output types %T, %T", reserves[0], reserves[1]))
	}

	supply := r.callBigInt(ctx, cc, "totalSupply")
	totalSupply, ok := supply.Value()
	if !ok {
		return r.pairFailure(pairAddr, "totalSupply", supply.Err())
	}

	pair, err := types.NewPair(info.lp, types.NewTokenAmount(info.token0, reserve0), types.NewTokenAmount(info.token1, reserve1), totalSupply)
	if err != nil {
		return r.pairFailure(pairAddr, "NewPair", err)
	}
	return PairSnapshot{State: types.PairExists, Pair: pair}
}

func (r *ChainReader) pairFailure(pairAddr common.Address, method string, err error) PairSnapshot {
	if errors.Is(err, contractclient.ErrEmptyResult) {
		return PairSnapshot{State: types.PairNotExists}
	}
	r.logger.Warn().Str("pair", pairAddr.Hex()).Str("method", method).Err(err).Msg("pair read failed")
	return PairSnapshot{State: types.PairInvalid}
}

func (r *ChainReader) callBigInt(ctx context.Context, cc ContractCaller, method string, args ...interface{}) types.Result[*big.Int] {
	rtn, err := cc.Call(ctx, nil, method, args...)
	if err != nil {
		return types.Failed[*big.Int](err)
	}
	if len(rtn) == 0 {
		return types.Failed[*big.Int](fmt.Errorf("%s: %w", method, contractclient.ErrEmptyResult))
	}
	v, ok := rtn[0].(*big.Int)
	if !ok {
		return types.Failed[*big.Int](fmt.Errorf("%s: unexpected output type %T", method, rtn[0]))
	}
	return types.Ready(v)
}

// LiquidityToken returns the LP token staked in the given reward pool
func (r *ChainReader) LiquidityToken(pool common.Address) (types.Token, bool) {
	pairAddr, ok := r.poolPairs[pool]
	if !ok {
		return types.Token{}, false
	}
	info, ok := r.pairs[pairAddr]
	return info.lp, ok
}
