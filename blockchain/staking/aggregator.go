package staking

import (
	"errors"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// OmissionReason labels why a pool was left out of a recomputation
type OmissionReason string

const (
	OmitAdapterError      OmissionReason = "adapter_error"
	OmitPairInvalid       OmissionReason = "pair_invalid"
	OmitReferenceInvalid  OmissionReason = "reference_pair_invalid"
	OmitZeroTotalSupply   OmissionReason = "zero_total_supply"
	OmitValuationFailure  OmissionReason = "valuation_failure"
	OmitMissingPoolTokens OmissionReason = "missing_pool_tokens"
)

// errPending marks a pool whose inputs are still loading. It is never surfaced.
var errPending = errors.New("pending")

type omission struct {
	reason OmissionReason
	err    error
}

func (o *omission) Error() string {
	return fmt.Sprintf("%s: %v", o.reason, o.err)
}

func omit(reason OmissionReason, err error) error {
	return &omission{reason: reason, err: err}
}

// Aggregator turns snapshots into StakingPosition lists for a fixed pool configuration
type Aggregator struct {
	pools      []PoolInfo
	native     types.Token
	governance types.Token
	logger     zerolog.Logger
	recorder   OmissionRecorder
}

type Option func(*Aggregator)

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

func WithOmissionRecorder(recorder OmissionRecorder) Option {
	return func(a *Aggregator) {
		a.recorder = recorder
	}
}

func NewAggregator(pools []PoolInfo, native, governance types.Token, opts ...Option) (*Aggregator, error) {
	if native.Equals(governance) {
		return nil, fmt.Errorf("native and governance token are both %s", native)
	}
	if err := validatePools(pools, native, governance); err != nil {
		return nil, err
	}

	a := &Aggregator{
		pools:      append([]PoolInfo(nil), pools...),
		native:     native,
		governance: governance,
		logger:     zerolog.New(os.Stdout).With().Str("Module", "aggregator").Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

func (a *Aggregator) Pools() []PoolInfo {
	return append([]PoolInfo(nil), a.pools...)
}

func (a *Aggregator) Native() types.Token {
	return a.native
}

func (a *Aggregator) Governance() types.Token {
	return a.governance
}

// Recompute values every pool of the snapshot that is ready.
// The filter is applied to the configuration first; pools keep their configured order.
// Loading pools are skipped silently, broken ones are logged and recorded, none is an error.
func (a *Aggregator) Recompute(snapshot Snapshot, filter *PairFilter) []StakingPosition {
	pools := FilterPools(a.pools, filter)

	positions := make([]StakingPosition, 0, len(pools))
	for _, pool := range pools {
		position, err := a.position(pool, snapshot)
		if err != nil {
			a.skip(pool, err)
			continue
		}
		positions = append(positions, position)
	}
	return positions
}

func (a *Aggregator) skip(pool PoolInfo, err error) {
	if errors.Is(err, errPending) {
		return
	}

	var o *omission
	if !errors.As(err, &o) {
		o = &omission{reason: OmitValuationFailure, err: err}
	}
	a.logger.Error().Str("pool", pool.String()).Str("reason", string(o.reason)).Err(o.err).Msg("pool omitted")
	if a.recorder != nil {
		a.recorder.RecordOmission(pool.StakingRewardAddress, o.reason)
	}
}

func (a *Aggregator) position(pool PoolInfo, snapshot Snapshot) (StakingPosition, error) {
	ps, ok := snapshot.Pools[pool.StakingRewardAddress]
	if !ok {
		return StakingPosition{}, errPending
	}

	values, err := collect(
		named{"balanceOf", ps.Balance},
		named{"earned", ps.Earned},
		named{"totalSupply", ps.TotalSupply},
		named{"rewardRate", ps.RewardRate},
		named{"periodFinish", ps.PeriodFinish},
	)
	if err != nil {
		return StakingPosition{}, err
	}
	balance, earned, totalSupply, rewardRate, periodFinish := values[0], values[1], values[2], values[3], values[4]

	pair, err := readyPair(ps.Pair, OmitPairInvalid)
	if err != nil {
		return StakingPosition{}, err
	}
	ref, err := readyPair(snapshot.Reference, OmitReferenceInvalid)
	if err != nil {
		return StakingPosition{}, err
	}
	for _, t := range pool.Tokens {
		if !pair.InvolvesToken(t) {
			return StakingPosition{}, omit(OmitMissingPoolTokens, fmt.Errorf("pair %s/%s lacks %s", pair.Token0(), pair.Token1(), t))
		}
	}

	lpSupply := pair.TotalSupply()
	if lpSupply.IsZero() {
		return StakingPosition{}, omit(OmitZeroTotalSupply, ErrZeroTotalSupply)
	}

	inNative, err := a.valueInNative(pool, pair, ref, totalSupply, lpSupply.Raw())
	if err != nil {
		return StakingPosition{}, err
	}

	lp := pair.LiquidityToken()
	staked := types.NewTokenAmount(lp, balance)
	totalStaked := types.NewTokenAmount(lp, totalSupply)
	totalRewardRate := types.NewTokenAmount(a.governance, rewardRate)

	return StakingPosition{
		StakingRewardAddress: pool.StakingRewardAddress,
		Tokens:               pool.Tokens,
		StakedAmount:         staked,
		TotalStakedAmount:    totalStaked,
		EarnedAmount:         types.NewTokenAmount(a.governance, earned),
		TotalRewardRate:      totalRewardRate,
		RewardRate:           HypotheticalRewardRate(staked, totalStaked, totalRewardRate),
		TotalStakedInNative:  inNative,
		PeriodFinish:         finishTime(periodFinish),
	}, nil
}

func (a *Aggregator) valueInNative(pool PoolInfo, pair, ref *types.Pair, totalStaked, lpSupply *big.Int) (types.TokenAmount, error) {
	if pool.Contains(a.native) {
		reserve, err := pair.ReserveOf(a.native)
		if err != nil {
			return types.TokenAmount{}, omit(OmitMissingPoolTokens, err)
		}
		return TotalStakedInNative(a.native, totalStaked, reserve.Raw(), lpSupply)
	}

	govReserve, err := pair.ReserveOf(a.governance)
	if err != nil {
		return types.TokenAmount{}, omit(OmitMissingPoolTokens, err)
	}
	refNative, err := ref.ReserveOf(a.native)
	if err != nil {
		return types.TokenAmount{}, omit(OmitReferenceInvalid, err)
	}
	refGov, err := ref.ReserveOf(a.governance)
	if err != nil {
		return types.TokenAmount{}, omit(OmitReferenceInvalid, err)
	}
	if refGov.IsZero() {
		return types.TokenAmount{}, omit(OmitReferenceInvalid, ErrZeroReserve)
	}
	return TotalStakedInNativeViaGovernance(a.native, totalStaked, refNative.Raw(), refGov.Raw(), govReserve.Raw(), lpSupply)
}

type named struct {
	name   string
	result types.Result[*big.Int]
}

// collect returns the values in order. A failure wins over a pending value.
func collect(results ...named) ([]*big.Int, error) {
	values := make([]*big.Int, len(results))
	pending := false
	for i, r := range results {
		if r.result.IsFailed() {
			return nil, omit(OmitAdapterError, fmt.Errorf("%s: %w", r.name, r.result.Err()))
		}
		v, ok := r.result.Value()
		if !ok || v == nil {
			pending = true
			continue
		}
		values[i] = v
	}
	if pending {
		return nil, errPending
	}
	return values, nil
}

func readyPair(s PairSnapshot, reason OmissionReason) (*types.Pair, error) {
	switch s.State {
	case types.PairLoading:
		return nil, errPending
	case types.PairExists:
		if s.Pair == nil {
			return nil, omit(reason, errors.New("pair marked existing without reserves"))
		}
		return s.Pair, nil
	default:
		return nil, omit(reason, fmt.Errorf("pair %s", s.State))
	}
}

func finishTime(periodFinish *big.Int) *time.Time {
	if periodFinish.Sign() <= 0 || !periodFinish.IsInt64() {
		return nil
	}
	t := time.Unix(periodFinish.Int64(), 0).UTC()
	return &t
}

// Position returns the recomputed position of one pool, if it is ready.
// Omissions are not recorded again; Recompute already did.
func (a *Aggregator) Position(snapshot Snapshot, pool common.Address) (StakingPosition, bool) {
	for _, p := range a.pools {
		if p.StakingRewardAddress != pool {
			continue
		}
		position, err := a.position(p, snapshot)
		if err != nil {
			return StakingPosition{}, false
		}
		return position, true
	}
	return StakingPosition{}, false
}
