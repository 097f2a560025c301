package icequeen

import (
	"context"
	"errors"
	"fmt"
	"icequeen/blockchain/pkg/types"
	"icequeen/blockchain/staking"
	"os"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownPool      = errors.New("unknown staking pool")
	ErrPositionNotReady = errors.New("position not ready")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrEventInactive    = errors.New("event inactive")
)

// Tracker owns the polling cadence and the latest snapshot of the tracked account
type Tracker struct {
	reader  snapshotReader
	agg     *staking.Aggregator
	stg     Storage
	rec     recorder
	account *common.Address
	ch      chan<- string

	refreshSpec string
	reportSpec  string
	cacheTTL    time.Duration
	retention   time.Duration

	mu        sync.RWMutex
	latest    *staking.Snapshot
	positions []staking.StakingPosition

	enrolledEvents []*EnrolledEvent
	lg             zerolog.Logger
}

type TrackerConfig struct {
	Reader     snapshotReader
	Aggregator *staking.Aggregator
	Storage    Storage
	Recorder   recorder
	Account    *common.Address
	Channel    chan<- string

	RefreshSpec string
	ReportSpec  string
	CacheTTL    time.Duration
	Retention   time.Duration
}

func NewTracker(conf TrackerConfig) *Tracker {

	t := &Tracker{
		reader:      conf.Reader,
		agg:         conf.Aggregator,
		stg:         conf.Storage,
		rec:         conf.Recorder,
		account:     conf.Account,
		ch:          conf.Channel,
		refreshSpec: conf.RefreshSpec,
		reportSpec:  conf.ReportSpec,
		cacheTTL:    conf.CacheTTL,
		retention:   conf.Retention,
		positions:   []staking.StakingPosition{},
		lg:          zerolog.New(os.Stdout).With().Str("Module", "Tracker").Timestamp().Logger(),
	}
	if t.refreshSpec == "" {
		t.refreshSpec = RefreshSpec
	}
	if t.reportSpec == "" {
		t.reportSpec = ReportSpec
	}
	t.registerEvents()
	return t
}

// Refresh reads a new snapshot and recomputes every position from it.
// Positions that cannot be valued yet are left out, they are not errors.
func (t *Tracker) Refresh(ctx context.Context) (err error) {
	start := time.Now()
	if t.rec != nil {
		defer func() { t.rec.ObserveRefresh(start, err) }()
	}

	snapshot := t.reader.Snapshot(ctx, t.account)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("snapshot 조회 중단. %w", ctxErr)
	}

	positions := t.agg.Recompute(snapshot, nil)

	t.mu.Lock()
	t.latest = &snapshot
	t.positions = positions
	t.mu.Unlock()

	if t.rec != nil {
		t.rec.ObservePositions(positions)
	}

	var errs []error
	if t.stg != nil {
		if saveErr := t.stg.SavePositions(snapshot.TakenAt, positions); saveErr != nil {
			errs = append(errs, fmt.Errorf("SavePositions 시 오류 발생. %w", saveErr))
		}
		if cacheErr := t.stg.CachePositions(ctx, positions, t.cacheTTL); cacheErr != nil {
			errs = append(errs, fmt.Errorf("CachePositions 시 오류 발생. %w", cacheErr))
		}
	}

	t.lg.Debug().Int("positions", len(positions)).Dur("elapsed", time.Since(start)).Msg("Refresh completed")
	return errors.Join(errs...)
}

// Ready reports whether at least one snapshot has been taken
func (t *Tracker) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest != nil
}

// Positions returns the valued positions of the last refresh, in pool order.
// A nil filter keeps every pool.
func (t *Tracker) Positions(filter *staking.PairFilter) []staking.StakingPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rtn := make([]staking.StakingPosition, 0, len(t.positions))
	for _, p := range t.positions {
		if filter != nil && !filter.Matches(staking.PoolInfo{StakingRewardAddress: p.StakingRewardAddress, Tokens: p.Tokens}) {
			continue
		}
		rtn = append(rtn, p)
	}
	return rtn
}

func (t *Tracker) Position(pool common.Address) (staking.StakingPosition, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.latest == nil {
		return staking.StakingPosition{}, false
	}
	return t.agg.Position(*t.latest, pool)
}

// Pools is the configured pool list, in configured order
func (t *Tracker) Pools() []staking.PoolInfo {
	return t.agg.Pools()
}

func (t *Tracker) TotalEarned() types.TokenAmount {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return staking.TotalEarned(t.positions, t.agg.Governance())
}

// FreeBalance is the account's LP balance of the pool's pair outside the reward contract
func (t *Tracker) FreeBalance(pool common.Address) (*types.TokenAmount, bool) {
	lp, ok := t.reader.LiquidityToken(pool)
	if !ok {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.latest == nil {
		return nil, false
	}
	raw, ok := t.latest.FreeBalance(pool)
	if !ok {
		return nil, false
	}
	amount := types.NewTokenAmount(lp, raw)
	return &amount, true
}

func (t *Tracker) AccountBound() bool {
	return t.account != nil
}

func (t *Tracker) ValidateStake(pool common.Address, typed string) (staking.ValidatedAmount, error) {
	lp, ok := t.reader.LiquidityToken(pool)
	if !ok {
		return staking.ValidatedAmount{}, fmt.Errorf("%w: %s", ErrUnknownPool, pool.Hex())
	}
	free, _ := t.FreeBalance(pool)
	return staking.DerivedStakeInfo(t.AccountBound(), typed, lp, free), nil
}

func (t *Tracker) ValidateUnstake(pool common.Address, typed string) (staking.ValidatedAmount, error) {
	if _, ok := t.reader.LiquidityToken(pool); !ok {
		return staking.ValidatedAmount{}, fmt.Errorf("%w: %s", ErrUnknownPool, pool.Hex())
	}
	position, ok := t.Position(pool)
	if !ok {
		return staking.ValidatedAmount{}, fmt.Errorf("%w: %s", ErrPositionNotReady, pool.Hex())
	}
	return staking.DerivedUnstakeInfo(t.AccountBound(), typed, position.StakedAmount), nil
}

// Events returns copies of the enrolled events taken under the lock
func (t *Tracker) Events() []*EnrolledEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rtn := make([]*EnrolledEvent, 0, len(t.enrolledEvents))
	for _, ev := range t.enrolledEvents {
		copied := *ev
		rtn = append(rtn, &copied)
	}
	return rtn
}

func (t *Tracker) isActive(ev *EnrolledEvent) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return ev.IsActive
}

func (t *Tracker) SetEventStatus(id uint, active bool) error {
	t.lg.Info().Uint("id", id).Bool("active", active).Msg("Changing event status")

	for _, ev := range t.enrolledEvents {
		if ev.Id == id {
			t.mu.Lock()
			ev.IsActive = active
			t.mu.Unlock()

			if t.stg != nil {
				if err := t.stg.UpdateEventIsActive(id, active); err != nil {
					return fmt.Errorf("UpdateEventIsActive 시 오류 발생. %w", err)
				}
			}
			t.lg.Info().Uint("id", id).Bool("active", active).Msg("Event status changed successfully")
			return nil
		}
	}
	return fmt.Errorf("%w. Id : %d", ErrUnknownEvent, id)
}

func (t *Tracker) LaunchEvent(id uint) error {
	t.lg.Info().Uint("id", id).Msg("Launching event")

	for _, ev := range t.enrolledEvents {
		if ev.Id == id {
			if !t.isActive(ev) {
				return fmt.Errorf("%w. Id : %d", ErrEventInactive, id)
			}
			ev.Event(Manual)
			t.lg.Info().Uint("id", id).Msg("Event launched successfully")
			return nil
		}
	}
	return fmt.Errorf("%w. Id : %d", ErrUnknownEvent, id)
}
