// Package metrics exposes Prometheus metrics of the position tracker.
package metrics

import (
	"icequeen/blockchain/staking"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Refresh metrics
	RefreshTotal    *prometheus.CounterVec
	RefreshDuration prometheus.Histogram
	LastRefresh     prometheus.Gauge

	// Aggregation metrics
	PoolsOmitted    *prometheus.CounterVec
	PositionsValued prometheus.Gauge

	// Valuation per pool, in whole native tokens
	TotalStakedInNative *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// NewMetrics registers every metric on reg. A nil reg means the default registry.
func NewMetrics(namespace string, reg *prometheus.Registry) *Metrics {
	if namespace == "" {
		namespace = "icequeen"
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg != nil {
		registerer = reg
		gatherer = reg
	}
	factory := promauto.With(registerer)

	return &Metrics{
		RefreshTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "refresh_total",
			Help:      "Total number of snapshot refreshes by result",
		}, []string{"result"}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a snapshot refresh including chain reads",
			Buckets:   prometheus.DefBuckets,
		}),
		LastRefresh: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "last_refresh_timestamp_seconds",
			Help:      "Unix time of the last completed refresh",
		}),
		PoolsOmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "pools_omitted_total",
			Help:      "Pools left out of a recomputation, by pool and reason",
		}, []string{"pool", "reason"}),
		PositionsValued: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "positions",
			Help:      "Number of positions produced by the last recomputation",
		}),
		TotalStakedInNative: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "aggregator",
			Name:      "total_staked_in_native",
			Help:      "Value of all LP tokens staked in a pool, in native tokens",
		}, []string{"pool"}),
		gatherer: gatherer,
	}
}

// RecordOmission satisfies staking.OmissionRecorder
func (m *Metrics) RecordOmission(pool common.Address, reason staking.OmissionReason) {
	m.PoolsOmitted.WithLabelValues(pool.Hex(), string(reason)).Inc()
}

func (m *Metrics) ObserveRefresh(start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.RefreshTotal.WithLabelValues(result).Inc()
	m.RefreshDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		m.LastRefresh.Set(float64(time.Now().Unix()))
	}
}

// ObservePositions updates the gauges from a recomputation.
// Float conversion is for display only; no value flows back into the valuation.
func (m *Metrics) ObservePositions(positions []staking.StakingPosition) {
	m.PositionsValued.Set(float64(len(positions)))
	for _, p := range positions {
		f, _ := p.TotalStakedInNative.Decimal().Float64()
		m.TotalStakedInNative.WithLabelValues(p.StakingRewardAddress.Hex()).Set(f)
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
