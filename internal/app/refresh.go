package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/vire-dash/internal/charts"
	"github.com/bobmcallan/vire-dash/internal/common"
	"github.com/bobmcallan/vire-dash/internal/interfaces"
	"github.com/bobmcallan/vire-dash/internal/models"
)

// Refresher runs refresh cycles: fetch summary and holdings, derive the
// dashboard, render the charts and publish the view.
type Refresher struct {
	source    interfaces.PortfolioSource
	charts    interfaces.ChartRenderer
	trend     interfaces.TrendSource
	publisher interfaces.DashboardPublisher
	logger    *common.Logger

	interval     time.Duration
	discardStale bool
	now          func() time.Time

	seq      atomic.Uint64
	applyMu  sync.Mutex
	applied  uint64
	inflight sync.WaitGroup
	trigger  chan struct{}
}

// RefresherOption configures the refresher
type RefresherOption func(*Refresher)

// WithInterval sets the tick interval. Values <= 0 keep the default.
func WithInterval(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithDiscardStale drops results of cycles superseded by a later applied cycle.
func WithDiscardStale(discard bool) RefresherOption {
	return func(r *Refresher) {
		r.discardStale = discard
	}
}

// WithClock sets the time source used for the trend and cycle timestamps.
func WithClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.now = now
	}
}

// NewRefresher creates a refresher. It does nothing until Start or RunCycle.
func NewRefresher(source interfaces.PortfolioSource, renderer interfaces.ChartRenderer, trend interfaces.TrendSource, publisher interfaces.DashboardPublisher, logger *common.Logger, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		source:    source,
		charts:    renderer,
		trend:     trend,
		publisher: publisher,
		logger:    logger,
		interval:  common.RefreshInterval,
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunCycle performs one complete refresh. Failures never escape: fetch
// errors fall back to defaults and anything else is logged.
func (r *Refresher) RunCycle(ctx context.Context) {
	seq := r.seq.Add(1)
	ctx = common.WithCorrelationID(ctx, uuid.New().String())

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Uint64("cycle", seq).
				Str("panic", fmt.Sprintf("%v", rec)).
				Str("stack", string(debug.Stack())).
				Msg("Refresh cycle failed")
		}
	}()

	start := time.Now()
	summary, holdings := r.fetch(ctx, seq)
	if !r.apply(seq, summary, holdings) {
		return
	}

	r.logger.Info().
		Uint64("cycle", seq).
		Int("holdings", len(holdings)).
		Bool("summary", summary != nil).
		Dur("elapsed", time.Since(start)).
		Msg("Refresh cycle complete")
}

// fetch issues both reads concurrently and waits for both to settle.
func (r *Refresher) fetch(ctx context.Context, seq uint64) (*models.Summary, []models.Holding) {
	var (
		wg       sync.WaitGroup
		summary  *models.Summary
		holdings []models.Holding
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		defer r.recoverFetch(seq, "summary")
		s, err := r.source.GetSummary(ctx)
		if err != nil {
			r.logger.Warn().Err(err).Uint64("cycle", seq).Msg("Summary fetch failed, using no summary")
			return
		}
		summary = s
	}()
	go func() {
		defer wg.Done()
		defer r.recoverFetch(seq, "portfolio")
		p, err := r.source.GetPortfolio(ctx)
		if err != nil {
			r.logger.Warn().Err(err).Uint64("cycle", seq).Msg("Portfolio fetch failed, using empty holdings")
			return
		}
		if p != nil {
			holdings = p.Stocks
		}
	}()
	wg.Wait()

	return summary, holdings
}

func (r *Refresher) recoverFetch(seq uint64, what string) {
	if rec := recover(); rec != nil {
		r.logger.Error().Uint64("cycle", seq).Str("request", what).Str("panic", fmt.Sprintf("%v", rec)).Msg("Fetch panicked, using default")
	}
}

// apply builds the view, renders the charts and publishes. Only one cycle
// applies at a time. It reports false when the cycle was discarded as stale.
func (r *Refresher) apply(seq uint64, summary *models.Summary, holdings []models.Holding) bool {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()

	if r.discardStale && seq < r.applied {
		r.logger.Info().Uint64("cycle", seq).Uint64("applied", r.applied).Msg("Stale refresh cycle discarded")
		return false
	}

	d := BuildDashboard(seq, r.now(), summary, holdings, r.trend)
	r.renderCharts(seq, d)
	r.publisher.Publish(d)

	if seq > r.applied {
		r.applied = seq
	}
	return true
}

func (r *Refresher) renderCharts(seq uint64, d *models.Dashboard) {
	trendLabels := make([]string, len(d.Trend))
	trendValues := make([]float64, len(d.Trend))
	for i, p := range d.Trend {
		trendLabels[i] = p.Label
		trendValues[i] = p.Value
	}

	jobs := []struct {
		kind   charts.Kind
		labels []string
		data   []float64
	}{
		{charts.KindAllocation, sanitizeLabels(d.Allocation.Labels), d.Allocation.Values},
		{charts.KindTrend, trendLabels, trendValues},
		{charts.KindPerformance, sanitizeLabels(d.Performance.Labels), d.Performance.Values},
	}
	for _, j := range jobs {
		if err := r.charts.Render(j.kind, j.labels, j.data); err != nil {
			r.logger.Warn().Err(err).Uint64("cycle", seq).Str("kind", string(j.kind)).Msg("Chart render failed")
		}
	}
}

// sanitizeLabels returns a cleaned copy of symbol labels for drawing.
func sanitizeLabels(labels []string) []string {
	if labels == nil {
		return nil
	}
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = common.Sanitize(l)
	}
	return out
}

// Applied returns the sequence number of the latest applied cycle.
func (r *Refresher) Applied() uint64 {
	r.applyMu.Lock()
	defer r.applyMu.Unlock()
	return r.applied
}
