package app

import (
	"math"
	"sync"
	"time"

	"github.com/bobmcallan/vire-dash/internal/interfaces"
	"github.com/bobmcallan/vire-dash/internal/models"
	"github.com/bobmcallan/vire-dash/internal/services/metrics"
)

// BuildDashboard derives the full view for one cycle from the fetched
// summary and holdings. summary may be nil.
func BuildDashboard(cycle uint64, now time.Time, summary *models.Summary, holdings []models.Holding, trend interfaces.TrendSource) *models.Dashboard {
	rows := make([]models.HoldingRow, len(holdings))
	for i, h := range holdings {
		d := metrics.Derive(h)
		rows[i] = models.HoldingRow{
			Holding:   h,
			Invested:  finite(d.Invested),
			Value:     finite(d.Value),
			PLPercent: finite(d.PLPercent),
		}
	}

	allocation := metrics.Allocation(holdings, summary)
	for i, v := range allocation.Values {
		allocation.Values[i] = finite(v)
	}

	series := trend.Series(holdings, now)
	for i := range series {
		series[i].Value = finite(series[i].Value)
	}

	var suggestions []string
	if summary != nil {
		suggestions = summary.Suggestions
	}

	return &models.Dashboard{
		Cycle:       cycle,
		GeneratedAt: now,
		Summary:     summary,
		RiskRating:  metrics.RiskRating(summary),
		Holdings:    rows,
		Movers:      metrics.TopMovers(holdings, metrics.DefaultMovers),
		Suggestions: suggestions,
		Allocation:  allocation,
		Trend:       series,
		Performance: metrics.PerformanceBars(holdings, metrics.DefaultBars),
	}
}

// finite maps NaN and ±Inf to 0 so the view stays JSON encodable.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DashboardStore keeps the most recently published dashboard.
type DashboardStore struct {
	mu     sync.RWMutex
	latest *models.Dashboard
}

// NewDashboardStore creates an empty store.
func NewDashboardStore() *DashboardStore {
	return &DashboardStore{}
}

// Publish implements interfaces.DashboardPublisher.
func (s *DashboardStore) Publish(d *models.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = d
}

// Latest implements interfaces.DashboardReader.
func (s *DashboardStore) Latest() *models.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}
