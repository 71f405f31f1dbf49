// Package metrics derives chart-ready numbers from raw holdings and the
// optional server summary. Every function here is pure.
package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/vire-dash/internal/models"
)

const (
	// DefaultMovers is the number of gainers and losers listed.
	DefaultMovers = 6
	// DefaultBars is the maximum number of bars on the performance chart.
	DefaultBars = 8
)

// Round2 rounds v to 2 decimal places. NaN and infinities are returned as-is.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PLPercent returns the unrealized profit/loss of h in percent of its cost.
// A zero cost basis yields 0.
func PLPercent(h models.Holding) float64 {
	invested := h.Invested()
	if invested == 0 {
		return 0
	}
	return (h.Value() - invested) / invested * 100
}

// Derive computes the per-holding metrics for h.
func Derive(h models.Holding) models.DerivedHolding {
	return models.DerivedHolding{
		Symbol:    h.Symbol,
		Invested:  h.Invested(),
		Value:     h.Value(),
		PLPercent: PLPercent(h),
	}
}

// DeriveAll derives every holding, preserving order.
func DeriveAll(holdings []models.Holding) []models.DerivedHolding {
	out := make([]models.DerivedHolding, len(holdings))
	for i, h := range holdings {
		out[i] = Derive(h)
	}
	return out
}

// Allocation returns each symbol's share of the portfolio in percent.
// A server-provided allocation wins (values rounded to 2 decimals, key order
// kept). Otherwise shares are computed from current value in holdings order,
// with a divisor of 1 when the total value is zero.
func Allocation(holdings []models.Holding, summary *models.Summary) models.AllocationView {
	if summary != nil && summary.Allocation != nil {
		entries := summary.Allocation.Entries
		view := models.AllocationView{
			Labels: make([]string, 0, len(entries)),
			Values: make([]float64, 0, len(entries)),
		}
		for _, e := range entries {
			view.Labels = append(view.Labels, e.Symbol)
			view.Values = append(view.Values, Round2(e.Percent))
		}
		return view
	}

	var total float64
	for _, h := range holdings {
		total += h.Value()
	}
	if total == 0 || math.IsNaN(total) {
		total = 1
	}

	view := models.AllocationView{
		Labels: make([]string, 0, len(holdings)),
		Values: make([]float64, 0, len(holdings)),
	}
	for _, h := range holdings {
		view.Labels = append(view.Labels, h.Symbol)
		view.Values = append(view.Values, Round2(h.Value()/total*100))
	}
	return view
}

// scored returns the holdings as movers, dropping any whose P/L% is NaN or
// infinite.
func scored(holdings []models.Holding) []models.Mover {
	out := make([]models.Mover, 0, len(holdings))
	for _, h := range holdings {
		pct := PLPercent(h)
		if !isFinite(pct) {
			continue
		}
		out = append(out, models.Mover{Symbol: h.Symbol, PLPercent: pct})
	}
	return out
}

// TopMovers ranks holdings by P/L%. Gainers are the holdings with a positive
// P/L% sorted descending, losers those with a negative P/L% sorted ascending.
// Both lists are truncated to k and keep input order on ties.
func TopMovers(holdings []models.Holding, k int) models.Movers {
	if k < 0 {
		k = 0
	}
	valid := scored(holdings)

	gainers := make([]models.Mover, 0, len(valid))
	losers := make([]models.Mover, 0, len(valid))
	for _, m := range valid {
		switch {
		case m.PLPercent > 0:
			gainers = append(gainers, m)
		case m.PLPercent < 0:
			losers = append(losers, m)
		}
	}

	sort.SliceStable(gainers, func(i, j int) bool {
		return gainers[i].PLPercent > gainers[j].PLPercent
	})
	sort.SliceStable(losers, func(i, j int) bool {
		return losers[i].PLPercent < losers[j].PLPercent
	})

	return models.Movers{
		Gainers: truncate(gainers, k),
		Losers:  truncate(losers, k),
	}
}

func truncate(ms []models.Mover, k int) []models.Mover {
	if len(ms) > k {
		return ms[:k]
	}
	return ms
}

// PerformanceBars selects up to limit holdings with the largest absolute
// P/L% (stable on ties) and returns their symbols and P/L% rounded to 2 decimals.
func PerformanceBars(holdings []models.Holding, limit int) models.PerformanceBars {
	valid := scored(holdings)
	sort.SliceStable(valid, func(i, j int) bool {
		return math.Abs(valid[i].PLPercent) > math.Abs(valid[j].PLPercent)
	})

	n := min(max(limit, 0), len(valid))
	bars := models.PerformanceBars{
		Labels: make([]string, 0, n),
		Values: make([]float64, 0, n),
	}
	for _, m := range valid[:n] {
		bars.Labels = append(bars.Labels, m.Symbol)
		bars.Values = append(bars.Values, Round2(m.PLPercent))
	}
	return bars
}

// RiskRating returns the server's rating when present, otherwise a rating
// derived from the reported volatility, otherwise "".
func RiskRating(summary *models.Summary) string {
	if summary == nil {
		return ""
	}
	if summary.RiskRating != "" {
		return summary.RiskRating
	}
	if summary.Volatility == nil || !isFinite(*summary.Volatility) {
		return ""
	}
	switch v := *summary.Volatility; {
	case v < 30:
		return "Low"
	case v < 60:
		return "Medium"
	default:
		return "High"
	}
}
