package models

import "time"

// AllocationView is the chart-ready allocation: labels in display order and
// their percentages rounded to 2 decimals.
type AllocationView struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Mover is a holding ranked by P/L%.
type Mover struct {
	Symbol    string  `json:"symbol"`
	PLPercent float64 `json:"pl_percent"`
}

// Movers holds the top gainers (descending) and losers (ascending).
type Movers struct {
	Gainers []Mover `json:"gainers"`
	Losers  []Mover `json:"losers"`
}

// TrendPoint is one month of the synthetic trend series.
type TrendPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PerformanceBars is the chart-ready P/L% bar data.
type PerformanceBars struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// HoldingRow is one row of the holdings table.
type HoldingRow struct {
	Holding
	Invested  float64 `json:"invested"`
	Value     float64 `json:"value"`
	PLPercent float64 `json:"pl_percent"`
}

// Dashboard is the published result of one refresh cycle.
type Dashboard struct {
	Cycle       uint64          `json:"cycle"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     *Summary        `json:"summary"` // nil renders placeholders
	RiskRating  string          `json:"risk_rating"`
	Holdings    []HoldingRow    `json:"holdings"`
	Movers      Movers          `json:"movers"`
	Suggestions []string        `json:"suggestions"`
	Allocation  AllocationView  `json:"allocation"`
	Trend       []TrendPoint    `json:"trend"`
	Performance PerformanceBars `json:"performance"`
}
