package models

// Summary is the server-computed portfolio summary. A nil *Summary means the
// summary was absent or its fetch failed.
type Summary struct {
	TotalInvested     float64     `json:"total_invested"`
	CurrentValue      float64     `json:"current_value"`
	Unrealized        float64     `json:"unrealized"`
	UnrealizedPercent float64     `json:"unrealized_percent"`
	Volatility        *float64    `json:"volatility,omitempty"`
	RiskRating        string      `json:"risk_rating,omitempty"`
	Allocation        *Allocation `json:"allocation,omitempty"` // nil when the server sent none
	Suggestions       []string    `json:"suggestions,omitempty"`
}

// Allocation is a server-provided symbol -> percent mapping that keeps the
// key order of the response body.
type Allocation struct {
	Entries []AllocationEntry `json:"entries"`
}

// AllocationEntry is one symbol's share of the portfolio, in percent.
type AllocationEntry struct {
	Symbol  string  `json:"symbol"`
	Percent float64 `json:"percent"`
}

// Len returns the number of entries.
func (a *Allocation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Entries)
}
