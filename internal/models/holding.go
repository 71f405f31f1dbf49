// Package models defines data structures for the Vire dashboard
package models

// Holding is one portfolio position as reported by the portfolio API.
// Numeric fields are already normalized (absent or malformed values are 0).
type Holding struct {
	Symbol       string  `json:"symbol"`
	Quantity     float64 `json:"quantity"`
	BuyPrice     float64 `json:"buy_price"`
	BuyDate      string  `json:"buy_date"`
	CurrentPrice float64 `json:"current_price"`
}

// Invested returns the cost basis (buy price x quantity).
func (h Holding) Invested() float64 {
	return h.BuyPrice * h.Quantity
}

// Value returns the current market value (current price x quantity).
func (h Holding) Value() float64 {
	return h.CurrentPrice * h.Quantity
}

// Portfolio is the holdings container returned by the portfolio endpoint.
type Portfolio struct {
	Stocks []Holding `json:"stocks"`
}

// DerivedHolding carries the per-holding numbers computed each cycle.
type DerivedHolding struct {
	Symbol    string  `json:"symbol"`
	Invested  float64 `json:"invested"`
	Value     float64 `json:"value"`
	PLPercent float64 `json:"pl_percent"`
}
