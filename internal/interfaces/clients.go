// Package interfaces defines service contracts for the Vire dashboard
package interfaces

import (
	"context"

	"github.com/bobmcallan/vire-dash/internal/models"
)

// PortfolioSource provides access to the portfolio API the dashboard reads from
type PortfolioSource interface {
	// GetSummary retrieves the server-computed summary. A nil summary with a
	// nil error means the server reported none.
	GetSummary(ctx context.Context) (*models.Summary, error)

	// GetPortfolio retrieves the raw holdings
	GetPortfolio(ctx context.Context) (*models.Portfolio, error)

	// DeleteHolding removes the holding with the given symbol
	DeleteHolding(ctx context.Context, symbol string) error
}
