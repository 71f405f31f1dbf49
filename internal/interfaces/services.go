package interfaces

import (
	"time"

	"github.com/bobmcallan/vire-dash/internal/charts"
	"github.com/bobmcallan/vire-dash/internal/models"
)

// TrendSource produces the monthly value series for the trend chart
type TrendSource interface {
	// Series returns the points for the months ending at now, earliest first
	Series(holdings []models.Holding, now time.Time) []models.TrendPoint
}

// ChartRenderer replaces the live chart of a kind
type ChartRenderer interface {
	Render(kind charts.Kind, labels []string, data []float64) error
}

// ChartImages serves the rendered image of each live chart
type ChartImages interface {
	Image(kind charts.Kind) ([]byte, string, bool)
}

// DashboardPublisher receives the view built by each refresh cycle
type DashboardPublisher interface {
	Publish(d *models.Dashboard)
}

// DashboardReader returns the most recently published view, or nil
type DashboardReader interface {
	Latest() *models.Dashboard
}

// RefreshTrigger requests an out-of-band refresh cycle
type RefreshTrigger interface {
	Trigger()
}
