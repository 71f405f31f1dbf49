package app

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/vire-dash/internal/models"
	"github.com/bobmcallan/vire-dash/internal/services/trend"
)

func TestBuildDashboard_OverflowingHoldingStaysEncodable(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "BIG", Quantity: 1e200, BuyPrice: 1, CurrentPrice: 1e200},
		{Symbol: "ABC", Quantity: 10, BuyPrice: 100, CurrentPrice: 120},
	}

	d := BuildDashboard(1, fixedNow, nil, holdings, trend.NewSyntheticGenerator())

	require.Len(t, d.Movers.Gainers, 1)
	assert.Equal(t, "ABC", d.Movers.Gainers[0].Symbol)
	assert.Equal(t, []string{"ABC"}, d.Performance.Labels)
	assert.Zero(t, d.Holdings[0].Value)
	for _, p := range d.Trend {
		assert.False(t, math.IsInf(p.Value, 0) || math.IsNaN(p.Value), "trend %s", p.Label)
	}

	_, err := json.Marshal(d)
	assert.NoError(t, err)
}

func TestDashboardStore_PublishAndLatest(t *testing.T) {
	s := NewDashboardStore()
	assert.Nil(t, s.Latest())

	d := &models.Dashboard{Cycle: 7}
	s.Publish(d)
	assert.Same(t, d, s.Latest())
}
