// Package trend produces the portfolio value series shown on the trend chart.
//
// There is no price history behind the dashboard yet, so SyntheticGenerator
// fabricates a deterministic placeholder series seeded from the current
// holdings. It is not historical data. Swap in another interfaces.TrendSource
// once real history exists.
package trend

import (
	"math"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/bobmcallan/vire-dash/internal/models"
)

const (
	DefaultMonths       = 12
	DefaultFallbackBase = 20000.0
	LabelLayout         = "Jan 06"
)

// SyntheticGenerator builds a placeholder monthly series.
type SyntheticGenerator struct {
	Months       int
	FallbackBase float64
}

// NewSyntheticGenerator returns a generator for 12 months with a 20000 base
// fallback.
func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{Months: DefaultMonths, FallbackBase: DefaultFallbackBase}
}

// Series returns Months points ending at now's month, earliest first. The
// result depends only on the holdings and on now's year and month.
func (g *SyntheticGenerator) Series(holdings []models.Holding, now time.Time) []models.TrendPoint {
	months := g.Months
	if months <= 0 {
		return nil
	}

	base := 0.0
	for _, h := range holdings {
		base += h.Value()
	}
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		base = g.FallbackBase
	}

	var seedBase int
	for _, h := range holdings {
		seedBase += firstCharCode(h.Symbol)
	}

	labels := MonthLabels(now, months)
	points := make([]models.TrendPoint, months)
	cur := base
	for i := 0; i < months; i++ {
		seed := float64(seedBase + i*7)
		noise := math.Sin(seed*0.13+float64(i)*0.5) * 0.02
		cur = math.Round(math.Max(0, cur*(1+noise)))
		points[i] = models.TrendPoint{Label: labels[i], Value: cur}
	}
	return points
}

// MonthLabels returns n "Jan 06" labels ending at now's month, earliest first.
func MonthLabels(now time.Time, n int) []string {
	out := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		d := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		out = append(out, d.Format(LabelLayout))
	}
	return out
}

// firstCharCode returns the first UTF-16 code unit of s, or 0 when s is empty.
func firstCharCode(s string) int {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r > 0xFFFF {
		hi, _ := utf16.EncodeRune(r)
		return int(hi)
	}
	return int(r)
}
