package charts

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/vire-dash/internal/common"
)

// Kind names one of the dashboard's chart slots.
type Kind string

const (
	KindAllocation  Kind = "allocation"
	KindTrend       Kind = "trend"
	KindPerformance Kind = "performance"
)

// Kinds lists every chart kind in render order.
var Kinds = []Kind{KindAllocation, KindTrend, KindPerformance}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// MountID returns the fixed identifier of the kind's mount point.
func (k Kind) MountID() string {
	switch k {
	case KindAllocation:
		return "pieChart"
	case KindTrend:
		return "lineChart"
	case KindPerformance:
		return "barChart"
	}
	return ""
}

// ChartType is the drawing style of a chart.
type ChartType string

const (
	TypeDoughnut ChartType = "doughnut"
	TypeLine     ChartType = "line"
	TypeBar      ChartType = "bar"
)

// Options is the fixed style configuration for one chart kind.
type Options struct {
	Type       ChartType
	Title      string
	SeriesName string
	Width      int
	Height     int

	// Doughnut
	Palette []drawing.Color
	Cutout  float64 // inner radius as a fraction of the outer radius

	// Line
	LineColor drawing.Color
	FillColor drawing.Color

	// Bar
	PositiveColor drawing.Color
	NegativeColor drawing.Color

	ValueFormatter func(v float64) string
}

var allocationPalette = []drawing.Color{
	drawing.ColorFromHex("4e79a7"),
	drawing.ColorFromHex("f28e2b"),
	drawing.ColorFromHex("e15759"),
	drawing.ColorFromHex("76b7b2"),
	drawing.ColorFromHex("59a14f"),
	drawing.ColorFromHex("edc948"),
	drawing.ColorFromHex("af7aa1"),
	drawing.ColorFromHex("ff9da7"),
}

// DefaultOptions returns the style configuration for kind. Money values on
// the trend axis are shown in currency.
func DefaultOptions(kind Kind, currency string) Options {
	switch kind {
	case KindAllocation:
		return Options{
			Type:    TypeDoughnut,
			Title:   "Allocation",
			Width:   520,
			Height:  440,
			Palette: allocationPalette,
			Cutout:  0.55,
		}
	case KindTrend:
		return Options{
			Type:       TypeLine,
			Title:      "Portfolio Trend (simulated)",
			SeriesName: "Portfolio value",
			Width:      900,
			Height:     360,
			LineColor:  drawing.Color{R: 15, G: 125, B: 255, A: 230},
			FillColor:  drawing.Color{R: 15, G: 125, B: 255, A: 31},
			ValueFormatter: func(v float64) string {
				return common.FormatMoney(v, currency)
			},
		}
	case KindPerformance:
		return Options{
			Type:          TypeBar,
			Title:         "Performance (P/L %)",
			SeriesName:    "P/L %",
			Width:         900,
			Height:        360,
			PositiveColor: drawing.Color{R: 16, G: 185, B: 129, A: 204},
			NegativeColor: drawing.Color{R: 239, G: 68, B: 68, A: 217},
			ValueFormatter: func(v float64) string {
				return fmt.Sprintf("%.1f%%", v)
			},
		}
	}
	return Options{}
}
