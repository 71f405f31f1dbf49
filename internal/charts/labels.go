package charts

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/vire-dash/internal/common"
)

const (
	// LabelPluginID identifies the doughnut label plugin in an engine registry.
	LabelPluginID = "doughnutLabelPlugin"

	// LabelOffset is the distance in pixels between a slice's outer edge and
	// its label anchor.
	LabelOffset = 22.0
)

// Label is the placement of one slice's percentage label.
type Label struct {
	Index   int
	Percent float64
	Text    string
	Angle   float64
	EdgeX   float64
	EdgeY   float64
	X       float64
	Y       float64
}

// DoughnutLabels draws each positive slice's share of the total outside the
// ring, joined to the slice by a short connector line.
type DoughnutLabels struct {
	ConnectorColor drawing.Color
	OutlineColor   drawing.Color
	TextColor      drawing.Color
	FontSize       float64
	OutlineWidth   int
}

// NewDoughnutLabels returns the plugin with the dashboard's label style.
func NewDoughnutLabels() *DoughnutLabels {
	return &DoughnutLabels{
		ConnectorColor: drawing.Color{R: 0, G: 0, B: 0, A: 64},
		OutlineColor:   drawing.ColorWhite,
		TextColor:      drawing.ColorFromHex("222222"),
		FontSize:       11,
		OutlineWidth:   2,
	}
}

// ID implements Plugin.
func (p *DoughnutLabels) ID() string { return LabelPluginID }

// Layout computes label placements without drawing. Non-finite values count
// as zero toward the total, and slices with a value <= 0 get no label.
func (p *DoughnutLabels) Layout(arcs []Arc, values []float64) []Label {
	total := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			total += v
		}
	}
	if total == 0 {
		total = 1
	}

	var labels []Label
	for i, arc := range arcs {
		if i >= len(values) {
			break
		}
		v := values[i]
		if !(v > 0) || math.IsInf(v, 0) {
			continue
		}

		pct := v / total * 100
		angle := (arc.StartAngle + arc.EndAngle) / 2
		cos, sin := math.Cos(angle), math.Sin(angle)
		r := arc.OuterRadius + LabelOffset

		labels = append(labels, Label{
			Index:   i,
			Percent: pct,
			Text:    common.FormatFixed(pct, 1) + "%",
			Angle:   angle,
			EdgeX:   arc.CenterX + cos*arc.OuterRadius,
			EdgeY:   arc.CenterY + sin*arc.OuterRadius,
			X:       arc.CenterX + cos*r,
			Y:       arc.CenterY + sin*r,
		})
	}
	return labels
}

// AfterDraw implements Plugin.
func (p *DoughnutLabels) AfterDraw(c Canvas, arcs []Arc, values []float64) {
	for _, l := range p.Layout(arcs, values) {
		c.SetStrokeColor(p.ConnectorColor)
		c.SetStrokeWidth(1)
		c.MoveTo(round(l.EdgeX), round(l.EdgeY))
		c.LineTo(round(l.X), round(l.Y))
		c.Stroke()

		c.SetFontSize(p.FontSize)
		box := c.MeasureText(l.Text)
		tx := round(l.X) - box.Width()/2
		ty := round(l.Y) + box.Height()/2

		c.SetFontColor(p.OutlineColor)
		for _, off := range outlineOffsets(p.OutlineWidth) {
			c.Text(l.Text, tx+off[0], ty+off[1])
		}
		c.SetFontColor(p.TextColor)
		c.Text(l.Text, tx, ty)
	}
}

// outlineOffsets returns the eight neighbours at distance w.
func outlineOffsets(w int) [][2]int {
	if w <= 0 {
		return nil
	}
	return [][2]int{
		{-w, -w}, {0, -w}, {w, -w},
		{-w, 0}, {w, 0},
		{-w, w}, {0, w}, {w, w},
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
