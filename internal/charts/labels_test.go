package charts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type textCall struct {
	body  string
	x, y  int
	color drawing.Color
}

type fakeCanvas struct {
	fontColor drawing.Color
	texts     []textCall
	lines     int
	strokes   int
}

func (c *fakeCanvas) SetStrokeColor(drawing.Color) {}
func (c *fakeCanvas) SetStrokeWidth(float64)       {}
func (c *fakeCanvas) SetFontColor(col drawing.Color) {
	c.fontColor = col
}
func (c *fakeCanvas) SetFontSize(float64) {}
func (c *fakeCanvas) MoveTo(x, y int)     {}
func (c *fakeCanvas) LineTo(x, y int)     { c.lines++ }
func (c *fakeCanvas) Stroke()             { c.strokes++ }
func (c *fakeCanvas) Text(body string, x, y int) {
	c.texts = append(c.texts, textCall{body: body, x: x, y: y, color: c.fontColor})
}
func (c *fakeCanvas) MeasureText(body string) chart.Box {
	return chart.Box{Right: 6 * len(body), Bottom: 10}
}

func (c *fakeCanvas) filled(p *DoughnutLabels) []textCall {
	var out []textCall
	for _, t := range c.texts {
		if t.color == p.TextColor {
			out = append(out, t)
		}
	}
	return out
}

func ring(values []float64) []Arc {
	box := chart.Box{Top: 0, Left: 0, Right: 200, Bottom: 200}
	return doughnutArcs(box, values, 0.55)
}

func TestDoughnutLabels_Layout(t *testing.T) {
	p := NewDoughnutLabels()
	values := []float64{70, 30}
	arcs := ring(values)

	labels := p.Layout(arcs, values)
	require.Len(t, labels, 2)
	assert.Equal(t, "70.0%", labels[0].Text)
	assert.Equal(t, "30.0%", labels[1].Text)

	for _, l := range labels {
		arc := arcs[l.Index]
		dist := math.Hypot(l.X-arc.CenterX, l.Y-arc.CenterY)
		assert.InDelta(t, arc.OuterRadius+LabelOffset, dist, 1e-9)
		assert.Greater(t, dist, arc.OuterRadius)

		edge := math.Hypot(l.EdgeX-arc.CenterX, l.EdgeY-arc.CenterY)
		assert.InDelta(t, arc.OuterRadius, edge, 1e-9)
		assert.InDelta(t, (arc.StartAngle+arc.EndAngle)/2, l.Angle, 1e-12)
	}
}

func TestDoughnutLabels_AfterDraw(t *testing.T) {
	p := NewDoughnutLabels()
	values := []float64{70, 30}
	c := &fakeCanvas{}

	p.AfterDraw(c, ring(values), values)

	filled := c.filled(p)
	require.Len(t, filled, 2)
	assert.Equal(t, "70.0%", filled[0].body)
	assert.Equal(t, "30.0%", filled[1].body)
	assert.Len(t, c.texts, 2*9, "eight outline passes plus the fill per label")
	assert.Equal(t, 2, c.lines)
	assert.Equal(t, 2, c.strokes)
}

func TestDoughnutLabels_SkipsNonPositive(t *testing.T) {
	p := NewDoughnutLabels()
	values := []float64{0, 50, -5, math.NaN(), 50}

	labels := p.Layout(ring(values), values)
	require.Len(t, labels, 2)
	assert.Equal(t, 1, labels[0].Index)
	assert.Equal(t, 4, labels[1].Index)
	// -5 still counts toward the total
	assert.InDelta(t, 50.0/95.0*100, labels[0].Percent, 1e-9)
}

func TestDoughnutLabels_SingleSlice(t *testing.T) {
	p := NewDoughnutLabels()
	values := []float64{42}

	labels := p.Layout(ring(values), values)
	require.Len(t, labels, 1)
	assert.Equal(t, "100.0%", labels[0].Text)
	assert.InDelta(t, math.Pi, labels[0].Angle, 1e-12)
}

func TestDoughnutLabels_Empty(t *testing.T) {
	p := NewDoughnutLabels()
	c := &fakeCanvas{}

	p.AfterDraw(c, nil, nil)
	p.AfterDraw(c, ring([]float64{0, 0}), []float64{0, 0})

	assert.Empty(t, c.texts)
	assert.Zero(t, c.lines)
}

func TestDoughnutLabels_DoesNotMutateInput(t *testing.T) {
	p := NewDoughnutLabels()
	values := []float64{70, 30}
	arcs := ring(values)
	arcsBefore := append([]Arc(nil), arcs...)

	p.AfterDraw(&fakeCanvas{}, arcs, values)

	assert.Equal(t, []float64{70, 30}, values)
	assert.Equal(t, arcsBefore, arcs)
}

func TestDoughnutArcs_Geometry(t *testing.T) {
	box := chart.Box{Top: 10, Left: 20, Right: 220, Bottom: 160}
	arcs := doughnutArcs(box, []float64{1, 3}, 0.5)

	require.Len(t, arcs, 2)
	assert.Equal(t, 120.0, arcs[0].CenterX)
	assert.Equal(t, 85.0, arcs[0].CenterY)
	assert.Equal(t, 75.0, arcs[0].OuterRadius)
	assert.Equal(t, 37.5, arcs[0].InnerRadius)
	assert.InDelta(t, math.Pi/2, arcs[0].EndAngle, 1e-12)
	assert.InDelta(t, 2*math.Pi, arcs[1].EndAngle, 1e-12)
}
