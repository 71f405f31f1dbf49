package charts

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	legendRowHeight = 18
	legendSwatch    = 10
	placeholderHex  = "d1d5db"
)

// GoChartEngine renders chart instances to PNG with go-chart. Plugins
// registered on it run after every doughnut draw.
type GoChartEngine struct {
	mu      sync.RWMutex
	plugins []Plugin
	now     func() time.Time
}

// NewGoChartEngine creates an engine with no plugins registered.
func NewGoChartEngine() *GoChartEngine {
	return &GoChartEngine{now: time.Now}
}

// Register adds p to the engine. Registering an ID twice is a no-op and
// returns false.
func (e *GoChartEngine) Register(p Plugin) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.plugins {
		if existing.ID() == p.ID() {
			return false
		}
	}
	e.plugins = append(e.plugins, p)
	return true
}

// Plugins returns the IDs of the registered plugins.
func (e *GoChartEngine) Plugins() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, len(e.plugins))
	for i, p := range e.plugins {
		ids[i] = p.ID()
	}
	return ids
}

func (e *GoChartEngine) registered() []Plugin {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Plugin(nil), e.plugins...)
}

// Create renders a new instance. The labels and data slices are copied.
func (e *GoChartEngine) Create(kind Kind, labels []string, data []float64, opts Options) (*Instance, error) {
	inst := &Instance{
		ID:          uuid.New().String(),
		Kind:        kind,
		Labels:      append([]string(nil), labels...),
		Data:        append([]float64(nil), data...),
		ContentType: "image/png",
		CreatedAt:   e.now(),
	}

	var (
		img []byte
		err error
	)
	switch opts.Type {
	case TypeDoughnut:
		img, err = e.renderDoughnut(inst.Labels, inst.Data, opts)
	case TypeLine:
		img, err = renderLine(inst.Labels, inst.Data, opts)
	case TypeBar:
		img, err = renderBar(inst.Labels, inst.Data, opts)
	default:
		return nil, fmt.Errorf("unsupported chart type %q", opts.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", kind, err)
	}

	inst.Image = img
	return inst, nil
}

// Destroy releases the instance's image. It is safe to call more than once.
func (e *GoChartEngine) Destroy(inst *Instance) {
	if inst == nil {
		return
	}
	inst.Image = nil
	inst.Destroyed = true
}

func (e *GoChartEngine) renderDoughnut(labels []string, data []float64, opts Options) ([]byte, error) {
	values := make([]chart.Value, 0, len(data))
	positive := false
	for i, v := range data {
		if v > 0 && !math.IsInf(v, 0) {
			positive = true
		} else {
			v = 0
		}
		values = append(values, chart.Value{
			Value: v,
			Style: chart.Style{
				FillColor:   paletteColor(opts.Palette, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if !positive {
		values = []chart.Value{{
			Value: 1,
			Style: chart.Style{FillColor: drawing.ColorFromHex(placeholderHex), StrokeColor: drawing.ColorWhite},
		}}
	}

	height := opts.Height + legendRowHeight*len(labels)
	pie := chart.PieChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   70,
				Right:  70,
				Bottom: 40 + legendRowHeight*len(labels),
			},
		},
		Values: values,
		Elements: []chart.Renderable{
			cutoutElement(opts.Cutout),
			e.afterDrawElement(data, opts.Cutout),
			legendElement(labels, opts.Palette),
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// doughnutArcs mirrors the slice geometry go-chart uses: arcs start at angle
// zero and advance clockwise by each value's share of the positive total.
func doughnutArcs(box chart.Box, data []float64, cutout float64) []Arc {
	cx, cy := box.Center()
	outer := float64(min(box.Width(), box.Height()) >> 1)

	total := 0.0
	for _, v := range data {
		if v > 0 && !math.IsInf(v, 0) {
			total += v
		}
	}

	arcs := make([]Arc, len(data))
	start := 0.0
	for i, v := range data {
		share := 0.0
		if total > 0 && v > 0 && !math.IsInf(v, 0) {
			share = v / total
		}
		end := start + share*2*math.Pi
		arcs[i] = Arc{
			CenterX:     float64(cx),
			CenterY:     float64(cy),
			InnerRadius: outer * cutout,
			OuterRadius: outer,
			StartAngle:  start,
			EndAngle:    end,
		}
		start = end
	}
	return arcs
}

func cutoutElement(fraction float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if fraction <= 0 {
			return
		}
		cx, cy := box.Center()
		inner := float64(min(box.Width(), box.Height())>>1) * fraction

		r.SetFillColor(drawing.ColorWhite)
		r.SetStrokeColor(drawing.ColorWhite)
		r.SetStrokeWidth(1)
		r.MoveTo(cx+int(inner), cy)
		r.ArcTo(cx, cy, inner, inner, 0, 2*math.Pi)
		r.Close()
		r.FillStroke()
	}
}

func (e *GoChartEngine) afterDrawElement(data []float64, cutout float64) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		plugins := e.registered()
		if len(plugins) == 0 {
			return
		}
		setFont(r, defaults)
		arcs := doughnutArcs(box, data, cutout)
		for _, p := range plugins {
			p.AfterDraw(r, arcs, data)
		}
	}
}

func legendElement(labels []string, palette []drawing.Color) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if len(labels) == 0 {
			return
		}
		setFont(r, defaults)
		r.SetFontSize(10)
		r.SetFontColor(drawing.ColorFromHex("374151"))

		x := box.Left
		y := box.Bottom + 36
		for i, label := range labels {
			top := y + i*legendRowHeight
			r.SetFillColor(paletteColor(palette, i))
			r.MoveTo(x, top)
			r.LineTo(x+legendSwatch, top)
			r.LineTo(x+legendSwatch, top+legendSwatch)
			r.LineTo(x, top+legendSwatch)
			r.Close()
			r.Fill()

			r.Text(label, x+legendSwatch+6, top+legendSwatch)
		}
	}
}

func setFont(r chart.Renderer, defaults chart.Style) {
	if defaults.Font != nil {
		r.SetFont(defaults.Font)
		return
	}
	if f, err := chart.GetDefaultFont(); err == nil {
		r.SetFont(f)
	}
}

func paletteColor(palette []drawing.Color, i int) drawing.Color {
	if len(palette) == 0 {
		return drawing.ColorFromHex(placeholderHex)
	}
	return palette[i%len(palette)]
}

func renderLine(labels []string, data []float64, opts Options) ([]byte, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("line chart needs at least two points, got %d", len(data))
	}

	xs := make([]float64, len(data))
	ticks := make([]chart.Tick, len(data))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, v := range data {
		xs[i] = float64(i)
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	yAxis := chart.YAxis{
		ValueFormatter: formatter(opts.ValueFormatter),
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.05, 1)
		yAxis.Range = &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    opts.SeriesName,
				XValues: xs,
				YValues: data,
				Style: chart.Style{
					StrokeColor: opts.LineColor,
					StrokeWidth: 2,
					FillColor:   opts.FillColor,
					DotColor:    opts.LineColor,
					DotWidth:    3,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderBar(labels []string, data []float64, opts Options) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("bar chart needs at least one value")
	}

	bars := make([]chart.Value, len(data))
	lo, hi := 0.0, 0.0
	for i, v := range data {
		fill := opts.PositiveColor
		if v < 0 {
			fill = opts.NegativeColor
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		bars[i] = chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		hi = 1
	}
	headroom := (hi - lo) * 0.1

	const barWidth, barSpacing = 40, 20
	width := max(opts.Width, 120+len(data)*(barWidth+barSpacing))

	bc := chart.BarChart{
		Title:  opts.Title,
		Width:  width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			ValueFormatter: formatter(opts.ValueFormatter),
			Range:          &chart.ContinuousRange{Min: lo - headroomBelow(lo, headroom), Max: hi + headroom},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func headroomBelow(lo, headroom float64) float64 {
	if lo < 0 {
		return headroom
	}
	return 0
}

func formatter(f func(float64) string) chart.ValueFormatter {
	if f == nil {
		return nil
	}
	return func(v interface{}) string {
		if n, ok := v.(float64); ok {
			return f(n)
		}
		return fmt.Sprintf("%v", v)
	}
}
