// Package charts owns the dashboard's chart instances: the engine that turns
// labels and data into images, the doughnut label hook and the lifecycle
// manager holding one live instance per chart kind.
package charts

import (
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Engine creates and destroys chart instances.
type Engine interface {
	Create(kind Kind, labels []string, data []float64, opts Options) (*Instance, error)
	Destroy(inst *Instance)
}

// Instance is one rendered chart.
type Instance struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Labels      []string  `json:"labels"`
	Data        []float64 `json:"data"`
	Image       []byte    `json:"-"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
	Destroyed   bool      `json:"destroyed"`
}

// Arc describes one drawn slice of a proportion chart. Angles are radians,
// measured clockwise from 3 o'clock in screen coordinates.
type Arc struct {
	CenterX     float64
	CenterY     float64
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
}

// Canvas is the drawing surface handed to plugins. go-chart's Renderer
// satisfies it.
type Canvas interface {
	SetStrokeColor(c drawing.Color)
	SetStrokeWidth(width float64)
	SetFontColor(c drawing.Color)
	SetFontSize(size float64)
	MoveTo(x, y int)
	LineTo(x, y int)
	Stroke()
	Text(body string, x, y int)
	MeasureText(body string) chart.Box
}

// Plugin runs after a proportion chart has drawn its arcs. It must only add
// to the drawing and must not keep state between calls.
type Plugin interface {
	ID() string
	AfterDraw(c Canvas, arcs []Arc, values []float64)
}
