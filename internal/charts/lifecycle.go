package charts

import (
	"fmt"
	"math"
	"sync"

	"github.com/bobmcallan/vire-dash/internal/common"
)

// State holds at most one live instance per chart kind.
type State struct {
	Allocation  *Instance
	Trend       *Instance
	Performance *Instance
}

// Get returns the live instance for kind, or nil.
func (s State) Get(kind Kind) *Instance {
	switch kind {
	case KindAllocation:
		return s.Allocation
	case KindTrend:
		return s.Trend
	case KindPerformance:
		return s.Performance
	}
	return nil
}

// With returns a copy of s with kind's slot set to inst.
func (s State) With(kind Kind, inst *Instance) State {
	switch kind {
	case KindAllocation:
		s.Allocation = inst
	case KindTrend:
		s.Trend = inst
	case KindPerformance:
		s.Performance = inst
	}
	return s
}

// Live counts the non-nil slots.
func (s State) Live() int {
	n := 0
	for _, k := range Kinds {
		if s.Get(k) != nil {
			n++
		}
	}
	return n
}

// Manager replaces chart instances so that each kind has at most one live
// instance, and the previous one is destroyed before its successor exists.
type Manager struct {
	mu       sync.RWMutex
	engine   Engine
	mounts   map[string]bool
	currency string
	state    State
	logger   *common.Logger
}

// NewManager creates a manager drawing on the given mount points.
func NewManager(engine Engine, mounts []string, currency string, logger *common.Logger) *Manager {
	m := &Manager{
		engine:   engine,
		mounts:   make(map[string]bool, len(mounts)),
		currency: currency,
		logger:   logger,
	}
	for _, id := range mounts {
		m.mounts[id] = true
	}
	return m
}

// Mounted reports whether kind has a rendering surface.
func (m *Manager) Mounted(kind Kind) bool {
	return m.mounts[kind.MountID()]
}

// Render replaces kind's instance with one built from labels and data. A
// missing mount point or an empty label list leaves the current instance in
// place.
func (m *Manager) Render(kind Kind, labels []string, data []float64) error {
	if !m.Mounted(kind) {
		m.logger.Debug().Str("kind", string(kind)).Msg("No mount point, chart skipped")
		return nil
	}
	if len(labels) == 0 {
		m.logger.Debug().Str("kind", string(kind)).Msg("No labels, chart skipped")
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := rebuild(m.engine, m.state, kind, labels, data, DefaultOptions(kind, m.currency))
	m.state = state
	if err != nil {
		return err
	}

	m.logger.Debug().Str("kind", string(kind)).Str("id", state.Get(kind).ID).Int("points", len(data)).Msg("Chart rendered")
	return nil
}

// rebuild destroys the live instance for kind, if any, and creates its
// replacement. On failure the slot is left empty.
func rebuild(engine Engine, state State, kind Kind, labels []string, data []float64, opts Options) (State, error) {
	if prev := state.Get(kind); prev != nil {
		engine.Destroy(prev)
		state = state.With(kind, nil)
	}

	if kind == KindAllocation {
		labels = LegendLabels(labels, data)
	}

	inst, err := engine.Create(kind, labels, data, opts)
	if err != nil {
		return state, fmt.Errorf("create %s chart: %w", kind, err)
	}
	return state.With(kind, inst), nil
}

// LegendLabels appends each slice's share to its label, e.g. "ABC (40.0%)".
func LegendLabels(labels []string, data []float64) []string {
	total := 0.0
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			total += v
		}
	}
	if total == 0 {
		total = 1
	}

	out := make([]string, len(labels))
	for i, label := range labels {
		v := 0.0
		if i < len(data) && !math.IsNaN(data[i]) && !math.IsInf(data[i], 0) {
			v = data[i]
		}
		out[i] = fmt.Sprintf("%s (%s%%)", label, common.FormatFixed(v/total*100, 1))
	}
	return out
}

// State returns a copy of the current slots.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Live returns kind's live instance, or nil.
func (m *Manager) Live(kind Kind) *Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Get(kind)
}

// Image returns the rendered image of kind's live instance.
func (m *Manager) Image(kind Kind) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst := m.state.Get(kind)
	if inst == nil || len(inst.Image) == 0 {
		return nil, "", false
	}
	return inst.Image, inst.ContentType, true
}

// Close destroys every live instance.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range Kinds {
		if inst := m.state.Get(k); inst != nil {
			m.engine.Destroy(inst)
		}
	}
	m.state = State{}
}
