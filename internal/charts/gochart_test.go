package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type recordingPlugin struct {
	id     string
	calls  int
	arcs   []Arc
	values []float64
}

func (p *recordingPlugin) ID() string { return p.id }

func (p *recordingPlugin) AfterDraw(c Canvas, arcs []Arc, values []float64) {
	p.calls++
	p.arcs = arcs
	p.values = values
}

func TestGoChartEngine_RendersEveryKind(t *testing.T) {
	engine := NewGoChartEngine()
	engine.Register(NewDoughnutLabels())

	cases := []struct {
		kind   Kind
		labels []string
		data   []float64
	}{
		{KindAllocation, []string{"ABC (70.0%)", "XYZ (30.0%)"}, []float64{70, 30}},
		{KindTrend, []string{"Jan 26", "Feb 26", "Mar 26"}, []float64{1000, 1020, 990}},
		{KindPerformance, []string{"ABC", "XYZ"}, []float64{20, -12.5}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			inst, err := engine.Create(tc.kind, tc.labels, tc.data, DefaultOptions(tc.kind, "INR"))
			require.NoError(t, err)
			assert.NotEmpty(t, inst.ID)
			assert.Equal(t, "image/png", inst.ContentType)
			assert.True(t, bytes.HasPrefix(inst.Image, pngSignature))
		})
	}
}

func TestGoChartEngine_FlatSeries(t *testing.T) {
	engine := NewGoChartEngine()

	inst, err := engine.Create(KindTrend, []string{"a", "b"}, []float64{500, 500}, DefaultOptions(KindTrend, "USD"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(inst.Image, pngSignature))

	inst, err = engine.Create(KindPerformance, []string{"a"}, []float64{0}, DefaultOptions(KindPerformance, "USD"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(inst.Image, pngSignature))
}

func TestGoChartEngine_AllZeroDoughnut(t *testing.T) {
	engine := NewGoChartEngine()
	plugin := &recordingPlugin{id: "rec"}
	engine.Register(plugin)

	inst, err := engine.Create(KindAllocation, []string{"A", "B"}, []float64{0, 0}, DefaultOptions(KindAllocation, "INR"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(inst.Image, pngSignature))
	assert.Equal(t, []float64{0, 0}, plugin.values)
}

func TestGoChartEngine_RegisterIdempotent(t *testing.T) {
	engine := NewGoChartEngine()

	assert.True(t, engine.Register(NewDoughnutLabels()))
	assert.False(t, engine.Register(NewDoughnutLabels()))
	assert.Equal(t, []string{LabelPluginID}, engine.Plugins())
}

func TestGoChartEngine_PluginReceivesArcs(t *testing.T) {
	engine := NewGoChartEngine()
	plugin := &recordingPlugin{id: "rec"}
	engine.Register(plugin)

	_, err := engine.Create(KindAllocation, []string{"A", "B", "C"}, []float64{50, 25, 25}, DefaultOptions(KindAllocation, "INR"))
	require.NoError(t, err)

	assert.Equal(t, 1, plugin.calls)
	require.Len(t, plugin.arcs, 3)
	assert.Equal(t, []float64{50, 25, 25}, plugin.values)
	assert.Equal(t, plugin.arcs[0].EndAngle, plugin.arcs[1].StartAngle)
	assert.Greater(t, plugin.arcs[0].OuterRadius, plugin.arcs[0].InnerRadius)

	// plugins run on proportion charts only
	_, err = engine.Create(KindPerformance, []string{"A"}, []float64{5}, DefaultOptions(KindPerformance, "INR"))
	require.NoError(t, err)
	assert.Equal(t, 1, plugin.calls)
}

func TestGoChartEngine_DestroyAndErrors(t *testing.T) {
	engine := NewGoChartEngine()

	inst, err := engine.Create(KindPerformance, []string{"A"}, []float64{5}, DefaultOptions(KindPerformance, "INR"))
	require.NoError(t, err)
	engine.Destroy(inst)
	engine.Destroy(inst)
	engine.Destroy(nil)
	assert.True(t, inst.Destroyed)
	assert.Nil(t, inst.Image)

	_, err = engine.Create(KindTrend, []string{"a"}, []float64{1}, DefaultOptions(KindTrend, "INR"))
	assert.Error(t, err)

	_, err = engine.Create(Kind("x"), nil, nil, Options{})
	assert.Error(t, err)
}
