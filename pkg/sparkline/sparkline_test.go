package sparkline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderEmptySeries(t *testing.T) {
	svg := Render(nil, 120, 28)
	assert.Contains(t, svg, "<svg")
	assert.NotContains(t, svg, "polyline")
}

func TestRenderUpTrendIsGreen(t *testing.T) {
	svg := Render([]float64{100, 101, 105}, 120, 28)
	assert.Contains(t, svg, `stroke="#1ca01c"`)
	assert.Contains(t, svg, "polyline")
}

func TestRenderDownTrendIsRed(t *testing.T) {
	svg := Render([]float64{105, 101, 100}, 120, 28)
	assert.Contains(t, svg, `stroke="#e53935"`)
}

func TestRenderFlatSeriesIsGrey(t *testing.T) {
	svg := Render([]float64{100, 100, 100}, 120, 28)
	assert.Contains(t, svg, `stroke="#888"`)
}

func TestRenderSinglePointDrawsLine(t *testing.T) {
	svg := Render([]float64{42}, 140, 36)
	// The single point is duplicated into two coordinates.
	assert.Contains(t, svg, "0.00,")
	assert.Contains(t, svg, "140.00,")
}
