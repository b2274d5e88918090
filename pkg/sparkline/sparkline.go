package sparkline

import (
	"fmt"
	"strings"
)

const (
	colorUp      = "#1ca01c"
	colorDown    = "#e53935"
	colorNeutral = "#888"
)

// Render builds a small inline SVG polyline from a price series. The stroke
// color follows the net change over the series: green up, red down, grey flat.
// An empty series yields an empty placeholder SVG.
func Render(prices []float64, width, height int) string {
	if len(prices) == 0 {
		return fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg"><rect width="100%%" height="100%%" fill="none"/></svg>`,
			width, height, width, height)
	}

	pts := prices
	// A single data point is duplicated so the line is visible.
	if len(pts) == 1 {
		pts = []float64{pts[0], pts[0]}
	}

	mn, mx := pts[0], pts[0]
	for _, p := range pts {
		if p < mn {
			mn = p
		}
		if p > mx {
			mx = p
		}
	}
	span := mx - mn
	if span == 0 {
		span = 1.0
	}

	stepX := float64(width) / float64(len(pts)-1)
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		x := float64(i) * stepX
		// Higher price maps to a lower y.
		y := float64(height) - ((p-mn)/span)*float64(height)
		fmt.Fprintf(&b, "%.2f,%.2f", x, y)
	}

	color := colorNeutral
	if pts[0] != 0 {
		change := (pts[len(pts)-1] - pts[0]) / pts[0]
		switch {
		case change > 0:
			color = colorUp
		case change < 0:
			color = colorDown
		}
	}

	return fmt.Sprintf(`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" preserveAspectRatio="none"><polyline fill="none" stroke="%s" stroke-width="1.5" points="%s" stroke-linecap="round" stroke-linejoin="round" /></svg>`,
		width, height, width, height, color, b.String())
}
