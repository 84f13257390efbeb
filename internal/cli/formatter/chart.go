package formatter

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// RenderDailyChart plots one point per day. It returns a dimmed notice when
// there is nothing to plot.
func RenderDailyChart(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return Dim("No data to chart")
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	// asciigraph needs two points to draw a line.
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
	}

	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// RenderBarChart draws one horizontal bar per label, scaled to the largest
// value.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, len(l))
	}

	barWidth := max(width-labelWidth-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		n := max(int(v/maxVal*float64(barWidth)), 0)
		bar := StyleGreen.Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%-*s │%s %.2f", labelWidth, label, bar, v))
	}
	return strings.Join(lines, "\n")
}
