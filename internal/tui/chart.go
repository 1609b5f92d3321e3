package tui

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/agbru/bincross/internal/plot"
	"github.com/agbru/bincross/internal/ui"
)

// sysHistoryLen is the number of CPU and memory samples kept.
const sysHistoryLen = 120

// chartGutter approximates the width taken by the y-axis labels.
const chartGutter = 6

// ChartModel draws the live k* curve and the system sparklines.
type ChartModel struct {
	points     plot.Series
	cpuHistory *History
	memHistory *History
	width      int
	height     int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewHistory(sysHistoryLen),
		memHistory: NewHistory(sysHistoryLen),
	}
}

// SetSize updates dimensions, borders included.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// AddPoint inserts (n, k*) keeping the series ordered by n. Parallel sweeps
// report n out of order.
func (c *ChartModel) AddPoint(n, k uint64) {
	i, found := slices.BinarySearchFunc(c.points, n, func(p plot.Point, n uint64) int {
		switch {
		case p.N < n:
			return -1
		case p.N > n:
			return 1
		}
		return 0
	})
	if found {
		c.points[i].K = k
		return
	}
	c.points = slices.Insert(c.points, i, plot.Point{N: n, K: k})
}

// Points returns the plotted series.
func (c ChartModel) Points() plot.Series { return c.points }

// UpdateSysStats records a system sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// Reset clears the curve and the sparklines.
func (c *ChartModel) Reset() {
	c.points = nil
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// View renders the panel.
func (c ChartModel) View() string {
	inner := max(c.width-4, 20)
	// The x axis, its labels and the panel title with two sparklines take
	// six rows besides the borders.
	plotRows := max(c.height-2-6, 3)

	opts := plot.ChartOptions{
		Width:     max(inner-chartGutter, 10),
		Height:    plotRows,
		XLabel:    "n",
		YTickStep: 5,
		XTickStep: 10,
		Theme:     ui.GetCurrentTUITheme(),
	}
	if n := len(c.points); n > 0 {
		opts.XTickStep = tickStep(c.points[n-1].N, 6)
		opts.YTickStep = max(tickStep(maxK(c.points), 5), 5)
	}
	if len(c.points) > 0 && c.points[len(c.points)-1].N <= 300 {
		opts.AnnotateEvery = 10
	}

	lines := []string{panelTitleStyle.Render("k* = largest k with C(n,1)+...+C(n,k) <= 2^128")}
	lines = append(lines, strings.Split(strings.TrimRight(plot.RenderLineChart(c.points, opts), "\n"), "\n")...)
	spark := max(inner-14, 10)
	lines = append(lines,
		metricLabelStyle.Render(fmt.Sprintf("CPU %5.1f%% ", c.cpuHistory.Last()))+cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Values(), spark)),
		metricLabelStyle.Render(fmt.Sprintf("MEM %5.1f%% ", c.memHistory.Last()))+memSparklineStyle.Render(RenderSparkline(c.memHistory.Values(), spark)),
	)
	return panelStyle.Width(max(c.width-2, 0)).Render(strings.Join(lines, "\n"))
}

// tickStep returns the smallest 1, 2 or 5 times a power of ten that splits
// span into at most target intervals.
func tickStep(span uint64, target int) uint64 {
	if target < 1 {
		target = 1
	}
	raw := float64(span) / float64(target)
	if raw <= 1 {
		return 1
	}
	pow := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * pow; step >= raw {
			return uint64(step)
		}
	}
	return uint64(10 * pow)
}

func maxK(s plot.Series) uint64 {
	var k uint64
	for _, p := range s {
		k = max(k, p.K)
	}
	return k
}
