package plot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bincross/internal/format"
	"github.com/agbru/bincross/internal/ui"
)

// ChartOptions controls the layout of RenderLineChart. Zero fields take the
// values of DefaultChartOptions.
type ChartOptions struct {
	// Width and Height size the plot area in terminal cells, axes excluded.
	Width  int
	Height int

	Title  string
	XLabel string
	YLabel string

	YTickStep uint64
	XTickStep uint64
	// AnnotateEvery labels the points n = 1, 1+AnnotateEvery, ...
	AnnotateEvery uint64

	// Theme colors the chart. The zero value selects the active theme.
	Theme ui.TUITheme
}

// DefaultChartOptions returns the standard k* chart layout.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:         72,
		Height:        20,
		Title:         "Largest k with C(n,1) + ... + C(n,k) <= 2^128",
		XLabel:        "n",
		YLabel:        "min_k_for_aggregated_combinations",
		YTickStep:     5,
		XTickStep:     10,
		AnnotateEvery: 10,
	}
}

func (o ChartOptions) withDefaults() ChartOptions {
	d := DefaultChartOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.YTickStep == 0 {
		o.YTickStep = d.YTickStep
	}
	if o.XTickStep == 0 {
		o.XTickStep = d.XTickStep
	}
	if o.Theme.Series == nil {
		o.Theme = ui.GetCurrentTUITheme()
	}
	return o
}

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellSeries
	cellAnnotation
)

type cell struct {
	r    rune
	kind cellKind
}

// chart holds the scales shared by every layer of one rendering.
type chart struct {
	opts       ChartOptions
	canvas     *Canvas
	xMin, xMax uint64
	yMax       uint64
}

func (c *chart) dotX(n uint64) int {
	if c.xMax == c.xMin {
		return 0
	}
	frac := float64(n-c.xMin) / float64(c.xMax-c.xMin)
	return int(math.Round(frac * float64(c.canvas.DotWidth()-1)))
}

func (c *chart) dotY(k uint64) int {
	frac := float64(k) / float64(c.yMax)
	return c.canvas.DotHeight() - 1 - int(math.Round(frac*float64(c.canvas.DotHeight()-1)))
}

// RenderLineChart renders the series as a braille line chart with labeled
// axes. The x axis starts at the tick preceding the first n and the y axis
// at 0.
func RenderLineChart(s Series, opts ChartOptions) string {
	opts = opts.withDefaults()
	if len(s) == 0 {
		return "(no data to plot)\n"
	}

	minN, maxN, maxK := s.bounds()
	c := &chart{
		opts:   opts,
		canvas: NewCanvas(opts.Width, opts.Height),
		xMin:   minN / opts.XTickStep * opts.XTickStep,
		xMax:   maxN,
		yMax:   max((maxK+opts.YTickStep-1)/opts.YTickStep*opts.YTickStep, opts.YTickStep),
	}

	px, py := c.dotX(s[0].N), c.dotY(s[0].K)
	c.canvas.Set(px, py)
	for _, p := range s[1:] {
		x, y := c.dotX(p.N), c.dotY(p.K)
		c.canvas.Line(px, py, x, y)
		px, py = x, y
	}

	grid := c.cells()
	c.annotate(grid, s)

	styles := newChartStyles(opts.Theme)
	yLabels := c.yTickLabels()
	labelWidth := len(strconv.FormatUint(c.yMax, 10))
	indent := strings.Repeat(" ", labelWidth+2)

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(styles.title.Render(opts.Title))
		b.WriteByte('\n')
	}
	if opts.YLabel != "" {
		b.WriteString(styles.label.Render(opts.YLabel))
		b.WriteByte('\n')
	}
	for r, row := range grid {
		label, tick := yLabels[r]
		axis := "│"
		if tick {
			axis = "┤"
		}
		b.WriteString(styles.label.Render(fmt.Sprintf("%*s", labelWidth, label)))
		b.WriteByte(' ')
		b.WriteString(styles.axis.Render(axis))
		b.WriteString(styles.renderRow(row))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(styles.axis.Render("└" + c.xAxis()))
	b.WriteByte('\n')
	b.WriteString(indent)
	b.WriteString(styles.label.Render(c.xTickLabels()))
	b.WriteByte('\n')
	if opts.XLabel != "" {
		pad := max(labelWidth+2+opts.Width-len(opts.XLabel), 0)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(styles.label.Render(opts.XLabel))
		b.WriteByte('\n')
	}
	return b.String()
}

// cells copies the canvas into a cell grid, blank braille cells as spaces.
func (c *chart) cells() [][]cell {
	grid := make([][]cell, c.opts.Height)
	for r := range grid {
		grid[r] = make([]cell, c.opts.Width)
		for col := range grid[r] {
			ch := c.canvas.Cell(col, r)
			if ch == brailleBlank {
				grid[r][col] = cell{r: ' '}
				continue
			}
			grid[r][col] = cell{r: ch, kind: cellSeries}
		}
	}
	return grid
}

// annotate writes k above every annotated point. Labels that would overlap
// an earlier label on the same row are dropped.
func (c *chart) annotate(grid [][]cell, s Series) {
	every := c.opts.AnnotateEvery
	if every == 0 {
		return
	}
	taken := make([][]bool, len(grid))
	for r := range taken {
		taken[r] = make([]bool, c.opts.Width)
	}
	for _, p := range s {
		if p.N == 0 || (p.N-1)%every != 0 {
			continue
		}
		text := strconv.FormatUint(p.K, 10)
		if len(text) > c.opts.Width {
			continue
		}
		col, row := c.dotX(p.N)/2, c.dotY(p.K)/4-1
		if row < 0 {
			row = 1
		}
		if row >= len(grid) {
			continue
		}
		start := min(max(col-(len(text)-1)/2, 0), c.opts.Width-len(text))
		if !free(taken[row], start-1, start+len(text)) {
			continue
		}
		for i, ch := range text {
			grid[row][start+i] = cell{r: ch, kind: cellAnnotation}
			taken[row][start+i] = true
		}
	}
}

func free(row []bool, from, to int) bool {
	for i := max(from, 0); i <= min(to, len(row)-1); i++ {
		if row[i] {
			return false
		}
	}
	return true
}

// yTickLabels maps terminal rows to the tick value shown on them. When two
// ticks share a row the lower value is kept.
func (c *chart) yTickLabels() map[int]string {
	labels := make(map[int]string)
	for v := uint64(0); v <= c.yMax; v += c.opts.YTickStep {
		row := c.dotY(v) / 4
		if _, ok := labels[row]; !ok {
			labels[row] = strconv.FormatUint(v, 10)
		}
	}
	return labels
}

func (c *chart) xTicks() []uint64 {
	var ticks []uint64
	for n := c.xMin; n <= c.xMax; n += c.opts.XTickStep {
		ticks = append(ticks, n)
	}
	return ticks
}

func (c *chart) xAxis() string {
	axis := []rune(strings.Repeat("─", c.opts.Width))
	for _, n := range c.xTicks() {
		axis[c.dotX(n)/2] = '┬'
	}
	return string(axis)
}

// xTickLabels centers a thousands-separated label under each tick, skipping
// labels that would touch the previous one.
func (c *chart) xTickLabels() string {
	line := []rune(strings.Repeat(" ", c.opts.Width+8))
	next := 0
	for _, n := range c.xTicks() {
		text := format.FormatNumberString(strconv.FormatUint(n, 10))
		start := max(c.dotX(n)/2-(len(text)-1)/2, 0)
		if start < next || start+len(text) > len(line) {
			continue
		}
		copy(line[start:], []rune(text))
		next = start + len(text) + 1
	}
	return strings.TrimRight(string(line), " ")
}

type chartStyles struct {
	title      lipgloss.Style
	label      lipgloss.Style
	axis       lipgloss.Style
	series     lipgloss.Style
	annotation lipgloss.Style
}

func newChartStyles(t ui.TUITheme) chartStyles {
	return chartStyles{
		title:      lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		label:      lipgloss.NewStyle().Foreground(t.Text),
		axis:       lipgloss.NewStyle().Foreground(t.Dim),
		series:     lipgloss.NewStyle().Foreground(t.Series),
		annotation: lipgloss.NewStyle().Foreground(t.Annotation),
	}
}

// renderRow styles runs of same-kind cells together.
func (cs chartStyles) renderRow(row []cell) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		var run []rune
		for j < len(row) && row[j].kind == row[i].kind {
			run = append(run, row[j].r)
			j++
		}
		switch row[i].kind {
		case cellSeries:
			b.WriteString(cs.series.Render(string(run)))
		case cellAnnotation:
			b.WriteString(cs.annotation.Render(string(run)))
		default:
			b.WriteString(string(run))
		}
		i = j
	}
	return b.String()
}
