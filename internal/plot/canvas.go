package plot

// brailleBits[col][row] is the dot bit for a position inside one cell.
var brailleBits = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille dot grid. Dot (0, 0) is the top-left corner.
type Canvas struct {
	cols, rows int
	cells      [][]rune
}

// NewCanvas allocates a canvas of cols x rows terminal cells.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	cells := make([][]rune, rows)
	for r := range cells {
		cells[r] = make([]rune, cols)
		for c := range cells[r] {
			cells[r][c] = brailleBlank
		}
	}
	return &Canvas{cols: cols, rows: rows, cells: cells}
}

// DotWidth is the horizontal resolution in dots.
func (c *Canvas) DotWidth() int { return c.cols * 2 }

// DotHeight is the vertical resolution in dots.
func (c *Canvas) DotHeight() int { return c.rows * 4 }

// Set lights one dot. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.DotWidth() || y >= c.DotHeight() {
		return
	}
	c.cells[y/4][x/2] |= brailleBits[x%2][y%4]
}

// Line lights every dot of the segment between two dots (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Cell returns the rune at a cell position.
func (c *Canvas) Cell(col, row int) rune { return c.cells[row][col] }

// Rows renders the canvas, one string per terminal row.
func (c *Canvas) Rows() []string {
	out := make([]string, c.rows)
	for r, row := range c.cells {
		out[r] = string(row)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
