// Package term draws cloth scenes into a terminal using braille characters.
//
// Each terminal cell holds a 2x4 block of dots, so a canvas of cols x rows
// cells has a resolution of 2*cols x 4*rows dots.
package term

import (
	"math"
	"strings"

	"github.com/matzehuels/clothsim/pkg/render"
	"github.com/matzehuels/clothsim/pkg/vec"
)

const (
	dotsX       = 2
	dotsY       = 4
	brailleBase = 0x2800
)

// dotBits maps a dot's position inside a cell to its braille bit.
var dotBits = [dotsY][dotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells.
type Canvas struct {
	cols, rows int
	cells      []uint8
}

// NewCanvas returns a blank canvas. Negative sizes are treated as zero.
func NewCanvas(cols, rows int) *Canvas {
	cols, rows = max(cols, 0), max(rows, 0)
	return &Canvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// Cols returns the width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Width returns the width in dots.
func (c *Canvas) Width() int { return c.cols * dotsX }

// Height returns the height in dots.
func (c *Canvas) Height() int { return c.rows * dotsY }

// Clear blanks every cell.
func (c *Canvas) Clear() { clear(c.cells) }

// Set lights the dot at (x, y). Dots outside the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return
	}
	c.cells[(y/dotsY)*c.cols+x/dotsX] |= dotBits[y%dotsY][x%dotsX]
}

// Dot reports whether the dot at (x, y) is lit.
func (c *Canvas) Dot(x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		return false
	}
	return c.cells[(y/dotsY)*c.cols+x/dotsX]&dotBits[y%dotsY][x%dotsX] != 0
}

// Line draws a line between two dots with Bresenham's algorithm. Parts
// outside the canvas are clipped.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Draw clears the canvas and draws every line of s, scaling the scene's
// viewport to fill the canvas.
func (c *Canvas) Draw(s render.Scene) {
	c.Clear()
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	sx := float64(c.Width()) / s.Width
	sy := float64(c.Height()) / s.Height
	for _, l := range s.Lines {
		c.Line(
			int(math.Floor(l.A.X*sx)), int(math.Floor(l.A.Y*sy)),
			int(math.Floor(l.B.X*sx)), int(math.Floor(l.B.Y*sy)),
		)
	}
}

// ScenePoint maps the centre of cell (col, row) to scene coordinates for a
// viewport of width x height.
func (c *Canvas) ScenePoint(col, row int, width, height float64) vec.Vec2 {
	if c.cols == 0 || c.rows == 0 {
		return vec.Zero
	}
	return vec.New(
		(float64(col)+0.5)*width/float64(c.cols),
		(float64(row)+0.5)*height/float64(c.rows),
	)
}

// String renders the canvas as rows of braille runes. Empty cells are
// spaces.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for r := range c.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range c.cells[r*c.cols : (r+1)*c.cols] {
			if cell == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteRune(rune(brailleBase + int(cell)))
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
