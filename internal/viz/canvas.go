package viz

import (
	"math"
	"strings"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille dot grid of Width x Height cells, each holding 2x4
// dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	marks         map[[2]int]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		marks:  make(map[[2]int]rune),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// Set lights the dot at sub-cell coordinates (x, y). The canvas is
// Width*2 x Height*4 dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark replaces the whole cell containing dot (x, y) with r.
func (c *Canvas) Mark(x, y int, r rune) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.marks[[2]int{row, col}] = r
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
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

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		for j, r := range row {
			if m, ok := c.marks[[2]int{i, j}]; ok {
				r = m
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// PlotPath draws the xy projection of path seen from above, clipped to b.
// Magnets are marked with their index digit (or '*' past nine) and the
// start with 'o'.
func PlotPath(path []vecmath.Vec3, magnets []vecmath.Vec3, b basin.Bounds, w, h int) string {
	c := NewCanvas(w, h)
	dotsX, dotsY := float64(2*w-1), float64(4*h-1)
	toDots := func(p vecmath.Vec3) (int, int) {
		x := (p[0] - b.MinX) / b.Width() * dotsX
		y := (b.MaxY - p[1]) / b.Height() * dotsY
		return int(math.Round(x)), int(math.Round(y))
	}

	for i := 1; i < len(path); i++ {
		x0, y0 := toDots(path[i-1])
		x1, y1 := toDots(path[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	for i, m := range magnets {
		x, y := toDots(m)
		r := '*'
		if i < 10 {
			r = rune('0' + i)
		}
		c.Mark(x, y, r)
	}
	if len(path) > 0 {
		x, y := toDots(path[0])
		c.Mark(x, y, 'o')
	}
	return c.String()
}
