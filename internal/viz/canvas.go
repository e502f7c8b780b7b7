package viz

import (
	"math"
	"strings"

	"github.com/san-kum/magpen/internal/vec"
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

// Canvas is a braille character grid addressed in world coordinates.
// A w x h canvas carries w*2 x h*4 dots. World x grows right and world
// y grows up; the flip to screen rows happens inside Dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune

	center vec.Vec2
	scale  float64 // dots per meter
}

// NewCanvas returns a w x h cell canvas showing at least extent meters
// from center to the nearest edge.
func NewCanvas(w, h int, center vec.Vec2, extent float64) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	c.SetView(center, extent)
	return c
}

// SetView re-aims the canvas without clearing it.
func (c *Canvas) SetView(center vec.Vec2, extent float64) {
	if extent <= 0 {
		extent = 1
	}
	dots := c.Width * 2
	if v := c.Height * 4; v < dots {
		dots = v
	}
	c.center = center
	c.scale = float64(dots) / (2 * extent)
}

// Dot maps a world position to dot coordinates. The result may lie
// outside the grid; set ignores it there.
func (c *Canvas) Dot(p vec.Vec2) (int, int) {
	x := float64(c.Width) + (p.X-c.center.X)*c.scale
	y := float64(c.Height*2) - (p.Y-c.center.Y)*c.scale
	return int(math.Round(x)), int(math.Round(y))
}

// CellWorld returns the world position at the center of a character
// cell, the finest spot a mouse click can address.
func (c *Canvas) CellWorld(col, row int) vec.Vec2 {
	return vec.Vec2{
		X: c.center.X + (float64(col*2)+0.5-float64(c.Width))/c.scale,
		Y: c.center.Y + (float64(c.Height*2)-float64(row*4)-1.5)/c.scale,
	}
}

// Mark sets the dot nearest to a world position.
func (c *Canvas) Mark(p vec.Vec2) {
	x, y := c.Dot(p)
	c.set(x, y)
}

// Blob fills a square of dots, r dots in each direction, around a
// world position.
func (c *Canvas) Blob(p vec.Vec2, r int) {
	x, y := c.Dot(p)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c.set(x+dx, y+dy)
		}
	}
}

// Line draws a world-space segment using Bresenham's algorithm.
func (c *Canvas) Line(a, b vec.Vec2) {
	x0, y0 := c.Dot(a)
	x1, y1 := c.Dot(b)
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
		c.set(x0, y0)
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

// set turns on one dot. x, y index the dot grid, (Width*2) x (Height*4).
func (c *Canvas) set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
