package viz

import "strings"

// Braille patterns pack 2x4 dots per cell, unicode offset 0x2800:
//
//	1 4
//	2 5
//	3 6
//	7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille-cell drawing surface with a world-coordinate
// transform: world (x, y) maps onto a (Width*2) x (Height*4) pixel grid.
type Canvas struct {
	Width, Height          int
	xMin, xMax, yMin, yMax float64
	grid                   [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		xMin:   0, xMax: 1,
		yMin: 0, yMax: 1,
		grid: make([][]rune, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// SetViewport fixes the world rectangle the canvas shows.
func (c *Canvas) SetViewport(xMin, xMax, yMin, yMax float64) {
	c.xMin, c.xMax = xMin, xMax
	c.yMin, c.yMax = yMin, yMax
}

func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Plot sets the pixel nearest to world point (x, y). Points outside the
// viewport are dropped.
func (c *Canvas) Plot(x, y float64) {
	if c.xMax == c.xMin || c.yMax == c.yMin {
		return
	}
	px := int((x - c.xMin) / (c.xMax - c.xMin) * float64(c.Width*2-1))
	// Screen y grows downward.
	py := int((c.yMax - y) / (c.yMax - c.yMin) * float64(c.Height*4-1))
	c.setPixel(px, py)
}

// Blob sets a small cluster of pixels around a world point, used for the
// mass circles.
func (c *Canvas) Blob(x, y float64) {
	if c.xMax == c.xMin || c.yMax == c.yMin {
		return
	}
	px := int((x - c.xMin) / (c.xMax - c.xMin) * float64(c.Width*2-1))
	py := int((c.yMax - y) / (c.yMax - c.yMin) * float64(c.Height*4-1))
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.setPixel(px+dx, py+dy)
		}
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}
