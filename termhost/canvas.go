package termhost

import (
	"math"

	"github.com/phanxgames/backdrop"
)

// cell is one terminal character cell of the software canvas.
type cell struct {
	r rune
	c backdrop.Color // accumulated color, straight alpha ignored
	a float64        // coverage; zero means the cell shows background
}

// canvas composites a frame in memory before it is flushed to the screen.
// Rows are terminal rows; every row covers two scene pixels vertically so
// that projected geometry keeps its aspect ratio.
type canvas struct {
	w, h  int
	bg    backdrop.Color
	cells []cell
}

func (cv *canvas) resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cv.w, cv.h = w, h
	if cap(cv.cells) < w*h {
		cv.cells = make([]cell, w*h)
	}
	cv.cells = cv.cells[:w*h]
}

func (cv *canvas) clear() {
	for i := range cv.cells {
		cv.cells[i] = cell{}
	}
}

// at returns the cell at column x, row y, or nil when out of bounds.
func (cv *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return nil
	}
	return &cv.cells[y*cv.w+x]
}

// plot blends color c at opacity a into the cell. Additive plots sum onto
// what is already there; normal plots cover it by a.
func (cv *canvas) plot(x, y int, r rune, c backdrop.Color, a float64, blend backdrop.BlendMode) {
	p := cv.at(x, y)
	if p == nil || a <= 0 {
		return
	}
	a = math.Min(a*c.A, 1)
	switch blend {
	case backdrop.BlendAdd:
		p.c = backdrop.Color{
			R: p.c.R*p.a + c.R*a,
			G: p.c.G*p.a + c.G*a,
			B: p.c.B*p.a + c.B*a,
		}
		p.a = math.Min(p.a+a, 1)
		if p.a > 0 {
			p.c = p.c.Scale(1 / p.a)
		}
	default:
		p.c = backdrop.Color{
			R: backdrop.Lerp(p.c.R, c.R, a),
			G: backdrop.Lerp(p.c.G, c.G, a),
			B: backdrop.Lerp(p.c.B, c.B, a),
		}
		p.a = a + p.a*(1-a)
	}
	if r != 0 && (p.r == 0 || blend == backdrop.BlendNormal) {
		p.r = r
	}
}

// line plots a Bresenham segment between two cells.
func (cv *canvas) line(x0, y0, x1, y1 int, r rune, c backdrop.Color, a float64, blend backdrop.BlendMode) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for n := 0; n <= cv.w+cv.h+dx-dy; n++ {
		cv.plot(x0, y0, r, c, a, blend)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// annulus fills the cells between radii inner and outer around (cx, cy),
// both measured in columns. Rows count double.
func (cv *canvas) annulus(cx, cy, inner, outer float64, r rune, c backdrop.Color, a float64, blend backdrop.BlendMode) {
	if outer <= 0 || outer < inner {
		return
	}
	x0, x1 := int(math.Floor(cx-outer)), int(math.Ceil(cx+outer))
	y0, y1 := int(math.Floor((cy-outer)/2)), int(math.Ceil((cy+outer)/2))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y*2)+1-cy)
			if d <= outer && d >= inner {
				cv.plot(x, y, r, c, a, blend)
			}
		}
	}
}

// color returns the final color of the cell over the background.
func (cv *canvas) color(p *cell) backdrop.Color {
	return backdrop.Color{
		R: backdrop.Lerp(cv.bg.R, p.c.R, p.a),
		G: backdrop.Lerp(cv.bg.G, p.c.G, p.a),
		B: backdrop.Lerp(cv.bg.B, p.c.B, p.a),
		A: 1,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
