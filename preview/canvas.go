package preview

import (
	"cogentcore.org/core/math32"
	"github.com/gdamore/tcell/v2"
)

// canvas keeps the nearest depth per cell so closer points win
type canvas struct {
	screen tcell.Screen
	w, h   int
	depth  []float32
}

func (c *canvas) reset(s tcell.Screen, w, h int) {
	c.screen, c.w, c.h = s, w, h
	if cap(c.depth) < w*h {
		c.depth = make([]float32, w*h)
	}
	c.depth = c.depth[:w*h]
	for i := range c.depth {
		c.depth[i] = math32.Inf(1)
	}
}

func (c *canvas) set(x, y int, depth float32, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	i := y*c.w + x
	if depth >= c.depth[i] {
		return
	}
	c.depth[i] = depth
	c.screen.SetContent(x, y, r, nil, style)
}

func (c *canvas) point(pr Projector, p math32.Vector3, r rune, style tcell.Style) {
	if x, y, d, ok := pr.Project(p); ok {
		c.set(x, y, d, r, style)
	}
}

// line plots a dotted segment between two projected points
func (c *canvas) line(pr Projector, a, b math32.Vector3, r rune, style tcell.Style) {
	x0, y0, d0, ok0 := pr.Project(a)
	x1, y1, d1, ok1 := pr.Project(b)
	if !ok0 || !ok1 {
		return
	}
	steps := max(abs(x1-x0), abs(y1-y0))
	for s := 1; s < steps; s++ {
		t := float32(s) / float32(steps)
		x := x0 + int(math32.Round(t*float32(x1-x0)))
		y := y0 + int(math32.Round(t*float32(y1-y0)))
		c.set(x, y, d0+(d1-d0)*t+0.01, r, style)
	}
}

// card fills a framed rectangle sized by scale at p's depth
func (c *canvas) card(pr Projector, p math32.Vector3, scale float32, style tcell.Style) {
	x, y, d, ok := pr.Project(p)
	if !ok {
		return
	}
	half := float32(pr.h) / 2
	hh := max(1, int(scale*0.6/d*focal*half))
	hw := max(1, int(float32(hh)*cellAspect))
	for cy := y - hh; cy <= y+hh; cy++ {
		for cx := x - hw; cx <= x+hw; cx++ {
			r := '█'
			if cy == y-hh || cy == y+hh || cx == x-hw || cx == x+hw {
				r = '▓'
			}
			c.set(cx, cy, d, r, style)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
