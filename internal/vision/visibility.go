package vision

import (
	"fmt"
	"math"
	"sync"

	"rogue-view/internal/geom"
	"rogue-view/internal/grid"
)

// ViewSpec describes a light source: how far and how wide its carrier sees.
// Width is the full arc in radians; a width of 2π or more means no angular
// restriction at all.
type ViewSpec struct {
	Radius float64
	Width  float64
}

// Viewer is anything with a grid position, a facing angle, and optionally a
// light source. An entity without one sees nothing beyond its own cell.
type Viewer interface {
	Cell() grid.Cell
	Facing() float64
	View() (ViewSpec, bool)
}

// IsVisible decides whether target can be seen by the viewer. Checks run
// cheapest first: self, light presence, radius, view arc, and only then the
// ray march. Keep that order.
func IsVisible(g *grid.Grid, v Viewer, target grid.Cell) bool {
	origin := v.Cell()
	if target == origin {
		return true
	}

	view, ok := v.View()
	if !ok {
		return false
	}

	ddx := float64(target.X - origin.X)
	ddy := float64(target.Y - origin.Y)
	if math.Hypot(ddx, ddy) > view.Radius {
		return false
	}

	if view.Width < geom.TwoPi {
		bearing := geom.Bearing(float64(origin.X), float64(origin.Y),
			float64(target.X), float64(target.Y))
		half := view.Width / 2
		left := geom.Reduce(v.Facing(), half)
		right := geom.Advance(v.Facing(), half)
		if !geom.WithinArc(bearing, left, right) {
			return false
		}
	}

	return CastRay(g, origin, target)
}

// Evaluator computes whole-grid visibility fields. Workers caps the
// goroutines used for the per-row fan-out; zero or one means sequential.
type Evaluator struct {
	Workers int
}

// ComputeField writes IsVisible for every cell, row-major, into out,
// overwriting it completely. The buffer must already hold at least W·H
// slots; a short buffer is a caller bug and panics. Cells are independent,
// so workers write disjoint row ranges with no locking, and the call blocks
// until the whole field is done.
func (e Evaluator) ComputeField(g *grid.Grid, v Viewer, out []bool) {
	w := g.Width()
	h := g.Height()
	if len(out) < w*h {
		panic(fmt.Sprintf("vision: output buffer holds %d cells, grid needs %d", len(out), w*h))
	}

	workers := e.Workers
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		computeRows(g, v, out, 0, h)
		return
	}

	rowsPer := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < h; start += rowsPer {
		end := start + rowsPer
		if end > h {
			end = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			computeRows(g, v, out, y0, y1)
		}(start, end)
	}
	wg.Wait()
}

func computeRows(g *grid.Grid, v Viewer, out []bool, y0, y1 int) {
	w := g.Width()
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = IsVisible(g, v, grid.Cell{X: x, Y: y})
		}
	}
}
