// Package vision implements line-of-sight ray casting and whole-grid
// field-of-view evaluation for a single observer.
package vision

import (
	"math"

	"rogue-view/internal/grid"
)

// CastRay reports whether a straight line from one cell to another is free
// of opaque tiles. The dominant axis advances exactly one cell per step and
// the other axis advances by the proportional fraction, with the continuous
// position rounded to the nearest cell before each obstruction test. The
// target cell itself is never tested, so an opaque target stays visible.
//
// This is a sight test, not a reachability test: the rounded midpoints can
// slip through a one-cell diagonal gap between two diagonally-adjacent
// opaque tiles. That looseness is part of the contract.
func CastRay(g *grid.Grid, from, to grid.Cell) bool {
	dx := from.X - to.X
	dy := from.Y - to.Y
	xdiff := abs(dx)
	ydiff := abs(dy)

	// Direction of travel, from toward to.
	sx := -float64(sign(dx))
	sy := -float64(sign(dy))

	var xinc, yinc float64
	if xdiff >= ydiff {
		xinc = sx
		if xdiff != 0 {
			yinc = sy * float64(ydiff) / float64(xdiff)
		}
	} else {
		yinc = sy
		xinc = sx * float64(xdiff) / float64(ydiff)
	}

	cx := float64(from.X)
	cy := float64(from.Y)
	for {
		x := int(math.Round(cx))
		y := int(math.Round(cy))
		if x == to.X && y == to.Y {
			return true
		}
		if g.Obstructs(x, y) {
			return false
		}
		cx += xinc
		cy += yinc
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
