package game

import (
	"math"

	"rogue-view/internal/geom"
	"rogue-view/internal/grid"
	"rogue-view/internal/vision"
)

// Observer is the entity whose field of view gets evaluated. The continuous
// position is the source of truth; the rounded cell is re-derived after
// every mutation so all geometric checks see a consistent cell.
//
// None of the mutators validate grid bounds. Keeping the observer inside the
// grid is the session's job, enforced before a mutator is called.
type Observer struct {
	x, y   float64
	cell   grid.Cell
	facing float64
	view   *vision.ViewSpec
}

// NewObserver places an observer at a continuous position. A nil view means
// no light source: nothing beyond the observer's own cell will be visible.
func NewObserver(x, y, facing float64, view *vision.ViewSpec) *Observer {
	o := &Observer{x: x, y: y, facing: facing, view: view}
	o.deriveCell()
	return o
}

func (o *Observer) deriveCell() {
	o.cell = grid.Cell{X: int(math.Round(o.x)), Y: int(math.Round(o.y))}
}

// Cell returns the rounded grid cell. Part of vision.Viewer.
func (o *Observer) Cell() grid.Cell {
	return o.cell
}

// Facing returns the facing angle in [0, 2π). Part of vision.Viewer.
func (o *Observer) Facing() float64 {
	return o.facing
}

// View returns a copy of the view parameters and whether a light source is
// present. Part of vision.Viewer.
func (o *Observer) View() (vision.ViewSpec, bool) {
	if o.view == nil {
		return vision.ViewSpec{}, false
	}
	return *o.view, true
}

// Position returns the continuous coordinates.
func (o *Observer) Position() (float64, float64) {
	return o.x, o.y
}

// MoveBy shifts the observer by whole cells along the grid axes.
func (o *Observer) MoveBy(dx, dy int) {
	o.x += float64(dx)
	o.y += float64(dy)
	o.deriveCell()
}

// MoveForward translates along the facing angle. Y decreases as the angle
// points up the screen, matching the bearing convention in geom. A negative
// step moves backward.
func (o *Observer) MoveForward(step float64) {
	o.x += math.Cos(o.facing) * step
	o.y -= math.Sin(o.facing) * step
	o.deriveCell()
}

// MoveBackward translates against the facing angle.
func (o *Observer) MoveBackward(step float64) {
	o.MoveForward(-step)
}

// Rotate turns the observer, wrapping the facing angle into [0, 2π).
// Positive delta turns counterclockwise (toward the screen's up).
func (o *Observer) Rotate(delta float64) {
	if delta >= 0 {
		o.facing = geom.Advance(o.facing, delta)
	} else {
		o.facing = geom.Reduce(o.facing, -delta)
	}
}

// AdjustRadius grows or shrinks the sight radius, floored at zero. A no-op
// without a light source.
func (o *Observer) AdjustRadius(delta float64) {
	if o.view == nil {
		return
	}
	o.view.Radius += delta
	if o.view.Radius < 0 {
		o.view.Radius = 0
	}
}

// AdjustFOVWidth widens or narrows the view arc, clamped to [0, 2π].
// A no-op without a light source.
func (o *Observer) AdjustFOVWidth(delta float64) {
	if o.view == nil {
		return
	}
	o.view.Width += delta
	if o.view.Width < 0 {
		o.view.Width = 0
	}
	if o.view.Width > geom.TwoPi {
		o.view.Width = geom.TwoPi
	}
}
