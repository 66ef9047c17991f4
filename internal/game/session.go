package game

import (
	"math"

	"github.com/zyedidia/generic/mapset"

	"rogue-view/internal/maps"
	"rogue-view/internal/vision"
)

// Per-turn step sizes for the observer mutators.
const (
	MoveStep   = 1.0
	RotateStep = math.Pi / 18 // 10°
	RadiusStep = 1.0
	FOVStep    = math.Pi / 18
)

// Session drives one observer over a shared read-only map. The observer and
// the visibility buffer are owned exclusively by the session's loop; the
// buffer is reused across turns and overwritten wholesale on each recompute.
type Session struct {
	Map      *maps.Map
	Observer *Observer
	Visible  []bool
	Explored mapset.Set[int] // every cell index that has ever been visible
	Turn     uint64

	eval vision.Evaluator
}

// NewSession spawns an observer at the map's spawn point and computes the
// initial visibility field.
func NewSession(m *maps.Map, workers int) *Session {
	g := m.Grid
	s := &Session{
		Map:      m,
		Observer: NewObserver(float64(m.SpawnX), float64(m.SpawnY), m.Facing, m.DefaultView()),
		Visible:  make([]bool, g.Width()*g.Height()),
		Explored: mapset.New[int](),
		eval:     vision.Evaluator{Workers: workers},
	}
	s.Recompute()
	return s
}

// Apply performs one turn: mutate the observer if the action is legal, then
// recompute the visibility field. Returns false when the session should end.
func (s *Session) Apply(a Action) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionNone:
		return true
	case ActionMoveNorth:
		s.tryMoveBy(0, -1)
	case ActionMoveSouth:
		s.tryMoveBy(0, 1)
	case ActionMoveWest:
		s.tryMoveBy(-1, 0)
	case ActionMoveEast:
		s.tryMoveBy(1, 0)
	case ActionForward:
		s.tryMoveContinuous(MoveStep)
	case ActionBackward:
		s.tryMoveContinuous(-MoveStep)
	case ActionTurnLeft:
		s.Observer.Rotate(RotateStep)
	case ActionTurnRight:
		s.Observer.Rotate(-RotateStep)
	case ActionRadiusUp:
		s.Observer.AdjustRadius(RadiusStep)
	case ActionRadiusDown:
		s.Observer.AdjustRadius(-RadiusStep)
	case ActionFOVWiden:
		s.Observer.AdjustFOVWidth(FOVStep)
	case ActionFOVNarrow:
		s.Observer.AdjustFOVWidth(-FOVStep)
	}

	s.Turn++
	s.Recompute()
	return true
}

// tryMoveBy applies a cardinal step only when the destination cell is inside
// the grid and open. Bounds enforcement lives here, not in the observer.
func (s *Session) tryMoveBy(dx, dy int) {
	g := s.Map.Grid
	c := s.Observer.Cell()
	nx, ny := c.X+dx, c.Y+dy
	if !g.InBounds(nx, ny) || g.Obstructs(nx, ny) {
		return
	}
	s.Observer.MoveBy(dx, dy)
}

// tryMoveContinuous previews a forward/backward translation and rejects it
// when the rounded destination leaves the grid or lands on an opaque tile.
func (s *Session) tryMoveContinuous(step float64) {
	g := s.Map.Grid
	x, y := s.Observer.Position()
	f := s.Observer.Facing()
	nx := x + math.Cos(f)*step
	ny := y - math.Sin(f)*step
	cx := int(math.Round(nx))
	cy := int(math.Round(ny))
	if !g.InBounds(cx, cy) || g.Obstructs(cx, cy) {
		return
	}
	s.Observer.MoveForward(step)
}

// Recompute overwrites the visibility buffer wholesale and folds newly seen
// cells into the explored set.
func (s *Session) Recompute() {
	s.eval.ComputeField(s.Map.Grid, s.Observer, s.Visible)
	for i, vis := range s.Visible {
		if vis {
			s.Explored.Put(i)
		}
	}
}
