package game

import (
	"math"
	"strings"
	"testing"

	"rogue-view/internal/grid"
	"rogue-view/internal/maps"
	"rogue-view/internal/vision"
)

// testMap builds a map with spawn at (2,2) and a full-circle light.
func testMap(t *testing.T, rows ...string) *maps.Map {
	t.Helper()
	g, err := grid.Parse(strings.Join(rows, "\n"), '.')
	if err != nil {
		t.Fatalf("bad test map: %v", err)
	}
	return &maps.Map{
		Name:   "test",
		Grid:   g,
		SpawnX: 2,
		SpawnY: 2,
		View:   &vision.ViewSpec{Radius: 10, Width: 2 * math.Pi},
	}
}

func TestSessionInitialField(t *testing.T) {
	s := NewSession(testMap(t,
		".....",
		".....",
		".....",
		".....",
		".....",
	), 0)

	if s.Observer.Cell() != (grid.Cell{X: 2, Y: 2}) {
		t.Fatalf("spawned at %v, want (2,2)", s.Observer.Cell())
	}
	for i, vis := range s.Visible {
		if !vis {
			t.Errorf("cell index %d hidden on initial recompute of an open map", i)
		}
	}
}

func TestSessionRejectsMoveIntoWall(t *testing.T) {
	s := NewSession(testMap(t,
		".....",
		"..#..",
		".....",
		".....",
		".....",
	), 0)

	before := s.Observer.Cell()
	s.Apply(ActionMoveNorth) // (2,1) is a wall
	if s.Observer.Cell() != before {
		t.Errorf("observer moved into a wall: %v", s.Observer.Cell())
	}
	if s.Turn != 1 {
		t.Errorf("turn = %d, want 1 (a rejected move still consumes the turn)", s.Turn)
	}
}

func TestSessionRejectsMoveOffGrid(t *testing.T) {
	m := testMap(t, "...", "...", "...")
	m.SpawnX, m.SpawnY = 0, 0
	s := NewSession(m, 0)

	s.Apply(ActionMoveWest)
	s.Apply(ActionMoveNorth)
	if s.Observer.Cell() != (grid.Cell{X: 0, Y: 0}) {
		t.Errorf("observer left the grid: %v", s.Observer.Cell())
	}
}

func TestSessionMoveUpdatesField(t *testing.T) {
	m := testMap(t,
		".....",
		".....",
		".....",
		"..#..",
		".....",
	)
	s := NewSession(m, 0)

	g := m.Grid
	if s.Visible[g.Index(2, 4)] {
		t.Fatal("cell behind the wall should start shadowed")
	}

	// Two sidesteps put the wall off the diagonal to (2,4).
	s.Apply(ActionMoveWest)
	s.Apply(ActionMoveWest)
	if !s.Visible[g.Index(2, 4)] {
		t.Error("sidesteps should reveal the cell behind the wall")
	}
}

func TestSessionExploredAccumulates(t *testing.T) {
	m := testMap(t,
		".....",
		".....",
		".....",
		"..#..",
		".....",
	)
	s := NewSession(m, 0)

	g := m.Grid
	idx := g.Index(2, 4)
	if s.Explored.Has(idx) {
		t.Fatal("shadowed cell should not start explored")
	}

	s.Apply(ActionMoveWest)
	s.Apply(ActionMoveWest)
	if !s.Explored.Has(idx) {
		t.Fatal("revealed cell should be explored")
	}

	// Back into the wall's shadow.
	s.Apply(ActionMoveEast)
	s.Apply(ActionMoveEast)
	if s.Visible[idx] {
		t.Error("cell should be shadowed again")
	}
	if !s.Explored.Has(idx) {
		t.Error("explored memory must survive losing sight of a cell")
	}
}

func TestSessionQuit(t *testing.T) {
	s := NewSession(testMap(t, "...", "...", "..."), 0)
	if s.Apply(ActionQuit) {
		t.Error("ActionQuit should end the session")
	}
}

func TestSessionTurnsAndRotation(t *testing.T) {
	s := NewSession(testMap(t,
		".....",
		".....",
		".....",
		".....",
		".....",
	), 0)

	f := s.Observer.Facing()
	s.Apply(ActionTurnLeft)
	if math.Abs(s.Observer.Facing()-(f+RotateStep)) > 1e-9 {
		t.Errorf("turn left: facing = %.4f, want %.4f", s.Observer.Facing(), f+RotateStep)
	}
	s.Apply(ActionTurnRight)
	if math.Abs(s.Observer.Facing()-f) > 1e-9 {
		t.Errorf("turn right should undo turn left, facing = %.4f", s.Observer.Facing())
	}
	if s.Turn != 2 {
		t.Errorf("turn = %d, want 2", s.Turn)
	}
}
