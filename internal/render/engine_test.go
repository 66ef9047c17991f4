package render

import (
	"math"
	"strings"
	"testing"

	"github.com/zyedidia/generic/mapset"

	"rogue-view/internal/grid"
	"rogue-view/internal/maps"
)

func frameMap(t *testing.T) *maps.Map {
	t.Helper()
	g, err := grid.Parse("#####\n#...#\n#.#.#\n#...#\n#####", '.')
	if err != nil {
		t.Fatalf("bad test map: %v", err)
	}
	return &maps.Map{Name: "Box", Grid: g, SpawnX: 1, SpawnY: 1}
}

func TestRenderMarksObserverAndHidden(t *testing.T) {
	m := frameMap(t)
	g := m.Grid

	visible := make([]bool, g.Width()*g.Height())
	visible[g.Index(1, 1)] = true
	visible[g.Index(2, 1)] = true

	e := NewEngine(20, 10)
	out := e.Render(m, ObserverInfo{X: 1, Y: 1}, visible, mapset.New[int](), 0)

	if !strings.ContainsRune(out, '@') {
		t.Error("frame should mark the observer with '@'")
	}
	if !strings.ContainsRune(out, '-') {
		t.Error("frame should mark undiscovered terrain with '-'")
	}
}

func TestRenderShowsHUD(t *testing.T) {
	m := frameMap(t)
	visible := make([]bool, m.Grid.Width()*m.Grid.Height())

	e := NewEngine(80, 24)
	out := e.Render(m, ObserverInfo{
		X: 1, Y: 1,
		Facing: math.Pi / 2, Radius: 8, Width: 2 * math.Pi / 3,
		HasView: true,
	}, visible, mapset.New[int](), 7)

	for _, want := range []string{"Box", "pos (1,1)", "facing  90°", "radius 8.0", "fov 120°", "turn 7"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestRenderNoLightHUD(t *testing.T) {
	m := frameMap(t)
	visible := make([]bool, m.Grid.Width()*m.Grid.Height())

	e := NewEngine(80, 24)
	out := e.Render(m, ObserverInfo{X: 1, Y: 1}, visible, mapset.New[int](), 0)

	if !strings.Contains(out, "no light") {
		t.Error("HUD should report the lightless state")
	}
}

func TestViewportClampsToMapEdges(t *testing.T) {
	vp := NewViewport(0, 0, 10, 10, 40, 22, HUDRows)
	if vp.CamX != 0 || vp.CamY != 0 {
		t.Errorf("camera = (%d,%d), want clamp to origin", vp.CamX, vp.CamY)
	}

	vp = NewViewport(39, 21, 10, 10, 40, 22, HUDRows)
	if vp.CamX != 30 || vp.CamY != 14 {
		t.Errorf("camera = (%d,%d), want clamp to far edge (30,14)", vp.CamX, vp.CamY)
	}
}

func TestViewportWorldToScreen(t *testing.T) {
	vp := NewViewport(20, 11, 20, 12, 40, 22, HUDRows)

	sx, sy := vp.WorldToScreen(20, 11)
	if sx != 11 || sy != 6 {
		t.Errorf("observer maps to (%d,%d), want centered (11,6)", sx, sy)
	}

	if sx, sy := vp.WorldToScreen(0, 0); sx != -1 || sy != -1 {
		t.Errorf("off-viewport cell maps to (%d,%d), want (-1,-1)", sx, sy)
	}
}
