package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"rogue-view/internal/maps"
)

// HUDRows is the number of terminal rows reserved below the viewport.
const HUDRows = 2

// ObserverInfo is the minimal observer data the renderer needs.
type ObserverInfo struct {
	X, Y    int     // rounded cell
	Facing  float64 // radians
	Radius  float64
	Width   float64 // view arc in radians
	HasView bool
}

// Engine composes full ANSI frames for one session. Each frame repaints the
// whole viewport; there is no diffing.
type Engine struct {
	width, height int
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	return &Engine{width: width, height: height}
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
}

// Render produces the ANSI output for one frame. Every world cell is drawn
// from (isObserverCell, isVisible, isExplored, tile): the observer as a bold
// '@', visible tiles with their glyph in full color, remembered tiles
// dimmed, and undiscovered terrain as dark dashes.
func (e *Engine) Render(m *maps.Map, obs ObserverInfo, visible []bool, explored mapset.Set[int], turn uint64) string {
	g := m.Grid
	vp := NewViewport(obs.X, obs.Y, e.width, e.height, g.Width(), g.Height(), HUDRows)

	var sb strings.Builder
	sb.Grow(e.width * e.height * 16)

	for sy := 1; sy <= vp.ViewH; sy++ {
		sb.WriteString(MoveTo(sy, 1))
		wy := vp.CamY + sy - 1
		for sx := 1; sx <= vp.ViewW; sx++ {
			wx := vp.CamX + sx - 1
			if !g.InBounds(wx, wy) {
				sb.WriteString(Reset)
				sb.WriteByte(' ')
				continue
			}
			WriteCellSGR(&sb, e.cellFor(m, obs, visible, explored, wx, wy))
		}
	}

	e.writeHUD(&sb, m, obs, turn, vp.ViewH)
	sb.WriteString(Reset)
	return sb.String()
}

func (e *Engine) cellFor(m *maps.Map, obs ObserverInfo, visible []bool, explored mapset.Set[int], wx, wy int) Cell {
	if wx == obs.X && wy == obs.Y {
		return ObserverCell
	}

	g := m.Grid
	idx := g.Index(wx, wy)
	tile := g.TileAt(wx, wy)

	if visible[idx] {
		c := Cell{Ch: tile.Glyph}
		if tile.Opaque {
			c.FgR, c.FgG, c.FgB = WallColor[0], WallColor[1], WallColor[2]
		} else {
			c.FgR, c.FgG, c.FgB = FloorColor[0], FloorColor[1], FloorColor[2]
		}
		return c
	}

	if explored.Has(idx) {
		return Cell{Ch: tile.Glyph, FgR: MemoryColor[0], FgG: MemoryColor[1], FgB: MemoryColor[2]}
	}

	return HiddenCell
}

func (e *Engine) writeHUD(sb *strings.Builder, m *maps.Map, obs ObserverInfo, turn uint64, viewH int) {
	sb.WriteString(MoveTo(viewH+1, 1))
	sb.WriteString(Reset)

	var status string
	if obs.HasView {
		status = fmt.Sprintf(" %s  pos (%d,%d)  facing %3.0f°  radius %.1f  fov %3.0f°  turn %d",
			m.Name, obs.X, obs.Y,
			obs.Facing*180/math.Pi, obs.Radius, obs.Width*180/math.Pi, turn)
	} else {
		status = fmt.Sprintf(" %s  pos (%d,%d)  no light  turn %d", m.Name, obs.X, obs.Y, turn)
	}
	sb.WriteString(pad(status, e.width))

	sb.WriteString(MoveTo(viewH+2, 1))
	sb.WriteString(pad(" move wasd  rotate ←/→  fwd/back ↑/↓  radius +/-  fov [/]  quit q", e.width))
}

// pad trims or space-fills a line to exactly width columns.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
