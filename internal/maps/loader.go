// Package maps loads obstruction maps from JSON files and couples each
// parsed grid with its spawn point and default view parameters.
package maps

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"rogue-view/internal/geom"
	"rogue-view/internal/grid"
	"rogue-view/internal/vision"
)

// Map represents a loaded obstruction map.
type Map struct {
	Name   string
	Grid   *grid.Grid
	SpawnX int
	SpawnY int
	Facing float64          // initial facing angle in [0, 2π)
	View   *vision.ViewSpec // nil means the observer starts without a light source
}

// jsonMap is the on-disk JSON format. Rows hold one string per grid row; the
// empty rune marks open floor and every other rune is an obstruction glyph.
type jsonMap struct {
	Name  string    `json:"name"`
	Empty string    `json:"empty"`
	Spawn jsonSpawn `json:"spawn"`
	Rows  []string  `json:"rows"`
	View  *jsonView `json:"view,omitempty"`
}

type jsonSpawn struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonView struct {
	Radius        float64 `json:"radius"`
	FOVDegrees    float64 `json:"fov_degrees"`
	FacingDegrees float64 `json:"facing_degrees"`
}

// LoadMap reads a JSON map file from disk.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map file: %w", err)
	}

	var jm jsonMap
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("parse map JSON: %w", err)
	}

	empty := '.'
	if jm.Empty != "" {
		empty = []rune(jm.Empty)[0]
	}

	g, err := grid.FromRows(jm.Rows, empty)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", jm.Name, err)
	}

	if !g.InBounds(jm.Spawn.X, jm.Spawn.Y) {
		return nil, fmt.Errorf("map %q: spawn (%d,%d) outside %dx%d grid",
			jm.Name, jm.Spawn.X, jm.Spawn.Y, g.Width(), g.Height())
	}
	if g.Obstructs(jm.Spawn.X, jm.Spawn.Y) {
		return nil, fmt.Errorf("map %q: spawn (%d,%d) is on an opaque tile",
			jm.Name, jm.Spawn.X, jm.Spawn.Y)
	}

	m := &Map{
		Name:   jm.Name,
		Grid:   g,
		SpawnX: jm.Spawn.X,
		SpawnY: jm.Spawn.Y,
	}
	if jm.View != nil {
		if jm.View.Radius < 0 {
			return nil, fmt.Errorf("map %q: negative view radius %.2f", jm.Name, jm.View.Radius)
		}
		m.Facing = normalizeDegrees(jm.View.FacingDegrees)
		m.View = &vision.ViewSpec{
			Radius: jm.View.Radius,
			Width:  jm.View.FOVDegrees * math.Pi / 180,
		}
	}
	return m, nil
}

// normalizeDegrees converts degrees to radians in [0, 2π).
func normalizeDegrees(d float64) float64 {
	r := math.Mod(d*math.Pi/180, geom.TwoPi)
	if r < 0 {
		r += geom.TwoPi
	}
	return r
}

// DefaultView returns a fresh copy of the map's view parameters so each
// session can mutate its own, or nil when the map starts lightless.
func (m *Map) DefaultView() *vision.ViewSpec {
	if m.View == nil {
		return nil
	}
	v := *m.View
	return &v
}

// LoadMaps scans a directory for *.json files, loads each as a Map, and
// returns them indexed by Name.
func LoadMaps(dir string) (map[string]*Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read maps directory: %w", err)
	}

	allMaps := make(map[string]*Map)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		m, err := LoadMap(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
		if _, exists := allMaps[m.Name]; exists {
			return nil, fmt.Errorf("duplicate map name %q in %s", m.Name, entry.Name())
		}
		allMaps[m.Name] = m
	}

	if len(allMaps) == 0 {
		return nil, fmt.Errorf("no map files in %s", dir)
	}
	return allMaps, nil
}

// DefaultMap returns a built-in fallback map: a walled courtyard with a few
// obstruction blocks to cast shadows.
func DefaultMap() *Map {
	w, h := 40, 22
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || x == w-1 || y == 0 || y == h-1:
				sb.WriteByte('#')
			case x >= 7 && x <= 10 && y >= 3 && y <= 5:
				sb.WriteByte('#')
			case x >= 26 && x <= 28 && y >= 14 && y <= 17:
				sb.WriteByte('#')
			case (x == 18 || x == 19) && y >= 8 && y <= 9:
				sb.WriteByte('#')
			case x == 31 && y == 5:
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}

	g, err := grid.FromRows(rows, '.')
	if err != nil {
		// The rows above are generated square; a parse failure is a bug.
		panic(fmt.Sprintf("maps: default map invalid: %v", err))
	}

	return &Map{
		Name:   "Courtyard",
		Grid:   g,
		SpawnX: w / 2,
		SpawnY: h / 2,
		Facing: math.Pi / 2,
		View:   &vision.ViewSpec{Radius: 12, Width: 120 * math.Pi / 180},
	}
}
