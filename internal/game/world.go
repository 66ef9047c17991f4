package game

import (
	"fmt"

	"rogue-view/internal/maps"
)

// World wraps the loaded map registry and provides session construction.
type World struct {
	Maps       map[string]*maps.Map
	DefaultMap string
	Workers    int // parallelism for each session's visibility evaluator
}

// NewWorld creates a world from the given map registry.
func NewWorld(allMaps map[string]*maps.Map, defaultMap string, workers int) *World {
	return &World{Maps: allMaps, DefaultMap: defaultMap, Workers: workers}
}

// NewSession starts a session on the named map, or on the default map when
// name is empty.
func (w *World) NewSession(name string) (*Session, error) {
	if name == "" {
		name = w.DefaultMap
	}
	m, ok := w.Maps[name]
	if !ok {
		return nil, fmt.Errorf("unknown map %q", name)
	}
	return NewSession(m, w.Workers), nil
}
