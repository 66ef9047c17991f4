// Package grid holds the immutable obstruction map the visibility engine
// runs over. A grid is built once from a rectangular block of text and never
// mutated afterwards, so it is safe to share across concurrent readers.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// Load errors returned by Parse and FromRows.
var (
	ErrEmptySource = errors.New("empty map source")
	ErrRaggedRows  = errors.New("inconsistent row widths")
)

// Tile is one cell's static terrain classification. Only Opaque matters for
// visibility; Glyph is carried along for rendering.
type Tile struct {
	Glyph  rune
	Opaque bool
}

// Cell identifies a grid cell by its integer coordinates.
type Cell struct {
	X, Y int
}

// Grid is a row-major W×H tile array.
type Grid struct {
	width int
	tiles []Tile
}

// Parse builds a grid from a rectangular block of text. The empty rune maps
// to open floor; every other rune becomes an opaque tile keeping that rune
// as its glyph. All lines must be as wide as the first.
func Parse(text string, empty rune) (*Grid, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("parse map text: %w", ErrEmptySource)
	}
	return FromRows(strings.Split(text, "\n"), empty)
}

// FromRows builds a grid from one string per row. Widths are counted in
// runes so box-drawing and other multi-byte glyphs work.
func FromRows(rows []string, empty rune) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse map rows: %w", ErrEmptySource)
	}

	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("parse map rows: first row is empty: %w", ErrEmptySource)
	}

	tiles := make([]Tile, 0, width*len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("row %d is %d cells wide, expected %d: %w",
				y, len(runes), width, ErrRaggedRows)
		}
		for _, r := range runes {
			if r == empty {
				tiles = append(tiles, Tile{Glyph: r})
			} else {
				tiles = append(tiles, Tile{Glyph: r, Opaque: true})
			}
		}
	}

	return &Grid{width: width, tiles: tiles}, nil
}

// Width returns the grid width in cells.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in cells.
func (g *Grid) Height() int {
	return len(g.tiles) / g.width
}

// Index converts cell coordinates to the row-major buffer index.
func (g *Grid) Index(x, y int) int {
	return y*g.width + x
}

// TileAt returns the tile at (x, y). Out-of-range coordinates are a caller
// bug and panic; coordinates are never clamped.
func (g *Grid) TileAt(x, y int) Tile {
	g.checkBounds(x, y)
	return g.tiles[y*g.width+x]
}

// Obstructs reports whether the tile at (x, y) blocks sight.
func (g *Grid) Obstructs(x, y int) bool {
	g.checkBounds(x, y)
	return g.tiles[y*g.width+x].Opaque
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.Height()
}

func (g *Grid) checkBounds(x, y int) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: cell (%d,%d) outside %dx%d grid", x, y, g.width, g.Height()))
	}
}
