package grid

import (
	"errors"
	"testing"
)

func TestParseBasic(t *testing.T) {
	g, err := Parse("###\n#.#\n###\n", '.')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if g.Width() != 3 || g.Height() != 3 {
		t.Fatalf("got %dx%d, want 3x3", g.Width(), g.Height())
	}
	if !g.Obstructs(0, 0) {
		t.Error("corner tile should obstruct")
	}
	if g.Obstructs(1, 1) {
		t.Error("center tile should be open")
	}
	if got := g.TileAt(0, 1).Glyph; got != '#' {
		t.Errorf("wall glyph = %q, want '#'", got)
	}
}

func TestParseKeepsObstructionGlyphs(t *testing.T) {
	g, err := Parse("T~\n..", '.')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := g.TileAt(0, 0).Glyph; got != 'T' {
		t.Errorf("glyph = %q, want 'T'", got)
	}
	if got := g.TileAt(1, 0).Glyph; got != '~' {
		t.Errorf("glyph = %q, want '~'", got)
	}
	if !g.Obstructs(0, 0) || !g.Obstructs(1, 0) {
		t.Error("non-empty runes must be opaque")
	}
}

func TestParseEmptySource(t *testing.T) {
	if _, err := Parse("", '.'); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty text: got %v, want ErrEmptySource", err)
	}
	if _, err := Parse("\n\n", '.'); !errors.Is(err, ErrEmptySource) {
		t.Errorf("blank text: got %v, want ErrEmptySource", err)
	}
	if _, err := FromRows(nil, '.'); !errors.Is(err, ErrEmptySource) {
		t.Errorf("nil rows: got %v, want ErrEmptySource", err)
	}
	if _, err := FromRows([]string{""}, '.'); !errors.Is(err, ErrEmptySource) {
		t.Errorf("empty first row: got %v, want ErrEmptySource", err)
	}
}

func TestParseRaggedRows(t *testing.T) {
	_, err := Parse("###\n##\n###", '.')
	if !errors.Is(err, ErrRaggedRows) {
		t.Errorf("got %v, want ErrRaggedRows", err)
	}
}

func TestRowMajorIndex(t *testing.T) {
	g, err := Parse("....\n....\n....", '.')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := g.Index(3, 2); got != 11 {
		t.Errorf("Index(3,2) = %d, want 11", got)
	}
}

func TestObstructsOutOfBoundsPanics(t *testing.T) {
	g, err := Parse("..\n..", '.')
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("out-of-bounds Obstructs must panic, not clamp")
		}
	}()
	g.Obstructs(2, 0)
}
