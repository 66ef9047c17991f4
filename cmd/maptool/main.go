package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rogue-view/internal/game"
	"rogue-view/internal/maps"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "validate":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptool validate <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runValidate(args[0]))
	case "viz":
		if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "-fov") {
			fmt.Fprintln(os.Stderr, "Usage: maptool viz <map-file> [-fov]")
			os.Exit(1)
		}
		runViz(args[0], len(args) == 2)
	case "stats":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptool stats <map-file>")
			os.Exit(1)
		}
		runStats(args[0])
	case "all":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "Usage: maptool all <maps-dir>")
			os.Exit(1)
		}
		os.Exit(runAll(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: maptool <command> <path>

Commands:
  validate <maps-dir>      Validate all maps in directory
  viz      <map-file> [-fov]  Render map as ASCII art; -fov shades the
                           visibility field from the spawn point
  stats    <map-file>      Show open/opaque distribution
  all      <maps-dir>      Run validate + viz + stats for all maps`)
}

// --- validate ---

func runValidate(dir string) int {
	allMaps, err := maps.LoadMaps(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	// Rectangularity and spawn placement are already enforced by the
	// loader; what's left is sanity the loader doesn't insist on.
	warnings := 0
	for name, m := range allMaps {
		fmt.Printf("Validating %q...\n", name)
		g := m.Grid

		opaque := 0
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if g.Obstructs(x, y) {
					opaque++
				}
			}
		}
		if opaque == 0 {
			fmt.Printf("  WARN: no obstructions, every cell is mutually visible\n")
			warnings++
		}
		if m.View == nil {
			fmt.Printf("  WARN: no view block, observers will spawn lightless\n")
			warnings++
		}

		fmt.Printf("  OK (%dx%d, %d opaque)\n", g.Width(), g.Height(), opaque)
	}

	fmt.Printf("\nAll %d maps valid, %d warning(s)\n", len(allMaps), warnings)
	return 0
}

// --- viz ---

func runViz(path string, withFOV bool) {
	m, err := maps.LoadMap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s (%dx%d)\n", m.Name, m.Grid.Width(), m.Grid.Height())

	if !withFOV {
		printPlain(m)
		return
	}
	printWithFOV(m)
}

func printPlain(m *maps.Map) {
	g := m.Grid
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if x == m.SpawnX && y == m.SpawnY {
				fmt.Print("@")
				continue
			}
			fmt.Print(string(g.TileAt(x, y).Glyph))
		}
		fmt.Println()
	}
	fmt.Printf("\nSpawn: (%d,%d)\n", m.SpawnX, m.SpawnY)
}

// printWithFOV runs one visibility recompute from the spawn point and shades
// hidden cells the way the interactive renderer would.
func printWithFOV(m *maps.Map) {
	s := game.NewSession(m, 0)
	g := m.Grid

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			switch {
			case x == m.SpawnX && y == m.SpawnY:
				fmt.Print("@")
			case s.Visible[g.Index(x, y)]:
				fmt.Print(string(g.TileAt(x, y).Glyph))
			default:
				fmt.Print("-")
			}
		}
		fmt.Println()
	}

	visCount := 0
	for _, vis := range s.Visible {
		if vis {
			visCount++
		}
	}
	fmt.Printf("\nVisible from spawn: %d/%d cells\n", visCount, g.Width()*g.Height())
}

// --- stats ---

func runStats(path string) {
	m, err := maps.LoadMap(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g := m.Grid
	total := g.Width() * g.Height()
	fmt.Printf("%s (%dx%d = %d tiles)\n\n", m.Name, g.Width(), g.Height(), total)

	// Count by glyph
	counts := make(map[rune]int)
	open := 0
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			tile := g.TileAt(x, y)
			counts[tile.Glyph]++
			if !tile.Opaque {
				open++
			}
		}
	}

	type entry struct {
		glyph rune
		count int
	}
	var sorted []entry
	for glyph, count := range counts {
		sorted = append(sorted, entry{glyph, count})
	}
	// Simple insertion sort
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].count > sorted[j-1].count; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	for _, e := range sorted {
		pct := float64(e.count) / float64(total) * 100
		bar := strings.Repeat("█", int(pct/2))
		fmt.Printf("  %-4q %4d (%5.1f%%) %s\n", e.glyph, e.count, pct, bar)
	}

	fmt.Printf("\nOpen: %d/%d (%.1f%%)\n", open, total, float64(open)/float64(total)*100)
}

// --- all ---

func runAll(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading directory: %v\n", err)
		return 1
	}

	fmt.Println("=== VALIDATE ===")
	code := runValidate(dir)
	if code != 0 {
		return code
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fmt.Printf("\n=== VIZ: %s ===\n", entry.Name())
		runViz(path, true)
		fmt.Printf("\n=== STATS: %s ===\n", entry.Name())
		runStats(path)
	}

	return 0
}
