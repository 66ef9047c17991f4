package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"
)

type jsonSpawn struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonView struct {
	Radius        float64 `json:"radius"`
	FOVDegrees    float64 `json:"fov_degrees"`
	FacingDegrees float64 `json:"facing_degrees"`
}

type jsonMap struct {
	Name  string    `json:"name"`
	Empty string    `json:"empty"`
	Spawn jsonSpawn `json:"spawn"`
	Rows  []string  `json:"rows"`
	View  *jsonView `json:"view,omitempty"`
}

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "noise seed")
	width := flag.Int("width", 60, "map width in cells")
	height := flag.Int("height", 30, "map height in cells")
	name := flag.String("name", "Generated", "map name")
	out := flag.String("out", "", "output file (default stdout)")
	density := flag.Float64("density", 0.62, "noise threshold above which a cell becomes a wall (0-1)")
	freq := flag.Float64("freq", 0.09, "base noise frequency")
	radius := flag.Float64("radius", 12, "default view radius (0 for a lightless map)")
	fov := flag.Float64("fov", 120, "default field of view in degrees")
	flag.Parse()

	if *width < 5 || *height < 5 {
		fmt.Fprintln(os.Stderr, "map must be at least 5x5")
		os.Exit(1)
	}
	if *density <= 0 || *density >= 1 {
		fmt.Fprintln(os.Stderr, "density must be between 0 and 1")
		os.Exit(1)
	}

	cells := generate(*width, *height, *seed, *freq, *density)
	sx, sy := findSpawn(cells, *width/2, *height/2)
	if sx < 0 {
		fmt.Fprintln(os.Stderr, "no open cell for spawn, try a lower density")
		os.Exit(1)
	}

	m := jsonMap{
		Name:  *name,
		Empty: ".",
		Spawn: jsonSpawn{X: sx, Y: sy},
		Rows:  renderRows(cells),
	}
	if *radius > 0 {
		m.View = &jsonView{Radius: *radius, FOVDegrees: *fov, FacingDegrees: 90}
	}

	data, err := json.MarshalIndent(&m, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%dx%d, spawn %d,%d)\n", *out, *width, *height, sx, sy)
}

// generate builds the wall layout: a solid border with noise-thresholded
// obstructions inside.
func generate(width, height int, seed int64, freq, density float64) [][]bool {
	noise := newNoiseField(seed)
	r := rand.New(rand.NewSource(seed))
	// Offset into noise space so equal-sized maps with different seeds
	// do not share features.
	ox := r.Float64() * 1000
	oy := r.Float64() * 1000

	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
		for x := range cells[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				cells[y][x] = true
				continue
			}
			v := noise.fractal(float64(x)+ox, float64(y)+oy, freq, 4, 2.0, 0.5)
			cells[y][x] = v > density
		}
	}
	return cells
}

// findSpawn returns the open cell nearest to (cx, cy) in ring order, or
// (-1, -1) when the interior is fully walled.
func findSpawn(cells [][]bool, cx, cy int) (int, int) {
	height := len(cells)
	width := len(cells[0])
	maxRing := width
	if height > maxRing {
		maxRing = height
	}
	for ring := 0; ring < maxRing; ring++ {
		for y := cy - ring; y <= cy+ring; y++ {
			for x := cx - ring; x <= cx+ring; x++ {
				if x < 0 || y < 0 || x >= width || y >= height {
					continue
				}
				if !cells[y][x] {
					return x, y
				}
			}
		}
	}
	return -1, -1
}

func renderRows(cells [][]bool) []string {
	rows := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for _, wall := range row {
			if wall {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}
