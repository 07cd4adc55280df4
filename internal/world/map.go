package world

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMap is returned when a layout is empty, ragged or contains unknown characters.
var ErrMalformedMap = errors.New("malformed map")

// Map is an immutable grid of tiles.
//
// Cells are addressed as (x, y) where x selects the row and y the column of
// the layout text. The player's continuous position uses the same axes, so a
// player at (X, Y) stands in cell (int(X), int(Y)).
type Map struct {
	Width  int // Number of columns (length of each layout line)
	Height int // Number of rows
	tiles  []Tile
}

// New creates a map of the given size whose border is solid wall and interior is open.
func New(width, height int) *Map {
	m := &Map{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
	for x := 0; x < height; x++ {
		for y := 0; y < width; y++ {
			t := TileOpen
			if x == 0 || y == 0 || x == height-1 || y == width-1 {
				t = TileWall
			}
			m.tiles[x*width+y] = t
		}
	}
	return m
}

// Parse builds a map from layout lines where '#' is wall and '.' is open.
// Every line must have the same length.
func Parse(lines []string) (*Map, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedMap)
	}

	width := len([]rune(lines[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty first row", ErrMalformedMap)
	}

	m := &Map{
		Width:  width,
		Height: len(lines),
		tiles:  make([]Tile, 0, width*len(lines)),
	}
	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedMap, row, len(runes), width)
		}
		for col, r := range runes {
			t, ok := parseTile(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown cell %q at row %d column %d", ErrMalformedMap, r, row, col)
			}
			m.tiles = append(m.tiles, t)
		}
	}
	return m, nil
}

// ParseString builds a map from newline separated layout text.
// Blank lines and surrounding whitespace are ignored.
func ParseString(layout string) (*Map, error) {
	var lines []string
	for _, line := range strings.Split(layout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return Parse(lines)
}

// InBounds returns true if (x, y) addresses a cell of the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Height && y >= 0 && y < m.Width
}

// Tile returns the tile at (x, y). Out-of-bounds cells read as wall.
func (m *Map) Tile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.tiles[x*m.Width+y]
}

// IsWall returns true if (x, y) blocks movement and rays.
// Anything outside the map counts as wall.
func (m *Map) IsWall(x, y int) bool {
	return m.Tile(x, y).IsWall()
}

// IsOpen returns true if the player may stand in (x, y).
func (m *Map) IsOpen(x, y int) bool {
	return !m.IsWall(x, y)
}

// IsOpenAt reports whether the continuous position (px, py) lies in an open cell.
func (m *Map) IsOpenAt(px, py float64) bool {
	if px < 0 || py < 0 {
		return false
	}
	return m.IsOpen(int(px), int(py))
}

// Lines returns the layout as text rows, one string per x.
func (m *Map) Lines() []string {
	lines := make([]string, m.Height)
	var sb strings.Builder
	for x := 0; x < m.Height; x++ {
		sb.Reset()
		for y := 0; y < m.Width; y++ {
			sb.WriteRune(m.tiles[x*m.Width+y].Rune())
		}
		lines[x] = sb.String()
	}
	return lines
}

// OpenCount returns the number of navigable cells.
func (m *Map) OpenCount() int {
	n := 0
	for _, t := range m.tiles {
		if !t.IsWall() {
			n++
		}
	}
	return n
}

// NearestOpen returns the centre of the open cell closest to (px, py),
// searching outward ring by ring. ok is false if the map has no open cells.
func (m *Map) NearestOpen(px, py float64) (x, y float64, ok bool) {
	if m.IsOpenAt(px, py) {
		return px, py, true
	}

	cx, cy := int(px), int(py)
	maxRadius := max(m.Width, m.Height)
	for r := 1; r <= maxRadius+max(abs(cx), abs(cy)); r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				// Only the ring at distance r
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				if m.IsOpen(cx+dx, cy+dy) {
					return float64(cx+dx) + 0.5, float64(cy+dy) + 0.5, true
				}
			}
		}
	}
	return 0, 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
