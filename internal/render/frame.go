package render

// Kind tells a display what a cell depicts so it can be styled.
type Kind int

const (
	KindVoid Kind = iota
	KindWall
	KindBoundary
	KindFloor
	KindOverlay
	KindMinimapWall
	KindMinimapOpen
	KindPlayer
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindWall:
		return "wall"
	case KindBoundary:
		return "boundary"
	case KindFloor:
		return "floor"
	case KindOverlay:
		return "overlay"
	case KindMinimapWall:
		return "minimap_wall"
	case KindMinimapOpen:
		return "minimap_open"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Cell is one character position of the frame.
type Cell struct {
	Rune  rune
	Kind  Kind
	Level Level
}

// voidCell is written over every cell when a frame is reset.
var voidCell = Cell{Rune: ' ', Kind: KindVoid}

// Frame is a row-major grid of cells handed to a display each tick.
type Frame struct {
	Width  int
	Height int
	cells  []Cell
}

// NewFrame creates a frame filled with void cells.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	f.Reset()
	return f
}

// Reset overwrites every cell with void so nothing survives from the last frame.
func (f *Frame) Reset() {
	for i := range f.cells {
		f.cells[i] = voidCell
	}
}

// Resize changes the frame dimensions, reusing storage when it is large enough.
// The frame is reset.
func (f *Frame) Resize(width, height int) {
	n := width * height
	if cap(f.cells) < n {
		f.cells = make([]Cell, n)
	}
	f.cells = f.cells[:n]
	f.Width, f.Height = width, height
	f.Reset()
}

// InBounds returns true if (x, y) is a cell of the frame.
func (f *Frame) InBounds(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Set writes a cell at column x, row y. Writes outside the frame are dropped.
func (f *Frame) Set(x, y int, c Cell) {
	if !f.InBounds(x, y) {
		return
	}
	f.cells[y*f.Width+x] = c
}

// At returns the cell at column x, row y, or a void cell outside the frame.
func (f *Frame) At(x, y int) Cell {
	if !f.InBounds(x, y) {
		return voidCell
	}
	return f.cells[y*f.Width+x]
}

// WriteString writes s starting at (x, y), clipped to the frame.
func (f *Frame) WriteString(x, y int, s string, kind Kind) {
	for _, r := range s {
		f.Set(x, y, Cell{Rune: r, Kind: kind})
		x++
	}
}

// Row returns row y as a string of runes.
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.Height {
		return ""
	}
	runes := make([]rune, f.Width)
	for x := range runes {
		runes[x] = f.cells[y*f.Width+x].Rune
	}
	return string(runes)
}

// Rows returns every row as a string.
func (f *Frame) Rows() []string {
	rows := make([]string, f.Height)
	for y := range rows {
		rows[y] = f.Row(y)
	}
	return rows
}
