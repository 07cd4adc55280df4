package world

// Room represents a rectangular open area carved into a generated map.
type Room struct {
	X, Y       int // Top-left cell (X is the row, Y the column)
	Rows, Cols int // Extent of the room along X and Y
}

// Center returns the centre cell of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Rows/2, r.Y + r.Cols/2
}
