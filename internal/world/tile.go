// Package world provides the tile map the player walks through and the rays are cast into.
package world

// Tile represents a single map cell.
type Tile rune

const (
	// TileWall represents a solid wall cell.
	TileWall Tile = '#'
	// TileOpen represents a navigable empty cell.
	TileOpen Tile = '.'
)

// IsWall returns true if the tile blocks movement and rays.
func (t Tile) IsWall() bool {
	return t != TileOpen
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// parseTile converts a layout character into a tile.
func parseTile(r rune) (Tile, bool) {
	switch Tile(r) {
	case TileWall, TileOpen:
		return Tile(r), true
	default:
		return 0, false
	}
}
