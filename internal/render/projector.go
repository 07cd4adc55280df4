// Package render turns ray hits into shaded glyph columns and composes frames.
package render

import "math"

// MinDistance is the closest a wall is projected from. Anything nearer is
// treated as this distance so the slab never divides by zero.
const MinDistance = 0.1

// Level is a discrete shading intensity. Higher is denser.
type Level int

const (
	LevelNone Level = iota
	LevelFaint
	LevelLight
	LevelMedium
	LevelFull
)

// Wall glyphs from nearest to farthest.
const (
	GlyphFull   = '█'
	GlyphDark   = '▓'
	GlyphMedium = '▒'
	GlyphLight  = '░'
	GlyphEmpty  = ' '
)

// Slab is the vertical extent of a wall in one column.
// Rows up to and including Ceiling are void, rows after Ceiling up to and
// including Floor are wall, the rest are floor.
type Slab struct {
	Ceiling int
	Floor   int
}

// Project converts a wall distance into a slab for a screen of the given height.
// Ceiling is kept within [0, height/2] and Floor within [height/2, height].
func Project(distance float64, height int) Slab {
	if math.IsNaN(distance) || distance < MinDistance {
		distance = MinDistance
	}

	h := float64(height)
	ceiling := int(h/2 - h/distance)
	ceiling = max(0, min(ceiling, height/2))

	return Slab{
		Ceiling: ceiling,
		Floor:   height - ceiling,
	}
}

// WallShade picks the wall glyph for a distance against max depth.
// Boundary columns are blacked out to draw a seam between blocks.
func WallShade(distance, depth float64, boundary bool) (rune, Level) {
	switch {
	case boundary:
		return GlyphEmpty, LevelNone
	case distance <= depth/4:
		return GlyphFull, LevelFull
	case distance < depth/3:
		return GlyphDark, LevelMedium
	case distance < depth/2:
		return GlyphMedium, LevelLight
	case distance < depth:
		return GlyphLight, LevelFaint
	default:
		return GlyphEmpty, LevelNone
	}
}

// FloorShade picks the floor glyph for a screen row. It depends only on how
// far below the horizon the row sits, not on the wall distance.
func FloorShade(row, height int) (rune, Level) {
	half := float64(height) / 2
	b := 1 - (float64(row)-half)/half

	switch {
	case b < 0.25:
		return '#', LevelFull
	case b < 0.5:
		return 'x', LevelMedium
	case b < 0.75:
		return '.', LevelLight
	case b < 0.9:
		return '-', LevelFaint
	default:
		return ' ', LevelNone
	}
}

// CorrectFisheye scales a ray distance by the cosine of its angle off the
// view direction, flattening walls that the linear column sweep bends.
func CorrectFisheye(distance, rayAngle, playerAngle float64) float64 {
	return distance * math.Cos(rayAngle-playerAngle)
}
