// Package raycast marches rays through a tile map to find the nearest wall
// for each screen column.
package raycast

import (
	"math"
	"sort"

	"github.com/samdwyer/consolefps/internal/entity"
	"github.com/samdwyer/consolefps/internal/world"
)

// Reference casting parameters.
const (
	DefaultFOV               = math.Pi / 4 // Field of view in radians
	DefaultDepth             = 32.0        // Maximum render distance in cells
	DefaultStepSize          = 0.1         // Ray march increment in cells
	DefaultBoundaryTolerance = 0.007       // Corner angle in radians below which a column is a boundary
)

// Hit is the result of casting one ray.
type Hit struct {
	Distance   float64 // Distance to the wall, within [0, Depth]
	Boundary   bool    // Ray grazes a cell corner
	HitWall    bool    // False when the ray left the map or ran out of depth
	CellX      int     // Cell that stopped the ray (valid when HitWall)
	CellY      int
	EyeX, EyeY float64 // Unit direction of the ray
}

// Caster casts rays into a map.
type Caster struct {
	Map               *world.Map
	Depth             float64
	StepSize          float64
	BoundaryTolerance float64
}

// NewCaster creates a caster for the map with reference parameters.
func NewCaster(m *world.Map) *Caster {
	return &Caster{
		Map:               m,
		Depth:             DefaultDepth,
		StepSize:          DefaultStepSize,
		BoundaryTolerance: DefaultBoundaryTolerance,
	}
}

// ColumnAngle returns the ray angle for screen column x of width columns.
// The sweep is linear in angle, which bends straight walls slightly.
func ColumnAngle(playerAngle, fov float64, x, width int) float64 {
	return playerAngle - fov/2 + (float64(x)/float64(width))*fov
}

// Cast marches a ray from (originX, originY) along angle until it enters a
// wall, leaves the map, or travels Depth. Leaving the map reports Depth.
func (c *Caster) Cast(originX, originY, angle float64) Hit {
	eyeX, eyeY := entity.Direction(angle)
	hit := Hit{EyeX: eyeX, EyeY: eyeY}

	step := c.StepSize
	if step <= 0 {
		step = DefaultStepSize
	}

	distance := 0.0
	for distance < c.Depth {
		distance += step

		px := originX + eyeX*distance
		py := originY + eyeY*distance
		// Truncation toward zero would fold (-1, 0) into cell 0
		if px < 0 || py < 0 {
			distance = c.Depth
			break
		}
		testX, testY := int(px), int(py)

		if !c.Map.InBounds(testX, testY) {
			distance = c.Depth
			break
		}

		if c.Map.IsWall(testX, testY) {
			hit.HitWall = true
			hit.CellX, hit.CellY = testX, testY
			hit.Boundary = c.isBoundary(originX, originY, eyeX, eyeY, testX, testY)
			break
		}
	}

	hit.Distance = math.Min(math.Max(distance, 0), c.Depth)
	return hit
}

// CastColumns fills dst with one hit per column for a screen of len(dst) columns.
func (c *Caster) CastColumns(originX, originY, playerAngle, fov float64, dst []Hit) {
	for x := range dst {
		dst[x] = c.Cast(originX, originY, ColumnAngle(playerAngle, fov, x, len(dst)))
	}
}

// corner is one corner of a hit cell as seen from the ray origin.
type corner struct {
	distance float64
	dot      float64 // Cosine of the angle between the ray and the corner
}

// isBoundary reports whether the ray passes within the tolerance angle of
// one of the two cell corners nearest the origin.
func (c *Caster) isBoundary(originX, originY, eyeX, eyeY float64, cellX, cellY int) bool {
	var corners [4]corner
	i := 0
	for tx := 0; tx < 2; tx++ {
		for ty := 0; ty < 2; ty++ {
			vx := float64(cellX+tx) - originX
			vy := float64(cellY+ty) - originY
			d := math.Sqrt(vx*vx + vy*vy)
			dot := 1.0
			if d > 0 {
				dot = eyeX*vx/d + eyeY*vy/d
			}
			corners[i] = corner{distance: d, dot: dot}
			i++
		}
	}

	sort.Slice(corners[:], func(a, b int) bool {
		return corners[a].distance < corners[b].distance
	})

	for _, p := range corners[:2] {
		if angleOf(p.dot) < c.BoundaryTolerance {
			return true
		}
	}
	return false
}

// angleOf returns acos(dot) with dot clamped so rounding never yields NaN.
func angleOf(dot float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, dot)))
}
