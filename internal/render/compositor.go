package render

import (
	"fmt"
	"sync"

	"github.com/samdwyer/consolefps/internal/raycast"
)

// View is the camera a scene is rendered from.
type View struct {
	X, Y  float64 // Player position
	Angle float64 // Player heading
}

// Compositor renders scene columns and overlays into a frame.
type Compositor struct {
	Caster         *raycast.Caster
	FOV            float64
	CorrectFisheye bool // Off by default to keep the linear-sweep look
	Workers        int  // Column workers; 0 or 1 renders on the calling goroutine
}

// NewCompositor creates a compositor with the reference field of view.
func NewCompositor(caster *raycast.Caster) *Compositor {
	return &Compositor{
		Caster: caster,
		FOV:    raycast.DefaultFOV,
	}
}

// RenderScene resets the frame and draws every column of the 3D view.
// With more than one worker, columns are split into disjoint ranges and
// RenderScene returns only after all of them are written.
func (c *Compositor) RenderScene(f *Frame, v View) {
	f.Reset()

	workers := min(c.Workers, f.Width)
	if workers <= 1 {
		c.renderColumns(f, v, 0, f.Width)
		return
	}

	chunk := (f.Width + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < f.Width; start += chunk {
		end := min(start+chunk, f.Width)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			c.renderColumns(f, v, start, end)
		}(start, end)
	}
	wg.Wait()
}

// renderColumns draws columns [start, end).
func (c *Compositor) renderColumns(f *Frame, v View, start, end int) {
	for x := start; x < end; x++ {
		rayAngle := raycast.ColumnAngle(v.Angle, c.FOV, x, f.Width)
		hit := c.Caster.Cast(v.X, v.Y, rayAngle)

		distance := hit.Distance
		// A ray that hit nothing stays at full depth so the column remains empty
		if c.CorrectFisheye && hit.HitWall {
			distance = CorrectFisheye(distance, rayAngle, v.Angle)
		}
		c.drawColumn(f, x, distance, hit.Boundary)
	}
}

// drawColumn classifies every row of column x.
func (c *Compositor) drawColumn(f *Frame, x int, distance float64, boundary bool) {
	slab := Project(distance, f.Height)
	wall, level := WallShade(distance, c.Caster.Depth, boundary)

	wallKind := KindWall
	if boundary {
		wallKind = KindBoundary
	}

	for y := 0; y < f.Height; y++ {
		switch {
		case y <= slab.Ceiling:
			f.Set(x, y, voidCell)
		case y <= slab.Floor:
			f.Set(x, y, Cell{Rune: wall, Kind: wallKind, Level: level})
		default:
			r, l := FloorShade(y, f.Height)
			f.Set(x, y, Cell{Rune: r, Kind: KindFloor, Level: l})
		}
	}
}

// Overlay is the auxiliary content drawn over the scene.
type Overlay struct {
	Status  string   // Written on row 0
	Map     []string // Layout rows drawn from row 1 down; nil hides the minimap
	PlayerX int      // Player cell; drawn at column PlayerY, row PlayerX+1
	PlayerY int
}

// DrawOverlay writes the status line and minimap over the scene.
// Overlay cells always replace scene cells and are clipped to the frame.
func (c *Compositor) DrawOverlay(f *Frame, o Overlay) {
	f.WriteString(0, 0, o.Status, KindOverlay)

	if o.Map == nil {
		return
	}
	for ny, line := range o.Map {
		nx := 0
		for _, r := range line {
			kind := KindMinimapOpen
			if r != '.' {
				kind = KindMinimapWall
			}
			f.Set(nx, ny+1, Cell{Rune: r, Kind: kind})
			nx++
		}
	}
	f.Set(o.PlayerY, o.PlayerX+1, Cell{Rune: 'P', Kind: KindPlayer})
}

// StatusLine formats the player position, heading and frame rate.
func StatusLine(x, y, angle, fps float64) string {
	return fmt.Sprintf("X=%3.2f, Y=%3.2f, A=%3.2f FPS=%3.2f ", x, y, angle, fps)
}
