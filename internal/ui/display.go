package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/consolefps/internal/gamedata"
	"github.com/samdwyer/consolefps/internal/render"
)

// Display draws frames onto a screen using a colour palette.
type Display struct {
	screen *Screen
	base   tcell.Style
	wall   [gamedata.ShadeLevels + 1]tcell.Style // Indexed by render.Level
	floor  [gamedata.ShadeLevels + 1]tcell.Style
	styles map[render.Kind]tcell.Style
}

// NewDisplay creates a display for the screen. A nil palette draws plain white on black.
func NewDisplay(screen *Screen, palette *gamedata.PaletteDef) *Display {
	if palette == nil {
		palette = &gamedata.PaletteDef{Background: "#000000", Overlay: "#FFFFFF"}
	}

	base := tcell.StyleDefault.Background(gamedata.Color(palette.Background))
	d := &Display{
		screen: screen,
		base:   base,
		styles: map[render.Kind]tcell.Style{
			render.KindVoid:        base,
			render.KindBoundary:    base,
			render.KindOverlay:     base.Foreground(gamedata.Color(palette.Overlay)).Bold(true),
			render.KindMinimapWall: base.Foreground(shadeOr(palette.MinimapWall, palette.Wall, gamedata.ShadeLevels)),
			render.KindMinimapOpen: base.Foreground(shadeOr(palette.MinimapOpen, palette.Floor, 1)),
			render.KindPlayer:      base.Foreground(shadeOr(palette.Player, nil, 0)).Bold(true),
		},
	}
	for level := range d.wall {
		d.wall[level] = base.Foreground(gamedata.ShadeColor(palette.Wall, level))
		d.floor[level] = base.Foreground(gamedata.ShadeColor(palette.Floor, level))
	}
	return d
}

// shadeOr returns hex as a colour, or the ramp colour at level when hex is empty.
func shadeOr(hex string, ramp []string, level int) tcell.Color {
	if hex != "" {
		return gamedata.Color(hex)
	}
	return gamedata.ShadeColor(ramp, level)
}

// Size returns the drawable area in cells.
func (d *Display) Size() (width, height int) {
	return d.screen.Size()
}

// Present copies every cell of the frame to the screen and shows it.
func (d *Display) Present(f *render.Frame) error {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			d.screen.SetContent(x, y, c.Rune, d.style(c))
		}
	}
	d.screen.Show()
	return nil
}

// style returns the style for a cell based on what it depicts.
func (d *Display) style(c render.Cell) tcell.Style {
	level := min(max(int(c.Level), 0), gamedata.ShadeLevels)
	switch c.Kind {
	case render.KindWall:
		return d.wall[level]
	case render.KindFloor:
		return d.floor[level]
	default:
		if s, ok := d.styles[c.Kind]; ok {
			return s
		}
		return d.base
	}
}
