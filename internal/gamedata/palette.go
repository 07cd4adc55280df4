package gamedata

import "github.com/gdamore/tcell/v2"

// ShadeLevels is the number of intensity steps a palette defines for walls and floors.
const ShadeLevels = 4

// PaletteDef defines the colours used to present a frame, loaded from JSON.
type PaletteDef struct {
	ID          string   `json:"id"`          // Unique identifier (e.g., "classic")
	Name        string   `json:"name"`        // Display name
	Background  string   `json:"background"`  // Hex colour behind every cell
	Wall        []string `json:"wall"`        // Wall colours from faintest to fullest
	Floor       []string `json:"floor"`       // Floor colours from faintest to fullest
	Overlay     string   `json:"overlay"`     // Status line colour
	MinimapWall string   `json:"minimapWall"` // Minimap wall colour
	MinimapOpen string   `json:"minimapOpen"` // Minimap open cell colour
	Player      string   `json:"player"`      // Minimap player marker colour
}

// Color converts a hex colour to a tcell.Color, falling back to white.
func Color(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// ShadeColor returns the colour for a 1-based shade level from a ramp.
// Levels outside the ramp are clamped to its ends.
func ShadeColor(ramp []string, level int) tcell.Color {
	if len(ramp) == 0 {
		return tcell.ColorWhite
	}
	i := min(max(level-1, 0), len(ramp)-1)
	return Color(ramp[i])
}

// PalettesFile represents the structure of palettes.json.
type PalettesFile struct {
	Palettes []PaletteDef `json:"palettes"`
}

// LoadPalettes loads palette definitions from the embedded palettes.json file.
func LoadPalettes() ([]PaletteDef, error) {
	file, err := Load[PalettesFile]("palettes.json")
	if err != nil {
		return nil, err
	}
	return file.Palettes, nil
}
