package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB", "RRGGBB" or the short "#RGB" form to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	digits := strings.TrimPrefix(hex, "#")

	// Expand the short form so "#F80" reads as "#FF8800"
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	var rgb [3]int32
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid %s component in %s: %w", name, hex, err)
		}
		rgb[i] = int32(v)
	}

	return tcell.NewRGBColor(rgb[0], rgb[1], rgb[2]), nil
}
