package gamedata

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	c, err := ParseColorful(hex)
	if err != nil {
		return tcell.ColorDefault, err
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// ParseColorful parses a hex color string into a colorful.Color so it can be blended.
func ParseColorful(hex string) (colorful.Color, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return colorful.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return c, nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
