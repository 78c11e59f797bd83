package utils

import (
	"regexp"
	"strings"
)

// HighlightPalette maps the named highlight colors to their stored hex values.
var HighlightPalette = map[string]string{
	"sand":  "#F9E1B5",
	"peach": "#F4C7B3",
	"mint":  "#BFE3D0",
	"sky":   "#C7D7F4",
}

// HighlightColorNames lists the palette in display order.
var HighlightColorNames = []string{"sand", "peach", "mint", "sky"}

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ResolveHighlightColor turns user input into the color to store.
// Palette names resolve to their hex value, hex codes are upper-cased with a leading '#',
// and anything else is kept verbatim. Blank input returns "".
// Example: "mint" -> "#BFE3D0", "ffeb3b" -> "#FFEB3B"
func ResolveHighlightColor(input string) string {
	color := strings.TrimSpace(input)
	if color == "" {
		return ""
	}
	if hex, ok := HighlightPalette[strings.ToLower(color)]; ok {
		return hex
	}
	if hexColorPattern.MatchString(color) {
		return "#" + strings.ToUpper(strings.TrimPrefix(color, "#"))
	}
	return color
}

// HighlightColorName returns the palette name for a stored color, or "" when the
// color is not part of the palette.
func HighlightColorName(hex string) string {
	for name, value := range HighlightPalette {
		if strings.EqualFold(value, hex) {
			return name
		}
	}
	return ""
}
