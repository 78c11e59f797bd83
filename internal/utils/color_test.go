package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHighlightColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"palette name", "mint", "#BFE3D0"},
		{"palette name any case", "  Sky ", "#C7D7F4"},
		{"hex upper-cased", "#ffeb3b", "#FFEB3B"},
		{"hex without hash", "ffeb3b", "#FFEB3B"},
		{"short hex", "#abc", "#ABC"},
		{"argb hex", "ff112233", "#FF112233"},
		{"opaque value kept", "rgba(0,0,0,0.2)", "rgba(0,0,0,0.2)"},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveHighlightColor(tt.input))
		})
	}
}

func TestHighlightColorName(t *testing.T) {
	assert.Equal(t, "sand", HighlightColorName("#F9E1B5"))
	assert.Equal(t, "peach", HighlightColorName("#f4c7b3"))
	assert.Equal(t, "", HighlightColorName("#FFEB3B"))
}

func TestHighlightPaletteMatchesNames(t *testing.T) {
	assert.Len(t, HighlightPalette, len(HighlightColorNames))
	for _, name := range HighlightColorNames {
		assert.Contains(t, HighlightPalette, name)
	}
}
