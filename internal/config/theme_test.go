package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenedColors_FlatKeys(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text.primary": "#FF0000",
			"mode.normal":  "#00FF00",
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#FF0000", flat["text.primary"])
	assert.Equal(t, "#00FF00", flat["mode.normal"])
}

func TestFlattenedColors_NestedKeys(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"grid": map[string]any{
				"header": "#AAAAAA",
				"cursor": map[string]any{
					"bg": "#BBBBBB",
				},
			},
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#AAAAAA", flat["grid.header"])
	assert.Equal(t, "#BBBBBB", flat["grid.cursor.bg"])
}

func TestFlattenedColors_MapAnyAny(t *testing.T) {
	// YAML decoding sometimes produces map[any]any
	theme := ThemeConfig{
		Colors: map[string]any{
			"status": map[any]any{
				"error": "#FF0000",
			},
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#FF0000", flat["status.error"])
}

func TestFlattenedColors_MixedNesting(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text.muted": "#111111",
			"mode": map[string]any{
				"visual": "#222222",
			},
		},
	}

	flat := theme.FlattenedColors()
	assert.Equal(t, "#111111", flat["text.muted"])
	assert.Equal(t, "#222222", flat["mode.visual"])
}

func TestFlattenedColors_IgnoresNonStrings(t *testing.T) {
	theme := ThemeConfig{
		Colors: map[string]any{
			"text.primary": 42,
			"mode.normal":  "#00FF00",
		},
	}

	flat := theme.FlattenedColors()
	_, ok := flat["text.primary"]
	assert.False(t, ok)
	assert.Equal(t, "#00FF00", flat["mode.normal"])
}

func TestFlattenedColors_Empty(t *testing.T) {
	flat := ThemeConfig{}.FlattenedColors()
	assert.Empty(t, flat)
}
