// Package styles contains Lip Gloss style definitions.
package styles

import "sort"

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// PresetNames returns the built-in preset names sorted alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the current cellvim color scheme.
// Color values extracted from styles.go AdaptiveColor definitions (Dark values).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default cellvim theme",
	Colors: map[ColorToken]string{
		// Text hierarchy
		TokenTextPrimary:     "#CCCCCC",
		TokenTextSecondary:   "#BBBBBB",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		// Borders
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#54A0FF",

		// Status indicators
		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		// Grid surfaces
		TokenGridHeader:      "#7D56F4",
		TokenGridCursorBg:    "#1A5276",
		TokenGridSelectionBg: "#3B3B3B",
		TokenGridMatchBg:     "#4A4520",

		// Mode indicator colors
		TokenModeNormal:  "#54A0FF",
		TokenModeInsert:  "#73F59F",
		TokenModeVisual:  "#CBA6F7",
		TokenModeCommand: "#FF9F43",
	},
}

// CatppuccinMochaPreset is a warm, cozy dark theme.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CDD6F4",
		TokenTextSecondary:   "#BAC2DE",
		TokenTextMuted:       "#6C7086",
		TokenTextPlaceholder: "#585B70",

		TokenBorderDefault: "#45475A",
		TokenBorderFocus:   "#89B4FA",

		TokenStatusSuccess: "#A6E3A1",
		TokenStatusWarning: "#F9E2AF",
		TokenStatusError:   "#F38BA8",

		TokenGridHeader:      "#CBA6F7",
		TokenGridCursorBg:    "#313244",
		TokenGridSelectionBg: "#45475A",
		TokenGridMatchBg:     "#585B70",

		TokenModeNormal:  "#89B4FA",
		TokenModeInsert:  "#A6E3A1",
		TokenModeVisual:  "#CBA6F7",
		TokenModeCommand: "#FAB387",
	},
}

// NordPreset is an arctic, north-bluish palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#ECEFF4",
		TokenTextSecondary:   "#D8DEE9",
		TokenTextMuted:       "#4C566A",
		TokenTextPlaceholder: "#4C566A",

		TokenBorderDefault: "#3B4252",
		TokenBorderFocus:   "#88C0D0",

		TokenStatusSuccess: "#A3BE8C",
		TokenStatusWarning: "#EBCB8B",
		TokenStatusError:   "#BF616A",

		TokenGridHeader:      "#81A1C1",
		TokenGridCursorBg:    "#434C5E",
		TokenGridSelectionBg: "#3B4252",
		TokenGridMatchBg:     "#4C566A",

		TokenModeNormal:  "#88C0D0",
		TokenModeInsert:  "#A3BE8C",
		TokenModeVisual:  "#B48EAD",
		TokenModeCommand: "#D08770",
	},
}

// HighContrastPreset maximizes legibility for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextSecondary:   "#FFFFFF",
		TokenTextMuted:       "#AAAAAA",
		TokenTextPlaceholder: "#AAAAAA",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenGridHeader:      "#FFFF00",
		TokenGridCursorBg:    "#0000FF",
		TokenGridSelectionBg: "#555555",
		TokenGridMatchBg:     "#008800",

		TokenModeNormal:  "#00FFFF",
		TokenModeInsert:  "#00FF00",
		TokenModeVisual:  "#FF00FF",
		TokenModeCommand: "#FFFF00",
	},
}
