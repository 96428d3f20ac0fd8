// Package styles contains Lip Gloss style definitions.
package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import gridview, but gridview
// can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	// Step 1: Start with default preset
	colors := maps.Clone(DefaultPreset.Colors)

	// Step 2: Apply preset if specified
	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	// Step 3: Apply individual color overrides
	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	// Step 4: Apply colors to variables
	applyColors(colors)

	// Step 5: Rebuild all Style objects
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Helper to create adaptive color (uses same color for both modes)
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	// Text hierarchy
	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextSecondary]; ok {
		TextSecondaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenTextPlaceholder]; ok {
		TextPlaceholderColor = makeColor(c)
	}

	// Borders
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderFocus]; ok {
		BorderFocusColor = makeColor(c)
	}

	// Status
	if c, ok := colors[TokenStatusSuccess]; ok {
		StatusSuccessColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusWarning]; ok {
		StatusWarningColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}

	// Grid surfaces
	if c, ok := colors[TokenGridHeader]; ok {
		GridHeaderColor = makeColor(c)
	}
	if c, ok := colors[TokenGridCursorBg]; ok {
		GridCursorBgColor = makeColor(c)
	}
	if c, ok := colors[TokenGridSelectionBg]; ok {
		GridSelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenGridMatchBg]; ok {
		GridMatchBgColor = makeColor(c)
	}

	// Mode indicators
	if c, ok := colors[TokenModeNormal]; ok {
		ModeNormalColor = makeColor(c)
	}
	if c, ok := colors[TokenModeInsert]; ok {
		ModeInsertColor = makeColor(c)
	}
	if c, ok := colors[TokenModeVisual]; ok {
		ModeVisualColor = makeColor(c)
	}
	if c, ok := colors[TokenModeCommand]; ok {
		ModeCommandColor = makeColor(c)
	}
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	// Cell styles
	CellStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CursorStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridCursorBgColor).Bold(true)
	SelectionStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridSelectionBgColor)
	MatchStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridMatchBgColor)
	HeaderStyle = lipgloss.NewStyle().Foreground(GridHeaderColor).Bold(true)
	RowNumberStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	SeparatorStyle = lipgloss.NewStyle().Foreground(BorderDefaultColor)

	// Mode indicators
	ModeNormalStyle = lipgloss.NewStyle().Foreground(ModeNormalColor).Bold(true)
	ModeInsertStyle = lipgloss.NewStyle().Foreground(ModeInsertColor).Bold(true)
	ModeVisualStyle = lipgloss.NewStyle().Foreground(ModeVisualColor).Bold(true)
	ModeCommandStyle = lipgloss.NewStyle().Foreground(ModeCommandColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	// Command line
	CommandLineStyle = lipgloss.NewStyle().
		Foreground(TextPrimaryColor).
		Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(1, 2)

	// Call registered rebuilders (e.g., gridview.RebuildStyles)
	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
