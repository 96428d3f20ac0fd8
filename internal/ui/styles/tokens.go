// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextSecondary   ColorToken = "text.secondary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Grid surfaces
	TokenGridHeader      ColorToken = "grid.header"
	TokenGridCursorBg    ColorToken = "grid.cursor.bg"
	TokenGridSelectionBg ColorToken = "grid.selection.bg"
	TokenGridMatchBg     ColorToken = "grid.match.bg"

	// Mode indicator colors
	TokenModeNormal  ColorToken = "mode.normal"
	TokenModeInsert  ColorToken = "mode.insert"
	TokenModeVisual  ColorToken = "mode.visual"
	TokenModeCommand ColorToken = "mode.command"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		// Text hierarchy
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenTextPlaceholder,

		// Borders
		TokenBorderDefault,
		TokenBorderFocus,

		// Status indicators
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		// Grid surfaces
		TokenGridHeader,
		TokenGridCursorBg,
		TokenGridSelectionBg,
		TokenGridMatchBg,

		// Mode indicator colors
		TokenModeNormal,
		TokenModeInsert,
		TokenModeVisual,
		TokenModeCommand,
	}
}
