// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Cell text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Row numbers, counts
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Grid separators
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused edit box

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Saved, matches found
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Unsaved changes
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Unknown command, load errors

	// Grid surfaces
	GridHeaderColor      = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"} // Column header row
	GridCursorBgColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#1A5276"} // Cell under the cursor
	GridSelectionBgColor = lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#3B3B3B"} // Visual selection
	GridMatchBgColor     = lipgloss.AdaptiveColor{Light: "#FFF3B0", Dark: "#4A4520"} // Search matches

	// Mode indicator colors, vim statusline convention
	ModeNormalColor  = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ModeInsertColor  = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ModeVisualColor  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#CBA6F7"}
	ModeCommandColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}

	// Cell styles
	CellStyle      = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CursorStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridCursorBgColor).Bold(true)
	SelectionStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridSelectionBgColor)
	MatchStyle     = lipgloss.NewStyle().Foreground(TextPrimaryColor).Background(GridMatchBgColor)
	HeaderStyle    = lipgloss.NewStyle().Foreground(GridHeaderColor).Bold(true)
	RowNumberStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	SeparatorStyle = lipgloss.NewStyle().Foreground(BorderDefaultColor)

	// Mode indicator styles
	ModeNormalStyle  = lipgloss.NewStyle().Foreground(ModeNormalColor).Bold(true)
	ModeInsertStyle  = lipgloss.NewStyle().Foreground(ModeInsertColor).Bold(true)
	ModeVisualStyle  = lipgloss.NewStyle().Foreground(ModeVisualColor).Bold(true)
	ModeCommandStyle = lipgloss.NewStyle().Foreground(ModeCommandColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Command line (: and / input)
	CommandLineStyle = lipgloss.NewStyle().
				Foreground(TextPrimaryColor).
				Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
