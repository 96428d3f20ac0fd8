package gridview

import (
	tea "github.com/charmbracelet/bubbletea"
)

// keyString normalizes a Bubble Tea key message into the engine's key
// form: single printable runes as themselves (modifiers folded in, so
// Shift+h arrives as "H") and everything else wrapped in angle brackets,
// e.g. "<escape>", "<ctrl+v>".
func keyString(msg tea.KeyMsg) string {
	s := msg.String()
	if len([]rune(s)) == 1 && s != " " {
		return s
	}
	switch s {
	case " ":
		return "<space>"
	case "esc":
		return "<escape>"
	default:
		return "<" + s + ">"
	}
}
