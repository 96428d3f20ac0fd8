package engine

// Mode represents the current editing mode.
type Mode int

const (
	// ModeNormal is the default mode for navigation and commands.
	ModeNormal Mode = iota
	// ModeInsert is the mode for editing the current cell's text.
	ModeInsert
	// ModeVisual is the mode for rectangular/row/column selection.
	ModeVisual
	// ModeCommand is the mode for search and ex-command input.
	ModeCommand
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// ParseMode converts a mode name (as used in keybinding config) to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "normal", "NORMAL":
		return ModeNormal, true
	case "insert", "INSERT":
		return ModeInsert, true
	case "visual", "VISUAL":
		return ModeVisual, true
	case "command", "COMMAND":
		return ModeCommand, true
	default:
		return ModeNormal, false
	}
}
