package engine

// Key strings use the host's normalized form: single printable runes as
// themselves (modifiers folded in, so Shift+h arrives as "H") and special
// keys in angle brackets, matching the Bubble Tea key naming convention.
const (
	KeyEscape    = "<escape>"
	KeyEnter     = "<enter>"
	KeyBackspace = "<backspace>"
	KeySpace     = "<space>"
	KeyCtrlV     = "<ctrl+v>"
	KeyCtrlR     = "<ctrl+r>"
)

// isRuneKey reports whether the key is a single printable character
// (as opposed to a special key like "<escape>").
func isRuneKey(key string) bool {
	if len(key) == 0 {
		return false
	}
	runes := []rune(key)
	return len(runes) == 1 && runes[0] != '<'
}

// isCountDigit reports whether the key extends a count prefix. A bare "0"
// is the move-to-line-start command, so it only counts as a digit when an
// accumulator is already in progress.
func isCountDigit(key string, current int) bool {
	if len(key) != 1 {
		return false
	}
	c := key[0]
	if c >= '1' && c <= '9' {
		return true
	}
	return c == '0' && current > 0
}
