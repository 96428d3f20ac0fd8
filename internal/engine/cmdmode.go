package engine

import "strings"

// commandKind distinguishes the two Command-mode submodes.
type commandKind int

const (
	commandSearch commandKind = iota
	commandEx
)

// commandLine is the Command-mode input buffer.
type commandLine struct {
	kind   commandKind
	buffer string
}

func (c commandLine) prefix() string {
	if c.kind == commandSearch {
		return "/"
	}
	return ":"
}

// commandHandler implements Command mode: incremental search under `/`
// and ex-commands under `:`. Input is buffered character-by-character;
// in the Search submode every keystroke re-runs the search.
type commandHandler struct{}

func (commandHandler) OnEnter(e *Engine) {}

func (commandHandler) OnExit(e *Engine) {
	e.cmdline.buffer = ""
}

func (commandHandler) HandleKey(e *Engine, key string) bool {
	switch key {
	case KeyEscape:
		if e.cmdline.kind == commandSearch {
			e.clearSearch()
		}
		e.SwitchMode(ModeNormal)
		return true
	case KeyEnter:
		if e.cmdline.kind == commandSearch {
			e.commitSearch()
		} else {
			runExCommand(e, e.cmdline.buffer)
		}
		e.SwitchMode(ModeNormal)
		return true
	case KeyBackspace:
		if e.cmdline.buffer != "" {
			e.cmdline.buffer = e.cmdline.buffer[:len(e.cmdline.buffer)-1]
		}
		if e.cmdline.kind == commandSearch {
			e.runSearch(e.cmdline.buffer)
		}
		return true
	case KeySpace:
		e.cmdline.buffer += " "
		if e.cmdline.kind == commandSearch {
			e.runSearch(e.cmdline.buffer)
		}
		return true
	}
	if !isRuneKey(key) {
		return false
	}
	e.cmdline.buffer += key
	if e.cmdline.kind == commandSearch {
		e.runSearch(e.cmdline.buffer)
	}
	return true
}

// runExCommand parses and executes the ex-command grammar: w/write,
// q/quit, wq/x, each optionally suffixed with ! to force. Anything else
// surfaces an unknown-command message, never an error past the boundary.
func runExCommand(e *Engine, input string) {
	cmd := strings.TrimSpace(input)
	if cmd == "" {
		return
	}
	force := strings.HasSuffix(cmd, "!")
	base := strings.TrimSuffix(cmd, "!")
	switch base {
	case "w", "write":
		e.emit(Effect{Kind: EffectSaveRequested})
	case "q", "quit":
		e.emit(Effect{Kind: EffectQuitRequested, Force: force})
	case "wq", "x":
		e.emit(Effect{Kind: EffectSaveRequested})
		e.emit(Effect{Kind: EffectQuitRequested, Force: force})
	default:
		e.emit(Effect{Kind: EffectStatusMessage, Text: "unknown command: " + cmd})
	}
}
