package engine

// insertHandler implements Insert mode. Literal character input is the
// host's job (it owns the live text box); the engine only reacts to
// Escape, which cancels the edit. Confirmed edits come back through
// CommitInsert / CommitBulkEdit instead of a key.
type insertHandler struct{}

func (insertHandler) OnEnter(e *Engine) {}

func (insertHandler) OnExit(e *Engine) {
	e.insert = insertContext{}
}

func (insertHandler) HandleKey(e *Engine, key string) bool {
	if key == KeyEscape {
		e.SwitchMode(ModeNormal)
		return true
	}
	return false
}
