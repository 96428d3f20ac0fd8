package engine

import "github.com/zjrosen/cellvim/internal/grid"

// EffectKind identifies an observable side effect of handling a key.
type EffectKind int

const (
	// EffectModeChanged is raised by SwitchMode; Mode carries the new mode.
	EffectModeChanged EffectKind = iota
	// EffectCursorMoved is raised when the authoritative cursor changes;
	// Cursor carries the new position.
	EffectCursorMoved
	// EffectSaveRequested asks the host to write the document (:w).
	EffectSaveRequested
	// EffectQuitRequested asks the host to close the document (:q);
	// Force distinguishes :q!.
	EffectQuitRequested
	// EffectSearchPatternChanged is raised on every search keystroke;
	// Text carries the pattern.
	EffectSearchPatternChanged
	// EffectSearchActivated is raised when a search is committed.
	EffectSearchActivated
	// EffectYankPerformed is raised whenever the register is replaced.
	// Hosts use it to invalidate cross-document yank caches.
	EffectYankPerformed
	// EffectColumnWidthsChanged is raised after column-structure mutations;
	// Columns lists the affected column indices.
	EffectColumnWidthsChanged
	// EffectPrevTabRequested asks the host to focus the previous tab (gT).
	EffectPrevTabRequested
	// EffectNextTabRequested asks the host to focus the next tab (gt).
	EffectNextTabRequested
	// EffectScrollToCenter asks the host to center the cursor row (zz).
	EffectScrollToCenter
	// EffectStatusMessage carries a short user-facing message in Text,
	// e.g. an unknown ex-command error.
	EffectStatusMessage
)

// Effect is an observable result of HandleKey. Only the fields relevant
// to the Kind are populated.
type Effect struct {
	Kind    EffectKind
	Mode    Mode
	Cursor  grid.Position
	Force   bool
	Text    string
	Columns []int
}

// emit appends an effect to the current HandleKey batch.
func (e *Engine) emit(eff Effect) {
	e.effects = append(e.effects, eff)
}

// takeEffects returns and resets the accumulated effects.
func (e *Engine) takeEffects() []Effect {
	out := e.effects
	e.effects = nil
	return out
}

// beginEffects starts a fresh batch for a host-called entry point. When
// the call arrives re-entrantly from inside HandleKey (a keymap-bound
// action), the live batch stays open so the effects reach the HandleKey
// caller instead of being swallowed here.
func (e *Engine) beginEffects() bool {
	if e.dispatching {
		return false
	}
	e.effects = nil
	return true
}

// finishEffects closes a batch opened by beginEffects. Re-entrant calls
// return nil and leave the accumulated effects to the outer dispatch.
func (e *Engine) finishEffects(owned bool) []Effect {
	if !owned {
		return nil
	}
	return e.takeEffects()
}
