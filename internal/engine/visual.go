package engine

import "github.com/zjrosen/cellvim/internal/grid"

// visualHandler implements Visual mode. The anchor is fixed on entry;
// movement keys extend the active end, and the highlighted set is always
// re-derived from the selection, never patched incrementally.
type visualHandler struct{}

func (visualHandler) OnEnter(e *Engine) {}

func (visualHandler) OnExit(e *Engine) {
	e.selOK = false
}

func (h visualHandler) HandleKey(e *Engine, key string) bool {
	if key == KeyEscape {
		e.SwitchMode(ModeNormal)
		return true
	}
	if e.pending.Empty() && isCountDigit(key, e.count) {
		e.count = e.count*10 + int(key[0]-'0')
		return true
	}
	if !e.pending.Empty() || e.visualSeqs.Starts(key) {
		return dispatchSequence(e, e.visualSeqs, key)
	}
	return h.single(e, key)
}

func (visualHandler) single(e *Engine, key string) bool {
	switch key {
	case "h":
		e.moveCursor(0, -1, e.takeCount())
	case "j":
		e.moveCursor(1, 0, e.takeCount())
	case "k":
		e.moveCursor(-1, 0, e.takeCount())
	case "l":
		e.moveCursor(0, 1, e.takeCount())
	case "0", "H":
		e.count = 0
		e.setCursor(grid.Position{Row: e.cursor.Row})
	case "$":
		e.count = 0
		e.setCursor(grid.Position{Row: e.cursor.Row, Column: e.doc.ColumnCount(e.cursor.Row) - 1})
	case "L":
		e.count = 0
		e.setCursor(grid.Position{Row: e.cursor.Row, Column: lastNonEmptyColumn(e.doc, e.cursor)})
	case "G":
		e.count = 0
		e.setCursor(grid.Position{Row: e.doc.RowCount() - 1, Column: e.cursor.Column})
	case "y":
		e.count = 0
		e.setRegister(e.yankSelection(e.sel))
		e.SwitchMode(ModeNormal)
	case "d", "x":
		e.count = 0
		rng := e.sel
		e.doDeleteSelection(rng)
		e.recordChange(visualDeleteChange{
			shape:   rng.Shape,
			rows:    rng.Rows(),
			columns: rng.Columns(),
		}, 1)
		e.SwitchMode(ModeNormal)
	case "p":
		e.count = 0
		content, ok := e.register.Get()
		if !ok {
			e.SwitchMode(ModeNormal)
			return true
		}
		rng := e.sel
		e.doPasteOverSelection(content, rng)
		e.recordChange(pasteChange{content: content, before: true}, 1)
		e.SwitchMode(ModeNormal)
	case "i":
		e.count = 0
		startBulkEdit(e, CaretStart)
	case "a":
		e.count = 0
		startBulkEdit(e, CaretEnd)
	default:
		return false
	}
	return true
}

// startBulkEdit captures the selection and the originally-highlighted
// cell's value, then enters Insert mode. The commit lands through
// CommitBulkEdit once the host's text box closes.
func startBulkEdit(e *Engine, caret CaretPlacement) {
	original, _ := e.doc.GetCell(e.sel.Anchor)
	e.insert = insertContext{
		kind:     insertBulk,
		caret:    caret,
		seed:     original,
		bulk:     e.sel,
		bulkOK:   true,
		original: original,
	}
	e.SwitchMode(ModeInsert)
}

// newVisualSequences builds the Visual-mode multi-key command table.
func newVisualSequences() *SequenceRegistry {
	r := NewSequenceRegistry()
	r.Register("gg", func(e *Engine, count int) {
		e.setCursor(grid.Position{Row: 0, Column: e.cursor.Column})
	})
	return r
}
