package engine

import "github.com/zjrosen/cellvim/internal/grid"

// normalHandler implements Normal mode: movement, count prefixes,
// multi-key commands, yank/delete/paste, undo, and the search trigger.
type normalHandler struct{}

func (normalHandler) OnEnter(e *Engine) {}
func (normalHandler) OnExit(e *Engine)  {}

func (h normalHandler) HandleKey(e *Engine, key string) bool {
	if key == KeyEscape {
		return true
	}
	if e.pending.Empty() && isCountDigit(key, e.count) {
		e.count = e.count*10 + int(key[0]-'0')
		return true
	}
	if !e.pending.Empty() || e.normalSeqs.Starts(key) {
		return dispatchSequence(e, e.normalSeqs, key)
	}
	return h.single(e, key)
}

// dispatchSequence appends the key to the pending buffer and resolves it
// against the registry: exact match fires, a live prefix keeps buffering,
// anything else discards the buffer but still consumes the key.
func dispatchSequence(e *Engine, seqs *SequenceRegistry, key string) bool {
	e.pending.Append(key, e.now())
	seq := e.pending.String()
	if fn, ok := seqs.Get(seq); ok {
		count := e.takeCount()
		e.pending.Clear()
		fn(e, count)
		return true
	}
	if seqs.HasPrefix(seq) {
		return true
	}
	e.pending.Clear()
	e.count = 0
	return true
}

func (normalHandler) single(e *Engine, key string) bool {
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
		row := e.doc.RowCount() - 1
		if e.count > 0 {
			row = e.count - 1
		}
		e.count = 0
		e.setCursor(grid.Position{Row: row, Column: e.cursor.Column})
	case "i":
		e.count = 0
		e.startInsert(insertCell, CaretStart)
	case "a":
		e.count = 0
		e.startInsert(insertAppend, CaretEnd)
	case "o":
		e.count = 0
		openLine(e, false)
	case "O":
		e.count = 0
		openLine(e, true)
	case "v":
		e.count = 0
		e.startVisual(grid.ShapeCharacter)
	case "V":
		e.count = 0
		e.startVisual(grid.ShapeLine)
	case KeyCtrlV:
		e.count = 0
		e.startVisual(grid.ShapeBlock)
	case "p":
		pasteAtCursor(e, false)
	case "P":
		pasteAtCursor(e, true)
	case "x":
		count := e.takeCount()
		e.doDeleteCell()
		e.recordChange(deleteCellChange{}, count)
	case "u":
		e.count = 0
		e.undo()
	case KeyCtrlR:
		e.count = 0
		e.redo()
	case ".":
		e.count = 0
		e.repeatLastChange()
	case "/":
		e.count = 0
		e.startCommand(commandSearch)
	case ":":
		e.count = 0
		e.startCommand(commandEx)
	case "n":
		e.count = 0
		e.nextMatch(true)
	case "N":
		e.count = 0
		e.nextMatch(false)
	default:
		return false
	}
	return true
}

// pasteAtCursor pastes the register at the cursor. An empty register is
// a handled no-op.
func pasteAtCursor(e *Engine, before bool) {
	count := e.takeCount()
	content, ok := e.register.Get()
	if !ok {
		return
	}
	e.doPaste(content, before)
	e.recordChange(pasteChange{content: content, before: before}, count)
}

// openLine inserts a row below/above the cursor through the history,
// moves to its first cell, and enters Insert mode.
func openLine(e *Engine, above bool) {
	index := e.cursor.Row
	if !above {
		index++
	}
	if !e.runCommand(NewInsertRowCommand(e.doc, index)) {
		return
	}
	e.setCursor(grid.Position{Row: index, Column: 0})
	kind := insertOpenBelow
	if above {
		kind = insertOpenAbove
	}
	e.startInsert(kind, CaretStart)
}

// lastNonEmptyColumn finds the rightmost non-empty cell in the cursor
// row, falling back to the current column when the row is entirely empty.
func lastNonEmptyColumn(doc grid.Document, cursor grid.Position) int {
	for c := doc.ColumnCount(cursor.Row) - 1; c >= 0; c-- {
		if v, ok := doc.GetCell(grid.Position{Row: cursor.Row, Column: c}); ok && v != "" {
			return c
		}
	}
	return cursor.Column
}

// newNormalSequences builds the Normal-mode multi-key command table.
func newNormalSequences() *SequenceRegistry {
	r := NewSequenceRegistry()
	r.Register("gg", func(e *Engine, count int) {
		row := 0
		if count > 1 {
			row = count - 1
		}
		e.setCursor(grid.Position{Row: row, Column: e.cursor.Column})
	})
	r.Register("gt", func(e *Engine, count int) {
		e.emit(Effect{Kind: EffectNextTabRequested})
	})
	r.Register("gT", func(e *Engine, count int) {
		e.emit(Effect{Kind: EffectPrevTabRequested})
	})
	r.Register("zz", func(e *Engine, count int) {
		e.emit(Effect{Kind: EffectScrollToCenter})
	})
	r.Register("yy", func(e *Engine, count int) {
		e.doYankRows(count)
	})
	r.Register("dd", func(e *Engine, count int) {
		e.doDeleteRows(count)
		e.recordChange(deleteRowChange{}, count)
	})
	yankCell := func(e *Engine, count int) { e.doYankCell() }
	r.Register("yiw", yankCell)
	r.Register("yaw", yankCell)
	deleteCell := func(e *Engine, count int) {
		e.doDeleteCell()
		e.recordChange(deleteCellChange{}, count)
	}
	r.Register("diw", deleteCell)
	r.Register("daw", deleteCell)
	changeCell := func(e *Engine, count int) {
		e.doDeleteCell()
		e.startInsert(insertChangeWord, CaretStart)
	}
	r.Register("ciw", changeCell)
	r.Register("caw", changeCell)
	return r
}
