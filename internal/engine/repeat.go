package engine

import "github.com/zjrosen/cellvim/internal/grid"

// Change is the tagged payload of the dot-repeat tracker. Each variant
// carries exactly the fields its replay needs. A change is recorded on
// every reversible edit and replayed at the current cursor when the
// repeat key fires.
type Change interface {
	replay(e *Engine, count int)
}

// lastChange pairs the change variant with the count prefix that was in
// effect when it was recorded.
type lastChange struct {
	change Change
	count  int
}

// recordChange overwrites the tracker with the change and the count
// prefix that drove it. Replay itself never re-records, so repeating
// twice replays the same original edit.
func (e *Engine) recordChange(c Change, count int) {
	if e.replaying {
		return
	}
	if count < 1 {
		count = 1
	}
	e.last = &lastChange{change: c, count: count}
}

// repeatLastChange replays the recorded change at the current cursor.
// No-op when nothing has been recorded.
func (e *Engine) repeatLastChange() {
	if e.last == nil {
		return
	}
	e.replaying = true
	defer func() { e.replaying = false }()
	e.last.change.replay(e, e.last.count)
}

// deleteCellChange replays x / diw / daw.
type deleteCellChange struct{}

func (deleteCellChange) replay(e *Engine, count int) {
	e.doDeleteCell()
}

// deleteRowChange replays dd.
type deleteRowChange struct{}

func (deleteRowChange) replay(e *Engine, count int) {
	e.doDeleteRows(count)
}

// insertTextChange replays i/a insert commits. after distinguishes
// append (a) from prepend (i).
type insertTextChange struct {
	text  string
	after bool
}

func (c insertTextChange) replay(e *Engine, count int) {
	current, _ := e.doc.GetCell(e.cursor)
	if c.after {
		e.doEditCell(e.cursor, current+c.text)
	} else {
		e.doEditCell(e.cursor, c.text+current)
	}
}

// openLineChange replays o/O plus the text typed into the new row.
type openLineChange struct {
	above bool
	text  string
}

func (c openLineChange) replay(e *Engine, count int) {
	e.doOpenLine(c.above, c.text)
}

// changeWordChange replays ciw/caw plus the replacement text.
type changeWordChange struct {
	text string
}

func (c changeWordChange) replay(e *Engine, count int) {
	e.doDeleteCell()
	e.doEditCell(e.cursor, c.text)
}

// pasteChange replays p/P with the content that was pasted, not whatever
// the register holds at replay time.
type pasteChange struct {
	content YankedContent
	before  bool
}

func (c pasteChange) replay(e *Engine, count int) {
	e.doPaste(c.content, c.before)
}

// visualDeleteChange replays a visual delete by reconstructing a range
// of the recorded extent anchored at the cursor.
type visualDeleteChange struct {
	shape   grid.Shape
	rows    int
	columns int
}

func (c visualDeleteChange) replay(e *Engine, count int) {
	rng := grid.Range{
		Shape:  c.shape,
		Anchor: e.cursor,
		Active: grid.Position{Row: e.cursor.Row + c.rows - 1, Column: e.cursor.Column + c.columns - 1},
	}
	e.doDeleteSelection(rng)
}

// bulkEditChange replays a visual bulk edit over a range of the recorded
// extent anchored at the cursor.
type bulkEditChange struct {
	shape   grid.Shape
	rows    int
	columns int
	text    string
}

func (c bulkEditChange) replay(e *Engine, count int) {
	rng := grid.Range{
		Shape:  c.shape,
		Anchor: e.cursor,
		Active: grid.Position{Row: e.cursor.Row + c.rows - 1, Column: e.cursor.Column + c.columns - 1},
	}
	e.doBulkEdit(rng, c.text)
}
