// Package engine implements the modal editing core: a vim-style state
// machine over a tabular document. The host feeds normalized key strings
// into HandleKey and consumes the returned effects; the engine owns the
// mode, cursor, count prefix, selection, yank register, undo history,
// and dot-repeat state.
package engine

import (
	"time"

	"github.com/zjrosen/cellvim/internal/grid"
)

// CaretPlacement tells the host where to put the text caret when Insert
// mode opens.
type CaretPlacement int

const (
	CaretStart CaretPlacement = iota
	CaretEnd
)

// insertKind records how Insert mode was entered so the commit builds
// the right reversible command and dot-repeat record.
type insertKind int

const (
	insertNone insertKind = iota
	insertCell
	insertAppend
	insertChangeWord
	insertOpenBelow
	insertOpenAbove
	insertBulk
)

// insertContext is the state captured on Insert entry.
type insertContext struct {
	kind     insertKind
	caret    CaretPlacement
	seed     string
	bulk     grid.Range
	bulkOK   bool
	original string
}

// modeHandler is implemented by the four mode value types. HandleKey
// returns whether the key was consumed; unconsumed keys are the host's
// responsibility.
type modeHandler interface {
	OnEnter(e *Engine)
	OnExit(e *Engine)
	HandleKey(e *Engine, key string) bool
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithTimeout overrides the multi-key sequence timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithHistoryDepth overrides the undo stack bound.
func WithHistoryDepth(depth int) Option {
	return func(e *Engine) { e.history = NewHistory(depth) }
}

// WithClock injects the time source used for sequence timeouts.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithKeymap installs a host-supplied custom keybinding table, consulted
// before built-in dispatch.
func WithKeymap(k *Keymap) Option {
	return func(e *Engine) { e.keymap = k }
}

// WithActions installs the action registry the keymap resolves against.
func WithActions(r *ActionRegistry) Option {
	return func(e *Engine) { e.actions = r }
}

// Engine is the modal editing state machine for one open document.
// Not safe for concurrent use; the host serializes key dispatch.
type Engine struct {
	doc      grid.Document
	mode     Mode
	handlers map[Mode]modeHandler

	cursor  grid.Position
	count   int
	pending *KeyBuffer

	register *Register
	history  *History

	last      *lastChange
	replaying bool

	sel   grid.Range
	selOK bool

	search  searchState
	cmdline commandLine
	insert  insertContext

	keymap  *Keymap
	actions *ActionRegistry

	normalSeqs *SequenceRegistry
	visualSeqs *SequenceRegistry

	effects     []Effect
	dispatching bool
	timeout     time.Duration
	now         func() time.Time
}

// New creates an engine over the document, starting in Normal mode with
// the cursor clamped to (0,0).
func New(doc grid.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:      doc,
		mode:     ModeNormal,
		pending:  NewKeyBuffer(),
		register: NewRegister(),
		history:  NewHistory(DefaultHistoryDepth),
		timeout:  DefaultSequenceTimeout,
		now:      time.Now,
	}
	e.handlers = map[Mode]modeHandler{
		ModeNormal:  normalHandler{},
		ModeInsert:  insertHandler{},
		ModeVisual:  visualHandler{},
		ModeCommand: commandHandler{},
	}
	e.normalSeqs = newNormalSequences()
	e.visualSeqs = newVisualSequences()
	for _, opt := range opts {
		opt(e)
	}
	e.cursor = e.cursor.Clamp(doc)
	return e
}

// HandleKey dispatches one normalized key. It returns whether the key
// was consumed and the effects raised while handling it. The expiry
// check runs first, then Escape (the universal abort), then the custom
// keybinding table, then the built-in handler for the active mode.
func (e *Engine) HandleKey(key string) (bool, []Effect) {
	e.effects = nil
	e.dispatching = true
	defer func() { e.dispatching = false }()
	if e.pending.Expired(e.now(), e.timeout) {
		e.pending.Clear()
		e.count = 0
	}
	if key == KeyEscape {
		e.pending.Clear()
		e.count = 0
		handled := e.handlers[e.mode].HandleKey(e, key)
		return handled, e.takeEffects()
	}
	if e.pending.Empty() && e.keymap != nil && e.actions != nil {
		if name, ok := e.keymap.Lookup(e.mode, key); ok {
			if action, ok := e.actions.Get(name); ok {
				count := e.count
				if count < 1 {
					count = 1
				}
				if action.Execute(ActionContext{Engine: e, Document: e.doc, Count: count}) {
					e.count = 0
					return true, e.takeEffects()
				}
			}
		}
	}
	handled := e.handlers[e.mode].HandleKey(e, key)
	return handled, e.takeEffects()
}

// SwitchMode transitions the state machine. No-op when next equals the
// current mode. The ordering is load-bearing: OnExit, set mode, emit,
// OnEnter, then clear the key buffer and count prefix. OnEnter must see
// the mode field already updated.
func (e *Engine) SwitchMode(next Mode) {
	if next == e.mode {
		return
	}
	e.handlers[e.mode].OnExit(e)
	e.mode = next
	e.emit(Effect{Kind: EffectModeChanged, Mode: next})
	e.handlers[e.mode].OnEnter(e)
	e.pending.Clear()
	e.count = 0
}

// ============================================================================
// Read API
// ============================================================================

// Mode returns the active mode.
func (e *Engine) Mode() Mode { return e.mode }

// Cursor returns the authoritative cursor position.
func (e *Engine) Cursor() grid.Position { return e.cursor }

// Count returns the pending count prefix accumulator (0 when none).
func (e *Engine) Count() int { return e.count }

// PendingKeys returns the in-progress multi-key sequence.
func (e *Engine) PendingKeys() string { return e.pending.String() }

// Register returns the yank register.
func (e *Engine) Register() *Register { return e.register }

// CanUndo reports whether the undo stack is non-empty.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether the redo stack is non-empty.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// Selection returns the visual selection and whether one is active.
func (e *Engine) Selection() (grid.Range, bool) { return e.sel, e.selOK }

// Highlighted re-derives the highlighted cell set from the selection,
// from scratch on every call. Character marks the rectangle, Line every
// cell in the selected rows, Block every cell in the selected columns
// across the whole document height.
func (e *Engine) Highlighted() []grid.Position {
	if !e.selOK {
		return nil
	}
	var out []grid.Position
	switch e.sel.Shape {
	case grid.ShapeLine:
		for r := e.sel.StartRow(); r <= e.sel.EndRow() && r < e.doc.RowCount(); r++ {
			for c := 0; c < e.doc.ColumnCount(r); c++ {
				out = append(out, grid.Position{Row: r, Column: c})
			}
		}
	case grid.ShapeBlock:
		for r := 0; r < e.doc.RowCount(); r++ {
			for c := e.sel.StartColumn(); c <= e.sel.EndColumn() && c < e.doc.ColumnCount(r); c++ {
				out = append(out, grid.Position{Row: r, Column: c})
			}
		}
	default:
		for r := e.sel.StartRow(); r <= e.sel.EndRow() && r < e.doc.RowCount(); r++ {
			for c := e.sel.StartColumn(); c <= e.sel.EndColumn() && c < e.doc.ColumnCount(r); c++ {
				out = append(out, grid.Position{Row: r, Column: c})
			}
		}
	}
	return out
}

// SearchPattern returns the live search pattern.
func (e *Engine) SearchPattern() string { return e.search.pattern }

// SearchMatches returns the current match list in row-major order.
func (e *Engine) SearchMatches() []grid.Position { return e.search.matches }

// CommandLine returns the Command-mode input buffer including its prefix.
func (e *Engine) CommandLine() string {
	if e.mode != ModeCommand {
		return ""
	}
	return e.cmdline.prefix() + e.cmdline.buffer
}

// InsertSeed returns the text the host loads into its edit box when
// Insert mode opens, plus the caret placement.
func (e *Engine) InsertSeed() (string, CaretPlacement) {
	return e.insert.seed, e.insert.caret
}

// PendingBulkEdit returns the captured bulk-edit range and the original
// value of the cell that was highlighted when Insert mode opened.
func (e *Engine) PendingBulkEdit() (grid.Range, string, bool) {
	return e.insert.bulk, e.insert.original, e.insert.bulkOK
}

// ============================================================================
// Commit API (host-driven Insert exits)
// ============================================================================

// CommitInsert applies the host's edited text, records the dot-repeat
// change, and returns to Normal mode. The host calls this instead of
// sending Escape when the user confirms an edit; Escape cancels without
// committing.
func (e *Engine) CommitInsert(text string) []Effect {
	owned := e.beginEffects()
	switch e.insert.kind {
	case insertBulk:
		e.commitBulk(text)
		return e.finishEffects(owned)
	case insertChangeWord:
		e.doEditCell(e.cursor, text)
		e.recordChange(changeWordChange{text: text}, 1)
	case insertOpenBelow:
		e.doEditCell(e.cursor, text)
		e.recordChange(openLineChange{above: false, text: text}, 1)
	case insertOpenAbove:
		e.doEditCell(e.cursor, text)
		e.recordChange(openLineChange{above: true, text: text}, 1)
	case insertAppend:
		e.doEditCell(e.cursor, text)
		e.recordChange(insertTextChange{text: text, after: true}, 1)
	default:
		e.doEditCell(e.cursor, text)
		e.recordChange(insertTextChange{text: text}, 1)
	}
	e.SwitchMode(ModeNormal)
	return e.finishEffects(owned)
}

// CommitBulkEdit applies the edited text to every cell of the captured
// bulk-edit range and returns to Normal mode.
func (e *Engine) CommitBulkEdit(text string) []Effect {
	owned := e.beginEffects()
	e.commitBulk(text)
	return e.finishEffects(owned)
}

func (e *Engine) commitBulk(text string) {
	if e.insert.bulkOK {
		e.doBulkEdit(e.insert.bulk, text)
		e.recordChange(bulkEditChange{
			shape:   e.insert.bulk.Shape,
			rows:    e.insert.bulk.Rows(),
			columns: e.insert.bulk.Columns(),
			text:    text,
		}, 1)
	}
	e.SwitchMode(ModeNormal)
}

// ============================================================================
// Engine-level operations (BulkFindReplace / AlignColumns / Sort)
// ============================================================================

// FindReplaceAll replaces every occurrence of pattern across the document
// as one undoable command. Returns the number of cells changed.
func (e *Engine) FindReplaceAll(pattern, replacement string, isRegex bool) (int, []Effect) {
	owned := e.beginEffects()
	cmd := NewBulkFindReplaceCommand(e.doc, pattern, replacement, isRegex)
	if err := e.history.Execute(cmd); err != nil {
		return 0, e.finishEffects(owned)
	}
	e.cursor = e.cursor.Clamp(e.doc)
	return cmd.Replaced(), e.finishEffects(owned)
}

// AlignColumns pads the given columns (all columns when empty) to their
// widest display width as one undoable command.
func (e *Engine) AlignColumns(columns []int) []Effect {
	owned := e.beginEffects()
	cmd := NewAlignColumnsCommand(e.doc, columns)
	if err := e.history.Execute(cmd); err == nil {
		e.emit(Effect{Kind: EffectColumnWidthsChanged, Columns: cmd.Columns()})
	}
	return e.finishEffects(owned)
}

// SortRows reorders all rows by the given column as one undoable command.
func (e *Engine) SortRows(column int, descending bool) []Effect {
	owned := e.beginEffects()
	cmd := NewSortCommand(e.doc, column, descending)
	_ = e.history.Execute(cmd)
	e.cursor = e.cursor.Clamp(e.doc)
	return e.finishEffects(owned)
}

// ============================================================================
// Internal helpers shared by mode handlers and dot-repeat
// ============================================================================

// setCursor clamps and assigns the cursor, emitting CursorMoved when the
// position actually changed.
func (e *Engine) setCursor(p grid.Position) {
	p = p.Clamp(e.doc)
	if p == e.cursor {
		return
	}
	e.cursor = p
	e.emit(Effect{Kind: EffectCursorMoved, Cursor: p})
	if e.selOK {
		e.sel.Active = p
	}
}

// moveCursor applies a relative movement scaled by count.
func (e *Engine) moveCursor(dRow, dCol, count int) {
	e.setCursor(grid.Position{
		Row:    e.cursor.Row + dRow*count,
		Column: e.cursor.Column + dCol*count,
	})
}

// takeCount consumes the count prefix, defaulting to 1.
func (e *Engine) takeCount() int {
	c := e.count
	e.count = 0
	if c < 1 {
		c = 1
	}
	return c
}

func (e *Engine) runCommand(cmd Command) bool {
	return e.history.Execute(cmd) == nil
}

func (e *Engine) setRegister(c YankedContent) {
	e.register.Set(c)
	e.emit(Effect{Kind: EffectYankPerformed})
}

func (e *Engine) doEditCell(pos grid.Position, value string) {
	if pos.Row < 0 || pos.Row >= e.doc.RowCount() {
		return
	}
	if current, _ := e.doc.GetCell(pos); current == value {
		return
	}
	e.runCommand(NewEditCellCommand(e.doc, pos, value))
}

// doYankCell yanks the current cell as a 1x1 Character rectangle.
func (e *Engine) doYankCell() {
	e.setRegister(yankRect(e.doc, e.cursor.Row, e.cursor.Column, 1, 1, grid.ShapeCharacter))
}

// doDeleteCell yanks then clears the current cell (delete = yank + remove).
func (e *Engine) doDeleteCell() {
	e.doYankCell()
	e.doEditCell(e.cursor, "")
}

// rowsWidth returns the widest row in [startRow, startRow+count).
func (e *Engine) rowsWidth(startRow, count int) int {
	width := 0
	for r := startRow; r < startRow+count && r < e.doc.RowCount(); r++ {
		if w := e.doc.ColumnCount(r); w > width {
			width = w
		}
	}
	return width
}

// doYankRows yanks count rows starting at the cursor as shape Line.
func (e *Engine) doYankRows(count int) {
	count = e.clampRowCount(count)
	if count == 0 {
		return
	}
	width := e.rowsWidth(e.cursor.Row, count)
	e.setRegister(yankRect(e.doc, e.cursor.Row, 0, count, width, grid.ShapeLine))
}

// doDeleteRows yanks then removes count rows starting at the cursor.
func (e *Engine) doDeleteRows(count int) {
	count = e.clampRowCount(count)
	if count == 0 {
		return
	}
	e.doYankRows(count)
	e.runCommand(NewDeleteRowsCommand(e.doc, e.cursor.Row, count))
	e.setCursor(e.cursor)
}

func (e *Engine) clampRowCount(count int) int {
	remaining := e.doc.RowCount() - e.cursor.Row
	if remaining < 0 {
		return 0
	}
	if count > remaining {
		count = remaining
	}
	return count
}

// doPaste pastes register content at the cursor.
func (e *Engine) doPaste(content YankedContent, before bool) {
	cmd := NewPasteCommand(e.doc, content, e.cursor, before)
	if !e.runCommand(cmd) {
		return
	}
	e.setCursor(cmd.CursorAfter())
	e.emitPasteEffects(content, cmd.CursorAfter())
}

// doPasteOverSelection pastes over a visual selection with the tiling rule.
func (e *Engine) doPasteOverSelection(content YankedContent, rng grid.Range) {
	cmd := NewPasteOverSelectionCommand(e.doc, content, rng)
	if !e.runCommand(cmd) {
		return
	}
	e.setCursor(cmd.CursorAfter())
	e.emitPasteEffects(content, cmd.CursorAfter())
}

func (e *Engine) emitPasteEffects(content YankedContent, at grid.Position) {
	if content.Shape != grid.ShapeBlock {
		return
	}
	cols := make([]int, content.Columns)
	for i := range cols {
		cols[i] = at.Column + i
	}
	e.emit(Effect{Kind: EffectColumnWidthsChanged, Columns: cols})
}

// yankSelection builds the dense rectangle for a visual selection.
// Line and Block selections always span full rows/columns; trailing
// cells missing from shorter rows come back as empty strings.
func (e *Engine) yankSelection(rng grid.Range) YankedContent {
	switch rng.Shape {
	case grid.ShapeLine:
		width := e.rowsWidth(rng.StartRow(), rng.Rows())
		return yankRect(e.doc, rng.StartRow(), 0, rng.Rows(), width, grid.ShapeLine)
	case grid.ShapeBlock:
		return yankRect(e.doc, 0, rng.StartColumn(), e.doc.RowCount(), rng.Columns(), grid.ShapeBlock)
	default:
		return yankRect(e.doc, rng.StartRow(), rng.StartColumn(), rng.Rows(), rng.Columns(), grid.ShapeCharacter)
	}
}

// doDeleteSelection yanks then deletes a visual selection.
func (e *Engine) doDeleteSelection(rng grid.Range) {
	if rng.StartRow() >= e.doc.RowCount() {
		return
	}
	e.setRegister(e.yankSelection(rng))
	e.runCommand(NewDeleteSelectionCommand(e.doc, rng))
	if rng.Shape == grid.ShapeBlock {
		cols := make([]int, rng.Columns())
		for i := range cols {
			cols[i] = rng.StartColumn() + i
		}
		e.emit(Effect{Kind: EffectColumnWidthsChanged, Columns: cols})
	}
	e.setCursor(grid.Position{Row: rng.StartRow(), Column: rng.StartColumn()})
}

func (e *Engine) doBulkEdit(rng grid.Range, text string) {
	e.runCommand(NewBulkEditCommand(e.doc, rng, text))
}

// doOpenLine inserts a row below or above the cursor and writes text into
// its first cell. Used by dot-repeat; the interactive o/O flow goes
// through Insert mode instead.
func (e *Engine) doOpenLine(above bool, text string) {
	index := e.cursor.Row
	if !above {
		index++
	}
	if !e.runCommand(NewInsertRowCommand(e.doc, index)) {
		return
	}
	e.setCursor(grid.Position{Row: index, Column: 0})
	if text != "" {
		e.doEditCell(e.cursor, text)
	}
}

// undo reverses one command. Still a handled key when the stack is empty.
func (e *Engine) undo() {
	if ok, _ := e.history.Undo(); ok {
		e.setCursor(e.cursor)
	}
}

func (e *Engine) redo() {
	if ok, _ := e.history.Redo(); ok {
		e.setCursor(e.cursor)
	}
}

// startVisual enters Visual mode with the given shape anchored at the
// cursor.
func (e *Engine) startVisual(shape grid.Shape) {
	e.sel = grid.Range{Shape: shape, Anchor: e.cursor, Active: e.cursor}
	e.selOK = true
	e.SwitchMode(ModeVisual)
}

// startInsert enters Insert mode seeded with the current cell value.
func (e *Engine) startInsert(kind insertKind, caret CaretPlacement) {
	seed, _ := e.doc.GetCell(e.cursor)
	e.insert = insertContext{kind: kind, caret: caret, seed: seed}
	e.SwitchMode(ModeInsert)
}

// startCommand enters Command mode in the given submode.
func (e *Engine) startCommand(kind commandKind) {
	e.cmdline = commandLine{kind: kind}
	e.SwitchMode(ModeCommand)
}
