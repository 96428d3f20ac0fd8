package engine

import (
	"github.com/zjrosen/cellvim/internal/grid"
)

// PasteCommand applies register content to the document. The placement
// rule depends on the register shape:
//
//   - Line: insert full rows after (p) or before (P) the anchor row.
//   - Block: insert full columns after (p) or before (P) the anchor column.
//   - Character at a bare cursor: overwrite a rows x columns window
//     starting at the anchor, growing the document as needed.
//   - Character over a visual selection: tile the register across the
//     selection, wrapping with target[r][c] = reg[r mod rows][c mod cols].
type PasteCommand struct {
	doc     grid.Document
	content YankedContent
	anchor  grid.Position
	before  bool
	target  *grid.Range // non-nil for paste over a visual selection

	shape  shapeSnapshot
	prev   []cellSnapshot
	cursor grid.Position
}

// NewPasteCommand creates a paste at the cursor. before selects P over p.
func NewPasteCommand(doc grid.Document, content YankedContent, anchor grid.Position, before bool) *PasteCommand {
	c := &PasteCommand{doc: doc, content: content, anchor: anchor, before: before}
	c.snapshot()
	return c
}

// NewPasteOverSelectionCommand creates a character-wise paste tiled over
// a visual selection. Line and Block registers fall back to anchor-based
// placement at the selection start.
func NewPasteOverSelectionCommand(doc grid.Document, content YankedContent, rng grid.Range) *PasteCommand {
	c := &PasteCommand{
		doc:     doc,
		content: content,
		anchor:  grid.Position{Row: rng.StartRow(), Column: rng.StartColumn()},
	}
	if content.Shape == grid.ShapeCharacter {
		r := rng
		c.target = &r
	}
	c.snapshot()
	return c
}

func (c *PasteCommand) snapshot() {
	c.shape = captureShape(c.doc)
	switch c.content.Shape {
	case grid.ShapeLine, grid.ShapeBlock:
		// Insertion only; shape restore removes the inserted rows/columns
		// and prev stays empty. For Block the removal happens in Undo.
	default:
		startRow, startCol := c.anchor.Row, c.anchor.Column
		rows, cols := c.content.Rows, c.content.Columns
		if c.target != nil {
			startRow, startCol = c.target.StartRow(), c.target.StartColumn()
			rows, cols = c.target.Rows(), c.target.Columns()
		}
		c.prev = captureWindow(c.doc, startRow, startCol, rows, cols)
	}
}

func (c *PasteCommand) Execute() error {
	switch c.content.Shape {
	case grid.ShapeLine:
		c.executeLine()
	case grid.ShapeBlock:
		c.executeBlock()
	default:
		c.executeCharacter()
	}
	return nil
}

func (c *PasteCommand) executeLine() {
	at := c.anchor.Row
	if !c.before {
		at++
	}
	for r := 0; r < c.content.Rows; r++ {
		c.doc.InsertRow(at + r)
		c.doc.ResizeRow(at+r, c.content.Columns)
		for col := 0; col < c.content.Columns; col++ {
			c.doc.SetCell(grid.Position{Row: at + r, Column: col}, c.content.Values[r][col])
		}
	}
	c.cursor = grid.Position{Row: at, Column: c.anchor.Column}
}

func (c *PasteCommand) executeBlock() {
	at := c.anchor.Column
	if !c.before {
		at++
	}
	for col := 0; col < c.content.Columns; col++ {
		c.doc.InsertColumn(at + col)
	}
	for r := 0; r < c.content.Rows && r < c.doc.RowCount(); r++ {
		for col := 0; col < c.content.Columns; col++ {
			c.doc.SetCell(grid.Position{Row: r, Column: at + col}, c.content.Values[r][col])
		}
	}
	c.cursor = grid.Position{Row: c.anchor.Row, Column: at}
}

func (c *PasteCommand) executeCharacter() {
	if c.target != nil {
		// Tile across the selection, wrapping the register.
		for r := 0; r < c.target.Rows(); r++ {
			for col := 0; col < c.target.Columns(); col++ {
				pos := grid.Position{
					Row:    c.target.StartRow() + r,
					Column: c.target.StartColumn() + col,
				}
				c.doc.EnsureSize(pos.Row+1, pos.Column+1)
				c.doc.SetCell(pos, c.content.Values[r%c.content.Rows][col%c.content.Columns])
			}
		}
		c.cursor = grid.Position{Row: c.target.StartRow(), Column: c.target.StartColumn()}
		return
	}
	c.doc.EnsureSize(c.anchor.Row+c.content.Rows, c.anchor.Column+c.content.Columns)
	for r := 0; r < c.content.Rows; r++ {
		for col := 0; col < c.content.Columns; col++ {
			pos := grid.Position{Row: c.anchor.Row + r, Column: c.anchor.Column + col}
			c.doc.SetCell(pos, c.content.Values[r][col])
		}
	}
	c.cursor = c.anchor
}

func (c *PasteCommand) Undo() error {
	if c.content.Shape == grid.ShapeLine {
		at := c.anchor.Row
		if !c.before {
			at++
		}
		for r := at + c.content.Rows - 1; r >= at; r-- {
			c.doc.DeleteRow(r)
		}
	}
	if c.content.Shape == grid.ShapeBlock {
		at := c.anchor.Column
		if !c.before {
			at++
		}
		for col := at + c.content.Columns - 1; col >= at; col-- {
			c.doc.DeleteColumn(col)
		}
	}
	c.shape.restore(c.doc)
	restoreCells(c.doc, c.prev)
	return nil
}

// CursorAfter returns where the cursor lands once the paste executes.
func (c *PasteCommand) CursorAfter() grid.Position {
	return c.cursor
}
