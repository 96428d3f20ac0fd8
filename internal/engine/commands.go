package engine

import (
	"fmt"

	"github.com/zjrosen/cellvim/internal/grid"
)

// ============================================================================
// Snapshot helpers
// ============================================================================

// cellSnapshot remembers one cell's prior value.
type cellSnapshot struct {
	pos   grid.Position
	value string
}

// shapeSnapshot remembers the document's row count and every row's width
// so structural commands can shrink the grid back exactly on undo.
type shapeSnapshot struct {
	rowCount int
	widths   []int
}

func captureShape(doc grid.Document) shapeSnapshot {
	s := shapeSnapshot{rowCount: doc.RowCount()}
	s.widths = make([]int, s.rowCount)
	for r := 0; r < s.rowCount; r++ {
		s.widths[r] = doc.ColumnCount(r)
	}
	return s
}

// restore deletes rows added since the snapshot and resizes surviving
// rows back to their prior widths. Cell values inside the surviving shape
// are the caller's responsibility.
func (s shapeSnapshot) restore(doc grid.Document) {
	for doc.RowCount() > s.rowCount {
		doc.DeleteRow(doc.RowCount() - 1)
	}
	for r := 0; r < s.rowCount && r < doc.RowCount(); r++ {
		if doc.ColumnCount(r) != s.widths[r] {
			doc.ResizeRow(r, s.widths[r])
		}
	}
}

// captureWindow snapshots the existing cells inside a window. Cells the
// document does not have yet are not captured; the shape snapshot removes
// them on undo.
func captureWindow(doc grid.Document, startRow, startCol, rows, cols int) []cellSnapshot {
	var cells []cellSnapshot
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := grid.Position{Row: startRow + r, Column: startCol + c}
			if v, ok := doc.GetCell(pos); ok {
				cells = append(cells, cellSnapshot{pos: pos, value: v})
			}
		}
	}
	return cells
}

func restoreCells(doc grid.Document, cells []cellSnapshot) {
	for _, cs := range cells {
		doc.SetCell(cs.pos, cs.value)
	}
}

// ============================================================================
// EditCellCommand
// ============================================================================

// EditCellCommand sets a single cell's value, widening its row if the
// column does not exist yet.
type EditCellCommand struct {
	doc       grid.Document
	pos       grid.Position
	newValue  string
	prev      string
	prevWidth int
}

// NewEditCellCommand captures the cell's current value and the row width
// for undo.
func NewEditCellCommand(doc grid.Document, pos grid.Position, value string) *EditCellCommand {
	prev, _ := doc.GetCell(pos)
	return &EditCellCommand{
		doc:       doc,
		pos:       pos,
		newValue:  value,
		prev:      prev,
		prevWidth: doc.ColumnCount(pos.Row),
	}
}

func (c *EditCellCommand) Execute() error {
	if c.pos.Row < 0 || c.pos.Row >= c.doc.RowCount() {
		return fmt.Errorf("edit cell: row %d out of range", c.pos.Row)
	}
	if c.doc.ColumnCount(c.pos.Row) <= c.pos.Column {
		c.doc.ResizeRow(c.pos.Row, c.pos.Column+1)
	}
	c.doc.SetCell(c.pos, c.newValue)
	return nil
}

func (c *EditCellCommand) Undo() error {
	if c.doc.ColumnCount(c.pos.Row) != c.prevWidth {
		c.doc.ResizeRow(c.pos.Row, c.prevWidth)
	}
	c.doc.SetCell(c.pos, c.prev)
	return nil
}

// ============================================================================
// Row commands
// ============================================================================

// InsertRowCommand inserts an empty row.
type InsertRowCommand struct {
	doc   grid.Document
	index int
}

// NewInsertRowCommand creates a command inserting an empty row at index.
func NewInsertRowCommand(doc grid.Document, index int) *InsertRowCommand {
	return &InsertRowCommand{doc: doc, index: index}
}

func (c *InsertRowCommand) Execute() error {
	if c.index < 0 || c.index > c.doc.RowCount() {
		return fmt.Errorf("insert row: index %d out of range", c.index)
	}
	c.doc.InsertRow(c.index)
	return nil
}

func (c *InsertRowCommand) Undo() error {
	c.doc.DeleteRow(c.index)
	return nil
}

// DeleteRowsCommand removes a contiguous run of rows, capturing their
// values at construction so undo restores them exactly.
type DeleteRowsCommand struct {
	doc      grid.Document
	startRow int
	count    int
	prev     [][]string
}

// NewDeleteRowsCommand snapshots rows [startRow, startRow+count).
func NewDeleteRowsCommand(doc grid.Document, startRow, count int) *DeleteRowsCommand {
	c := &DeleteRowsCommand{doc: doc, startRow: startRow, count: count}
	for r := startRow; r < startRow+count && r < doc.RowCount(); r++ {
		width := doc.ColumnCount(r)
		row := make([]string, width)
		for col := 0; col < width; col++ {
			row[col], _ = doc.GetCell(grid.Position{Row: r, Column: col})
		}
		c.prev = append(c.prev, row)
	}
	return c
}

func (c *DeleteRowsCommand) Execute() error {
	if c.startRow < 0 || c.startRow >= c.doc.RowCount() {
		return fmt.Errorf("delete rows: row %d out of range", c.startRow)
	}
	// Bottom-to-top keeps indices valid during multi-row deletion.
	for r := c.startRow + len(c.prev) - 1; r >= c.startRow; r-- {
		c.doc.DeleteRow(r)
	}
	return nil
}

func (c *DeleteRowsCommand) Undo() error {
	for i, row := range c.prev {
		index := c.startRow + i
		c.doc.InsertRow(index)
		c.doc.ResizeRow(index, len(row))
		for col, v := range row {
			c.doc.SetCell(grid.Position{Row: index, Column: col}, v)
		}
	}
	return nil
}

// ============================================================================
// Column commands
// ============================================================================

// InsertColumnCommand inserts an empty column across the whole document.
type InsertColumnCommand struct {
	doc   grid.Document
	index int
	shape shapeSnapshot
}

// NewInsertColumnCommand snapshots the grid shape so undo can unpad rows
// that were shorter than the insertion index.
func NewInsertColumnCommand(doc grid.Document, index int) *InsertColumnCommand {
	return &InsertColumnCommand{doc: doc, index: index, shape: captureShape(doc)}
}

func (c *InsertColumnCommand) Execute() error {
	if c.index < 0 {
		return fmt.Errorf("insert column: index %d out of range", c.index)
	}
	c.doc.InsertColumn(c.index)
	return nil
}

func (c *InsertColumnCommand) Undo() error {
	c.doc.DeleteColumn(c.index)
	c.shape.restore(c.doc)
	return nil
}

// DeleteColumnsCommand removes a contiguous run of columns, capturing the
// removed values and the grid shape at construction.
type DeleteColumnsCommand struct {
	doc      grid.Document
	startCol int
	count    int
	shape    shapeSnapshot
	prev     []cellSnapshot
}

// NewDeleteColumnsCommand snapshots columns [startCol, startCol+count).
func NewDeleteColumnsCommand(doc grid.Document, startCol, count int) *DeleteColumnsCommand {
	c := &DeleteColumnsCommand{doc: doc, startCol: startCol, count: count, shape: captureShape(doc)}
	for r := 0; r < doc.RowCount(); r++ {
		for col := startCol; col < startCol+count; col++ {
			pos := grid.Position{Row: r, Column: col}
			if v, ok := doc.GetCell(pos); ok {
				c.prev = append(c.prev, cellSnapshot{pos: pos, value: v})
			}
		}
	}
	return c
}

func (c *DeleteColumnsCommand) Execute() error {
	if c.startCol < 0 {
		return fmt.Errorf("delete columns: column %d out of range", c.startCol)
	}
	// Right-to-left keeps indices valid during multi-column deletion.
	for col := c.startCol + c.count - 1; col >= c.startCol; col-- {
		c.doc.DeleteColumn(col)
	}
	return nil
}

func (c *DeleteColumnsCommand) Undo() error {
	for col := c.startCol; col < c.startCol+c.count; col++ {
		c.doc.InsertColumn(col)
	}
	restoreCells(c.doc, c.prev)
	// InsertColumn pads ragged rows; shrink them back.
	c.shape.restore(c.doc)
	return nil
}

// ============================================================================
// DeleteSelectionCommand
// ============================================================================

// DeleteSelectionCommand deletes a visual selection. Character selections
// clear cell values in place; Line and Block selections remove whole rows
// or columns via the corresponding commands.
type DeleteSelectionCommand struct {
	doc   grid.Document
	rng   grid.Range
	inner Command // row/column removal for Line/Block shapes
	prev  []cellSnapshot
}

// NewDeleteSelectionCommand snapshots the selection contents.
func NewDeleteSelectionCommand(doc grid.Document, rng grid.Range) *DeleteSelectionCommand {
	c := &DeleteSelectionCommand{doc: doc, rng: rng}
	switch rng.Shape {
	case grid.ShapeLine:
		c.inner = NewDeleteRowsCommand(doc, rng.StartRow(), rng.Rows())
	case grid.ShapeBlock:
		c.inner = NewDeleteColumnsCommand(doc, rng.StartColumn(), rng.Columns())
	default:
		c.prev = captureWindow(doc, rng.StartRow(), rng.StartColumn(), rng.Rows(), rng.Columns())
	}
	return c
}

func (c *DeleteSelectionCommand) Execute() error {
	if c.inner != nil {
		return c.inner.Execute()
	}
	for _, cs := range c.prev {
		c.doc.SetCell(cs.pos, "")
	}
	return nil
}

func (c *DeleteSelectionCommand) Undo() error {
	if c.inner != nil {
		return c.inner.Undo()
	}
	restoreCells(c.doc, c.prev)
	return nil
}
