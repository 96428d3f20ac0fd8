package engine

import "github.com/zjrosen/cellvim/internal/grid"

// YankedContent is an immutable snapshot of a yanked rectangular block.
// It is created by every yank/delete/change operation and consumed (never
// mutated) by paste; the next yank replaces it wholesale.
type YankedContent struct {
	Values  [][]string
	Shape   grid.Shape
	Rows    int
	Columns int
}

// Register holds the single last-yanked-content slot.
type Register struct {
	content *YankedContent
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{}
}

// Set replaces the register contents.
func (r *Register) Set(c YankedContent) {
	r.content = &c
}

// Get returns the register contents and whether the register is non-empty.
func (r *Register) Get() (YankedContent, bool) {
	if r.content == nil {
		return YankedContent{}, false
	}
	return *r.content, true
}

// Empty reports whether nothing has been yanked yet.
func (r *Register) Empty() bool {
	return r.content == nil
}

// yankRect snapshots the window [startRow, startRow+rows) x
// [startCol, startCol+cols) as a dense rectangle: cells missing from
// ragged rows are captured as empty strings, never omitted.
func yankRect(doc grid.Document, startRow, startCol, rows, cols int, shape grid.Shape) YankedContent {
	values := make([][]string, rows)
	for r := 0; r < rows; r++ {
		values[r] = make([]string, cols)
		for c := 0; c < cols; c++ {
			v, _ := doc.GetCell(grid.Position{Row: startRow + r, Column: startCol + c})
			values[r][c] = v
		}
	}
	return YankedContent{Values: values, Shape: shape, Rows: rows, Columns: cols}
}
