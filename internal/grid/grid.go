// Package grid contains the coordinate and selection primitives shared by
// the editing engine and the UI, plus the document port the engine edits
// through.
package grid

// Shape describes the geometry of a selection or yanked block.
type Shape int

const (
	// ShapeCharacter is a plain rectangular cell range.
	ShapeCharacter Shape = iota
	// ShapeLine covers entire rows.
	ShapeLine
	// ShapeBlock covers entire columns.
	ShapeBlock
)

// String returns the string representation of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCharacter:
		return "CHARACTER"
	case ShapeLine:
		return "LINE"
	case ShapeBlock:
		return "BLOCK"
	default:
		return "UNKNOWN"
	}
}

// Position is a zero-based grid coordinate.
type Position struct {
	Row    int
	Column int
}

// Clamp returns the position constrained to the document's bounds.
// The result satisfies 0 <= Row < RowCount and 0 <= Column < ColumnCount(Row)
// whenever the document is non-empty.
func (p Position) Clamp(doc Document) Position {
	rows := doc.RowCount()
	if rows == 0 {
		return Position{}
	}
	if p.Row >= rows {
		p.Row = rows - 1
	}
	if p.Row < 0 {
		p.Row = 0
	}
	cols := doc.ColumnCount(p.Row)
	if p.Column >= cols {
		p.Column = cols - 1
	}
	if p.Column < 0 {
		p.Column = 0
	}
	return p
}

// Range is a selection between an anchor and an active end.
// Anchor and Active are stored as assigned; the Start/End accessors
// normalize on read so either end may extend the selection.
type Range struct {
	Shape  Shape
	Anchor Position
	Active Position
}

// StartRow returns the smaller of the anchor and active rows.
func (r Range) StartRow() int {
	return min(r.Anchor.Row, r.Active.Row)
}

// EndRow returns the larger of the anchor and active rows.
func (r Range) EndRow() int {
	return max(r.Anchor.Row, r.Active.Row)
}

// StartColumn returns the smaller of the anchor and active columns.
func (r Range) StartColumn() int {
	return min(r.Anchor.Column, r.Active.Column)
}

// EndColumn returns the larger of the anchor and active columns.
func (r Range) EndColumn() int {
	return max(r.Anchor.Column, r.Active.Column)
}

// Rows returns the number of rows the range spans.
func (r Range) Rows() int {
	return r.EndRow() - r.StartRow() + 1
}

// Columns returns the number of columns the range spans.
func (r Range) Columns() int {
	return r.EndColumn() - r.StartColumn() + 1
}

// Contains reports whether the position falls inside the normalized
// rectangle. Line ranges ignore columns; Block ranges ignore rows.
func (r Range) Contains(p Position) bool {
	switch r.Shape {
	case ShapeLine:
		return p.Row >= r.StartRow() && p.Row <= r.EndRow()
	case ShapeBlock:
		return p.Column >= r.StartColumn() && p.Column <= r.EndColumn()
	default:
		return p.Row >= r.StartRow() && p.Row <= r.EndRow() &&
			p.Column >= r.StartColumn() && p.Column <= r.EndColumn()
	}
}
