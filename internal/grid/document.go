package grid

// Document is the capability surface the editing engine requires from a
// tabular data store. Rows may be ragged: each row has its own column
// count. Implementations are not required to be safe for concurrent use;
// the engine serializes all access.
type Document interface {
	// RowCount returns the number of rows.
	RowCount() int

	// ColumnCount returns the number of cells in the given row.
	// Returns 0 for out-of-range rows.
	ColumnCount(row int) int

	// GetCell returns the value at the position and whether the cell exists.
	GetCell(pos Position) (string, bool)

	// SetCell writes the value at the position. Out-of-range writes are
	// ignored; callers grow the document with EnsureSize first.
	SetCell(pos Position, value string)

	// InsertRow inserts an empty row at the index (0 <= index <= RowCount).
	InsertRow(index int)

	// DeleteRow removes the row at the index and returns its values so
	// callers can snapshot them for undo.
	DeleteRow(index int) []string

	// InsertColumn inserts an empty cell at the index in every row.
	InsertColumn(index int)

	// DeleteColumn removes the cell at the index from every row and returns
	// the removed values, one per row (empty string where a row was too
	// short to have the column).
	DeleteColumn(index int) []string

	// EnsureSize grows the document so that it has at least minRows rows
	// and every row has at least minColumns cells.
	EnsureSize(minRows, minColumns int)

	// ResizeRow truncates or pads the row to exactly columns cells.
	ResizeRow(row, columns int)

	// FindMatches returns the positions of all cells matching the pattern
	// in row-major order (top-to-bottom, then left-to-right). When isRegex
	// is true the pattern is a case-insensitive regular expression,
	// otherwise a case-insensitive substring. Callers pass isRegex=false
	// for patterns that do not compile; implementations need no fallback.
	FindMatches(pattern string, isRegex bool) []Position
}
