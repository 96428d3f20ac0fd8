package grid

import (
	"regexp"
	"strings"
)

// MemoryDocument is the in-memory Document implementation backing an open
// file. Rows are plain slices; ragged rows are permitted.
type MemoryDocument struct {
	rows [][]string
}

// NewMemoryDocument creates a document from the given rows. The slices are
// copied so the caller may reuse its buffers.
func NewMemoryDocument(rows [][]string) *MemoryDocument {
	d := &MemoryDocument{rows: make([][]string, len(rows))}
	for i, r := range rows {
		d.rows[i] = append([]string(nil), r...)
	}
	return d
}

// Rows returns a deep copy of the document contents.
func (d *MemoryDocument) Rows() [][]string {
	out := make([][]string, len(d.rows))
	for i, r := range d.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// RowCount returns the number of rows.
func (d *MemoryDocument) RowCount() int {
	return len(d.rows)
}

// ColumnCount returns the number of cells in the row, or 0 out of range.
func (d *MemoryDocument) ColumnCount(row int) int {
	if row < 0 || row >= len(d.rows) {
		return 0
	}
	return len(d.rows[row])
}

// GetCell returns the value at the position and whether the cell exists.
func (d *MemoryDocument) GetCell(pos Position) (string, bool) {
	if pos.Row < 0 || pos.Row >= len(d.rows) {
		return "", false
	}
	if pos.Column < 0 || pos.Column >= len(d.rows[pos.Row]) {
		return "", false
	}
	return d.rows[pos.Row][pos.Column], true
}

// SetCell writes the value at the position. Out-of-range writes are ignored.
func (d *MemoryDocument) SetCell(pos Position, value string) {
	if pos.Row < 0 || pos.Row >= len(d.rows) {
		return
	}
	if pos.Column < 0 || pos.Column >= len(d.rows[pos.Row]) {
		return
	}
	d.rows[pos.Row][pos.Column] = value
}

// InsertRow inserts an empty row at the index. The new row gets as many
// cells as the widest existing row so column operations stay aligned.
func (d *MemoryDocument) InsertRow(index int) {
	if index < 0 {
		index = 0
	}
	if index > len(d.rows) {
		index = len(d.rows)
	}
	row := make([]string, d.maxColumns())
	d.rows = append(d.rows, nil)
	copy(d.rows[index+1:], d.rows[index:])
	d.rows[index] = row
}

// DeleteRow removes the row at the index and returns its values.
func (d *MemoryDocument) DeleteRow(index int) []string {
	if index < 0 || index >= len(d.rows) {
		return nil
	}
	removed := d.rows[index]
	d.rows = append(d.rows[:index], d.rows[index+1:]...)
	return removed
}

// InsertColumn inserts an empty cell at the index in every row. Rows
// shorter than the index are padded so the new column exists everywhere.
func (d *MemoryDocument) InsertColumn(index int) {
	if index < 0 {
		index = 0
	}
	for i, row := range d.rows {
		for len(row) < index {
			row = append(row, "")
		}
		row = append(row, "")
		copy(row[index+1:], row[index:])
		row[index] = ""
		d.rows[i] = row
	}
}

// DeleteColumn removes the cell at the index from every row and returns
// the removed values, one per row.
func (d *MemoryDocument) DeleteColumn(index int) []string {
	if index < 0 {
		return nil
	}
	removed := make([]string, len(d.rows))
	for i, row := range d.rows {
		if index >= len(row) {
			removed[i] = ""
			continue
		}
		removed[i] = row[index]
		d.rows[i] = append(row[:index], row[index+1:]...)
	}
	return removed
}

// EnsureSize grows the document to at least minRows rows with at least
// minColumns cells each. Existing cells are never touched.
func (d *MemoryDocument) EnsureSize(minRows, minColumns int) {
	for len(d.rows) < minRows {
		d.rows = append(d.rows, make([]string, 0))
	}
	for i, row := range d.rows {
		for len(row) < minColumns {
			row = append(row, "")
		}
		d.rows[i] = row
	}
}

// ResizeRow truncates or pads the row to exactly columns cells.
func (d *MemoryDocument) ResizeRow(row, columns int) {
	if row < 0 || row >= len(d.rows) || columns < 0 {
		return
	}
	r := d.rows[row]
	for len(r) < columns {
		r = append(r, "")
	}
	d.rows[row] = r[:columns]
}

// FindMatches scans cells in row-major order for the pattern. Regex
// patterns are matched case-insensitively; a pattern that fails to
// compile matches nothing, so callers wanting a literal fallback pass
// isRegex=false themselves.
func (d *MemoryDocument) FindMatches(pattern string, isRegex bool) []Position {
	if pattern == "" {
		return nil
	}

	var re *regexp.Regexp
	if isRegex {
		var err error
		re, err = regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil
		}
	}

	needle := strings.ToLower(pattern)
	var matches []Position
	for r, row := range d.rows {
		for c, cell := range row {
			var hit bool
			if re != nil {
				hit = re.MatchString(cell)
			} else {
				hit = strings.Contains(strings.ToLower(cell), needle)
			}
			if hit {
				matches = append(matches, Position{Row: r, Column: c})
			}
		}
	}
	return matches
}

// maxColumns returns the widest row's cell count.
func (d *MemoryDocument) maxColumns() int {
	widest := 0
	for _, row := range d.rows {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}
