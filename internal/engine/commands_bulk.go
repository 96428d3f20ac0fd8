package engine

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zjrosen/cellvim/internal/grid"
)

// ============================================================================
// BulkEditCommand
// ============================================================================

// BulkEditCommand writes the same value into every cell of a range.
// Backs the visual bulk-edit flow: the selection is captured on Insert
// entry and the typed text lands in all selected cells on commit.
type BulkEditCommand struct {
	doc   grid.Document
	rng   grid.Range
	value string
	prev  []cellSnapshot
}

// NewBulkEditCommand snapshots the range contents for undo.
func NewBulkEditCommand(doc grid.Document, rng grid.Range, value string) *BulkEditCommand {
	return &BulkEditCommand{
		doc:   doc,
		rng:   rng,
		value: value,
		prev:  captureWindow(doc, rng.StartRow(), rng.StartColumn(), rng.Rows(), rng.Columns()),
	}
}

func (c *BulkEditCommand) Execute() error {
	for _, cs := range c.prev {
		c.doc.SetCell(cs.pos, c.value)
	}
	return nil
}

func (c *BulkEditCommand) Undo() error {
	restoreCells(c.doc, c.prev)
	return nil
}

// ============================================================================
// BulkFindReplaceCommand
// ============================================================================

// BulkFindReplaceCommand replaces every occurrence of a pattern across
// the whole document. Regex patterns that fail to compile degrade to
// literal substring replacement, matching the search fallback rule.
type BulkFindReplaceCommand struct {
	doc         grid.Document
	pattern     string
	replacement string
	isRegex     bool
	prev        []cellSnapshot
	replaced    int
}

// NewBulkFindReplaceCommand snapshots every cell the replacement touches.
func NewBulkFindReplaceCommand(doc grid.Document, pattern, replacement string, isRegex bool) *BulkFindReplaceCommand {
	c := &BulkFindReplaceCommand{doc: doc, pattern: pattern, replacement: replacement, isRegex: isRegex}
	apply := c.replacer()
	for r := 0; r < doc.RowCount(); r++ {
		for col := 0; col < doc.ColumnCount(r); col++ {
			pos := grid.Position{Row: r, Column: col}
			v, ok := doc.GetCell(pos)
			if !ok {
				continue
			}
			if apply(v) != v {
				c.prev = append(c.prev, cellSnapshot{pos: pos, value: v})
			}
		}
	}
	return c
}

func (c *BulkFindReplaceCommand) replacer() func(string) string {
	if c.isRegex {
		if re, err := regexp.Compile(c.pattern); err == nil {
			return func(s string) string { return re.ReplaceAllString(s, c.replacement) }
		}
	}
	return func(s string) string { return strings.ReplaceAll(s, c.pattern, c.replacement) }
}

func (c *BulkFindReplaceCommand) Execute() error {
	apply := c.replacer()
	c.replaced = 0
	for _, cs := range c.prev {
		c.doc.SetCell(cs.pos, apply(cs.value))
		c.replaced++
	}
	return nil
}

func (c *BulkFindReplaceCommand) Undo() error {
	restoreCells(c.doc, c.prev)
	return nil
}

// Replaced returns how many cells the last Execute changed.
func (c *BulkFindReplaceCommand) Replaced() int {
	return c.replaced
}

// ============================================================================
// AlignColumnsCommand
// ============================================================================

// AlignColumnsCommand pads every cell in the given columns with trailing
// spaces to the column's widest display width. Width is measured in
// terminal cells so CJK text lines up.
type AlignColumnsCommand struct {
	doc     grid.Document
	columns []int
	prev    []cellSnapshot
}

// NewAlignColumnsCommand snapshots the cells in the target columns.
// An empty column list aligns every column of the document.
func NewAlignColumnsCommand(doc grid.Document, columns []int) *AlignColumnsCommand {
	c := &AlignColumnsCommand{doc: doc, columns: columns}
	if len(c.columns) == 0 {
		max := 0
		for r := 0; r < doc.RowCount(); r++ {
			if w := doc.ColumnCount(r); w > max {
				max = w
			}
		}
		for col := 0; col < max; col++ {
			c.columns = append(c.columns, col)
		}
	}
	for _, col := range c.columns {
		for r := 0; r < doc.RowCount(); r++ {
			pos := grid.Position{Row: r, Column: col}
			if v, ok := doc.GetCell(pos); ok {
				c.prev = append(c.prev, cellSnapshot{pos: pos, value: v})
			}
		}
	}
	return c
}

func (c *AlignColumnsCommand) Execute() error {
	for _, col := range c.columns {
		width := 0
		for r := 0; r < c.doc.RowCount(); r++ {
			if v, ok := c.doc.GetCell(grid.Position{Row: r, Column: col}); ok {
				if w := runewidth.StringWidth(strings.TrimRight(v, " ")); w > width {
					width = w
				}
			}
		}
		for r := 0; r < c.doc.RowCount(); r++ {
			pos := grid.Position{Row: r, Column: col}
			v, ok := c.doc.GetCell(pos)
			if !ok {
				continue
			}
			trimmed := strings.TrimRight(v, " ")
			pad := width - runewidth.StringWidth(trimmed)
			c.doc.SetCell(pos, trimmed+strings.Repeat(" ", pad))
		}
	}
	return nil
}

func (c *AlignColumnsCommand) Undo() error {
	restoreCells(c.doc, c.prev)
	return nil
}

// Columns returns the column indices the command touches.
func (c *AlignColumnsCommand) Columns() []int {
	return c.columns
}

// ============================================================================
// SortCommand
// ============================================================================

// SortCommand reorders all rows by the value of one column. The sort is
// stable so rows with equal keys keep their relative order. Undo restores
// the original row order from the snapshot, not by sorting back.
type SortCommand struct {
	doc        grid.Document
	column     int
	descending bool
	prev       [][]string
}

// NewSortCommand snapshots every row of the document.
func NewSortCommand(doc grid.Document, column int, descending bool) *SortCommand {
	c := &SortCommand{doc: doc, column: column, descending: descending}
	for r := 0; r < doc.RowCount(); r++ {
		width := doc.ColumnCount(r)
		row := make([]string, width)
		for col := 0; col < width; col++ {
			row[col], _ = doc.GetCell(grid.Position{Row: r, Column: col})
		}
		c.prev = append(c.prev, row)
	}
	return c
}

func (c *SortCommand) key(row []string) string {
	if c.column < len(row) {
		return row[c.column]
	}
	return ""
}

func (c *SortCommand) Execute() error {
	sorted := make([][]string, len(c.prev))
	copy(sorted, c.prev)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c.descending {
			return c.key(sorted[i]) > c.key(sorted[j])
		}
		return c.key(sorted[i]) < c.key(sorted[j])
	})
	c.writeRows(sorted)
	return nil
}

func (c *SortCommand) Undo() error {
	c.writeRows(c.prev)
	return nil
}

func (c *SortCommand) writeRows(rows [][]string) {
	for r, row := range rows {
		c.doc.ResizeRow(r, len(row))
		for col, v := range row {
			c.doc.SetCell(grid.Position{Row: r, Column: col}, v)
		}
	}
}
