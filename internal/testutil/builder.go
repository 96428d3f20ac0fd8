// Package testutil provides grid fixtures for tests.
package testutil

import (
	"testing"

	"github.com/zjrosen/cellvim/internal/grid"
)

// Builder accumulates rows and cell overrides and produces a document.
type Builder struct {
	t     *testing.T
	rows  [][]string
	cells []cellData
}

// cellData holds a single out-of-band cell write applied after the rows.
type cellData struct {
	pos   grid.Position
	value string
}

// NewBuilder creates a builder for grid fixtures.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithRow appends a row with the given cells.
func (b *Builder) WithRow(cells ...string) *Builder {
	row := make([]string, len(cells))
	copy(row, cells)
	b.rows = append(b.rows, row)
	return b
}

// WithCell sets a single cell after the rows are laid down, growing the
// document as needed. Useful for ragged fixtures.
func (b *Builder) WithCell(row, column int, value string) *Builder {
	b.cells = append(b.cells, cellData{pos: grid.Position{Row: row, Column: column}, value: value})
	return b
}

// Build constructs the document from the accumulated rows and cells.
func (b *Builder) Build() *grid.MemoryDocument {
	b.t.Helper()
	doc := grid.NewMemoryDocument(b.rows)
	for _, c := range b.cells {
		if c.pos.Row >= doc.RowCount() || c.pos.Column >= doc.ColumnCount(c.pos.Row) {
			doc.EnsureSize(c.pos.Row+1, 0)
			if c.pos.Column >= doc.ColumnCount(c.pos.Row) {
				doc.ResizeRow(c.pos.Row, c.pos.Column+1)
			}
		}
		doc.SetCell(c.pos, c.value)
	}
	return doc
}
