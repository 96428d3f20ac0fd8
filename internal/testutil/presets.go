package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cellvim/internal/grid"
)

// NumberedGrid returns a rows-by-columns document where every cell holds
// "rRcC" for its coordinates, e.g. "r1c2".
func NumberedGrid(rows, columns int) *grid.MemoryDocument {
	data := make([][]string, rows)
	for r := range data {
		row := make([]string, columns)
		for c := range row {
			row[c] = fmt.Sprintf("r%dc%d", r, c)
		}
		data[r] = row
	}
	return grid.NewMemoryDocument(data)
}

// RaggedGrid returns a document with uneven row widths, the shape most
// undo and paste edge cases trip over.
func RaggedGrid() *grid.MemoryDocument {
	return grid.NewMemoryDocument([][]string{
		{"a", "b", "c"},
		{"d"},
		{"e", "f"},
		{},
	})
}

// WriteTempFile writes content to name inside a fresh temp dir and
// returns the full path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
