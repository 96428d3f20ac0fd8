package tabfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cellvim/internal/grid"
	"github.com/zjrosen/cellvim/internal/tabfile"
	"github.com/zjrosen/cellvim/internal/testutil"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want tabfile.Format
	}{
		{"data.csv", tabfile.FormatCSV},
		{"data.CSV", tabfile.FormatCSV},
		{"data.tsv", tabfile.FormatTSV},
		{"data.tab", tabfile.FormatTSV},
		{"data.txt", tabfile.FormatTSV},
		{"noext", tabfile.FormatTSV},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, tabfile.DetectFormat(tt.path))
		})
	}
}

func TestLoad_TSV(t *testing.T) {
	path := testutil.WriteTempFile(t, "data.tsv", "a\tb\tc\nd\te\tf\n")

	doc, err := tabfile.Load(path)
	require.NoError(t, err)

	require.Equal(t, 2, doc.RowCount())
	v, ok := doc.GetCell(grid.Position{Row: 1, Column: 2})
	require.True(t, ok)
	assert.Equal(t, "f", v)
}

func TestLoad_TSVRaggedRows(t *testing.T) {
	path := testutil.WriteTempFile(t, "data.tsv", "a\tb\tc\nd\ne\tf\n")

	doc, err := tabfile.Load(path)
	require.NoError(t, err)

	require.Equal(t, 3, doc.RowCount())
	assert.Equal(t, 3, doc.ColumnCount(0))
	assert.Equal(t, 1, doc.ColumnCount(1))
	assert.Equal(t, 2, doc.ColumnCount(2))
}

func TestLoad_CSVQuotedFields(t *testing.T) {
	path := testutil.WriteTempFile(t, "data.csv", "name,note\nalice,\"hello, world\"\n")

	doc, err := tabfile.Load(path)
	require.NoError(t, err)

	v, ok := doc.GetCell(grid.Position{Row: 1, Column: 1})
	require.True(t, ok)
	assert.Equal(t, "hello, world", v)
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.tsv")

	doc, err := tabfile.Load(path)
	require.NoError(t, err)

	require.Equal(t, 1, doc.RowCount())
	v, ok := doc.GetCell(grid.Position{Row: 0, Column: 0})
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestLoad_EmptyFileStartsEmpty(t *testing.T) {
	path := testutil.WriteTempFile(t, "data.tsv", "")

	doc, err := tabfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.RowCount())
}

func TestSave_RoundTripTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	doc := testutil.NewBuilder(t).
		WithRow("a", "b", "c").
		WithRow("d", "e", "f").
		Build()

	require.NoError(t, tabfile.Save(path, doc))

	loaded, err := tabfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Rows(), loaded.Rows())
}

func TestSave_RoundTripCSVWithDelimitersInCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	doc := testutil.NewBuilder(t).
		WithRow("plain", "has, comma", `has "quotes"`).
		Build()

	require.NoError(t, tabfile.Save(path, doc))

	loaded, err := tabfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Rows(), loaded.Rows())
}

func TestSave_RaggedRowsKeepWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	doc := testutil.NewBuilder(t).
		WithRow("a", "b", "c").
		WithRow("d").
		Build()

	require.NoError(t, tabfile.Save(path, doc))

	loaded, err := tabfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.RowCount())
	assert.Equal(t, 3, loaded.ColumnCount(0))
	assert.Equal(t, 1, loaded.ColumnCount(1))
}

func TestSave_AtomicReplacesExisting(t *testing.T) {
	path := testutil.WriteTempFile(t, "data.tsv", "old\tcontent\n")
	doc := testutil.NewBuilder(t).WithRow("new").Build()

	require.NoError(t, tabfile.Save(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
