package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDoc() *MemoryDocument {
	return NewMemoryDocument([][]string{
		{"A", "B", "C"},
		{"D", "E", "F"},
	})
}

func TestMemoryDocument_GetSetCell(t *testing.T) {
	doc := newTestDoc()

	v, ok := doc.GetCell(Position{Row: 1, Column: 2})
	require.True(t, ok)
	require.Equal(t, "F", v)

	doc.SetCell(Position{Row: 0, Column: 0}, "Z")
	v, _ = doc.GetCell(Position{Row: 0, Column: 0})
	require.Equal(t, "Z", v)

	_, ok = doc.GetCell(Position{Row: 5, Column: 0})
	require.False(t, ok)

	// Out-of-range writes are dropped, not grown.
	doc.SetCell(Position{Row: 5, Column: 0}, "X")
	require.Equal(t, 2, doc.RowCount())
}

func TestMemoryDocument_InsertRow(t *testing.T) {
	doc := newTestDoc()
	doc.InsertRow(1)

	require.Equal(t, 3, doc.RowCount())
	// New row is padded to the widest row.
	require.Equal(t, 3, doc.ColumnCount(1))
	v, _ := doc.GetCell(Position{Row: 2, Column: 0})
	require.Equal(t, "D", v)
}

func TestMemoryDocument_DeleteRow(t *testing.T) {
	doc := newTestDoc()
	removed := doc.DeleteRow(0)

	require.Equal(t, []string{"A", "B", "C"}, removed)
	require.Equal(t, 1, doc.RowCount())
	v, _ := doc.GetCell(Position{Row: 0, Column: 0})
	require.Equal(t, "D", v)
}

func TestMemoryDocument_DeleteRow_OutOfRange(t *testing.T) {
	doc := newTestDoc()
	require.Nil(t, doc.DeleteRow(7))
	require.Equal(t, 2, doc.RowCount())
}

func TestMemoryDocument_InsertColumn(t *testing.T) {
	doc := newTestDoc()
	doc.InsertColumn(1)

	require.Equal(t, 4, doc.ColumnCount(0))
	v, _ := doc.GetCell(Position{Row: 0, Column: 1})
	require.Equal(t, "", v)
	v, _ = doc.GetCell(Position{Row: 0, Column: 2})
	require.Equal(t, "B", v)
}

func TestMemoryDocument_InsertColumn_PadsShortRows(t *testing.T) {
	doc := NewMemoryDocument([][]string{{"a", "b", "c"}, {"d"}})
	doc.InsertColumn(2)

	require.Equal(t, 4, doc.ColumnCount(0))
	require.Equal(t, 3, doc.ColumnCount(1))
	v, _ := doc.GetCell(Position{Row: 1, Column: 2})
	require.Equal(t, "", v)
}

func TestMemoryDocument_DeleteColumn(t *testing.T) {
	doc := newTestDoc()
	removed := doc.DeleteColumn(1)

	require.Equal(t, []string{"B", "E"}, removed)
	require.Equal(t, 2, doc.ColumnCount(0))
	v, _ := doc.GetCell(Position{Row: 0, Column: 1})
	require.Equal(t, "C", v)
}

func TestMemoryDocument_DeleteColumn_RaggedRows(t *testing.T) {
	doc := NewMemoryDocument([][]string{{"a", "b"}, {"c"}})
	removed := doc.DeleteColumn(1)

	require.Equal(t, []string{"b", ""}, removed)
	require.Equal(t, 1, doc.ColumnCount(0))
	require.Equal(t, 1, doc.ColumnCount(1))
}

func TestMemoryDocument_EnsureSize(t *testing.T) {
	doc := newTestDoc()
	doc.EnsureSize(4, 5)

	require.Equal(t, 4, doc.RowCount())
	for r := 0; r < 4; r++ {
		require.Equal(t, 5, doc.ColumnCount(r))
	}
	// Existing cells untouched.
	v, _ := doc.GetCell(Position{Row: 0, Column: 2})
	require.Equal(t, "C", v)
}

func TestMemoryDocument_EnsureSize_NeverShrinks(t *testing.T) {
	doc := newTestDoc()
	doc.EnsureSize(1, 1)
	require.Equal(t, 2, doc.RowCount())
	require.Equal(t, 3, doc.ColumnCount(0))
}

func TestMemoryDocument_ResizeRow(t *testing.T) {
	doc := newTestDoc()

	doc.ResizeRow(0, 1)
	require.Equal(t, 1, doc.ColumnCount(0))

	doc.ResizeRow(1, 5)
	require.Equal(t, 5, doc.ColumnCount(1))
	v, _ := doc.GetCell(Position{Row: 1, Column: 4})
	require.Equal(t, "", v)
}

func TestMemoryDocument_FindMatches_Literal(t *testing.T) {
	doc := NewMemoryDocument([][]string{
		{"apple", "banana"},
		{"grape", "APPLE pie"},
	})

	matches := doc.FindMatches("apple", false)
	require.Equal(t, []Position{
		{Row: 0, Column: 0},
		{Row: 1, Column: 1},
	}, matches)
}

func TestMemoryDocument_FindMatches_Regex(t *testing.T) {
	doc := NewMemoryDocument([][]string{
		{"a1", "b2"},
		{"c3", "dd"},
	})

	matches := doc.FindMatches(`[a-z]\d`, true)
	require.Equal(t, []Position{
		{Row: 0, Column: 0},
		{Row: 0, Column: 1},
		{Row: 1, Column: 0},
	}, matches)
}

func TestMemoryDocument_FindMatches_InvalidRegexMatchesNothing(t *testing.T) {
	doc := NewMemoryDocument([][]string{{"a[b", "ab"}})

	// The literal downgrade happens in the caller; as a regex this
	// pattern does not compile and matches nothing.
	require.Empty(t, doc.FindMatches("a[b", true))
	require.Equal(t, []Position{{Row: 0, Column: 0}}, doc.FindMatches("a[b", false))
}

func TestMemoryDocument_FindMatches_RowMajorOrder(t *testing.T) {
	doc := NewMemoryDocument([][]string{
		{"x", "", "x"},
		{"", "x", ""},
	})

	matches := doc.FindMatches("x", false)
	require.Equal(t, []Position{
		{Row: 0, Column: 0},
		{Row: 0, Column: 2},
		{Row: 1, Column: 1},
	}, matches)
}

func TestMemoryDocument_Rows_IsACopy(t *testing.T) {
	doc := newTestDoc()
	rows := doc.Rows()
	rows[0][0] = "mutated"

	v, _ := doc.GetCell(Position{Row: 0, Column: 0})
	require.Equal(t, "A", v)
}
