package gridview

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/cellvim/internal/engine"
	"github.com/zjrosen/cellvim/internal/grid"
	"github.com/zjrosen/cellvim/internal/ui/styles"
)

const (
	minColumnWidth = 3
	maxColumnWidth = 24
)

// View renders the grid, the status bar, and the input line.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	widths := columnWidths(m.doc)
	cursor := m.engine.Cursor()
	selected := positionSet(m.engine.Highlighted())
	matches := positionSet(m.engine.SearchMatches())

	gutterWidth := len(fmt.Sprintf("%d", m.doc.RowCount()))
	sep := m.cfg.UI.ColumnSeparator
	if sep == "" {
		sep = " "
	}

	b.WriteString(m.renderHeader(widths, gutterWidth, sep))
	b.WriteString("\n")

	visible := m.visibleRows()
	for r := m.topRow; r < m.doc.RowCount() && r < m.topRow+visible; r++ {
		if m.cfg.UI.ShowRowNumbers {
			b.WriteString(styles.RowNumberStyle.Render(fmt.Sprintf("%*d", gutterWidth, r+1)))
			b.WriteString(" ")
		}
		for c := 0; c < len(widths); c++ {
			pos := grid.Position{Row: r, Column: c}
			value, _ := m.doc.GetCell(pos)
			cell := styles.PadCell(value, widths[c])

			switch {
			case pos == cursor:
				cell = styles.CursorStyle.Render(cell)
			case selected[pos]:
				cell = styles.SelectionStyle.Render(cell)
			case matches[pos]:
				cell = styles.MatchStyle.Render(cell)
			default:
				cell = styles.CellStyle.Render(cell)
			}
			b.WriteString(cell)
			if c < len(widths)-1 {
				b.WriteString(styles.SeparatorStyle.Render(sep))
			}
		}
		b.WriteString("\n")
	}

	if m.cfg.UI.ShowStatusBar {
		b.WriteString(m.renderStatusBar())
		b.WriteString("\n")
	}
	b.WriteString(m.renderInputLine())

	return b.String()
}

// renderHeader draws spreadsheet-style column letters above the grid.
func (m *Model) renderHeader(widths []int, gutterWidth int, sep string) string {
	var b strings.Builder
	if m.cfg.UI.ShowRowNumbers {
		b.WriteString(strings.Repeat(" ", gutterWidth+1))
	}
	for c := 0; c < len(widths); c++ {
		b.WriteString(styles.HeaderStyle.Render(styles.PadCell(columnLabel(c), widths[c])))
		if c < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", runewidth.StringWidth(sep)))
		}
	}
	return b.String()
}

// renderStatusBar draws mode, file, dirty marker, pending keys, and the
// cursor position.
func (m *Model) renderStatusBar() string {
	mode := m.engine.Mode()
	var modeStr string
	switch mode {
	case engine.ModeInsert:
		modeStr = styles.ModeInsertStyle.Render(mode.String())
	case engine.ModeVisual:
		modeStr = styles.ModeVisualStyle.Render(mode.String())
	case engine.ModeCommand:
		modeStr = styles.ModeCommandStyle.Render(mode.String())
	default:
		modeStr = styles.ModeNormalStyle.Render(mode.String())
	}

	parts := []string{modeStr, m.filePath}
	if m.isDirty() {
		parts = append(parts, styles.ModeCommandStyle.Render("[+]"))
	}
	if pending := m.engine.PendingKeys(); pending != "" {
		parts = append(parts, pending)
	}
	if count := m.engine.Count(); count > 0 {
		parts = append(parts, fmt.Sprintf("%d", count))
	}
	cursor := m.engine.Cursor()
	parts = append(parts, fmt.Sprintf("%d:%d", cursor.Row+1, cursor.Column+1))

	return styles.StatusBarStyle.Render(strings.Join(parts, "  "))
}

// renderInputLine draws the bottom line: the command prompt, the cell
// editor, or the latest status message.
func (m *Model) renderInputLine() string {
	if m.engine.Mode() == engine.ModeCommand {
		return styles.CommandLineStyle.Render(m.engine.CommandLine())
	}
	if m.editing {
		return styles.CommandLineStyle.Render(m.input.View())
	}
	if m.statusMsg != "" {
		return styles.StatusBarStyle.Render(m.statusMsg)
	}
	return ""
}

// columnWidths computes the display width of every column across the
// whole document, clamped to keep wide cells from eating the screen.
func columnWidths(doc grid.Document) []int {
	columns := 0
	for r := 0; r < doc.RowCount(); r++ {
		if w := doc.ColumnCount(r); w > columns {
			columns = w
		}
	}

	widths := make([]int, columns)
	for c := range widths {
		widths[c] = minColumnWidth
	}
	for r := 0; r < doc.RowCount(); r++ {
		for c := 0; c < doc.ColumnCount(r); c++ {
			v, _ := doc.GetCell(grid.Position{Row: r, Column: c})
			if w := runewidth.StringWidth(v); w > widths[c] {
				widths[c] = w
			}
		}
	}
	for c := range widths {
		if widths[c] > maxColumnWidth {
			widths[c] = maxColumnWidth
		}
	}
	return widths
}

// columnLabel converts a zero-based column index to a spreadsheet label:
// A..Z, AA, AB, and so on.
func columnLabel(index int) string {
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}

// positionSet indexes positions for constant-time highlight lookups.
func positionSet(positions []grid.Position) map[grid.Position]bool {
	if len(positions) == 0 {
		return nil
	}
	set := make(map[grid.Position]bool, len(positions))
	for _, p := range positions {
		set[p] = true
	}
	return set
}
