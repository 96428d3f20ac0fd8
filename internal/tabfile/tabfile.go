// Package tabfile loads and saves tabular text files (TSV and CSV) as
// grid documents.
package tabfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjrosen/cellvim/internal/grid"
	"github.com/zjrosen/cellvim/internal/log"
)

// Format identifies the on-disk delimiter convention.
type Format int

const (
	// FormatTSV is tab-separated values, the default.
	FormatTSV Format = iota
	// FormatCSV is comma-separated values per RFC 4180.
	FormatCSV
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatCSV {
		return "csv"
	}
	return "tsv"
}

// delimiter returns the field separator rune for the format.
func (f Format) delimiter() rune {
	if f == FormatCSV {
		return ','
	}
	return '\t'
}

// DetectFormat picks the format from the file extension. Anything that is
// not .csv is treated as TSV.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatTSV
}

// Load reads the file into a document. Rows keep their on-disk widths;
// ragged files stay ragged. A missing file is not an error: it loads as
// a single empty row so the editor has somewhere to put the cursor.
func Load(path string) (*grid.MemoryDocument, error) {
	return LoadFormat(path, DetectFormat(path))
}

// LoadFormat reads the file using an explicit format.
func LoadFormat(path string, format Format) (*grid.MemoryDocument, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Info(log.CatFile, "File does not exist, starting empty", "path", path)
		return grid.NewMemoryDocument([][]string{{""}}), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.Comma = format.delimiter()
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		rows = [][]string{{""}}
	}

	log.Debug(log.CatFile, "Loaded file", "path", path, "format", format.String(), "rows", len(rows))
	return grid.NewMemoryDocument(rows), nil
}

// Save writes the document back to path, picking the format from the
// extension. The write is atomic: a temp file in the same directory is
// renamed into place.
func Save(path string, doc grid.Document) error {
	return SaveFormat(path, doc, DetectFormat(path))
}

// SaveFormat writes the document using an explicit format.
func SaveFormat(path string, doc grid.Document, format Format) error {
	var buf strings.Builder
	writer := csv.NewWriter(&buf)
	writer.Comma = format.delimiter()

	for r := 0; r < doc.RowCount(); r++ {
		width := doc.ColumnCount(r)
		row := make([]string, width)
		for c := 0; c < width; c++ {
			row[c], _ = doc.GetCell(grid.Position{Row: r, Column: c})
		}
		// csv.Writer drops zero-field records; keep blank lines as a
		// single empty cell.
		if len(row) == 0 {
			row = []string{""}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("encoding row %d: %w", r, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	if err := writeAtomic(path, []byte(buf.String())); err != nil {
		log.ErrorErr(log.CatFile, "Failed to save file", err, "path", path)
		return err
	}

	log.Info(log.CatFile, "Saved file", "path", path, "rows", doc.RowCount())
	return nil
}

// writeAtomic writes data to a temp file next to path and renames it in.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
