package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"roster/src/internal/sanitize"
)

// Read parses comma-delimited text with a header row. The reader is strict:
// every record must have as many fields as the header.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, parseErr("", err)
	}
	if len(records) == 0 {
		return nil, parseErr("", errors.New("missing header row"))
	}
	t := &Table{Columns: records[0], Rows: records[1:]}
	t.MapHeader(sanitize.Header)
	return t, nil
}

// Load reads the file at path. Files ending in .xlsx are read from their first
// sheet; everything else is treated as CSV. Trailing rows with no values are
// not part of an .xlsx sheet's data and are not returned.
func Load(path string) (*Table, error) {
	if isXLSX(path) {
		return loadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErr(path, err)
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, withPath(err, path)
	}
	return t, nil
}

// WriteCSV writes the header and rows as CSV. A row holding a single empty
// cell is written as "" since csv readers skip blank lines.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write serializes t to path, replacing any existing file. CSV output goes
// through a temp file in the same directory so a failed write leaves the old
// file in place. A replaced file keeps its permissions.
func Write(t *Table, path string) error {
	if isXLSX(path) {
		return writeXLSX(t, path)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".roster-*.csv")
	if err != nil {
		return ioErr(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if err := t.WriteCSV(tmp); err != nil {
		_ = tmp.Close()
		return ioErr(path, err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr(path, err)
	}
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return ioErr(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return ioErr(path, err)
	}
	return nil
}

func isXLSX(path string) bool { return strings.EqualFold(filepath.Ext(path), ".xlsx") }

func loadXLSX(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ioErr(path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, parseErr(path, err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, parseErr(path, errors.New("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, parseErr(path, err)
	}
	if len(rows) == 0 {
		return nil, parseErr(path, errors.New("missing header row"))
	}
	t := &Table{Columns: rows[0]}
	t.MapHeader(sanitize.Header)
	for i, row := range rows[1:] {
		// excelize drops trailing empty cells
		if len(row) > len(t.Columns) {
			return nil, parseErr(path, fmt.Errorf("row %d has %d cells, header has %d", i+2, len(row), len(t.Columns)))
		}
		nr := make([]string, len(t.Columns))
		copy(nr, row)
		t.Rows = append(t.Rows, nr)
	}
	return t, nil
}

func writeXLSX(t *Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	put := func(r int, vals []string) error {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}
	if err := put(1, t.Columns); err != nil {
		return ioErr(path, err)
	}
	for i, vals := range t.Rows {
		if err := put(i+2, vals); err != nil {
			return ioErr(path, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return ioErr(path, err)
	}
	return nil
}
