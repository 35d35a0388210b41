// Package sheet decodes uploaded spreadsheets into raw tables.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DeafMist/guestpost-report/internal/models"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoHeader          = errors.New("sheet has no header row")
)

// Load picks a decoder from the file name extension.
func Load(r io.Reader, filename string) (models.RawTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xlsm":
		return LoadXLSX(r)
	case ".csv":
		return LoadCSV(r)
	default:
		return models.RawTable{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadXLSX reads the first worksheet. Cells are read unformatted so that date cells
// arrive as Excel serial numbers rather than locale dependent text.
func LoadXLSX(r io.Reader) (models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.RawTable{}, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(rows)
}

// LoadCSV reads a comma separated file with a header row. A UTF-8 BOM is ignored.
func LoadCSV(r io.Reader) (models.RawTable, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read csv: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("parse csv: %w", err)
	}
	return fromRecords(records)
}

// fromRecords splits off the header and drops rows without a single non-blank cell.
func fromRecords(records [][]string) (models.RawTable, error) {
	if len(records) == 0 || blank(records[0]) {
		return models.RawTable{}, ErrNoHeader
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = name
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	return models.RawTable{Columns: header, Rows: rows}, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
