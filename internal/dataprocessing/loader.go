package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// Input column names
const (
	ColumnName        = "Name"
	ColumnCountry     = "Country"
	ColumnDateOfBirth = "Date_Of_Birth"
	ColumnTest        = "Test"
	ColumnODI         = "ODI"
	ColumnT20         = "T20"
)

// RequiredColumns lists the columns every input must carry
var RequiredColumns = []string{ColumnName, ColumnCountry, ColumnDateOfBirth, ColumnTest, ColumnODI, ColumnT20}

// naTokens are the cell values treated as missing, matching the NA markers
// spreadsheet and pandas exports commonly emit
var naTokens = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"-NaN": true, "-nan": true, "NULL": true, "null": true, "None": true,
	"#N/A": true, "#N/A N/A": true, "#NA": true, "<NA>": true,
	"-1.#IND": true, "-1.#QNAN": true, "1.#IND": true, "1.#QNAN": true,
}

// dateLayouts are tried in order when parsing Date_Of_Birth. Slash forms are
// month first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"01-02-06",
}

// Table is the raw header and rows of an input file
type Table struct {
	Header []string
	Rows   [][]string
}

// LoadResult holds the cleaned records and row accounting
type LoadResult struct {
	Records     []domain.PlayerRecord
	TotalRows   int
	DroppedRows int
	Encoding    string
}

// LoadFile reads and cleans a player table. Files ending in .xlsx are read
// from their first sheet; anything else is parsed as CSV.
func LoadFile(path string) (*LoadResult, error) {
	var (
		table    *Table
		encoding string
		err      error
	)

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		table, err = ReadWorkbook(path)
		encoding = "xlsx"
	} else {
		table, encoding, err = ReadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	result, err := Clean(table)
	if err != nil {
		return nil, err
	}
	result.Encoding = encoding

	slog.Info("Loaded player table",
		slog.String("path", path),
		slog.String("encoding", encoding),
		slog.Int("total_rows", result.TotalRows),
		slog.Int("kept_rows", len(result.Records)),
		slog.Int("dropped_rows", result.DroppedRows))

	return result, nil
}

// ReadCSV reads a delimited file into a Table
func ReadCSV(path string) (*Table, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.NewInputError("failed to read input file", err).WithContext("path", path)
	}

	decoded, encoding, err := DecodeToUTF8(data)
	if err != nil {
		return nil, "", errors.NewParsingError("failed to decode input file", err).WithContext("path", path)
	}

	table, err := parseCSV(bytes.NewReader(decoded))
	if err != nil {
		return nil, "", errors.NewParsingError("failed to parse CSV", err).WithContext("path", path)
	}
	return table, encoding, nil
}

func parseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	// Row widths are checked during cleaning; short rows are dropped there
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	return &Table{Header: header, Rows: rows}, nil
}

// ReadWorkbook reads the first sheet of an Excel workbook into a Table
func ReadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewInputError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil).WithContext("path", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError("empty sheet: no header row found", nil).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	return &Table{Header: rows[0], Rows: rows[1:]}, nil
}

// Clean drops the leading index column, removes every row holding a missing
// value in any remaining column and parses the survivors. Derived fields are
// left zero; see Derive.
func Clean(table *Table) (*LoadResult, error) {
	header := make([]string, len(table.Header))
	for i, h := range table.Header {
		header[i] = strings.TrimSpace(h)
	}

	first := 0
	if len(header) > 0 && isIndexColumn(header[0]) {
		first = 1
	}

	columns := make(map[string]int, len(header))
	for i := first; i < len(header); i++ {
		if _, dup := columns[header[i]]; !dup {
			columns[header[i]] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewInputError("input is missing required columns", nil).
			WithContext("columns", strings.Join(missing, ","))
	}

	result := &LoadResult{
		Records:   make([]domain.PlayerRecord, 0, len(table.Rows)),
		TotalRows: len(table.Rows),
	}

	for row, cells := range table.Rows {
		if hasMissing(cells, first, len(header)) {
			result.DroppedRows++
			continue
		}

		record, err := parseRecord(row, cells, columns)
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

func isIndexColumn(name string) bool {
	return name == "" || strings.HasPrefix(name, "Unnamed")
}

// IsMissing reports whether a cell value counts as missing
func IsMissing(value string) bool {
	return naTokens[strings.TrimSpace(value)]
}

// hasMissing checks every column from first up to width; a row shorter than
// the header is missing its trailing cells
func hasMissing(cells []string, first, width int) bool {
	if len(cells) < width {
		return true
	}
	for i := first; i < width; i++ {
		if IsMissing(cells[i]) {
			return true
		}
	}
	return false
}

func parseRecord(row int, cells []string, columns map[string]int) (domain.PlayerRecord, error) {
	cell := func(name string) string {
		return strings.TrimSpace(cells[columns[name]])
	}

	record := domain.PlayerRecord{
		Row:     row,
		Name:    cell(ColumnName),
		Country: cell(ColumnCountry),
	}

	dob, err := ParseDate(cell(ColumnDateOfBirth))
	if err != nil {
		return record, errors.NewParsingError("invalid date of birth", err).
			WithContext("row", row).
			WithContext("column", ColumnDateOfBirth)
	}
	record.DateOfBirth = dob

	counts := []struct {
		column string
		dst    *int
	}{
		{ColumnTest, &record.Test},
		{ColumnODI, &record.ODI},
		{ColumnT20, &record.T20},
	}
	for _, c := range counts {
		n, err := ParseCount(cell(c.column))
		if err != nil {
			return record, errors.NewParsingError("invalid match count", err).
				WithContext("row", row).
				WithContext("column", c.column)
		}
		*c.dst = n
	}

	return record, nil
}

// ParseDate parses a date of birth using the supported layouts
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseCount parses a non-negative match count. Integral floats such as
// "12.0" are accepted.
func ParseCount(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return 0, fmt.Errorf("not an integer: %q", value)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count: %d", n)
	}
	return n, nil
}
