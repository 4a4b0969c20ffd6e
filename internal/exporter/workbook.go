package exporter

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetPlayers   = "Players"
	SheetAverages  = "Country Averages"
	SheetTop       = "Top Players"
	defaultSheet   = "Sheet1"
	playerColWidth = 16
)

// AverageHeaders are the columns of the country averages sheet
var AverageHeaders = []string{"Country", "Players", "Test", "ODI", "T20"}

// TopHeaders are the columns of the top players sheet
var TopHeaders = []string{"Rank", "Name", "Country", "Age", "Total_Matches"}

// WorkbookExporter writes the player table and its aggregates to an Excel
// workbook
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: logger}
}

// Export writes one sheet each for the players, the per-country averages and
// the top players, replacing any existing file
func (e *WorkbookExporter) Export(path string, records []domain.PlayerRecord, averages []domain.CountryAverage, top []domain.PlayerRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D8BFD8"}},
	})
	if err != nil {
		return errors.NewStorageError("failed to create header style", err)
	}

	if err := f.SetSheetName(defaultSheet, SheetPlayers); err != nil {
		return errors.NewStorageError("failed to rename sheet", err)
	}
	for _, name := range []string{SheetAverages, SheetTop} {
		if _, err := f.NewSheet(name); err != nil {
			return errors.NewStorageError("failed to create sheet", err).WithContext("sheet", name)
		}
	}

	players := make([][]interface{}, len(records))
	for i, r := range records {
		players[i] = []interface{}{r.Name, r.Country, formatDate(r.DateOfBirth), r.Test, r.ODI, r.T20, r.Age, r.TotalMatches}
	}

	avgRows := make([][]interface{}, len(averages))
	for i, a := range averages {
		avgRows[i] = []interface{}{a.Country, a.Players, a.Test, a.ODI, a.T20}
	}

	topRows := make([][]interface{}, len(top))
	for i, r := range top {
		topRows[i] = []interface{}{i + 1, r.Name, r.Country, r.Age, r.TotalMatches}
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][]interface{}
	}{
		{SheetPlayers, PlayerHeaders, players},
		{SheetAverages, AverageHeaders, avgRows},
		{SheetTop, TopHeaders, topRows},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.headers, s.rows, headerStyle); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save workbook", err).WithContext("path", path)
	}

	e.logger.Info("Workbook exported",
		slog.String("path", path),
		slog.Int("players", len(records)),
		slog.Int("countries", len(averages)),
		slog.Int("top_players", len(top)))
	return nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write header row", err).WithContext("sheet", sheet)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return errors.NewStorageError("invalid header range", err).WithContext("sheet", sheet)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return errors.NewStorageError("failed to style header row", err).WithContext("sheet", sheet)
	}

	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return errors.NewStorageError("invalid header range", err).WithContext("sheet", sheet)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, playerColWidth); err != nil {
		return errors.NewStorageError("failed to set column width", err).WithContext("sheet", sheet)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewStorageError("invalid cell", err).WithContext("sheet", sheet)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return errors.NewStorageError("failed to write row", err).
				WithContext("sheet", sheet).
				WithContext("row", i)
		}
	}
	return nil
}
