package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// PlayerHeaders are the columns of the exported player table
var PlayerHeaders = []string{
	"Name", "Country", "Date_Of_Birth", "Test", "ODI", "T20", "Age", "Total_Matches",
}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file, replacing any existing file
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory", err).WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create file", err).WithContext("path", path)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return errors.NewStorageError("failed to write BOM", err).WithContext("path", path)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return errors.NewStorageError("failed to write headers", err).WithContext("path", path)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return errors.NewStorageError("failed to write record", err).
				WithContext("path", path).
				WithContext("record", i)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewStorageError("failed to flush CSV", err).WithContext("path", path)
	}
	return file.Close()
}

// WriteRecords writes the cleaned and derived player table
func (w *CSVWriter) WriteRecords(path string, records []domain.PlayerRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = recordToCSVRow(r)
	}
	return w.WriteCSV(path, WriteOptions{Headers: PlayerHeaders, Records: rows})
}

// recordToCSVRow converts a player record to a CSV row
func recordToCSVRow(r domain.PlayerRecord) []string {
	return []string{
		r.Name,
		r.Country,
		formatDate(r.DateOfBirth),
		formatInt(r.Test),
		formatInt(r.ODI),
		formatInt(r.T20),
		formatInt(r.Age),
		formatInt(r.TotalMatches),
	}
}
