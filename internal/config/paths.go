package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains every file location used by one run.
// This is the single source of truth for output file names.
type Paths struct {
	Input     string
	OutputDir string

	AgeDistribution   string
	CountryAverages   string
	TopPlayers        string
	AgeVsTotalMatches string
	Dashboard         string

	ExportCSV      string
	ExportWorkbook string
	MetricsFile    string
}

// ResolvePaths resolves the configured locations. Chart files always live in
// the output directory; the dashboard and export paths are joined to it unless
// they are absolute.
func (c *Config) ResolvePaths() *Paths {
	out := c.Paths.OutputDir
	return &Paths{
		Input:     c.Paths.Input,
		OutputDir: out,

		AgeDistribution:   filepath.Join(out, AgeDistributionFile),
		CountryAverages:   filepath.Join(out, CountryAveragesFile),
		TopPlayers:        filepath.Join(out, TopPlayersFile),
		AgeVsTotalMatches: filepath.Join(out, AgeVsTotalMatchesFile),
		Dashboard:         resolveIn(out, c.Paths.Dashboard),

		ExportCSV:      resolveIn(out, c.Export.CSV),
		ExportWorkbook: resolveIn(out, c.Export.Workbook),
		MetricsFile:    c.Telemetry.MetricsFile,
	}
}

// ChartFiles returns the four chart paths in dashboard order
func (p *Paths) ChartFiles() []string {
	return []string{p.AgeDistribution, p.CountryAverages, p.TopPlayers, p.AgeVsTotalMatches}
}

// EnsureDirectories creates the output directory and the parents of any
// file that lives outside it
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.OutputDir, filepath.Dir(p.Dashboard)}
	for _, f := range []string{p.ExportCSV, p.ExportWorkbook, p.MetricsFile} {
		if f != "" {
			directories = append(directories, filepath.Dir(f))
		}
	}

	logger := slog.Default()
	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func resolveIn(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
