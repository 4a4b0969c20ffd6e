package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cricketcli/internal/config"
	apperrors "cricketcli/internal/errors"
	"cricketcli/internal/infrastructure"
)

const inputCSV = `,Name,Country,Date_Of_Birth,Test,ODI,T20
0,Sachin Tendulkar,India,1973-04-24,200,463,1
1,Ricky Ponting,,1974-12-19,168,375,17
2,Jacques Kallis,South Africa,1975-10-16,166,328,25
3,Rahul Dravid,India,1973-01-11,164,344,1
`

func writeConfig(t *testing.T, dir, input string) string {
	t.Helper()
	content := fmt.Sprintf(`logging:
  level: error
  format: json
  output: console
paths:
  input: %s
  output_dir: %s
  dashboard: summary.png
charts:
  dpi: 20
dashboard:
  dpi: 10
telemetry:
  trace_exporter: none
  metrics_file: %s
export:
  csv: players.csv
`, input, filepath.Join(dir, "out"), filepath.Join(dir, "metrics", "dashboard.prom"))

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func resetLogger(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(func() {
		infrastructure.ResetLoggerForTesting()
		slog.SetDefault(previous)
	})
}

func TestRun(t *testing.T) {
	resetLogger(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "cricketers.csv")
	require.NoError(t, os.WriteFile(input, []byte(inputCSV), 0644))

	err := run(context.Background(), writeConfig(t, dir, input), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	for _, name := range []string{
		config.AgeDistributionFile,
		config.CountryAveragesFile,
		config.TopPlayersFile,
		config.AgeVsTotalMatchesFile,
		"summary.png",
		"players.csv",
	} {
		info, err := os.Stat(filepath.Join(out, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	exported, err := os.ReadFile(filepath.Join(out, "players.csv"))
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(exported), "\n"), "header and three complete rows")

	metrics, err := os.ReadFile(filepath.Join(dir, "metrics", "dashboard.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "pipeline_runs_total")
	assert.Contains(t, string(metrics), "pipeline_records_dropped_total")
}

func TestRun_MissingInput(t *testing.T) {
	resetLogger(t)
	dir := t.TempDir()

	err := run(context.Background(), writeConfig(t, dir, filepath.Join(dir, "absent.csv")), time.Now())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
	assert.NoFileExists(t, filepath.Join(dir, "out", "summary.png"))
}

func TestRun_MissingConfigFile(t *testing.T) {
	resetLogger(t)
	err := run(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), time.Now())
	assert.Error(t, err)
}
