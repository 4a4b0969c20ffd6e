package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"cricketcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Charts    ChartsConfig    `yaml:"charts" envconfig:"CHARTS"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// PathsConfig contains input and output locations
type PathsConfig struct {
	Input     string `yaml:"input" envconfig:"INPUT" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Dashboard string `yaml:"dashboard" envconfig:"DASHBOARD" validate:"required"`
}

// ChartsConfig contains the individual chart rendering parameters
type ChartsConfig struct {
	Bins int     `yaml:"bins" envconfig:"BINS" validate:"min=1"`
	DPI  float64 `yaml:"dpi" envconfig:"DPI" validate:"min=10,max=1200"`
	TopN int     `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
}

// DashboardConfig contains the composite image parameters
type DashboardConfig struct {
	DPI    float64 `yaml:"dpi" envconfig:"DPI" validate:"min=10,max=1200"`
	Footer string  `yaml:"footer" envconfig:"FOOTER"`
}

// TelemetryConfig controls tracing and the metrics textfile
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// ExportConfig enables the optional tabular exports. Empty paths disable them.
type ExportConfig struct {
	CSV      string `yaml:"csv" envconfig:"CSV"`
	Workbook string `yaml:"workbook" envconfig:"WORKBOOK"`
}

// Enabled reports whether any export target is configured
func (e ExportConfig) Enabled() bool {
	return e.CSV != "" || e.Workbook != ""
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. An empty path searches the
// usual locations; a non-empty path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	configFile := path
	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("config file %s", configFile), err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewAppValidationError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg; keys absent from the file keep
// their current values
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/dashboard.log",
		},
		Paths: PathsConfig{
			Input:     DefaultInputFile,
			OutputDir: ".",
			Dashboard: DashboardFile,
		},
		Charts: ChartsConfig{
			Bins: DefaultHistogramBins,
			DPI:  DefaultChartDPI,
			TopN: DefaultTopN,
		},
		Dashboard: DashboardConfig{
			DPI:    DefaultDashboardDPI,
			Footer: DefaultFooter,
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}
