package operations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"cricketcli/internal/charts"
	"cricketcli/internal/config"
	"cricketcli/internal/dashboard"
	"cricketcli/internal/dataprocessing"
	"cricketcli/internal/exporter"
	"cricketcli/internal/infrastructure"
	"cricketcli/pkg/contracts/domain"
)

// Step IDs
const (
	StageIDLoad         = "load"
	StageIDDerive       = "derive"
	StageIDChartAge     = "chart_age"
	StageIDChartCountry = "chart_country"
	StageIDChartTop     = "chart_top"
	StageIDChartBox     = "chart_box"
	StageIDCompose      = "compose"
	StageIDExport       = "export"
)

// Step names
const (
	StageNameLoad         = "Load Player Table"
	StageNameDerive       = "Derive Features"
	StageNameChartAge     = "Age Distribution Chart"
	StageNameChartCountry = "Country Averages Chart"
	StageNameChartTop     = "Top Players Chart"
	StageNameChartBox     = "Age vs Total Matches Chart"
	StageNameCompose      = "Compose Dashboard"
	StageNameExport       = "Export Tables"
)

// ChartOrder lists the chart names in dashboard order
var ChartOrder = []string{
	charts.NameAgeDistribution,
	charts.NameCountryAverages,
	charts.NameTopPlayers,
	charts.NameAgeVsTotalMatches,
}

// chartStageIDs lists the chart step IDs in dashboard order
var chartStageIDs = []string{StageIDChartAge, StageIDChartCountry, StageIDChartTop, StageIDChartBox}

func stageLogger(logger *slog.Logger, id string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("step", id))
}

// LoadStage reads and cleans the player table
type LoadStage struct {
	BaseStage
	input  string
	logger *slog.Logger
}

// NewLoadStage creates a new load Step
func NewLoadStage(input string, logger *slog.Logger) *LoadStage {
	return &LoadStage{
		BaseStage: NewBaseStage(StageIDLoad, StageNameLoad, nil),
		input:     input,
		logger:    stageLogger(logger, StageIDLoad),
	}
}

// Execute loads the input file
func (s *LoadStage) Execute(ctx context.Context, state *OperationState) error {
	result, err := dataprocessing.LoadFile(s.input)
	if err != nil {
		return err
	}
	state.SetLoadResult(result)

	s.logger.InfoContext(ctx, "Dropped rows with missing values",
		slog.Int("dropped_rows", result.DroppedRows),
		slog.Int("kept_rows", len(result.Records)))
	infrastructure.AddSpanEvent(ctx, "rows_cleaned",
		attribute.Int("total_rows", result.TotalRows),
		attribute.Int("dropped_rows", result.DroppedRows),
		attribute.String("encoding", result.Encoding))
	return nil
}

// DeriveStage computes Age and Total_Matches and the aggregates built on them
type DeriveStage struct {
	BaseStage
	topN   int
	logger *slog.Logger
}

// NewDeriveStage creates a new derive Step
func NewDeriveStage(topN int, logger *slog.Logger) *DeriveStage {
	return &DeriveStage{
		BaseStage: NewBaseStage(StageIDDerive, StageNameDerive, []string{StageIDLoad}),
		topN:      topN,
		logger:    stageLogger(logger, StageIDDerive),
	}
}

// Execute derives the features against the state's reference time
func (s *DeriveStage) Execute(ctx context.Context, state *OperationState) error {
	records := dataprocessing.Derive(state.Records, state.Now)
	averages := dataprocessing.AverageByCountry(records)
	top := dataprocessing.TopPlayers(records, s.topN)
	state.SetDerived(records, averages, top)

	s.logger.DebugContext(ctx, "Features derived",
		slog.Int("records", len(records)),
		slog.Int("countries", len(averages)),
		slog.Time("now", state.Now))
	return nil
}

// ChartFunc renders one chart from the derived records
type ChartFunc func(records []domain.PlayerRecord) (*charts.Chart, error)

// ChartStage renders a single chart
type ChartStage struct {
	BaseStage
	render ChartFunc
}

// NewChartStage creates a chart Step depending on derive
func NewChartStage(id, name string, render ChartFunc) *ChartStage {
	return &ChartStage{
		BaseStage: NewBaseStage(id, name, []string{StageIDDerive}),
		render:    render,
	}
}

// Execute renders the chart and stores it on the state
func (s *ChartStage) Execute(ctx context.Context, state *OperationState) error {
	chart, err := s.render(state.Records)
	if err != nil {
		return err
	}
	state.SetChart(chart)
	infrastructure.AddSpanEvent(ctx, "chart_written", attribute.String("path", chart.Path))
	return nil
}

// ComposeStage lays the rendered charts out on the dashboard
type ComposeStage struct {
	BaseStage
	composer *dashboard.Composer
	path     string
}

// NewComposeStage creates a compose Step depending on every chart step
func NewComposeStage(composer *dashboard.Composer, path string) *ComposeStage {
	return &ComposeStage{
		BaseStage: NewBaseStage(StageIDCompose, StageNameCompose, chartStageIDs),
		composer:  composer,
		path:      path,
	}
}

// Execute composes and writes the dashboard
func (s *ComposeStage) Execute(ctx context.Context, state *OperationState) error {
	result, err := s.composer.Compose(s.path, state.Charts(ChartOrder...))
	if err != nil {
		return err
	}
	state.SetDashboard(result)
	infrastructure.AddSpanEvent(ctx, "dashboard_written", attribute.String("path", result.Path))
	return nil
}

// ExportStage writes the derived table as CSV and/or an Excel workbook
type ExportStage struct {
	BaseStage
	csvPath      string
	workbookPath string
	csv          *exporter.CSVWriter
	workbook     *exporter.WorkbookExporter
}

// NewExportStage creates an export Step. Empty paths disable that output.
func NewExportStage(csvPath, workbookPath string, logger *slog.Logger) *ExportStage {
	logger = stageLogger(logger, StageIDExport)
	return &ExportStage{
		BaseStage:    NewBaseStage(StageIDExport, StageNameExport, []string{StageIDDerive}),
		csvPath:      csvPath,
		workbookPath: workbookPath,
		csv:          exporter.NewCSVWriter(logger),
		workbook:     exporter.NewWorkbookExporter(logger),
	}
}

// Execute writes the enabled exports
func (s *ExportStage) Execute(ctx context.Context, state *OperationState) error {
	if s.csvPath != "" {
		if err := s.csv.WriteRecords(s.csvPath, state.Records); err != nil {
			return err
		}
	}
	if s.workbookPath != "" {
		if err := s.workbook.Export(s.workbookPath, state.Records, state.Averages, state.TopPlayers); err != nil {
			return err
		}
	}
	return nil
}

// PipelineDeps holds what the dashboard pipeline needs to build its steps
type PipelineDeps struct {
	Paths    *config.Paths
	Renderer *charts.Renderer
	Composer *dashboard.Composer
	Logger   *slog.Logger
}

// NewPipelineRegistry registers the dashboard steps: load, derive, the four
// charts, compose and, when an export path is set, export
func NewPipelineRegistry(deps PipelineDeps) (*Registry, error) {
	if deps.Paths == nil || deps.Renderer == nil || deps.Composer == nil {
		return nil, fmt.Errorf("pipeline needs paths, renderer and composer")
	}

	r := deps.Renderer
	steps := []Step{
		NewLoadStage(deps.Paths.Input, deps.Logger),
		NewDeriveStage(r.Options().TopN, deps.Logger),
		NewChartStage(StageIDChartAge, StageNameChartAge, r.AgeDistribution),
		NewChartStage(StageIDChartCountry, StageNameChartCountry, r.CountryAverages),
		NewChartStage(StageIDChartTop, StageNameChartTop, r.TopPlayers),
		NewChartStage(StageIDChartBox, StageNameChartBox, r.AgeVsTotalMatches),
		NewComposeStage(deps.Composer, deps.Paths.Dashboard),
	}
	if deps.Paths.ExportCSV != "" || deps.Paths.ExportWorkbook != "" {
		steps = append(steps, NewExportStage(deps.Paths.ExportCSV, deps.Paths.ExportWorkbook, deps.Logger))
	}

	registry := NewRegistry()
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	if err := registry.ValidateDependencies(); err != nil {
		return nil, err
	}
	return registry, nil
}
