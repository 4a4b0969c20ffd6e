package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cricketcli/internal/charts"
	"cricketcli/internal/config"
	"cricketcli/internal/dashboard"
	"cricketcli/internal/infrastructure"
	"cricketcli/internal/operations"
	"cricketcli/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml when present)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, *configPath, time.Now())
	stop()

	if err != nil {
		slog.Error("Dashboard generation failed", "error", err)
		os.Exit(1)
	}
}

// run loads the configuration, executes the pipeline once and flushes
// telemetry. now is the reference time for player ages.
func run(ctx context.Context, configPath string, now time.Time) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	paths := cfg.ResolvePaths()
	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to create output directories: %w", err)
	}

	ctx = infrastructure.EnsureRunID(ctx)
	runID := infrastructure.GetRunID(ctx)

	logger.InfoContext(ctx, "Starting cricket dashboard generation",
		slog.String("version", config.AppVersion),
		slog.String("input", paths.Input),
		slog.String("output_dir", paths.OutputDir),
		slog.String("dashboard", paths.Dashboard))

	registry, err := operations.NewPipelineRegistry(operations.PipelineDeps{
		Paths:    paths,
		Renderer: charts.NewRenderer(paths, charts.OptionsFrom(cfg.Charts), logger),
		Composer: dashboard.NewComposer(dashboard.OptionsFrom(cfg.Dashboard), logger),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	tracer, err := operations.NewOperationTracerFromProviders(providers)
	if err != nil {
		return err
	}

	manager, err := operations.NewManager(registry, tracer, logger)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "Pipeline assembled",
		slog.Int("step_count", manager.GetRegistry().Count()),
		slog.Any("steps", manager.GetRegistry().ListIDs()))

	state := operations.NewOperationState(runID, now)
	execErr := manager.Execute(ctx, state)

	if err := providers.WriteMetricsFile(paths.MetricsFile); err != nil {
		logger.WarnContext(ctx, "Failed to write metrics file", slog.String("error", err.Error()))
	}

	if execErr != nil {
		return execErr
	}

	logger.InfoContext(ctx, "Dashboard generation completed",
		slog.Any("files", state.OutputFiles(operations.ChartOrder)),
		slog.Duration("duration", state.Duration()))
	return nil
}
