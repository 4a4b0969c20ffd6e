package charts

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"cricketcli/internal/config"
	"cricketcli/internal/errors"
)

// Chart size in inches
const (
	WidthInches  = 10
	HeightInches = 6
)

var backgroundColor = color.White

// Chart names
const (
	NameAgeDistribution   = "age_distribution"
	NameCountryAverages   = "country_averages"
	NameTopPlayers        = "top_players"
	NameAgeVsTotalMatches = "age_vs_total_matches"
)

// Chart is a rendered chart together with the file it was written to
type Chart struct {
	Name  string
	Path  string
	Image image.Image
}

// Options configures chart rendering
type Options struct {
	DPI  float64
	Bins int
	TopN int
}

// DefaultOptions returns the rendering options used when none are configured
func DefaultOptions() Options {
	return Options{
		DPI:  config.DefaultChartDPI,
		Bins: config.DefaultHistogramBins,
		TopN: config.DefaultTopN,
	}
}

// OptionsFrom builds rendering options from the charts config section
func OptionsFrom(cfg config.ChartsConfig) Options {
	return Options{DPI: cfg.DPI, Bins: cfg.Bins, TopN: cfg.TopN}
}

// Renderer draws the individual charts and writes them as PNG files
type Renderer struct {
	paths   *config.Paths
	options Options
	logger  *slog.Logger
}

// NewRenderer creates a renderer writing to the chart paths in paths
func NewRenderer(paths *config.Paths, options Options, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultOptions()
	if options.DPI <= 0 {
		options.DPI = defaults.DPI
	}
	if options.Bins <= 0 {
		options.Bins = defaults.Bins
	}
	if options.TopN <= 0 {
		options.TopN = defaults.TopN
	}
	return &Renderer{paths: paths, options: options, logger: logger}
}

// Options returns the effective rendering options
func (r *Renderer) Options() Options {
	return r.options
}

// render draws p onto a raster canvas and writes it to path
func (r *Renderer) render(name, path string, p *plot.Plot) (*Chart, error) {
	c := vgimg.NewWith(
		vgimg.UseWH(WidthInches*vg.Inch, HeightInches*vg.Inch),
		vgimg.UseDPI(int(math.Round(r.options.DPI))),
		vgimg.UseBackgroundColor(backgroundColor),
	)
	p.Draw(draw.New(c))

	if err := WritePNG(path, c); err != nil {
		return nil, err
	}

	img := c.Image()
	r.logger.Info("Chart rendered",
		slog.String("chart", name),
		slog.String("path", path),
		slog.Int("width_px", img.Bounds().Dx()),
		slog.Int("height_px", img.Bounds().Dy()))

	return &Chart{Name: name, Path: path, Image: img}, nil
}

// WritePNG encodes the canvas to path, replacing any existing file
func WritePNG(path string, c *vgimg.Canvas) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewStorageError("failed to create output directory", err).WithContext("path", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.NewStorageError("failed to create image file", err).WithContext("path", path)
	}

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return errors.NewStorageError("failed to encode PNG", err).WithContext("path", path)
	}
	if err := f.Close(); err != nil {
		return errors.NewStorageError("failed to close image file", err).WithContext("path", path)
	}
	return nil
}

func emptyDataError(name string) error {
	return errors.NewRenderError("unrenderable data: no records", nil).WithContext("chart", name)
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.BackgroundColor = backgroundColor
	return p
}
