package dashboard

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"cricketcli/internal/charts"
	"cricketcli/internal/config"
	"cricketcli/internal/errors"
)

// Name identifies the composed dashboard image
const Name = "dashboard"

// Title is drawn centered across the top row
const Title = "Comprehensive Cricket Analytics: Unveiling Trends, Talents, and Career Trajectories"

// Observations is the summary block drawn below the charts
const Observations = "\nObservations:\n" +
	"1. Distribution of ages shows the majority of players are in their late 20s to early 30s.\n" +
	"2. Different countries have varying preferences for cricket formats, as shown by average matches played.\n" +
	"3. The top 10 players list highlights those with exceptional careers in terms of total matches played.\n" +
	"4. The Age vs Total Matches plot provides insights into peak career durations and longevity in the sport.\n"

// ChartCount is the number of charts a dashboard holds
const ChartCount = 4

// Thistle is the dashboard background
var Thistle = color.RGBA{R: 0xD8, G: 0xBF, B: 0xD8, A: 0xFF}

// chartCells are the grid positions of the charts in order
var chartCells = [ChartCount][2]int{{1, 0}, {1, 1}, {2, 0}, {2, 1}}

// Options configures the composed dashboard
type Options struct {
	DPI    float64
	Footer string
	Layout Layout
}

// OptionsFrom builds composer options from the dashboard config section
func OptionsFrom(cfg config.DashboardConfig) Options {
	return Options{DPI: cfg.DPI, Footer: cfg.Footer, Layout: DefaultLayout()}
}

// Composer lays the four charts out on one canvas with title, observations
// and footer
type Composer struct {
	options Options
	logger  *slog.Logger
}

// NewComposer creates a composer
func NewComposer(options Options, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	if options.DPI <= 0 {
		options.DPI = config.DefaultDashboardDPI
	}
	if options.Layout.Rows == 0 {
		options.Layout = DefaultLayout()
	}
	return &Composer{options: options, logger: logger}
}

// Compose draws the charts, in order age distribution, country averages,
// top players and age vs total matches, and writes the dashboard to path
func (c *Composer) Compose(path string, parts []*charts.Chart) (*charts.Chart, error) {
	if len(parts) != ChartCount {
		return nil, errors.NewRenderError(fmt.Sprintf("dashboard needs %d charts", ChartCount), nil).
			WithContext("charts", len(parts))
	}
	for i, part := range parts {
		if part == nil || part.Image == nil {
			return nil, errors.NewRenderError("chart image missing", nil).WithContext("position", i)
		}
	}

	layout := c.options.Layout
	canvas := vgimg.NewWith(
		vgimg.UseWH(layout.Width, layout.Height),
		vgimg.UseDPI(int(math.Round(c.options.DPI))),
		vgimg.UseBackgroundColor(Thistle),
	)
	dc := draw.New(canvas)

	title := layout.Row(0)
	center := vg.Point{
		X: (title.Min.X + title.Max.X) / 2,
		Y: (title.Min.Y + title.Max.Y) / 2,
	}
	dc.FillText(textStyle(25, true, text.XCenter, text.YCenter), center, Title)

	for i, part := range parts {
		cell := layout.Cell(chartCells[i][0], chartCells[i][1])
		bounds := part.Image.Bounds()
		dc.DrawImage(FitRect(cell, bounds.Dx(), bounds.Dy()), part.Image)
	}

	dc.FillText(textStyle(18, false, text.XLeft, text.YTop), layout.Fraction(0.05, 0.2), Observations)

	if c.options.Footer != "" {
		footer := layout.Row(layout.Rows - 1)
		corner := vg.Point{X: footer.Max.X, Y: footer.Min.Y}
		dc.FillText(textStyle(20, true, text.XRight, text.YBottom), corner, c.options.Footer)
	}

	if err := charts.WritePNG(path, canvas); err != nil {
		return nil, err
	}

	img := canvas.Image()
	c.logger.Info("Dashboard composed",
		slog.String("path", path),
		slog.Int("charts", len(parts)),
		slog.Int("width_px", img.Bounds().Dx()),
		slog.Int("height_px", img.Bounds().Dy()))

	return &charts.Chart{Name: Name, Path: path, Image: img}, nil
}

func textStyle(size float64, bold bool, x text.XAlignment, y text.YAlignment) text.Style {
	f := font.From(plot.DefaultFont, vg.Points(size))
	if bold {
		f.Weight = xfont.WeightBold
	}
	return text.Style{
		Color:   color.Black,
		Font:    f,
		XAlign:  x,
		YAlign:  y,
		Handler: plot.DefaultTextHandler,
	}
}
