package charts

import (
	"log/slog"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cricketcli/internal/dataprocessing"
	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// AgeDistribution draws a histogram of player ages with a kernel density
// overlay scaled to bin counts
func (r *Renderer) AgeDistribution(records []domain.PlayerRecord) (*Chart, error) {
	if len(records) == 0 {
		return nil, emptyDataError(NameAgeDistribution)
	}

	ages := dataprocessing.Ages(records)
	p := newPlot("Distribution of Ages of Players", "Age", "Frequency")

	hist, err := plotter.NewHist(plotter.Values(ages), r.options.Bins)
	if err != nil {
		return nil, errors.NewRenderError("failed to build histogram", err).WithContext("chart", NameAgeDistribution)
	}
	hist.FillColor = plotutil.Color(0)
	hist.LineStyle.Width = vg.Points(0.5)
	p.Add(hist)

	curve, ok := KDECurve(ages, float64(len(ages))*hist.Width)
	if ok {
		line, err := plotter.NewLine(curve)
		if err != nil {
			return nil, errors.NewRenderError("failed to build density curve", err).WithContext("chart", NameAgeDistribution)
		}
		line.LineStyle.Color = plotutil.Color(1)
		line.LineStyle.Width = vg.Points(2)
		p.Add(line)
	} else {
		r.logger.Debug("Skipping density overlay", slog.Int("samples", len(ages)))
	}

	return r.render(NameAgeDistribution, r.paths.AgeDistribution, p)
}
