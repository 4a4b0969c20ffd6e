package charts

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"cricketcli/internal/dataprocessing"
	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// CountryAverages draws grouped bars of the mean Test, ODI and T20 counts
// per country
func (r *Renderer) CountryAverages(records []domain.PlayerRecord) (*Chart, error) {
	if len(records) == 0 {
		return nil, emptyDataError(NameCountryAverages)
	}

	p, err := countryAveragesPlot(dataprocessing.AverageByCountry(records))
	if err != nil {
		return nil, err
	}
	return r.render(NameCountryAverages, r.paths.CountryAverages, p)
}

// legendHeadroom scales the Y axis above the tallest bar so the legend in the
// top-right corner does not cover it
const legendHeadroom = 1.3

func countryAveragesPlot(averages []domain.CountryAverage) (*plot.Plot, error) {
	p := newPlot("Average Matches Played in Each Format by Country", "Country", "Average Matches")

	// Groups share the 10 inch axis; keep bars legible with many countries
	width := vg.Points(18)
	if n := len(averages); n > 12 {
		width = vg.Points(216 / float64(n))
	}

	countries := make([]string, len(averages))
	for i, a := range averages {
		countries[i] = a.Country
	}

	var tallest float64
	for i, format := range domain.Formats {
		values := make(plotter.Values, len(averages))
		for j, a := range averages {
			values[j] = a.Value(format)
			tallest = max(tallest, values[j])
		}

		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, errors.NewRenderError("failed to build bar chart", err).
				WithContext("chart", NameCountryAverages).
				WithContext("format", string(format))
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(i-1) * width

		p.Add(bars)
		p.Legend.Add(string(format), bars)
	}

	p.Legend.Top = true
	p.Legend.YOffs = -vg.Points(4)
	p.Y.Min = 0
	if tallest > 0 {
		p.Y.Max = tallest * legendHeadroom
	}
	p.NominalX(countries...)
	p.X.Tick.Label.Rotation = 0.6
	p.X.Tick.Label.XAlign = text.XRight

	return p, nil
}
