package charts

import (
	"strconv"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cricketcli/internal/dataprocessing"
	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// AgeVsTotalMatches draws one box of total matches per distinct age
func (r *Renderer) AgeVsTotalMatches(records []domain.PlayerRecord) (*Chart, error) {
	if len(records) == 0 {
		return nil, emptyDataError(NameAgeVsTotalMatches)
	}

	groups := dataprocessing.GroupByAge(records)
	p := newPlot("Age vs Total Matches - Box Plot", "Age", "Total Matches")

	width := vg.Points(20)
	if n := len(groups); n > 20 {
		width = vg.Points(400 / float64(n))
	}

	labels := make([]string, len(groups))
	for i, g := range groups {
		box, err := plotter.NewBoxPlot(width, float64(i), plotter.Values(g.Totals))
		if err != nil {
			return nil, errors.NewRenderError("failed to build box plot", err).
				WithContext("chart", NameAgeVsTotalMatches).
				WithContext("age", g.Age)
		}
		box.FillColor = plotutil.Color(0)
		p.Add(box)
		labels[i] = strconv.Itoa(g.Age)
	}
	p.NominalX(labels...)

	return r.render(NameAgeVsTotalMatches, r.paths.AgeVsTotalMatches, p)
}
