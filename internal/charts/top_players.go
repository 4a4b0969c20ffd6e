package charts

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cricketcli/internal/dataprocessing"
	"cricketcli/internal/errors"
	"cricketcli/pkg/contracts/domain"
)

// TopPlayers draws horizontal bars for the players with the most total
// matches, largest at the top
func (r *Renderer) TopPlayers(records []domain.PlayerRecord) (*Chart, error) {
	if len(records) == 0 {
		return nil, emptyDataError(NameTopPlayers)
	}

	top := dataprocessing.TopPlayers(records, r.options.TopN)
	p := newPlot(fmt.Sprintf("Top %d Players with Most Total Matches", r.options.TopN), "Total Matches", "Name")

	// Bars are laid out bottom to top, so the largest goes last
	n := len(top)
	values := make(plotter.Values, n)
	names := make([]string, n)
	for i, rec := range top {
		values[n-1-i] = float64(rec.TotalMatches)
		names[n-1-i] = rec.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.NewRenderError("failed to build bar chart", err).WithContext("chart", NameTopPlayers)
	}
	bars.Horizontal = true
	bars.Color = plotutil.Color(2)
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalY(names...)

	return r.render(NameTopPlayers, r.paths.TopPlayers, p)
}
