package dataprocessing

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"cricketcli/pkg/contracts/domain"
)

// AgeGroup holds the total match counts of all players sharing one age
type AgeGroup struct {
	Age    int
	Totals []float64
}

// Ages returns every record's age as a float series
func Ages(records []domain.PlayerRecord) []float64 {
	ages := make([]float64, len(records))
	for i, r := range records {
		ages[i] = float64(r.Age)
	}
	return ages
}

// AverageByCountry groups records by country and averages each format.
// Countries are returned in ascending order.
func AverageByCountry(records []domain.PlayerRecord) []domain.CountryAverage {
	type series struct {
		test, odi, t20 []float64
	}
	groups := make(map[string]*series)
	for _, r := range records {
		g, ok := groups[r.Country]
		if !ok {
			g = &series{}
			groups[r.Country] = g
		}
		g.test = append(g.test, float64(r.Test))
		g.odi = append(g.odi, float64(r.ODI))
		g.t20 = append(g.t20, float64(r.T20))
	}

	averages := make([]domain.CountryAverage, 0, len(groups))
	for country, g := range groups {
		averages = append(averages, domain.CountryAverage{
			Country: country,
			Test:    stat.Mean(g.test, nil),
			ODI:     stat.Mean(g.odi, nil),
			T20:     stat.Mean(g.t20, nil),
			Players: len(g.test),
		})
	}

	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Country < averages[j].Country
	})
	return averages
}

// TopPlayers returns the n records with the most total matches, largest
// first. Ties keep input order (lower Row first). The input is not modified.
func TopPlayers(records []domain.PlayerRecord, n int) []domain.PlayerRecord {
	sorted := make([]domain.PlayerRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalMatches != sorted[j].TotalMatches {
			return sorted[i].TotalMatches > sorted[j].TotalMatches
		}
		return sorted[i].Row < sorted[j].Row
	})

	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// GroupByAge buckets total matches by distinct age, ages ascending
func GroupByAge(records []domain.PlayerRecord) []AgeGroup {
	index := make(map[int]int)
	var groups []AgeGroup
	for _, r := range records {
		i, ok := index[r.Age]
		if !ok {
			i = len(groups)
			index[r.Age] = i
			groups = append(groups, AgeGroup{Age: r.Age})
		}
		groups[i].Totals = append(groups[i].Totals, float64(r.TotalMatches))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Age < groups[j].Age
	})
	return groups
}
