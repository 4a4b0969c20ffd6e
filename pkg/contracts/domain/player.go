package domain

import (
	"time"
)

// PlayerRecord is one cricketer row after cleaning and feature derivation.
type PlayerRecord struct {
	// Row is the zero-based position of the record's data row in the input,
	// used to break ties deterministically.
	Row          int       `json:"row"`
	Name         string    `json:"name" csv:"Name"`
	Country      string    `json:"country" csv:"Country"`
	DateOfBirth  time.Time `json:"date_of_birth" csv:"Date_Of_Birth"`
	Test         int       `json:"test" csv:"Test"`
	ODI          int       `json:"odi" csv:"ODI"`
	T20          int       `json:"t20" csv:"T20"`
	Age          int       `json:"age" csv:"Age"`
	TotalMatches int       `json:"total_matches" csv:"Total_Matches"`
}

// MatchSum returns Test + ODI + T20.
func (r PlayerRecord) MatchSum() int {
	return r.Test + r.ODI + r.T20
}

// CountryAverage holds the mean match counts per format for one country.
type CountryAverage struct {
	Country string  `json:"country"`
	Test    float64 `json:"test"`
	ODI     float64 `json:"odi"`
	T20     float64 `json:"t20"`
	Players int     `json:"players"`
}

// MatchFormat names one of the three international formats.
type MatchFormat string

const (
	FormatTest MatchFormat = "Test"
	FormatODI  MatchFormat = "ODI"
	FormatT20  MatchFormat = "T20"
)

// Formats lists the match formats in display order.
var Formats = []MatchFormat{FormatTest, FormatODI, FormatT20}

// Value returns the mean for the given format.
func (a CountryAverage) Value(f MatchFormat) float64 {
	switch f {
	case FormatTest:
		return a.Test
	case FormatODI:
		return a.ODI
	case FormatT20:
		return a.T20
	}
	return 0
}
