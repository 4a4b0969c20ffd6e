// Package dataprocessing loads, cleans and enriches the cricketer table and
// computes the aggregates the charts are drawn from.
//
// # Data Flow
//
//	CSV/XLSX file → ReadCSV/ReadWorkbook → Table → Clean → []PlayerRecord → Derive → aggregates
//
// Cleaning is all-or-nothing per row: a row with any missing cell is dropped,
// never repaired. Cells that survive but cannot be parsed abort the load.
//
// Basic usage:
//
//	result, err := dataprocessing.LoadFile("cricketers.csv")
//	if err != nil {
//	    return err
//	}
//	records := dataprocessing.Derive(result.Records, time.Now())
//	top := dataprocessing.TopPlayers(records, 10)
//
// Derive takes the reference time explicitly; ages are otherwise not
// reproducible between runs.
package dataprocessing
