// Package exporter writes the cleaned player table to disk.
//
// CSVWriter writes the derived records as a flat CSV file with the columns
// Name, Country, Date_Of_Birth, Test, ODI, T20, Age and Total_Matches.
// WorkbookExporter writes an Excel workbook with the players, the
// per-country averages and the top players on separate sheets.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	err := writer.WriteRecords("out/players.csv", records)
//
//	workbook := exporter.NewWorkbookExporter(logger)
//	err = workbook.Export("out/players.xlsx", records, averages, top)
package exporter
