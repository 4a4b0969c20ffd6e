// Package charts renders the individual player charts.
//
// Each generator on Renderer takes the derived player records, draws one
// 10x6 inch chart with gonum/plot, writes it as a PNG into the output
// directory and returns the rendered image so the dashboard can be
// composed without reading the files back. An empty record set is a
// render error.
package charts
