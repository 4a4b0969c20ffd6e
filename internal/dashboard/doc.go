// Package dashboard composes the rendered charts into a single summary
// image: a 4x2 grid on a thistle background with the title in the first
// row, the charts in the middle two rows, an observations block and a
// footer in the last row.
package dashboard
