package dashboard

import (
	"gonum.org/v1/plot/vg"
)

// Layout is a grid of equally sized cells placed inside figure margins.
// Margins are fractions of the figure size; HSpace and WSpace are the gaps
// between cells as fractions of the average cell height and width.
type Layout struct {
	Width, Height vg.Length
	Rows, Cols    int

	Left, Right, Bottom, Top float64
	HSpace, WSpace           float64
}

// DefaultLayout is the 4x2 dashboard grid on a 25x20 inch figure
func DefaultLayout() Layout {
	return Layout{
		Width:  25 * vg.Inch,
		Height: 20 * vg.Inch,
		Rows:   4,
		Cols:   2,
		Left:   0.125,
		Right:  0.9,
		Bottom: 0.11,
		Top:    0.88,
		HSpace: 0.4,
		WSpace: 0.2,
	}
}

// cellSize returns the cell width and height
func (l Layout) cellSize() (vg.Length, vg.Length) {
	totalW := vg.Length(l.Right-l.Left) * l.Width
	totalH := vg.Length(l.Top-l.Bottom) * l.Height
	w := totalW / vg.Length(float64(l.Cols)+l.WSpace*float64(l.Cols-1))
	h := totalH / vg.Length(float64(l.Rows)+l.HSpace*float64(l.Rows-1))
	return w, h
}

// Cell returns the rectangle of the cell at row and col. Row 0 is the top
// row; the rectangle is in canvas coordinates with the origin bottom left.
func (l Layout) Cell(row, col int) vg.Rectangle {
	return l.Span(row, col, col)
}

// Span returns the rectangle covering columns first through last of row
func (l Layout) Span(row, first, last int) vg.Rectangle {
	w, h := l.cellSize()
	gapW := vg.Length(l.WSpace) * w
	gapH := vg.Length(l.HSpace) * h

	top := vg.Length(l.Top)*l.Height - vg.Length(row)*(h+gapH)
	left := vg.Length(l.Left)*l.Width + vg.Length(first)*(w+gapW)
	right := vg.Length(l.Left)*l.Width + vg.Length(last)*(w+gapW) + w

	return vg.Rectangle{
		Min: vg.Point{X: left, Y: top - h},
		Max: vg.Point{X: right, Y: top},
	}
}

// Row returns the rectangle covering the whole of row
func (l Layout) Row(row int) vg.Rectangle {
	return l.Span(row, 0, l.Cols-1)
}

// Fraction returns the canvas point at the given fractions of the figure
func (l Layout) Fraction(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x) * l.Width, Y: vg.Length(y) * l.Height}
}

// FitRect scales a w by h image to the largest size that fits inside cell
// without distortion and centers it
func FitRect(cell vg.Rectangle, w, h int) vg.Rectangle {
	if w <= 0 || h <= 0 {
		return vg.Rectangle{Min: cell.Min, Max: cell.Min}
	}

	size := cell.Size()
	scale := size.X / vg.Length(w)
	if s := size.Y / vg.Length(h); s < scale {
		scale = s
	}

	fitW := vg.Length(w) * scale
	fitH := vg.Length(h) * scale
	min := vg.Point{
		X: cell.Min.X + (size.X-fitW)/2,
		Y: cell.Min.Y + (size.Y-fitH)/2,
	}
	return vg.Rectangle{Min: min, Max: vg.Point{X: min.X + fitW, Y: min.Y + fitH}}
}
