package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot/plotter"
)

// kdeSamples is the number of points along the density curve
const kdeSamples = 200

// ScottBandwidth returns Scott's rule of thumb bandwidth, std * n^(-1/5).
// It returns 0 when the bandwidth is undefined.
func ScottBandwidth(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	std := stat.StdDev(values, nil)
	if std == 0 || math.IsNaN(std) {
		return 0
	}
	return std * math.Pow(float64(len(values)), -0.2)
}

// KDECurve evaluates a Gaussian kernel density estimate of values, scaled by
// scale, over the data range widened by three bandwidths on each side. The
// second result is false when no curve can be estimated.
func KDECurve(values []float64, scale float64) (plotter.XYs, bool) {
	bw := ScottBandwidth(values)
	if bw == 0 {
		return nil, false
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw

	kernels := make([]distuv.Normal, len(values))
	for i, v := range values {
		kernels[i] = distuv.Normal{Mu: v, Sigma: bw}
	}

	n := float64(len(values))
	step := (hi - lo) / float64(kdeSamples-1)
	pts := make(plotter.XYs, kdeSamples)
	for i := range pts {
		x := lo + float64(i)*step
		var density float64
		for _, k := range kernels {
			density += k.Prob(x)
		}
		pts[i].X = x
		pts[i].Y = density / n * scale
	}
	return pts, true
}
