package conv

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// fitPowerLaw fits log(err) = logC + p*log(dt) by ordinary least squares
// and returns a 95% confidence half-width for p from the residual standard
// error and the Student-t quantile. The half-width is NaN when fewer than
// three resolutions leave no residual degrees of freedom.
func fitPowerLaw(deltas, errs []float64) (logC, p, half float64) {
	k := len(deltas)
	lx := make([]float64, k)
	ly := make([]float64, k)
	for i := range deltas {
		lx[i] = math.Log(deltas[i])
		ly[i] = math.Log(errs[i])
	}

	logC, p = stat.LinearRegression(lx, ly, nil, false)

	if k < 3 {
		return logC, p, math.NaN()
	}

	xbar := stat.Mean(lx, nil)
	var ss, sxx float64
	for i := range lx {
		r := ly[i] - (logC + p*lx[i])
		ss += r * r
		d := lx[i] - xbar
		sxx += d * d
	}
	se := math.Sqrt(ss / float64(k-2) / sxx)
	tq := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(k - 2)}.Quantile(0.975)
	return logC, p, tq * se
}
