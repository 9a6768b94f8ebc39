package conv

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Result holds everything the reporting adapters consume. Fields are
// snapshots owned by the result; consumers must treat them as read-only.
type Result struct {
	Deltas []float64 // step size per resolution, in input Ns order
	Ns     []int
	M      int // Monte Carlo samples actually accumulated

	// TrajErrors is the mean absolute trajectory error per coarse time
	// index (rows) and resolution (columns), zero-padded beyond a
	// resolution's own length.
	TrajErrors *mat.Dense

	// Errors is the worst-case mean error over time per resolution.
	Errors []float64

	LogC   float64 // fitted log intercept
	P      float64 // fitted strong order
	PDelta float64 // 95% confidence half-width for P
}

// Predict returns the fitted error C*dt^p at step size dt.
func (r *Result) Predict(dt float64) float64 {
	return math.Exp(r.LogC + r.P*math.Log(dt))
}
