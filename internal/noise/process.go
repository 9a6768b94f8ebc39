package noise

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Process samples scalar-valued paths. len(path) points are filled over
// [t0, tf]; a buffer of length N implies the uniform step (tf-t0)/(N-1).
type Process interface {
	Sample(rng *rand.Rand, path []float64)
}

// VectorProcess samples vector-valued paths into a table with one row per
// time point and Dim() columns.
type VectorProcess interface {
	Dim() int
	Sample(rng *rand.Rand, path *mat.Dense)
}

// CloneProcess returns a copy of p that may sample concurrently with the
// original. Catalogue entries carrying per-sample scratch return a copy
// with private scratch; stateless entries are returned as is.
func CloneProcess(p Process) Process {
	if c, ok := p.(interface{ cloneProcess() Process }); ok {
		return c.cloneProcess()
	}
	return p
}

// CloneVectorProcess is CloneProcess for vector-valued processes.
func CloneVectorProcess(p VectorProcess) VectorProcess {
	if c, ok := p.(interface{ cloneVectorProcess() VectorProcess }); ok {
		return c.cloneVectorProcess()
	}
	return p
}

// span holds the common time-domain parameters of every catalogue entry.
type span struct {
	t0, tf float64
}

func newSpan(t0, tf float64) (span, error) {
	if !(t0 < tf) {
		return span{}, fmt.Errorf("noise: invalid time span [%g, %g]", t0, tf)
	}
	return span{t0: t0, tf: tf}, nil
}

// dt returns the uniform step for an n-point discretization of the span.
func (s span) dt(n int) float64 {
	return (s.tf - s.t0) / float64(n-1)
}

func checkLen(n int) {
	if n < 2 {
		panic(fmt.Sprintf("noise: path buffer needs at least 2 points, got %d", n))
	}
}
