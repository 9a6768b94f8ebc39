// Package solver provides fixed-step integrators for random ODEs
// dX/dt = f(t, X, Y) where the noise path Y has already been sampled on the
// same mesh as the unknown. Euler and Heun cover the generic case; Custom
// wraps analytically exact schemes used as ground truth.
package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch reports solution and noise buffers whose shapes are
// incompatible.
var ErrDimensionMismatch = errors.New("solver: dimension mismatch")

// ScalarRHS evaluates dx = f(t, x, y) for a scalar unknown. y holds the
// noise values at time t: one entry for scalar noise, one per coordinate
// for vector noise.
type ScalarRHS func(t, x float64, y []float64) float64

// VectorRHS writes f(t, x, y) into dx for a vector unknown.
type VectorRHS func(dx []float64, t float64, x, y []float64)

// Path is a sampled noise path, scalar or vector valued. Row access is
// allocation free: scalar paths re-slice the backing array, vector paths
// return the raw row of the table.
type Path struct {
	s []float64
	v *mat.Dense
}

func ScalarPath(y []float64) Path  { return Path{s: y} }
func VectorPath(y *mat.Dense) Path { return Path{v: y} }

func (p Path) Len() int {
	if p.v != nil {
		r, _ := p.v.Dims()
		return r
	}
	return len(p.s)
}

func (p Path) Dim() int {
	if p.v != nil {
		_, c := p.v.Dims()
		return c
	}
	return 1
}

// Row returns the noise values at mesh index i.
func (p Path) Row(i int) []float64 {
	if p.v != nil {
		return p.v.RawRowView(i)
	}
	return p.s[i : i+1]
}

// Method is a fixed-step scheme able to march scalar and vector unknowns.
// Solvers fill the solution buffer in place; the step size is derived from
// its length and the time span.
type Method interface {
	SolveScalar(x []float64, t0, tf, x0 float64, f ScalarRHS, y Path) error
	SolveVector(x *mat.Dense, t0, tf float64, x0 []float64, f VectorRHS, y Path) error
}

// CloneMethod returns an instance of m that may solve concurrently with the
// original. Schemes with private scratch buffers get a fresh instance;
// anything else is returned as is.
func CloneMethod(m Method) Method {
	switch m.(type) {
	case *Euler:
		return NewEuler()
	case *Heun:
		return NewHeun()
	}
	return m
}

func checkScalar(x []float64, y Path) error {
	if len(x) < 2 {
		return fmt.Errorf("%w: solution buffer needs at least 2 points, got %d", ErrDimensionMismatch, len(x))
	}
	if y.Len() != len(x) {
		return fmt.Errorf("%w: solution has %d points, noise has %d", ErrDimensionMismatch, len(x), y.Len())
	}
	return nil
}

func checkVector(x *mat.Dense, x0 []float64, y Path) error {
	rows, cols := x.Dims()
	if rows < 2 {
		return fmt.Errorf("%w: solution buffer needs at least 2 points, got %d", ErrDimensionMismatch, rows)
	}
	if cols != len(x0) {
		return fmt.Errorf("%w: solution has %d columns, initial condition has %d", ErrDimensionMismatch, cols, len(x0))
	}
	if y.Len() != rows {
		return fmt.Errorf("%w: solution has %d points, noise has %d", ErrDimensionMismatch, rows, y.Len())
	}
	return nil
}
