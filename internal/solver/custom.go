package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Custom adapts user-supplied solve functions, typically analytically exact
// solutions, so they can serve as the target or the method under test.
// Either shape may be left nil when unused.
type Custom struct {
	Scalar func(x []float64, t0, tf, x0 float64, f ScalarRHS, y Path) error
	Vector func(x *mat.Dense, t0, tf float64, x0 []float64, f VectorRHS, y Path) error
}

func (c Custom) SolveScalar(x []float64, t0, tf, x0 float64, f ScalarRHS, y Path) error {
	if c.Scalar == nil {
		return fmt.Errorf("solver: custom method has no scalar solver")
	}
	if err := checkScalar(x, y); err != nil {
		return err
	}
	return c.Scalar(x, t0, tf, x0, f, y)
}

func (c Custom) SolveVector(x *mat.Dense, t0, tf float64, x0 []float64, f VectorRHS, y Path) error {
	if c.Vector == nil {
		return fmt.Errorf("solver: custom method has no vector solver")
	}
	if err := checkVector(x, x0, y); err != nil {
		return err
	}
	return c.Vector(x, t0, tf, x0, f, y)
}
