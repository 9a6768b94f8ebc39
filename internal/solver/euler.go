package solver

import "gonum.org/v1/gonum/mat"

// Euler is the explicit first-order scheme
// x[n] = x[n-1] + dt*f(t[n-1], x[n-1], y[n-1]).
type Euler struct {
	dx []float64
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) SolveScalar(x []float64, t0, tf, x0 float64, f ScalarRHS, y Path) error {
	if err := checkScalar(x, y); err != nil {
		return err
	}
	dt := (tf - t0) / float64(len(x)-1)

	x[0] = x0
	for i := 1; i < len(x); i++ {
		t := t0 + float64(i-1)*dt
		x[i] = x[i-1] + dt*f(t, x[i-1], y.Row(i-1))
	}
	return nil
}

func (e *Euler) SolveVector(x *mat.Dense, t0, tf float64, x0 []float64, f VectorRHS, y Path) error {
	if err := checkVector(x, x0, y); err != nil {
		return err
	}
	rows, cols := x.Dims()
	dt := (tf - t0) / float64(rows-1)
	e.ensureScratch(cols)

	x.SetRow(0, x0)
	for i := 1; i < rows; i++ {
		t := t0 + float64(i-1)*dt
		prev := x.RawRowView(i - 1)
		f(e.dx, t, prev, y.Row(i-1))
		cur := x.RawRowView(i)
		for j := 0; j < cols; j++ {
			cur[j] = prev[j] + dt*e.dx[j]
		}
	}
	return nil
}

func (e *Euler) ensureScratch(n int) {
	if len(e.dx) != n {
		e.dx = make([]float64, n)
	}
}
