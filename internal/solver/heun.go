package solver

import "gonum.org/v1/gonum/mat"

// Heun is the explicit predictor-corrector scheme: an Euler predictor
// followed by averaging the slopes at the current point and at the
// predicted point, the latter evaluated against the next noise value.
type Heun struct {
	k1, k2, xp []float64
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) SolveScalar(x []float64, t0, tf, x0 float64, f ScalarRHS, y Path) error {
	if err := checkScalar(x, y); err != nil {
		return err
	}
	dt := (tf - t0) / float64(len(x)-1)

	x[0] = x0
	for i := 1; i < len(x); i++ {
		t := t0 + float64(i-1)*dt
		k1 := f(t, x[i-1], y.Row(i-1))
		xp := x[i-1] + dt*k1
		k2 := f(t+dt, xp, y.Row(i))
		x[i] = x[i-1] + 0.5*dt*(k1+k2)
	}
	return nil
}

func (h *Heun) SolveVector(x *mat.Dense, t0, tf float64, x0 []float64, f VectorRHS, y Path) error {
	if err := checkVector(x, x0, y); err != nil {
		return err
	}
	rows, cols := x.Dims()
	dt := (tf - t0) / float64(rows-1)
	h.ensureScratch(cols)

	x.SetRow(0, x0)
	for i := 1; i < rows; i++ {
		t := t0 + float64(i-1)*dt
		prev := x.RawRowView(i - 1)

		f(h.k1, t, prev, y.Row(i-1))
		for j := 0; j < cols; j++ {
			h.xp[j] = prev[j] + dt*h.k1[j]
		}
		f(h.k2, t+dt, h.xp, y.Row(i))

		cur := x.RawRowView(i)
		for j := 0; j < cols; j++ {
			cur[j] = prev[j] + 0.5*dt*(h.k1[j]+h.k2[j])
		}
	}
	return nil
}

func (h *Heun) ensureScratch(n int) {
	if len(h.k1) != n {
		h.k1 = make([]float64, n)
		h.k2 = make([]float64, n)
		h.xp = make([]float64, n)
	}
}
