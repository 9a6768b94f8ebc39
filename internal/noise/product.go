package noise

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Term is one component of a product process, either scalar or vector.
type Term struct {
	scalar Process
	vector VectorProcess
	dim    int
}

func Scalar(p Process) Term       { return Term{scalar: p, dim: 1} }
func Vector(p VectorProcess) Term { return Term{vector: p, dim: p.Dim()} }

// Product concatenates independent component processes column-wise into one
// vector-valued process. Components are fixed at construction and sampled in
// declaration order against the same random source, so a fixed seed
// reproduces every column. Vector components sample directly into a column
// view of the output table; scalar components go through a reused
// column scratch, keeping the hot loop free of per-call heap churn.
type Product struct {
	span
	terms []Term
	dim   int
	col   []float64
}

func NewProduct(t0, tf float64, terms ...Term) (*Product, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("noise: product needs at least one component")
	}
	dim := 0
	for i, term := range terms {
		if term.scalar == nil && term.vector == nil {
			return nil, fmt.Errorf("noise: product component %d is empty", i)
		}
		dim += term.dim
	}
	return &Product{span: sp, terms: terms, dim: dim}, nil
}

func (p *Product) Dim() int { return p.dim }

// cloneVectorProcess deep-copies the component list so scratch-carrying
// components are private to the clone.
func (p *Product) cloneVectorProcess() VectorProcess {
	q := *p
	q.terms = make([]Term, len(p.terms))
	for i, term := range p.terms {
		if term.scalar != nil {
			term.scalar = CloneProcess(term.scalar)
		} else {
			term.vector = CloneVectorProcess(term.vector)
		}
		q.terms[i] = term
	}
	q.col = nil
	return &q
}

func (p *Product) Sample(rng *rand.Rand, path *mat.Dense) {
	rows, cols := path.Dims()
	checkLen(rows)
	if cols != p.dim {
		panic(fmt.Sprintf("noise: product of dimension %d sampled into %d columns", p.dim, cols))
	}
	if len(p.col) < rows {
		p.col = make([]float64, rows)
	}
	col := p.col[:rows]

	off := 0
	for _, term := range p.terms {
		if term.scalar != nil {
			term.scalar.Sample(rng, col)
			path.SetCol(off, col)
		} else {
			view := path.Slice(0, rows, off, off+term.dim).(*mat.Dense)
			term.vector.Sample(rng, view)
		}
		off += term.dim
	}
}
