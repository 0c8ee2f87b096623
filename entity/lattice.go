package entity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Lattice holds the reciprocal basis and high-symmetry points of a
// hexagonal lattice with lattice constant A.
type Lattice struct {
	A     float64
	B1    r2.Vec
	B2    r2.Vec
	Gamma r2.Vec
	K     r2.Vec
	M0    r2.Vec
}

// NewLattice derives the reciprocal lattice for lattice constant a.
//
//	b1 = (2π/a)(1/√3, -1), b2 = (2π/a)(1/√3, 1)
//	K  = (2b1 + b2)/3,     M0 = b1/2
//
// K is one fixed corner of the Brillouin zone; the equivalent corners are not
// derived. a must be positive and finite, and small enough that 2π/a is
// still finite.
func NewLattice(a float64) (*Lattice, error) {
	if !(a > 0) || math.IsInf(a, 0) {
		return nil, fmt.Errorf("%w: lattice constant must be positive and finite, got %v", ErrInvalidInput, a)
	}
	scale := 2 * math.Pi / a
	if math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: lattice constant %v is too small, 2π/a overflows", ErrInvalidInput, a)
	}
	b1 := r2.Scale(scale, r2.Vec{X: 1 / math.Sqrt(3), Y: -1})
	b2 := r2.Scale(scale, r2.Vec{X: 1 / math.Sqrt(3), Y: 1})

	return &Lattice{
		A:     a,
		B1:    b1,
		B2:    b2,
		Gamma: r2.Vec{},
		K:     r2.Scale(1.0/3, r2.Add(r2.Scale(2, b1), b2)),
		M0:    r2.Scale(0.5, b1),
	}, nil
}

// M is an alias for M0.
func (l *Lattice) M() r2.Vec {
	return l.M0
}
