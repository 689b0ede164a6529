package stiffness

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/oscilab/internal/osc"
)

// EigenFloor replaces negative eigenvalues during conditioning. Keeping it
// slightly above zero guarantees every mode has a stabilizing restoring
// force.
const EigenFloor = 1e-6

// ErrEigenFailed indicates the symmetric eigendecomposition did not
// converge; with finite input this should not happen in practice.
var ErrEigenFailed = errors.New("stiffness: eigendecomposition failed")

// FromRows copies a square row-major matrix into a Dense, rejecting ragged
// or empty input.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty coupling matrix", osc.ErrDimensionMismatch)
	}
	m := mat.NewDense(n, n, nil)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d",
				osc.ErrDimensionMismatch, i, len(row), n)
		}
		m.SetRow(i, row)
	}
	return m, nil
}

// Symmetrize returns (K + K^T)/2.
func Symmetrize(k *mat.Dense) *mat.SymDense {
	n, _ := k.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(k.At(i, j)+k.At(j, i)))
		}
	}
	return s
}

// Condition turns a raw coupling matrix into a valid stiffness operator:
// symmetrize, then lift every eigenvalue below EigenFloor up to it and
// reconstruct V diag(λ) V^T. An indefinite or unstable input is repaired
// silently rather than rejected. Input whose spectrum already clears the
// floor passes through unchanged.
func Condition(k *mat.Dense) (*mat.SymDense, error) {
	sym := Symmetrize(k)
	n := sym.SymmetricDim()

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, ErrEigenFailed
	}

	vals := eig.Values(nil)
	clamped := false
	for i, v := range vals {
		if v < EigenFloor {
			vals[i] = EigenFloor
			clamped = true
		}
	}
	if !clamped {
		return sym, nil
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vecs.At(i, j)*vals[j])
		}
	}
	var rebuilt mat.Dense
	rebuilt.Mul(scaled, vecs.T())

	// The reconstruction is symmetric up to round-off; fold the halves so
	// the returned matrix is exactly symmetric.
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, 0.5*(rebuilt.At(i, j)+rebuilt.At(j, i)))
		}
	}
	return out, nil
}
