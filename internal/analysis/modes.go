package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/oscilab/internal/osc"
)

// Frequencies returns the natural angular frequencies of a conditioned
// stiffness matrix under the given masses, ascending. They are the square
// roots of the eigenvalues of M^(-1/2) K M^(-1/2), the mass-normalized
// stiffness operator.
func Frequencies(k *mat.SymDense, masses []float64) ([]float64, error) {
	n := len(masses)
	if k.SymmetricDim() != n {
		return nil, fmt.Errorf("%w: %dx%d stiffness for %d masses",
			osc.ErrDimensionMismatch, k.SymmetricDim(), k.SymmetricDim(), n)
	}
	for i, m := range masses {
		if m <= 0 {
			return nil, fmt.Errorf("%w: mass %d is %g", osc.ErrNonPositiveMass, i, m)
		}
	}

	scaled := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			scaled.SetSym(i, j, k.At(i, j)/math.Sqrt(masses[i]*masses[j]))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(scaled, false); !ok {
		return nil, fmt.Errorf("analysis: eigendecomposition failed")
	}

	vals := eig.Values(nil)
	freqs := make([]float64, n)
	for i, v := range vals {
		if v < 0 {
			// Round-off below zero maps to a zero-frequency mode.
			v = 0
		}
		freqs[i] = math.Sqrt(v)
	}
	return freqs, nil
}
