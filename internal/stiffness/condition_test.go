package stiffness

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/oscilab/internal/osc"
)

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}})
	if !errors.Is(err, osc.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	_, err = FromRows(nil)
	if !errors.Is(err, osc.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch for empty input, got %v", err)
	}
}

func TestSymmetrize(t *testing.T) {
	k := mat.NewDense(2, 2, []float64{1, 4, 2, 1})
	s := Symmetrize(k)

	if s.At(0, 1) != 3 || s.At(1, 0) != 3 {
		t.Errorf("expected off-diagonal 3, got %f / %f", s.At(0, 1), s.At(1, 0))
	}
}

func TestConditionSymmetry(t *testing.T) {
	// Strongly asymmetric and indefinite input.
	k := mat.NewDense(3, 3, []float64{
		0, 5, -3,
		-1, -2, 7,
		4, 0, 1,
	})
	out, err := Condition(k)
	if err != nil {
		t.Fatalf("condition failed: %v", err)
	}

	n := out.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if math.Abs(out.At(i, j)-out.At(j, i)) > 1e-12 {
				t.Fatalf("asymmetry at (%d,%d): %g vs %g", i, j, out.At(i, j), out.At(j, i))
			}
		}
	}
}

func TestConditionPositiveSemiDefinite(t *testing.T) {
	cases := []struct {
		name string
		data []float64
		n    int
	}{
		{"indefinite", []float64{1, 2, 2, 1}, 2},
		{"negative_definite", []float64{-3, 0, 0, -1}, 2},
		{"zero", []float64{0, 0, 0, 0}, 2},
	}

	for _, tc := range cases {
		out, err := Condition(mat.NewDense(tc.n, tc.n, tc.data))
		if err != nil {
			t.Fatalf("%s: condition failed: %v", tc.name, err)
		}

		var eig mat.EigenSym
		if !eig.Factorize(out, false) {
			t.Fatalf("%s: eigendecomposition failed", tc.name)
		}
		for _, v := range eig.Values(nil) {
			if v < EigenFloor-1e-9 {
				t.Errorf("%s: eigenvalue %g below floor %g", tc.name, v, EigenFloor)
			}
		}
	}
}

func TestConditionIdempotentOnPSD(t *testing.T) {
	// Reference chain matrix: symmetric, all eigenvalues positive.
	k := mat.NewDense(3, 3, []float64{
		2, 1, 0,
		1, 3, 1,
		0, 1, 2,
	})
	out, err := Condition(k)
	if err != nil {
		t.Fatalf("condition failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(out.At(i, j)-k.At(i, j)) > 1e-12 {
				t.Errorf("entry (%d,%d) changed: %g -> %g", i, j, k.At(i, j), out.At(i, j))
			}
		}
	}
}

func TestConditionScalar(t *testing.T) {
	out, err := Condition(mat.NewDense(1, 1, []float64{-4}))
	if err != nil {
		t.Fatalf("condition failed: %v", err)
	}
	if math.Abs(out.At(0, 0)-EigenFloor) > 1e-15 {
		t.Errorf("expected %g, got %g", EigenFloor, out.At(0, 0))
	}

	out, err = Condition(mat.NewDense(1, 1, []float64{4}))
	if err != nil {
		t.Fatalf("condition failed: %v", err)
	}
	if out.At(0, 0) != 4 {
		t.Errorf("valid scalar altered: got %g", out.At(0, 0))
	}
}

func TestConditionRepairsIndefinite(t *testing.T) {
	// Eigenvalues of [[1,2],[2,1]] are 3 and -1; conditioning must keep the
	// 3-eigenvalue mode and lift the -1 to the floor.
	out, err := Condition(mat.NewDense(2, 2, []float64{1, 2, 2, 1}))
	if err != nil {
		t.Fatalf("condition failed: %v", err)
	}

	var eig mat.EigenSym
	if !eig.Factorize(out, false) {
		t.Fatal("eigendecomposition failed")
	}
	vals := eig.Values(nil) // ascending

	if math.Abs(vals[0]-EigenFloor) > 1e-9 {
		t.Errorf("expected smallest eigenvalue %g, got %g", EigenFloor, vals[0])
	}
	if math.Abs(vals[1]-3) > 1e-9 {
		t.Errorf("expected largest eigenvalue 3, got %g", vals[1])
	}
}
