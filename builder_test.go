// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

const tol = 1e-12

func mustBuild(t *testing.T, text string) *Basis {
	t.Helper()
	d, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	b, err := Build(d)
	if err != nil {
		t.Fatalf("Build(%q): %v", text, err)
	}
	return b
}

func TestBuildLinearLagrange1D(t *testing.T) {
	t.Parallel()
	b := mustBuild(t, "l.Lagrange")
	if b.ParameterCount() != 2 || b.StandardTermCount() != 2 {
		t.Fatalf("M,S = %d,%d, want 2,2", b.ParameterCount(), b.StandardTermCount())
	}
	wantNode := []int{0, 1}
	wantDeriv := []int{0, 0}
	for i := range wantNode {
		if b.ParameterNode(i) != wantNode[i] {
			t.Errorf("node[%d] = %d, want %d", i, b.ParameterNode(i), wantNode[i])
		}
		if b.ParameterDerivative(i) != wantDeriv[i] {
			t.Errorf("deriv[%d] = %d, want %d", i, b.ParameterDerivative(i), wantDeriv[i])
		}
	}

	if got := b.Eval([]float64{1, 0}, []float64{0}); got != 1 {
		t.Errorf("Eval(p0 at xi=0) = %v, want 1", got)
	}
	if got := b.Eval([]float64{0, 1}, []float64{1}); got != 1 {
		t.Errorf("Eval(p1 at xi=1) = %v, want 1", got)
	}
}

func TestBuildCubicHermite1D(t *testing.T) {
	t.Parallel()
	b := mustBuild(t, "c.Hermite")
	if b.ParameterCount() != 4 || b.StandardTermCount() != 4 {
		t.Fatalf("M,S = %d,%d, want 4,4", b.ParameterCount(), b.StandardTermCount())
	}
	wantNode := []int{0, 0, 1, 1}
	wantDeriv := []int{0, 1, 0, 1}
	for i := range wantNode {
		if b.ParameterNode(i) != wantNode[i] {
			t.Errorf("node[%d] = %d, want %d", i, b.ParameterNode(i), wantNode[i])
		}
		if b.ParameterDerivative(i) != wantDeriv[i] {
			t.Errorf("deriv[%d] = %d, want %d", i, b.ParameterDerivative(i), wantDeriv[i])
		}
	}

	want := []float64{0.5, 0.125, 0.5, -0.125}
	for i, w := range want {
		got := blendedBasisValue(b, i, 0.5)
		if !floats.EqualWithinAbsOrRel(got, w, tol, tol) {
			t.Errorf("basis function %d at xi=0.5 = %v, want %v", i, got, w)
		}
	}
}

// blendedBasisValue evaluates the i-th basis function alone at xi by
// setting a unit element-parameter vector.
func blendedBasisValue(b *Basis, i int, xi float64) float64 {
	p := make([]float64, b.ParameterCount())
	p[i] = 1
	return b.Eval(p, []float64{xi})
}

func TestBuildBilinearLagrange2D(t *testing.T) {
	t.Parallel()
	b := mustBuild(t, "l.Lagrange*l.Lagrange")
	if b.ParameterCount() != 4 || b.StandardTermCount() != 4 {
		t.Fatalf("M,S = %d,%d, want 4,4", b.ParameterCount(), b.StandardTermCount())
	}
	want := []float64{0.1875, 0.0625, 0.5625, 0.1875}
	xi := []float64{0.25, 0.75}
	for i, w := range want {
		got := blendedBasisValue2D(b, i, xi)
		if !floats.EqualWithinAbsOrRel(got, w, tol, tol) {
			t.Errorf("basis function %d at xi=%v = %v, want %v", i, xi, got, w)
		}
	}
	sum := 0.0
	for i := range want {
		sum += blendedBasisValue2D(b, i, xi)
	}
	if !floats.EqualWithinAbsOrRel(sum, 1, tol, tol) {
		t.Errorf("partition of unity: sum = %v, want 1", sum)
	}
}

func blendedBasisValue2D(b *Basis, i int, xi []float64) float64 {
	p := make([]float64, b.ParameterCount())
	p[i] = 1
	return b.Eval(p, xi)
}

func TestBuildLinearSimplex2D(t *testing.T) {
	t.Parallel()
	b := mustBuild(t, "l.simplex(2)*l.simplex")
	if b.ParameterCount() != 3 {
		t.Fatalf("M = %d, want 3", b.ParameterCount())
	}
	xi := []float64{1.0 / 3, 1.0 / 3}
	for i := 0; i < 3; i++ {
		got := blendedBasisValue2D(b, i, xi)
		if !floats.EqualWithinAbsOrRel(got, 1.0/3, tol, tol) {
			t.Errorf("basis function %d at centroid = %v, want 1/3", i, got)
		}
	}
}

func TestBuildPolygonPentagon(t *testing.T) {
	t.Parallel()
	b := mustBuild(t, "polygon(5;2)*polygon")
	if b.ParameterCount() != 6 {
		t.Fatalf("M = %d, want 6", b.ParameterCount())
	}
	if b.StandardTermCount() != 20 {
		t.Fatalf("S = %d, want 20", b.StandardTermCount())
	}
	want := []float64{1, 0, 0, 0, 0, 0}
	xi := []float64{0.37, 0} // any circumferential value, radial=0 (centre)
	for i, w := range want {
		got := blendedBasisValue2D(b, i, xi)
		if !floats.EqualWithinAbsOrRel(got, w, tol, tol) {
			t.Errorf("basis function %d at radial=0 = %v, want %v", i, got, w)
		}
	}
}

func TestPartitionOfUnity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		text string
		xis  [][]float64
	}{
		{"l.Lagrange", [][]float64{{0}, {0.3}, {1}}},
		{"c.Hermite", [][]float64{{0}, {0.2}, {0.9}, {1}}},
		{"l.Lagrange*l.Lagrange", [][]float64{{0.1, 0.2}, {0.5, 0.5}, {0.9, 0.1}}},
		{"l.simplex(2)*l.simplex", [][]float64{{0.2, 0.3}, {1.0 / 3, 1.0 / 3}}},
		{"polygon(5;2)*polygon", [][]float64{{0.1, 0.4}, {0.9, 1}, {0.5, 0}}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.text, func(t *testing.T) {
			t.Parallel()
			b := mustBuild(t, c.text)
			phi := make([]float64, b.StandardTermCount())
			for _, xi := range c.xis {
				b.EvalStandard(xi, phi)
				// Only nodal-value functions sum to one; Hermite
				// derivative functions are excluded from the sum.
				sum := 0.0
				for m := 0; m < b.ParameterCount(); m++ {
					if b.ParameterDerivative(m) != 0 {
						continue
					}
					p := make([]float64, b.ParameterCount())
					p[m] = 1
					sum += b.Eval(p, xi)
				}
				if !floats.EqualWithinAbsOrRel(sum, 1, tol, tol) {
					t.Errorf("%s at xi=%v: partition of unity sum = %v, want 1", c.text, xi, sum)
				}
			}
		})
	}
}
