// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "gonum.org/v1/gonum/mat"

// StdKind names which Standard Basis Evaluator a built Basis uses.
type StdKind int

const (
	// StdMonomial selects the dense multivariate monomial evaluator.
	StdMonomial StdKind = iota
	// StdPolygon selects the polygon evaluator (at least one coordinate
	// is polygon-coupled).
	StdPolygon
)

// Basis is the built artifact owned by a Registry: an immutable blending
// matrix mapping M element parameters (nodal values and derivatives) to S
// standard-basis terms, plus the metadata linking each basis function to
// a local node and derivative type. Basis values never change after
// construction and may be shared by any number of callers.
type Basis struct {
	descriptor Descriptor

	m int // number of basis functions / element parameters
	s int // number of standard-basis terms

	// b is the M×S blending matrix.
	b *mat.Dense

	// colSize[j] is one past the last non-zero row of column j, used to
	// truncate dot products in Blend.
	colSize []int

	// node[m] is the 0-based local-node index of basis function m.
	node []int
	// deriv[m] is the derivative bitmask of basis function m: bit k
	// indicates a derivative with respect to parametric coordinate k+1.
	deriv []int

	stdKind StdKind
	// stdArgs is the argument vector consumed by the standard evaluator:
	// stdArgs[0] is the dimension, the rest are per-coordinate encodings.
	stdArgs []int
}

// Descriptor returns the symbolic descriptor this basis was built from.
func (b *Basis) Descriptor() Descriptor { return b.descriptor }

// ParameterCount returns M, the number of basis functions (and element
// parameters).
func (b *Basis) ParameterCount() int { return b.m }

// StandardTermCount returns S, the number of standard-basis terms.
func (b *Basis) StandardTermCount() int { return b.s }

// StdKind reports which standard evaluator this basis uses.
func (b *Basis) StdKind() StdKind { return b.stdKind }

// StdArgs returns the argument vector consumed by the standard evaluator.
// Callers must not modify the returned slice.
func (b *Basis) StdArgs() []int { return b.stdArgs }

// ParameterNode returns the 0-based local-node index of basis function m.
func (b *Basis) ParameterNode(m int) int { return b.node[m] }

// ParameterDerivative returns the derivative bitmask of basis function m.
func (b *Basis) ParameterDerivative(m int) int { return b.deriv[m] }

// NodeCount returns the number of distinct local nodes.
func (b *Basis) NodeCount() int {
	max := -1
	for _, n := range b.node {
		if n > max {
			max = n
		}
	}
	return max + 1
}

// EvalStandard evaluates the S standard-basis terms at parametric
// coordinate xi (length D), writing into out (length S). EvalStandard is
// a pure function of xi: equal xi yield bitwise-equal out. Neither
// evaluator allocates; out is owned by the caller.
func (b *Basis) EvalStandard(xi []float64, out []float64) {
	switch b.stdKind {
	case StdPolygon:
		evalPolygon(b.stdArgs, xi, out)
	default:
		evalMonomial(b.stdArgs, xi, out)
	}
}

// Blend returns the length-S blended vector q = Bᵀp, computed as a
// truncated column-wise dot product using colSize to skip trailing
// zeros. Accumulation uses float64 regardless of storage precision to
// limit rounding error on bases with large cancelling coefficients
// (cubic Hermite, quadratic simplex).
func (b *Basis) Blend(p []float64) []float64 {
	q := make([]float64, b.s)
	b.BlendInto(p, q)
	return q
}

// BlendInto is Blend without the output allocation; q must have length S.
func (b *Basis) BlendInto(p []float64, q []float64) {
	for j := 0; j < b.s; j++ {
		var sum float64
		limit := b.colSize[j]
		for i := 0; i < limit; i++ {
			sum += p[i] * b.b.At(i, j)
		}
		q[j] = sum
	}
}

// Eval returns the field value pᵀ·B·φ(ξ) for element parameters p at
// parametric coordinate xi.
func (b *Basis) Eval(p []float64, xi []float64) float64 {
	phi := make([]float64, b.s)
	b.EvalStandard(xi, phi)
	q := b.Blend(p)
	var sum float64
	for i, v := range q {
		sum += v * phi[i]
	}
	return sum
}
