// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

// evalMonomial computes the dense multivariate monomial standard-basis
// values for a coordinate vector xi, writing into out. args[0] is the
// parametric dimension D; args[1..D] are the per-coordinate orders. out
// must have length equal to the product of (order_k+1). Coordinate 1
// varies fastest: the term with multi-index (i1,...,iD) lands at
// i1 + (order_1+1)*i2 + (order_1+1)*(order_2+1)*i3 + ... .
//
// evalMonomial performs no allocation; the caller owns out.
func evalMonomial(args []int, xi []float64, out []float64) {
	out[0] = 1
	n := 1
	d := args[0]
	for k := 0; k < d; k++ {
		order := args[k+1]
		x := xi[k]
		xp := x
		for p := 1; p <= order; p++ {
			for j := 0; j < n; j++ {
				out[n*p+j] = out[j] * xp
			}
			xp *= x
		}
		n *= order + 1
	}
}

// monomialTermCount returns S = Π(order_k+1) for a plain monomial
// argument vector args[0..D] (dimension followed by per-coordinate
// orders).
func monomialTermCount(args []int) int {
	d := args[0]
	n := 1
	for k := 0; k < d; k++ {
		n *= args[k+1] + 1
	}
	return n
}
