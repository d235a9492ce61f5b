// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "testing"

func TestEvalMonomial1D(t *testing.T) {
	t.Parallel()
	args := []int{1, 2} // D=1, order=2
	out := make([]float64, monomialTermCount(args))
	evalMonomial(args, []float64{0.5}, out)
	want := []float64{1, 0.5, 0.25}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out[i], w)
		}
	}
}

func TestEvalMonomialTensorOrder(t *testing.T) {
	t.Parallel()
	// D=2, orders [1,1]: coordinate 1 fastest.
	args := []int{2, 1, 1}
	out := make([]float64, monomialTermCount(args))
	evalMonomial(args, []float64{2, 3}, out)
	want := []float64{1, 2, 3, 6} // 1, xi1, xi2, xi1*xi2
	for i, w := range want {
		if out[i] != w {
			t.Errorf("out[%d] = %v, want %v", i, out[i], w)
		}
	}
}

func TestMonomialTermCount(t *testing.T) {
	t.Parallel()
	if got := monomialTermCount([]int{3, 1, 2, 3}); got != 2*3*4 {
		t.Errorf("monomialTermCount = %d, want %d", got, 2*3*4)
	}
}
