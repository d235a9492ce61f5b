// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "testing"

func TestArgKindRoundTrip(t *testing.T) {
	t.Parallel()
	d := 3
	args := []int{d, encodePolygonFirst(1, d), encodePolygonSecond(6), 0}
	role, extra := argKind(args, 0)
	if role != argPolygonFirst || extra != 1 {
		t.Errorf("argKind(first) = (%v,%d), want (argPolygonFirst,1)", role, extra)
	}
	role, extra = argKind(args, 1)
	if role != argPolygonSecond || extra != 6 {
		t.Errorf("argKind(second) = (%v,%d), want (argPolygonSecond,6)", role, extra)
	}
	role, extra = argKind(args, 2)
	if role != argMonomial || extra != 0 {
		t.Errorf("argKind(monomial) = (%v,%d), want (argMonomial,0)", role, extra)
	}
}

func TestEvalPolygonVertexZeroWedge(t *testing.T) {
	t.Parallel()
	vertices := 5
	args := []int{2, encodePolygonFirst(1, 2), encodePolygonSecond(vertices)}
	out := make([]float64, polygonTermCount(args))
	evalPolygon(args, []float64{0.1, 0.3}, out) // 0.1*5 = 0.5 -> vertex 0, frac 0.5
	wantS00, wantS10, wantS01, wantS11 := 1.0, 0.5, 0.3, 0.15
	if out[0] != wantS00 {
		t.Errorf("s00[0] = %v, want %v", out[0], wantS00)
	}
	if out[vertices] != wantS10 {
		t.Errorf("s10[0] = %v, want %v", out[vertices], wantS10)
	}
	if out[2*vertices] != wantS01 {
		t.Errorf("s01[0] = %v, want %v", out[2*vertices], wantS01)
	}
	if out[3*vertices] != wantS11 {
		t.Errorf("s11[0] = %v, want %v", out[3*vertices], wantS11)
	}
	for i, v := range out {
		if i != 0 && i != vertices && i != 2*vertices && i != 3*vertices && v != 0 {
			t.Errorf("out[%d] = %v, want 0 (only vertex-0 slots should be non-zero)", i, v)
		}
	}
}

func TestEvalPolygonWrapsCircumferential(t *testing.T) {
	t.Parallel()
	vertices := 4
	args := []int{2, encodePolygonFirst(1, 2), encodePolygonSecond(vertices)}
	out := make([]float64, polygonTermCount(args))
	evalPolygon(args, []float64{1.125, 0.0}, out) // wraps to 0.125, same as xi_circ=0.125
	out2 := make([]float64, polygonTermCount(args))
	evalPolygon(args, []float64{0.125, 0.0}, out2)
	for i := range out {
		if out[i] != out2[i] {
			t.Errorf("out[%d] = %v, wrapped input disagrees with out2[%d] = %v", i, out[i], i, out2[i])
		}
	}
}
