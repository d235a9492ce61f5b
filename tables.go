// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "gonum.org/v1/gonum/mat"

// ruleTable is a prebaked 1-D blending matrix together with the
// (local-node, derivative-bit) label of each of its rows, used by the
// Builder's coordinate sweep: oneDimTables holds one for each of the seven
// non-coupling 1-D rules.
type ruleTable struct {
	B     *mat.Dense
	node  []int
	deriv []int
}

var oneDimTables = map[RuleKind]ruleTable{
	Constant: {
		B:     mat.NewDense(1, 1, []float64{1}),
		node:  []int{0},
		deriv: []int{0},
	},
	LinearLagrange: {
		B: mat.NewDense(2, 2, []float64{
			1, -1,
			0, 1,
		}),
		node:  []int{0, 1},
		deriv: []int{0, 0},
	},
	QuadraticLagrange: {
		B: mat.NewDense(3, 3, []float64{
			1, -3, 2,
			0, 4, -4,
			0, -1, 2,
		}),
		node:  []int{0, 1, 2},
		deriv: []int{0, 0, 0},
	},
	CubicLagrange: {
		B: mat.NewDense(4, 4, []float64{
			1, -5.5, 9, -4.5,
			0, 9, -22.5, 13.5,
			0, -4.5, 18, -13.5,
			0, 1, -4.5, 4.5,
		}),
		node:  []int{0, 1, 2, 3},
		deriv: []int{0, 0, 0, 0},
	},
	CubicHermite: {
		B: mat.NewDense(4, 4, []float64{
			1, 0, -3, 2,
			0, 1, -2, 1,
			0, 0, 3, -2,
			0, 0, -1, 1,
		}),
		node:  []int{0, 0, 1, 1},
		deriv: []int{0, 1, 0, 1},
	},
	LagrangeHermite: {
		B: mat.NewDense(3, 3, []float64{
			1, -2, 1,
			0, 2, -1,
			0, -1, 1,
		}),
		node:  []int{0, 1, 1},
		deriv: []int{0, 0, 1},
	},
	HermiteLagrange: {
		B: mat.NewDense(3, 3, []float64{
			1, 0, -1,
			0, 1, -1,
			0, 0, 1,
		}),
		node:  []int{0, 0, 1},
		deriv: []int{0, 1, 0},
	},
}

// simplexTables holds a monolithic blending matrix for a multi-coordinate
// simplex coupling, keyed by inner kind and spanned dimension (2 or 3).
var simplexTables = map[RuleKind]map[int]ruleTable{
	LinearSimplex: {
		2: {
			B: mat.NewDense(3, 4, []float64{
				1, -1, -1, 0,
				0, 1, 0, 0,
				0, 0, 1, 0,
			}),
			node:  []int{0, 1, 2},
			deriv: []int{0, 0, 0},
		},
		3: {
			B: mat.NewDense(4, 8, []float64{
				1, -1, -1, 0, -1, 0, 0, 0,
				0, 1, 0, 0, 0, 0, 0, 0,
				0, 0, 1, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 1, 0, 0, 0,
			}),
			node:  []int{0, 1, 2, 3},
			deriv: []int{0, 0, 0, 0},
		},
	},
	QuadraticSimplex: {
		2: {
			B: mat.NewDense(6, 9, []float64{
				1, -3, 2, -3, 4, 0, 2, 0, 0,
				0, 4, -4, 0, -4, 0, 0, 0, 0,
				0, -1, 2, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 4, -4, 0, -4, 0, 0,
				0, 0, 0, 0, 4, 0, 0, 0, 0,
				0, 0, 0, -1, 0, 0, 2, 0, 0,
			}),
			node:  []int{0, 1, 2, 3, 4, 5},
			deriv: []int{0, 0, 0, 0, 0, 0},
		},
		3: {
			B: mat.NewDense(10, 27, []float64{
				1, -3, 2, -3, 4, 0, 2, 0, 0, -3, 4, 0, 4, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 4, -4, 0, -4, 0, 0, 0, 0, 0, -4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, -1, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 4, -4, 0, -4, 0, 0, 0, 0, 0, -4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, -1, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 0, 4, -4, 0, -4, 0, 0, 0, 0, 0, -4, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0,
			}),
			node:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			deriv: make([]int, 10),
		},
	},
}

// polygonBlendMatrix constructs the (V+1)×4V blending matrix for a
// vertices-V polygon coupling: row 0 is the centre node, rows 1..V are
// the peripheral nodes. Columns are grouped [s00_0..s00_{V-1},
// s10_0..s10_{V-1}, s01_0..s01_{V-1}, s11_0..s11_{V-1}] to match the
// layout evalPolygon produces.
//
// The centre node is the constant-radial term 1 - xi2, expressed as
// Σs00 - Σs01. Peripheral node v (1-based index v+1, 0-based v) is the
// hat function shared by wedges v and v-1: s01_v - s11_v + s11_{v-1 mod V}.
func polygonBlendMatrix(v int) ruleTable {
	rows := v + 1
	cols := 4 * v
	data := make([]float64, rows*cols)
	b := mat.NewDense(rows, cols, data)
	for i := 0; i < v; i++ {
		b.Set(0, i, 1)           // s00_i
		b.Set(0, 2*v+i, -1)      // -s01_i
	}
	for vertex := 0; vertex < v; vertex++ {
		row := vertex + 1
		b.Set(row, 2*v+vertex, 1)             // +s01_vertex
		b.Set(row, 3*v+vertex, -1)             // -s11_vertex
		prev := (vertex - 1 + v) % v
		b.Set(row, 3*v+prev, b.At(row, 3*v+prev)+1) // +s11_prev
	}
	node := make([]int, rows)
	deriv := make([]int, rows)
	for i := range node {
		node[i] = i
	}
	return ruleTable{B: b, node: node, deriv: deriv}
}
