// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// flabel is the per-function bookkeeping record threaded through the
// coordinate sweep: for each of the D parametric coordinates, the local
// node index and derivative bit contributed by that coordinate's rule.
type flabel struct {
	node  []int
	deriv []int
}

func newFLabel(d int) flabel {
	return flabel{node: make([]int, d), deriv: make([]int, d)}
}

func (l flabel) clone() flabel {
	n := newFLabel(len(l.node))
	copy(n.node, l.node)
	copy(n.deriv, l.deriv)
	return n
}

// Build constructs the Basis object for a validated descriptor: the
// number of basis functions, the number of standard-basis terms, the
// blending matrix, column compaction metadata, and the parameter-to-node
// and parameter-to-derivative-type tables. Build performs the coordinate
// sweep, function reordering, node numbering, column sizing and
// evaluator selection described in the package's design: it never
// returns a partially built Basis.
func Build(d Descriptor) (*Basis, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	dim := d.Dim
	b := mat.NewDense(1, 1, []float64{1})
	labels := []flabel{newFLabel(dim)}
	stdArgs := make([]int, dim+1)
	stdArgs[0] = dim
	hasPolygon := false

	consumed := make([]bool, dim)
	for c := 0; c < dim; c++ {
		if consumed[c] {
			continue
		}
		rule := d.Rule(c)
		switch {
		case rule.isSimplex():
			members := []int{c}
			for j := c + 1; j < dim; j++ {
				if d.Coupling(c, j) == 1 {
					members = append(members, j)
				}
			}
			table, ok := simplexTables[rule][len(members)]
			if !ok {
				return nil, newErr(ErrBuildAllocation, "no tabulated %s for %d coupled coordinates", rule, len(members))
			}
			order := 1
			if rule == QuadraticSimplex {
				order = 2
			}
			b, labels = tensorIn(b, labels, table, members, dim)
			for _, m := range members {
				stdArgs[m+1] = order
				consumed[m] = true
			}

		case rule == Polygon:
			partner, vertices, ok := d.isOwner(c)
			if !ok {
				return nil, newErr(ErrDescriptorInvalidCoupling, "polygon coordinate %d has no partner", c)
			}
			table := polygonBlendMatrix(vertices)
			b, labels = tensorIn(b, labels, table, []int{c, partner}, dim)
			delta := partner - c
			stdArgs[c+1] = encodePolygonFirst(delta, dim)
			stdArgs[partner+1] = encodePolygonSecond(vertices)
			consumed[c] = true
			consumed[partner] = true
			hasPolygon = true

		default:
			table, ok := oneDimTables[rule]
			if !ok {
				return nil, newErr(ErrDescriptorInvalidTag, "coordinate %d: unsupported rule tag %s", c, rule)
			}
			rows, _ := table.B.Dims()
			b, labels = tensorIn(b, labels, table, []int{c}, dim)
			stdArgs[c+1] = rows - 1
			consumed[c] = true
		}
	}

	m, s := b.Dims()
	if m != len(labels) {
		return nil, newErr(ErrBuildAllocation, "internal inconsistency: %d basis functions but %d labels", m, len(labels))
	}

	perm := sortPermutation(labels, dim)
	b = permuteRows(b, perm)
	sortedLabels := make([]flabel, m)
	for i, p := range perm {
		sortedLabels[i] = labels[p]
	}

	node := make([]int, m)
	deriv := make([]int, m)
	nextNode := -1
	for i, l := range sortedLabels {
		if i == 0 || !sameNodeTuple(sortedLabels[i-1], l) {
			nextNode++
		}
		node[i] = nextNode
		mask := 0
		for k, dv := range l.deriv {
			if dv != 0 {
				mask |= 1 << uint(k)
			}
		}
		deriv[i] = mask
	}

	colSize := make([]int, s)
	for j := 0; j < s; j++ {
		last := 0
		for i := 0; i < m; i++ {
			if b.At(i, j) != 0 {
				last = i + 1
			}
		}
		colSize[j] = last
	}

	kind := StdMonomial
	if hasPolygon {
		kind = StdPolygon
	}

	return &Basis{
		descriptor: d,
		m:          m,
		s:          s,
		b:          b,
		colSize:    colSize,
		node:       node,
		deriv:      deriv,
		stdKind:    kind,
		stdArgs:    stdArgs,
	}, nil
}

// tensorIn tensors table.B into the accumulated blending matrix as the
// outer (slower-varying) factor, and extends each function's label with
// the node/derivative contributed by table for every member coordinate
// (the member coordinates of a simplex or polygon group all share the
// same per-row node/derivative value; a plain 1-D rule has one member).
func tensorIn(acc *mat.Dense, accLabels []flabel, table ruleTable, members []int, dim int) (*mat.Dense, []flabel) {
	newRows, _ := table.B.Dims()
	oldM := len(accLabels)

	out := &mat.Dense{}
	out.Kronecker(table.B, acc)

	newLabels := make([]flabel, newRows*oldM)
	for r := 0; r < newRows; r++ {
		for j := 0; j < oldM; j++ {
			l := accLabels[j].clone()
			for _, mcoord := range members {
				l.node[mcoord] = table.node[r]
				l.deriv[mcoord] = table.deriv[r]
			}
			newLabels[r*oldM+j] = l
		}
	}
	return out, newLabels
}

// sortPermutation returns the row permutation realising the canonical
// function ordering: node index varying slowest (coordinate D-1 down to
// 0 taken as the node sub-tuple, most to least significant), then
// derivative type by the same per-coordinate precedence.
func sortPermutation(labels []flabel, dim int) []int {
	perm := make([]int, len(labels))
	for i := range perm {
		perm[i] = i
	}
	less := func(a, b flabel) bool {
		for k := dim - 1; k >= 0; k-- {
			if a.node[k] != b.node[k] {
				return a.node[k] < b.node[k]
			}
		}
		for k := dim - 1; k >= 0; k-- {
			if a.deriv[k] != b.deriv[k] {
				return a.deriv[k] < b.deriv[k]
			}
		}
		return false
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return less(labels[perm[i]], labels[perm[j]])
	})
	return perm
}

func sameNodeTuple(a, b flabel) bool {
	for k := range a.node {
		if a.node[k] != b.node[k] {
			return false
		}
	}
	return true
}

func permuteRows(b *mat.Dense, perm []int) *mat.Dense {
	rows, cols := b.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i, p := range perm {
		for j := 0; j < cols; j++ {
			out.Set(i, j, b.At(p, j))
		}
	}
	return out
}
