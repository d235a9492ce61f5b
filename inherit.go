// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform is the affine coordinate map from an inherited parametric
// space of dimension DPrime into the basis's own parametric space of
// dimension D: xi_k = Offset[k] + Σ_j Coeff[k][j]*xi'_j, for each
// original coordinate k.
type Transform struct {
	D      int
	DPrime int
	Offset []float64
	Coeff  [][]float64 // D rows, DPrime columns
}

// NewTransform returns a Transform with zero offset and coefficients,
// ready for the caller to fill in with Set.
func NewTransform(d, dPrime int) *Transform {
	coeff := make([][]float64, d)
	for k := range coeff {
		coeff[k] = make([]float64, dPrime)
	}
	return &Transform{D: d, DPrime: dPrime, Offset: make([]float64, d), Coeff: coeff}
}

// Set records xi_k's dependence on inherited coordinate j.
func (t *Transform) Set(k, j int, v float64) { t.Coeff[k][j] = v }

// Inherited is the evaluator obtained by projecting a Basis through an
// affine Transform: a triple (std_kind', std_args', B_comb) with B_comb
// of shape M×S'. Its lifetime is that of a single evaluation call, or
// longer if the caller chooses to cache it; it is not cached by the
// engine itself.
type Inherited struct {
	StdKind StdKind
	StdArgs []int
	S       int
	B       *mat.Dense // M x S
}

// EvalStandard evaluates the S inherited standard-basis terms at
// inherited coordinate xiPrime, writing into out (length S).
func (inh *Inherited) EvalStandard(xiPrime []float64, out []float64) {
	switch inh.StdKind {
	case StdPolygon:
		evalPolygon(inh.StdArgs, xiPrime, out)
	default:
		evalMonomial(inh.StdArgs, xiPrime, out)
	}
}

// Eval returns the field value pᵀ·B_comb·φ'(ξ') for original element
// parameters p at inherited coordinate xiPrime.
func (inh *Inherited) Eval(p []float64, xiPrime []float64) float64 {
	m, _ := inh.B.Dims()
	phi := make([]float64, inh.S)
	inh.EvalStandard(xiPrime, phi)

	blended := make([]float64, inh.S)
	for j := 0; j < inh.S; j++ {
		var acc float64
		for i := 0; i < m; i++ {
			acc += p[i] * inh.B.At(i, j)
		}
		blended[j] = acc
	}
	var total float64
	for j, v := range blended {
		total += v * phi[j]
	}
	return total
}

// identityTransform builds the Transform corresponding to a null
// transformation pointer: the inherited basis is the first dPrime
// coordinates of the original, unchanged, with the remaining original
// coordinates fixed at xi=0.
func identityTransform(d, dPrime int) *Transform {
	t := NewTransform(d, dPrime)
	for k := 0; k < d && k < dPrime; k++ {
		t.Set(k, k, 1)
	}
	return t
}

// Inherit projects basis through the affine coordinate map a (or, if a
// is nil, the identity projection onto the first dPrime coordinates)
// into an inherited parametric space of dimension dPrime, producing the
// inherited standard-basis descriptor and a combined blending matrix
// suitable for evaluating basis on the inherited domain.
func Inherit(basis *Basis, a *Transform, dPrime int) (*Inherited, error) {
	if a == nil {
		a = identityTransform(basis.descriptor.Dim, dPrime)
	}
	if basis.stdKind == StdPolygon {
		return inheritPolygon(basis, a, dPrime)
	}
	return inheritMonomial(basis, a, dPrime)
}

// inheritMonomial implements the §4.4 monomial path: each original
// coordinate term xi_k^{i_k} is replaced by the affine expansion
// (Offset[k] + Σ_j Coeff[k][j]*xi'_j)^{i_k}, and the tensor product of
// these replacements becomes a linear combination of monomials in xi'.
func inheritMonomial(basis *Basis, a *Transform, dPrime int) (*Inherited, error) {
	d := basis.descriptor.Dim
	orders := basis.stdArgs[1:]

	inhOrder := make([]int, dPrime)
	for k := 0; k < d; k++ {
		for j := 0; j < dPrime; j++ {
			if a.Coeff[k][j] != 0 && orders[k] > inhOrder[j] {
				inhOrder[j] = orders[k]
			}
		}
	}
	inhArgs := make([]int, dPrime+1)
	inhArgs[0] = dPrime
	copy(inhArgs[1:], inhOrder)
	sInh := monomialTermCount(inhArgs)

	// powers[k][p] is the length-sInh dense coefficient vector of
	// (Offset[k] + Σ Coeff[k][j] xi'_j)^p, expressed over the inherited
	// monomial layout.
	powers := make([][][]float64, d)
	for k := 0; k < d; k++ {
		linear := make([]float64, sInh)
		linear[0] = a.Offset[k]
		for j := 0; j < dPrime; j++ {
			if a.Coeff[k][j] == 0 {
				continue
			}
			idx := make([]int, dPrime)
			idx[j] = 1
			linear[inhPos(idx, inhOrder)] += a.Coeff[k][j]
		}
		powers[k] = make([][]float64, orders[k]+1)
		powers[k][0] = make([]float64, sInh)
		powers[k][0][0] = 1
		for p := 1; p <= orders[k]; p++ {
			powers[k][p] = convolve(powers[k][p-1], linear, inhOrder)
		}
	}

	m, s := basis.b.Dims()
	comb := mat.NewDense(m, sInh, nil)
	for row := 0; row < m; row++ {
		for origIdx := 0; origIdx < s; origIdx++ {
			coeff := basis.b.At(row, origIdx)
			if coeff == 0 {
				continue
			}
			digits := monomialDigits(origIdx, orders)
			term := powers[0][digits[0]]
			for k := 1; k < d; k++ {
				term = convolve(term, powers[k][digits[k]], inhOrder)
			}
			for j := 0; j < sInh; j++ {
				if term[j] == 0 {
					continue
				}
				comb.Set(row, j, comb.At(row, j)+coeff*term[j])
			}
		}
	}

	return &Inherited{StdKind: StdMonomial, StdArgs: inhArgs, S: sInh, B: comb}, nil
}

// monomialDigits decomposes a standard-term index into its per-coordinate
// exponents given the coordinate orders, inverse of the layout used by
// evalMonomial (coordinate 1 fastest).
func monomialDigits(idx int, orders []int) []int {
	digits := make([]int, len(orders))
	for k, order := range orders {
		digits[k] = idx % (order + 1)
		idx /= order + 1
	}
	return digits
}

// inhPos computes the flat index of a multi-index over the inherited
// monomial layout (coordinate 1 fastest).
func inhPos(idx []int, orders []int) int {
	pos := 0
	stride := 1
	for k, e := range idx {
		pos += e * stride
		stride *= orders[k] + 1
	}
	return pos
}

// origGroup is one coordinate group of a polygon-kind basis's standard
// term space: either a single monomial coordinate (a plain
// Lagrange/Hermite or simplex member, with its monomial order; simplex
// members are encoded identically to monomial coordinates) or a polygon
// pair.
type origGroup struct {
	polygon       bool
	coord         int // monomial: the coordinate; polygon: the owner (circumferential)
	partner       int // polygon only
	order         int // monomial only
	vertices      int // polygon only
	width         int // group's digit radix: order+1, or 4*vertices
}

// buildOrigGroups walks stdArgs in coordinate order, pairing each polygon
// owner with its radial partner into a single group.
func buildOrigGroups(stdArgs []int) []origGroup {
	d := stdArgs[0]
	consumed := make([]bool, d)
	var groups []origGroup
	for c := 0; c < d; c++ {
		if consumed[c] {
			continue
		}
		role, extra := argKind(stdArgs, c)
		switch role {
		case argPolygonFirst:
			partner := c + extra
			_, vertices := argKind(stdArgs, partner)
			consumed[c] = true
			consumed[partner] = true
			groups = append(groups, origGroup{polygon: true, coord: c, partner: partner, vertices: vertices, width: 4 * vertices})
		case argPolygonSecond:
			// reached only if its owner precedes it in a way this loop
			// has not yet skipped; buildOrigGroups always visits the
			// owner first since owners carry the smaller index.
			consumed[c] = true
		default:
			groups = append(groups, origGroup{coord: c, order: extra, width: extra + 1})
		}
	}
	return groups
}

// invGroup is one group of the inherited term space: a free inherited
// coordinate (possibly unused, width 1) or a polygon pair reserved by a
// fully-inherited polygon coupling.
type invGroup struct {
	polygon  bool
	coordJ   int
	partnerJ int
	vertices int
	width    int
}

// inheritPolygon implements the polygon §4.4 projection path. Only
// structurally restricted affine maps are supported: each original
// coordinate depends on at most one inherited coordinate with unit
// coefficient and zero offset (or is fixed at its Offset, projecting it
// out). A polygon pair is projected as a whole (both members inherited,
// orientation preserved), not at all (both members fixed), or with only
// its circumferential member inherited, which degenerates to a plain
// order-1 monomial of the inherited coordinate, restricted to the wedge
// the fixed radial/circumferential offset falls in. Inheriting the
// radial member alone is rejected as unsupported: see Open Questions in
// DESIGN.md.
func inheritPolygon(basis *Basis, a *Transform, dPrime int) (*Inherited, error) {
	groups := buildOrigGroups(basis.stdArgs)

	mapTo := make([]int, a.D)
	for k := range mapTo {
		mapTo[k] = -1
	}
	usedInh := make([]bool, dPrime)
	for k := 0; k < a.D; k++ {
		count, target := 0, -1
		for j := 0; j < dPrime; j++ {
			if a.Coeff[k][j] != 0 {
				count++
				target = j
			}
		}
		if count > 1 {
			return nil, newErr(ErrProjectionInvalid, "coordinate %d depends on more than one inherited coordinate", k)
		}
		if count == 1 {
			if a.Coeff[k][target] != 1 || a.Offset[k] != 0 {
				return nil, newErr(ErrProjectionUnsupported, "coordinate %d: only unit, offset-free projections are supported in a polygon basis", k)
			}
			if usedInh[target] {
				return nil, newErr(ErrProjectionInvalid, "inherited coordinate %d claimed by more than one original coordinate", target)
			}
			usedInh[target] = true
			mapTo[k] = target
		}
	}

	// inhWidth accumulates, for each inherited coordinate driven by a
	// monomial original coordinate, the widest order required.
	inhWidth := make([]int, dPrime)
	for j := range inhWidth {
		inhWidth[j] = 1
	}
	polyInhOwner := make([]int, 0, len(groups))
	polyInhPartner := make(map[int]int)
	polyInhVertices := make(map[int]int)

	for _, g := range groups {
		if !g.polygon {
			if j := mapTo[g.coord]; j >= 0 {
				if inhWidth[j] < g.order+1 {
					inhWidth[j] = g.order + 1
				}
			}
			continue
		}
		jo, jp := mapTo[g.coord], mapTo[g.partner]
		switch {
		case jo < 0 && jp < 0:
			// fully projected out, handled at accumulation time.
		case jo >= 0 && jp >= 0:
			if jp <= jo {
				return nil, newErr(ErrProjectionInvalid, "polygon coordinates %d,%d: inherited projection reorders the pair", g.coord, g.partner)
			}
			polyInhOwner = append(polyInhOwner, jo)
			polyInhPartner[jo] = jp
			polyInhVertices[jo] = g.vertices
		case jo >= 0 && jp < 0:
			// circumferential inherited, radial fixed: degenerates to an
			// order-1 monomial of the inherited coordinate.
			if inhWidth[jo] < polygonRadialOrder+1 {
				inhWidth[jo] = polygonRadialOrder + 1
			}
		default:
			return nil, newErr(ErrProjectionUnsupported, "polygon coordinates %d,%d: cannot inherit the radial coordinate by itself", g.coord, g.partner)
		}
	}

	reserved := make([]bool, dPrime)
	for _, jo := range polyInhOwner {
		reserved[jo] = true
		reserved[polyInhPartner[jo]] = true
	}

	var invGroups []invGroup
	invIndexOfCoord := make(map[int]int) // inherited coordinate -> invGroups index holding it
	partnerOfOwnerJ := make(map[int]bool)
	for _, jo := range polyInhOwner {
		partnerOfOwnerJ[polyInhPartner[jo]] = true
	}
	for j := 0; j < dPrime; j++ {
		if partnerOfOwnerJ[j] {
			continue
		}
		if v, ok := polyInhVertices[j]; ok {
			invGroups = append(invGroups, invGroup{polygon: true, coordJ: j, partnerJ: polyInhPartner[j], vertices: v, width: 4 * v})
		} else {
			invGroups = append(invGroups, invGroup{coordJ: j, width: inhWidth[j]})
		}
		invIndexOfCoord[j] = len(invGroups) - 1
	}

	sInh := 1
	invOrders := make([]int, len(invGroups))
	for i, g := range invGroups {
		invOrders[i] = g.width - 1
		sInh *= g.width
	}

	inhArgs := make([]int, dPrime+1)
	inhArgs[0] = dPrime
	for _, g := range invGroups {
		if g.polygon {
			inhArgs[g.coordJ+1] = encodePolygonFirst(g.partnerJ-g.coordJ, dPrime)
			inhArgs[g.partnerJ+1] = encodePolygonSecond(g.vertices)
		} else {
			inhArgs[g.coordJ+1] = g.width - 1
		}
	}
	kind := StdMonomial
	for _, g := range invGroups {
		if g.polygon {
			kind = StdPolygon
		}
	}

	// perGroupFamily[gi] holds, for original group gi, the family of
	// length-sInh vectors indexed by that group's own digit (power for a
	// monomial group, standard-term index for a polygon group).
	perGroupFamily := make([][][]float64, len(groups))
	for gi, g := range groups {
		if !g.polygon {
			linear := make([]float64, sInh)
			j := mapTo[g.coord]
			if j < 0 {
				linear[0] = a.Offset[g.coord]
			} else {
				digits := make([]int, len(invGroups))
				digits[invIndexOfCoord[j]] = 1
				linear[inhPos(digits, invOrders)] = 1
			}
			family := make([][]float64, g.order+1)
			family[0] = make([]float64, sInh)
			family[0][0] = 1
			for p := 1; p <= g.order; p++ {
				family[p] = convolve(family[p-1], linear, invOrders)
			}
			perGroupFamily[gi] = family
			continue
		}

		jo, jp := mapTo[g.coord], mapTo[g.partner]
		family := make([][]float64, g.width)
		switch {
		case jo < 0 && jp < 0:
			fixed := polygonFixedFamily(g.vertices, a.Offset[g.coord], a.Offset[g.partner])
			for q := 0; q < g.width; q++ {
				v := make([]float64, sInh)
				v[0] = fixed[q]
				family[q] = v
			}
		case jo >= 0 && jp < 0:
			// Circumferential inherited, radial fixed: the active wedge is
			// fixed by the circumferential offset, and within it every
			// standard term is affine in the inherited coordinate.
			vertices := g.vertices
			xiRad := a.Offset[g.partner]
			raw := a.Offset[g.coord]
			xiCirc := raw - math.Floor(raw)
			w := xiCirc * float64(vertices)
			vertex := int(w)
			frac0 := w - float64(vertex)
			if vertex == vertices {
				vertex = 0
				frac0 = 0
			}
			gi2 := invIndexOfCoord[jo]
			pos := func(digit int) int {
				digits := make([]int, len(invGroups))
				digits[gi2] = digit
				return inhPos(digits, invOrders)
			}
			p0, p1 := pos(0), pos(1)
			for q := range family {
				family[q] = make([]float64, sInh)
			}
			// frac, as a function of the inherited coordinate xi', is
			// frac0 + vertices*xi' (xi' has unit coefficient in the
			// original circumferential coordinate, which the wrap-to-[0,1)
			// rescales by vertices before taking the fractional part).
			slope := float64(vertices)
			family[vertex][p0] = 1
			family[vertices+vertex][p0] = frac0
			family[vertices+vertex][p1] = slope
			family[2*vertices+vertex][p0] = xiRad
			family[3*vertices+vertex][p0] = xiRad * frac0
			family[3*vertices+vertex][p1] = xiRad * slope
		default:
			gi2 := invIndexOfCoord[jo]
			for q := 0; q < g.width; q++ {
				digits := make([]int, len(invGroups))
				digits[gi2] = q
				v := make([]float64, sInh)
				v[inhPos(digits, invOrders)] = 1
				family[q] = v
			}
		}
		perGroupFamily[gi] = family
	}

	origWidths := make([]int, len(groups))
	for gi, g := range groups {
		origWidths[gi] = g.width
	}
	origOrders := make([]int, len(groups))
	for gi, w := range origWidths {
		origOrders[gi] = w - 1
	}

	m, s := basis.b.Dims()
	comb := mat.NewDense(m, sInh, nil)
	for row := 0; row < m; row++ {
		for origIdx := 0; origIdx < s; origIdx++ {
			coeff := basis.b.At(row, origIdx)
			if coeff == 0 {
				continue
			}
			digits := monomialDigits(origIdx, origOrders)
			term := perGroupFamily[0][digits[0]]
			for gi := 1; gi < len(groups); gi++ {
				term = convolve(term, perGroupFamily[gi][digits[gi]], invOrders)
			}
			for j := 0; j < sInh; j++ {
				if term[j] == 0 {
					continue
				}
				comb.Set(row, j, comb.At(row, j)+coeff*term[j])
			}
		}
	}

	return &Inherited{StdKind: kind, StdArgs: inhArgs, S: sInh, B: comb}, nil
}

// polygonFixedFamily evaluates the 4*vertices standard polygon terms at a
// fixed (non-varying) circumferential/radial coordinate pair, as needed
// when a polygon pair is projected out entirely by inheritance.
func polygonFixedFamily(vertices int, xiCircRaw, xiRad float64) []float64 {
	xiCirc := xiCircRaw - math.Floor(xiCircRaw)
	w := xiCirc * float64(vertices)
	vertex := int(w)
	frac := w - float64(vertex)
	if vertex == vertices {
		vertex = 0
		frac = 0
	}
	out := make([]float64, 4*vertices)
	out[vertex] = 1
	out[vertices+vertex] = frac
	out[2*vertices+vertex] = xiRad
	out[3*vertices+vertex] = xiRad * frac
	return out
}

// convolve multiplies two dense multivariate-monomial coefficient
// vectors over the same per-coordinate order bound, dropping any product
// term that would overflow a coordinate's order. Such terms arise when one
// inherited coordinate drives several original coordinates whose combined
// power exceeds that coordinate's bound; their contribution is not kept.
func convolve(a, b []float64, orders []int) []float64 {
	out := make([]float64, len(a))
	for i, av := range a {
		if av == 0 {
			continue
		}
		di := monomialDigits(i, orders)
		for j, bv := range b {
			if bv == 0 {
				continue
			}
			dj := monomialDigits(j, orders)
			ok := true
			sum := make([]int, len(orders))
			for k := range orders {
				sum[k] = di[k] + dj[k]
				if sum[k] > orders[k] {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			out[inhPos(sum, orders)] += av * bv
		}
	}
	return out
}
