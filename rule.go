// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

// RuleKind names a 1-D interpolation rule, or an off-diagonal coupling tag.
// The zero value NoRelation marks independent (tensor-product) coordinates
// on an off-diagonal entry; it is never a valid diagonal tag.
type RuleKind int

const (
	// NoRelation appears only off-diagonal: the two coordinates are
	// tensor-product independent.
	NoRelation RuleKind = iota

	// Constant is a single basis function with no variation.
	Constant
	// LinearLagrange interpolates linearly between two endpoint values.
	LinearLagrange
	// QuadraticLagrange interpolates quadratically through value nodes at
	// 0, 1/2 and 1.
	QuadraticLagrange
	// CubicLagrange interpolates cubically through value nodes at 0, 1/3,
	// 2/3 and 1.
	CubicLagrange
	// CubicHermite carries value and first-derivative parameters at each
	// endpoint.
	CubicHermite
	// LagrangeHermite carries a value at xi=0, and value and derivative at
	// xi=1.
	LagrangeHermite
	// HermiteLagrange carries value and derivative at xi=0, and a value at
	// xi=1.
	HermiteLagrange
	// LinearSimplex begins a linear area/volume-coordinate simplex
	// coupling spanning two or three parametric coordinates.
	LinearSimplex
	// QuadraticSimplex begins a quadratic area/volume-coordinate simplex
	// coupling spanning two or three parametric coordinates.
	QuadraticSimplex
	// Polygon begins a two-coordinate circumferential/radial coupling.
	Polygon

	// Reserved tags present in the enum but not reachable by the builder:
	// Parse does not accept them and Validate rejects them; see the
	// package Open Questions in DESIGN.md.
	BSpline
	Fourier
	Serendipity
	Singular
	Transition
)

var ruleNames = map[RuleKind]string{
	NoRelation:        "no_relation",
	Constant:          "constant",
	LinearLagrange:    "l.Lagrange",
	QuadraticLagrange: "q.Lagrange",
	CubicLagrange:     "c.Lagrange",
	CubicHermite:      "c.Hermite",
	LagrangeHermite:   "LagrangeHermite",
	HermiteLagrange:   "HermiteLagrange",
	LinearSimplex:     "l.simplex",
	QuadraticSimplex:  "q.simplex",
	Polygon:           "polygon",
	BSpline:           "BSpline",
	Fourier:           "Fourier",
	Serendipity:       "serendipity",
	Singular:          "singular",
	Transition:        "transition",
}

func (k RuleKind) String() string {
	if s, ok := ruleNames[k]; ok {
		return s
	}
	return "invalid"
}

// supportedByBuilder reports whether the builder can construct a basis
// function for this diagonal tag. BSpline, Fourier, Serendipity, Singular
// and Transition exist in the enum but have no parser token and, per the
// original implementation, are never reached by the builder.
func (k RuleKind) supportedByBuilder() bool {
	switch k {
	case Constant, LinearLagrange, QuadraticLagrange, CubicLagrange,
		CubicHermite, LagrangeHermite, HermiteLagrange,
		LinearSimplex, QuadraticSimplex, Polygon:
		return true
	default:
		return false
	}
}

// isHermite reports whether the rule carries derivative parameters.
func (k RuleKind) isHermite() bool {
	switch k {
	case CubicHermite, LagrangeHermite, HermiteLagrange:
		return true
	default:
		return false
	}
}

// isSimplex reports whether the rule begins a simplex coupling.
func (k RuleKind) isSimplex() bool {
	return k == LinearSimplex || k == QuadraticSimplex
}
