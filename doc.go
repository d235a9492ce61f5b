// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package febasis constructs and evaluates finite-element basis functions
// from a symbolic descriptor of their per-coordinate interpolation rules.
//
// A Descriptor names, for each parametric coordinate, a 1-D rule
// (Lagrange of various orders, cubic Hermite, a mixed Lagrange-Hermite
// pair) and any coupling that binds several coordinates into a
// non-tensor-product group: a simplex area or volume coordinate family, or
// a circumferential/radial polygon pair. Build turns a validated
// Descriptor into a Basis: an immutable blending matrix mapping element
// parameters (nodal values and derivatives) onto a standard set of
// monomial or polygon terms, together with the node and derivative
// bookkeeping needed to assemble an element's parameter vector. Inherit
// projects a Basis through an affine coordinate map onto a
// lower-dimensional domain, as required when evaluating a basis on a face
// or edge of its element. Registry interns Basis values so that repeated
// requests for the same Descriptor share one built object.
package febasis
