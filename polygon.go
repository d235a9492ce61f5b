// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "math"

// polygonRadialOrder is the only radial polynomial order this
// implementation supports: the radial direction is always linear (two
// radial shape functions, constant and linear in the radial coordinate).
// See Open Questions in DESIGN.md: higher-order radial polygons are
// recognised by the encoding below but never produced by the Builder.
const polygonRadialOrder = 1

// argRole classifies one entry of a standard-basis argument vector,
// keeping the sign-bit encoding of polygon factors internal to this file:
// the Builder and Inheritance Engine ask argKind instead of inspecting
// signs themselves.
type argRole int

const (
	argMonomial argRole = iota
	argPolygonFirst
	argPolygonSecond
)

// argKind decodes args[pos], returning which role that coordinate plays.
// For argMonomial, extra is the monomial order. For argPolygonFirst,
// extra is the coordinate offset (in args positions) to its radial
// partner. For argPolygonSecond, extra is the vertex count.
func argKind(args []int, pos int) (role argRole, extra int) {
	raw := args[pos+1]
	if raw >= 0 {
		return argMonomial, raw
	}
	order := -raw
	if order%2 == 0 {
		return argPolygonSecond, order / 2
	}
	order /= 2
	d := args[0]
	delta := order % d
	return argPolygonFirst, delta
}

// encodePolygonFirst builds the std_args entry for a polygon's
// circumferential coordinate, delta positions before its radial partner.
func encodePolygonFirst(delta, d int) int {
	return -(1 + 2*(delta+polygonRadialOrder*d))
}

// encodePolygonSecond builds the std_args entry for a polygon's radial
// coordinate, given its vertex count.
func encodePolygonSecond(vertices int) int {
	return -2 * vertices
}

// evalPolygon computes the standard-basis values for an argument vector
// that includes one polygon coupling, combining a piecewise-linear
// circumferential factor with a linear radial factor, tensored with any
// further monomial coordinate factors. args[0] is the dimension D;
// args[1..D] are per-coordinate encodings (see argKind). out must have
// length equal to the term count implied by args (see polygonTermCount).
//
// evalPolygon performs no allocation; the caller owns out.
func evalPolygon(args []int, xi []float64, out []float64) {
	out[0] = 1
	n := 1
	d := args[0]
	for i := 0; i < d; i++ {
		role, extra := argKind(args, i)
		switch role {
		case argMonomial:
			order := extra
			x := xi[i]
			xp := x
			for p := 1; p <= order; p++ {
				for j := 0; j < n; j++ {
					out[n*p+j] = out[j] * xp
				}
				xp *= x
			}
			n *= order + 1
		case argPolygonSecond:
			// Already consumed when its circumferential partner was visited.
		case argPolygonFirst:
			delta := extra
			j2 := i + delta
			_, vertices := argKind(args, j2)
			xiCircRaw := xi[i]
			xiCirc := xiCircRaw - math.Floor(xiCircRaw)
			xiRad := xi[j2]

			w := xiCirc * float64(vertices)
			vertex := int(w)
			frac := w - float64(vertex)
			if vertex == vertices {
				vertex = 0
				frac = 0
			}
			s10 := frac
			s11 := xiRad * frac

			v := vertices
			for j := 0; j < n; j++ {
				src := out[j]
				for vp := 0; vp < v; vp++ {
					var v00, v10, v01, v11 float64
					if vp == vertex {
						v00 = src
						v10 = s10 * src
						v01 = xiRad * src
						v11 = s11 * src
					}
					out[vp*n+j] = v00
					out[(v+vp)*n+j] = v10
					out[(2*v+vp)*n+j] = v01
					out[(3*v+vp)*n+j] = v11
				}
			}
			n *= 4 * v
		}
	}
}

// polygonTermCount returns the standard-term count S implied by a
// polygon-coupled argument vector.
func polygonTermCount(args []int) int {
	d := args[0]
	n := 1
	for i := 0; i < d; i++ {
		role, extra := argKind(args, i)
		switch role {
		case argMonomial:
			n *= extra + 1
		case argPolygonFirst:
			_, vertices := argKind(args, i+extra)
			n *= 4 * vertices
		case argPolygonSecond:
			// consumed by its circumferential partner
		}
	}
	return n
}
