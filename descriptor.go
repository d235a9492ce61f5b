// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import (
	"sort"
	"strconv"
	"strings"
)

// Descriptor is the canonical, comparable symbolic representation of a
// basis: a parametric dimension plus an upper-triangular table of integer
// tags. Diagonal entries name the 1-D rule per coordinate; off-diagonal
// entries couple coordinates into non-tensor-product groupings (simplex,
// polygon). The tag table is a slice, so a plain copy of a Descriptor
// shares it with the original (use Clone for an independent copy).
// Descriptors are compared with Compare/Equal, or turned into a comparable
// map key via Key.
type Descriptor struct {
	Dim int
	// tag is the D×D upper-triangular relation table packed row-major,
	// length Dim*(Dim+1)/2. Entry (i,i) is the RuleKind for coordinate i.
	// Entry (i,j), i<j, is 0 (no coupling), 1 (simplex link) or the
	// polygon vertex count (>=3).
	tag []int
}

// NewDescriptor returns a dim-dimensional descriptor with every coordinate
// set to NoRelation and no couplings. Callers build a valid descriptor by
// calling SetRule for every coordinate and SetCoupling for any simplex or
// polygon grouping, or by calling Parse.
func NewDescriptor(dim int) Descriptor {
	return Descriptor{Dim: dim, tag: make([]int, dim*(dim+1)/2)}
}

func (d *Descriptor) index(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*d.Dim - i*(i-1)/2 + (j - i)
}

// Rule returns the 1-D rule tag of coordinate i.
func (d Descriptor) Rule(i int) RuleKind {
	return RuleKind(d.tag[d.index(i, i)])
}

// SetRule sets the 1-D rule tag of coordinate i.
func (d *Descriptor) SetRule(i int, k RuleKind) {
	d.tag[d.index(i, i)] = int(k)
}

// Coupling returns the off-diagonal tag between coordinates i and j
// (i != j): 0 for no coupling, 1 for a simplex link, or the polygon
// vertex count.
func (d Descriptor) Coupling(i, j int) int {
	return d.tag[d.index(i, j)]
}

// SetCoupling sets the off-diagonal tag between coordinates i and j.
func (d *Descriptor) SetCoupling(i, j, v int) {
	d.tag[d.index(i, j)] = v
}

// isOwner reports whether coordinate i is the lowest-indexed member of a
// coupling group, i.e. the one carrying the coupling's argument list in
// text form.
func (d Descriptor) isOwner(i int) (partner int, v int, ok bool) {
	for j := i + 1; j < d.Dim; j++ {
		if c := d.Coupling(i, j); c != 0 {
			return j, c, true
		}
	}
	return 0, 0, false
}

// partnerOf returns the coupling partner of coordinate i, if any, whether
// i is the owner or a later member.
func (d Descriptor) partnerOf(i int) (partner int, v int, ok bool) {
	if p, v, ok := d.isOwner(i); ok {
		return p, v, true
	}
	for j := 0; j < i; j++ {
		if c := d.Coupling(j, i); c != 0 {
			return j, c, true
		}
	}
	return 0, 0, false
}

// Compare returns -1, 0 or +1 according to the lexicographic order on
// (dimension, flattened upper triangle). It defines a total order used by
// the Registry to key its canonicalisation set.
func (a Descriptor) Compare(b Descriptor) int {
	if a.Dim != b.Dim {
		if a.Dim < b.Dim {
			return -1
		}
		return 1
	}
	for i := range a.tag {
		if a.tag[i] != b.tag[i] {
			if a.tag[i] < b.tag[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Equal reports whether a and b compare equal.
func (a Descriptor) Equal(b Descriptor) bool {
	return a.Compare(b) == 0
}

// Key returns a string uniquely identifying the descriptor, suitable for
// use as a map key; two descriptors that compare equal have equal keys.
func (d Descriptor) Key() string {
	var sb strings.Builder
	sb.Grow(4 + 4*len(d.tag))
	sb.WriteString(strconv.Itoa(d.Dim))
	for _, t := range d.tag {
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(t))
	}
	return sb.String()
}

// Validate checks the descriptor against the invariants of the symbolic
// basis algebra: every diagonal tag names a supported 1-D rule, simplex
// groups are contiguous with agreeing inner kinds, polygon groups couple
// exactly two coordinates with a vertex count >= 3, and no coordinate
// participates in more than one non-tensor coupling.
func (d Descriptor) Validate() error {
	if d.Dim <= 0 {
		return newErr(ErrDescriptorInvalidTag, "dimension must be positive, got %d", d.Dim)
	}
	seen := make([]bool, d.Dim)
	for i := 0; i < d.Dim; i++ {
		rule := d.Rule(i)
		if rule == NoRelation || !rule.supportedByBuilder() {
			return newErr(ErrDescriptorInvalidTag, "coordinate %d: unsupported rule tag %s", i, rule)
		}
	}
	for i := 0; i < d.Dim; i++ {
		if seen[i] {
			continue
		}
		partner, v, ok := d.isOwner(i)
		if !ok {
			continue
		}
		rule := d.Rule(i)
		switch {
		case rule.isSimplex():
			if v != 1 {
				return newErr(ErrDescriptorInvalidCoupling, "coordinate %d: simplex link tag must be 1, got %d", i, v)
			}
			members := []int{i, partner}
			for j := partner + 1; j < d.Dim; j++ {
				if d.Coupling(i, j) == 1 {
					members = append(members, j)
				}
			}
			sort.Ints(members)
			for k, m := range members {
				if m != members[0]+k {
					return newErr(ErrDescriptorInvalidCoupling, "simplex group at coordinate %d is not contiguous", i)
				}
				if seen[m] {
					return newErr(ErrDescriptorInvalidCoupling, "coordinate %d participates in more than one coupling", m)
				}
				if d.Rule(m) != rule {
					return newErr(ErrDescriptorInvalidCoupling, "simplex group at coordinate %d has disagreeing inner kind at coordinate %d", i, m)
				}
				seen[m] = true
			}
		case rule == Polygon:
			if v < 3 {
				return newErr(ErrDescriptorInvalidCoupling, "polygon at coordinate %d: vertex count must be >= 3, got %d", i, v)
			}
			if d.Rule(partner) != Polygon {
				return newErr(ErrDescriptorInvalidCoupling, "polygon partner at coordinate %d must also be tagged polygon", partner)
			}
			if seen[i] || seen[partner] {
				return newErr(ErrDescriptorInvalidCoupling, "coordinate participates in more than one coupling")
			}
			// ensure no third coordinate also couples to i or partner
			for j := 0; j < d.Dim; j++ {
				if j == i || j == partner {
					continue
				}
				if d.Coupling(i, j) != 0 || d.Coupling(partner, j) != 0 {
					return newErr(ErrDescriptorInvalidCoupling, "polygon coordinate %d coupled to more than one partner", i)
				}
			}
			seen[i] = true
			seen[partner] = true
		default:
			return newErr(ErrDescriptorInvalidCoupling, "coordinate %d: rule %s does not support coupling", i, rule)
		}
	}
	return nil
}

var factorTokens = map[string]RuleKind{
	"constant":         Constant,
	"l.Lagrange":       LinearLagrange,
	"q.Lagrange":       QuadraticLagrange,
	"c.Lagrange":       CubicLagrange,
	"c.Hermite":        CubicHermite,
	"LagrangeHermite":  LagrangeHermite,
	"HermiteLagrange":  HermiteLagrange,
	"l.simplex":        LinearSimplex,
	"q.simplex":        QuadraticSimplex,
	"polygon":          Polygon,
}

// Parse parses a `*`-separated textual basis description, e.g.
// "c.Hermite*l.simplex(3)*l.simplex" or "polygon(5;3)*l.Lagrange*polygon".
// Whitespace around tokens is insignificant. Parse returns a
// descriptor_parse error for malformed grammar, or a
// descriptor_invalid_coupling/descriptor_invalid_tag error if the parsed
// descriptor fails Validate.
func Parse(text string) (Descriptor, error) {
	rawFactors := strings.Split(text, "*")
	dim := len(rawFactors)
	d := NewDescriptor(dim)

	type coupling struct {
		owner int
		args  []int
	}
	var couplings []coupling

	pos := 0
	for i, raw := range rawFactors {
		factor := strings.TrimSpace(raw)
		start := pos
		pos += len(raw) + 1

		name := factor
		var argsText string
		hasArgs := false
		if k := strings.IndexByte(factor, '('); k >= 0 {
			if !strings.HasSuffix(factor, ")") {
				return Descriptor{}, newParseErr(start, "unterminated argument list in %q", factor)
			}
			name = strings.TrimSpace(factor[:k])
			argsText = factor[k+1 : len(factor)-1]
			hasArgs = true
		}

		kind, ok := factorTokens[name]
		if !ok {
			return Descriptor{}, newParseErr(start, "unrecognised basis factor token %q", name)
		}
		d.SetRule(i, kind)

		if !hasArgs {
			continue
		}
		if kind != LinearSimplex && kind != QuadraticSimplex && kind != Polygon {
			return Descriptor{}, newParseErr(start, "token %q does not take arguments", name)
		}
		var args []int
		for _, tok := range strings.Split(argsText, ";") {
			tok = strings.TrimSpace(tok)
			n, err := strconv.Atoi(tok)
			if err != nil {
				return Descriptor{}, newParseErr(start, "non-numeric argument %q in %q", tok, factor)
			}
			args = append(args, n)
		}
		couplings = append(couplings, coupling{owner: i, args: args})
	}

	for _, c := range couplings {
		rule := d.Rule(c.owner)
		switch rule {
		case LinearSimplex, QuadraticSimplex:
			for _, a := range c.args {
				j := a - 1
				if j < 0 || j >= dim {
					return Descriptor{}, newParseErr(0, "simplex coupling at coordinate %d references out-of-range coordinate %d", c.owner+1, a)
				}
				d.SetCoupling(c.owner, j, 1)
			}
		case Polygon:
			if len(c.args) != 2 {
				return Descriptor{}, newErr(ErrDescriptorInvalidCoupling, "polygon at coordinate %d requires vertex count and partner index, got %d argument(s)", c.owner+1, len(c.args))
			}
			v, c2 := c.args[0], c.args[1]-1
			if c2 < 0 || c2 >= dim {
				return Descriptor{}, newParseErr(0, "polygon coupling at coordinate %d references out-of-range coordinate %d", c.owner+1, c.args[1])
			}
			d.SetCoupling(c.owner, c2, v)
		}
	}

	if err := d.Validate(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Format emits the canonical textual spelling of a valid descriptor, the
// inverse of Parse: Parse(Format(d)) == d.
func Format(d Descriptor) string {
	parts := make([]string, d.Dim)
	for i := 0; i < d.Dim; i++ {
		rule := d.Rule(i)
		if partner, v, ok := d.isOwner(i); ok {
			switch rule {
			case LinearSimplex, QuadraticSimplex:
				members := []string{}
				for j := partner; j < d.Dim; j++ {
					if d.Coupling(i, j) == 1 {
						members = append(members, strconv.Itoa(j+1))
					}
				}
				parts[i] = rule.String() + "(" + strings.Join(members, ";") + ")"
			case Polygon:
				parts[i] = rule.String() + "(" + strconv.Itoa(v) + ";" + strconv.Itoa(partner+1) + ")"
			}
			continue
		}
		parts[i] = rule.String()
	}
	return strings.Join(parts, "*")
}

// String implements fmt.Stringer by formatting d via Format.
func (d Descriptor) String() string {
	return Format(d)
}
