// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "sync"

// Clone returns a deep copy of d; Descriptor's tag table is a slice, so
// callers that mean to mutate a copy independently of the original
// should Clone first.
func (d Descriptor) Clone() Descriptor {
	tag := make([]int, len(d.tag))
	copy(tag, d.tag)
	return Descriptor{Dim: d.Dim, tag: tag}
}

// Registry is an interning cache keyed by canonical descriptor
// comparison, so that any two requests for the same symbolic basis
// return a shared object with shared blending tables. Construction is
// serialised by an internal mutex; once built, a Basis is immutable and
// reads require no further synchronisation. If two callers race on the
// same descriptor, exactly one builds and both receive the same handle.
type Registry struct {
	mu    sync.Mutex
	bases map[string]*Basis
}

// NewRegistry returns an empty Registry. A Registry is never a process
// global: callers own one explicitly so that isolated evaluations and
// tests can coexist.
func NewRegistry() *Registry {
	return &Registry{bases: make(map[string]*Basis)}
}

// FetchOrBuild returns the cached Basis for d if one exists, or invokes
// the Builder and caches the result. A failed build leaves the Registry
// unchanged.
func (r *Registry) FetchOrBuild(d Descriptor) (*Basis, error) {
	key := d.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.bases[key]; ok {
		return b, nil
	}
	b, err := Build(d)
	if err != nil {
		return nil, err
	}
	r.bases[key] = b
	return b, nil
}

// Connectivity returns a companion basis, fetched or built in this same
// registry, whose 1-D rules are obtained by replacing each Hermite rule
// (cubic Hermite, Lagrange-Hermite, Hermite-Lagrange) with linear
// Lagrange and leaving other rules unchanged. This basis has the node
// connectivity topology without the derivative parameters; it is useful
// for callers that need to share nodes across differing derivative
// conventions. If nothing changed, Connectivity returns basis unchanged.
func (r *Registry) Connectivity(basis *Basis) (*Basis, error) {
	d := basis.Descriptor()
	changed := false
	connD := d.Clone()
	for i := 0; i < connD.Dim; i++ {
		if connD.Rule(i).isHermite() {
			connD.SetRule(i, LinearLagrange)
			changed = true
		}
	}
	if !changed {
		return basis, nil
	}
	return r.FetchOrBuild(connD)
}

// Len returns the number of distinct bases currently cached.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bases)
}
