// Copyright ©2026 The Febasis Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package febasis

import "testing"

func TestRegistryFetchOrBuildIsIdempotent(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	d, err := Parse("c.Hermite*l.Lagrange")
	if err != nil {
		t.Fatal(err)
	}
	b1, err := r.FetchOrBuild(d)
	if err != nil {
		t.Fatalf("FetchOrBuild: %v", err)
	}
	b2, err := r.FetchOrBuild(d)
	if err != nil {
		t.Fatalf("FetchOrBuild (second call): %v", err)
	}
	if b1 != b2 {
		t.Errorf("FetchOrBuild returned distinct objects for the same descriptor")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryFetchOrBuildDistinctDescriptors(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	d1, _ := Parse("l.Lagrange")
	d2, _ := Parse("q.Lagrange")
	b1, err := r.FetchOrBuild(d1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := r.FetchOrBuild(d2)
	if err != nil {
		t.Fatal(err)
	}
	if b1 == b2 {
		t.Errorf("FetchOrBuild returned the same object for distinct descriptors")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryConnectivityReplacesHermite(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	d, _ := Parse("c.Hermite*l.Lagrange")
	b, err := r.FetchOrBuild(d)
	if err != nil {
		t.Fatal(err)
	}
	conn, err := r.Connectivity(b)
	if err != nil {
		t.Fatalf("Connectivity: %v", err)
	}
	if conn.Descriptor().Rule(0) != LinearLagrange {
		t.Errorf("Connectivity() rule at coordinate 0 = %v, want l.Lagrange", conn.Descriptor().Rule(0))
	}
	if conn.Descriptor().Rule(1) != LinearLagrange {
		t.Errorf("Connectivity() rule at coordinate 1 = %v, want l.Lagrange", conn.Descriptor().Rule(1))
	}
}

func TestRegistryConnectivityIdempotent(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	d, _ := Parse("c.Hermite*q.Lagrange")
	b, err := r.FetchOrBuild(d)
	if err != nil {
		t.Fatal(err)
	}
	conn1, err := r.Connectivity(b)
	if err != nil {
		t.Fatal(err)
	}
	conn2, err := r.Connectivity(conn1)
	if err != nil {
		t.Fatal(err)
	}
	if conn1 != conn2 {
		t.Errorf("Connectivity(Connectivity(b)) != Connectivity(b)")
	}
}

func TestRegistryConnectivityNoChange(t *testing.T) {
	t.Parallel()
	r := NewRegistry()
	d, _ := Parse("l.Lagrange*q.Lagrange")
	b, err := r.FetchOrBuild(d)
	if err != nil {
		t.Fatal(err)
	}
	conn, err := r.Connectivity(b)
	if err != nil {
		t.Fatal(err)
	}
	if conn != b {
		t.Errorf("Connectivity() on a basis with no Hermite rule should return the input unchanged")
	}
}
