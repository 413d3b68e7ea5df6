// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// perfectReflector is a ReflectionCoefficients test double with |r_p| = 1
// everywhere, matching the idealized perfect-mirror limit used by the
// worked examples in §4.7/§8.
type perfectReflector struct{}

func (perfectReflector) LogAbs(p Polarization, x float64) float64 { return 0 }
func (perfectReflector) Sign(p Polarization) int {
	if p == TM {
		return 1
	}
	return -1
}

func TestDerivedIntegralsScenario(t *testing.T) {
	s := NewSession(1, 2, 1e-10, 1e-6, 64, perfectReflector{})

	logA, _, err := s.A(3, 2, TM)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log A(3,2,1,2xi=2)", 1e-2, logA, -4.094372316589062)

	logB, _, err := s.B(3, 2, TM)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log B(3,2,1,2xi=2)", 1e-2, logB, -1.970116759119433)

	logC, _, err := s.C(3, 2, TM)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log C(3,2,1,2xi=2)", 1e-2, logC, -3.298725852652321)
}

func TestKCacheMemoizes(t *testing.T) {
	s := NewSession(0, 3, 1e-8, 1e-6, 8, perfectReflector{})
	v1, sign1, err := s.K(10, TM)
	if err != nil {
		t.Fatal(err)
	}
	v2, sign2, err := s.K(10, TM)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "K memoized", 1e-14, v1, v2)
	if sign1 != sign2 {
		t.Fatalf("sign changed between calls: %d vs %d", sign1, sign2)
	}
}

func TestICacheEviction(t *testing.T) {
	c := newICache(2)
	c.set(iCacheKey{l1: 1, l2: 1, p: TM}, 1.0)
	c.set(iCacheKey{l1: 2, l2: 2, p: TM}, 2.0)
	c.set(iCacheKey{l1: 3, l2: 3, p: TM}, 3.0)
	if _, ok := c.get(iCacheKey{l1: 1, l2: 1, p: TM}); ok {
		t.Fatal("expected least-recently-used entry to be evicted")
	}
	if _, ok := c.get(iCacheKey{l1: 3, l2: 3, p: TM}); !ok {
		t.Fatal("expected most recently inserted entry to survive")
	}
}
