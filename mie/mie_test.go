// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mie

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestPerfectReflectorGoldenValues(t *testing.T) {
	logB5, _, err := PerfectReflectorLnB(5, 3)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log|b5| at chi=3", 1e-9, logB5, -3.206110089012862)

	logB6, _, err := PerfectReflectorLnB(6, 3)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log|b6| at chi=3", 1e-9, logB6, -6.093433624873396)

	logA3, _, err := PerfectReflectorLnA(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log|a3| at chi=3", 1e-9, logA3, 1.692450306201961)
}

func TestDrudeRecoversPerfectReflectorAtInfiniteOmegap(t *testing.T) {
	lnA, lnB, signA, signB, err := DrudeLnAB(4, 1.5, 2.0, math.Inf(1), 0)
	if err != nil {
		t.Fatal(err)
	}
	wantA, wantSignA, err := PerfectReflectorLnA(4, 1.5*2.0)
	if err != nil {
		t.Fatal(err)
	}
	wantB, wantSignB, err := PerfectReflectorLnB(4, 1.5*2.0)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "lnA matches perfect reflector", 1e-12, lnA, wantA)
	chk.Scalar(t, "lnB matches perfect reflector", 1e-12, lnB, wantB)
	if signA != wantSignA || signB != wantSignB {
		t.Fatalf("sign mismatch: got (%d,%d) want (%d,%d)", signA, signB, wantSignA, wantSignB)
	}
}

func TestLnAB0SignAlternation(t *testing.T) {
	_, signA1, _, signB1 := LnAB0(1)
	_, signA2, _, signB2 := LnAB0(2)
	if signA1 == signA2 || signB1 == signB2 {
		t.Fatalf("expected alternating signs across l, got a:(%d,%d) b:(%d,%d)", signA1, signA2, signB1, signB2)
	}
}

func TestCacheExtendsWithoutRecomputing(t *testing.T) {
	c := NewCache(Sphere{RbyL: 0.5, Omegap: 3.0, Gamma: 0.1}, 0.1)
	short, err := c.Get(2, 3)
	if err != nil {
		t.Fatal(err)
	}
	long, err := c.Get(2, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range short {
		chk.Scalar(t, "extended cache preserves prefix", 1e-14, short[i].LogA, long[i].LogA)
	}
}
