// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scatmat

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestZeroFrequencyHighLGoldenValues grounds the ξ=0, perfect-reflector
// closed form against spec.md §8 scenario 3: L/R=0.97, T=0.1, ℓ_max=200.
func TestZeroFrequencyHighLGoldenValues(t *testing.T) {
	const LbyR = 0.97
	RbyScriptL := 1 / (1 + LbyR)
	lnRbyScriptL := math.Log(RbyScriptL)
	const lmax = 200

	cases := []struct {
		m    int
		want float64
	}{
		{0, -3.45236396285874},
		{1, -2.63586999367158},
		{10, -0.0276563864490425},
	}

	for _, c := range cases {
		ee, mm := BuildZeroFrequency(c.m, lmax, lnRbyScriptL, true)
		logdetEE, signEE, err := LogDet(ee, DetLU)
		if err != nil {
			t.Fatalf("m=%d: EE logdet: %v", c.m, err)
		}
		logdetMM, signMM, err := LogDet(mm, DetLU)
		if err != nil {
			t.Fatalf("m=%d: MM logdet: %v", c.m, err)
		}
		if signEE < 0 || signMM < 0 {
			t.Fatalf("m=%d: expected positive determinants, got signs EE=%d MM=%d", c.m, signEE, signMM)
		}
		got := logdetEE + logdetMM
		chk.Scalar(t, "log det D(0,m)", 1e-6, got, c.want)
	}
}

func TestBalancePreservesLogDet(t *testing.T) {
	ee, _ := BuildZeroFrequency(0, 20, math.Log(0.5), false)
	unbalanced := newLogMatrix(ee.Dim)
	for i := range ee.E {
		copy(unbalanced.E[i], ee.E[i])
	}

	logdetBalanced, signBalanced, err := LogDet(ee, DetLU)
	if err != nil {
		t.Fatal(err)
	}
	a := unbalanced.Realize()
	logdetRaw, signRaw, err := logDetLU(a)
	if err != nil {
		t.Fatal(err)
	}
	if signBalanced != signRaw {
		t.Fatalf("balancing changed sign: %d vs %d", signBalanced, signRaw)
	}
	chk.Scalar(t, "balancing preserves logdet", 1e-9, logdetBalanced, logdetRaw)
}

func TestMPowAlternates(t *testing.T) {
	if mpow(0) != 1 || mpow(1) != -1 || mpow(2) != 1 {
		t.Fatalf("mpow sequence wrong: %d %d %d", mpow(0), mpow(1), mpow(2))
	}
}
