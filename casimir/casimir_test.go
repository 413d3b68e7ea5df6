// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gertingold/caps/material"
)

// TestFreeEnergyPerfectReflectors grounds the end-to-end computation
// against spec.md §8 scenarios 1 and 2: perfect reflectors at two
// geometries and temperatures.
func TestFreeEnergyPerfectReflectors(t *testing.T) {
	cases := []struct {
		lbyR, T float64
		lmax    int
		want    float64
	}{
		{0.85, 2.7, 30, -1.34361893570375},
		{0.7, 1.0, 15, -0.220709222562969},
	}

	for _, c := range cases {
		params, err := NewParameters(c.lbyR, c.T, c.lmax, 0, 1e-14, 1, math.Inf(1), 0, material.PerfectReflector{})
		if err != nil {
			t.Fatal(err)
		}
		F, nmax, err := FreeEnergy(params)
		if err != nil {
			t.Fatal(err)
		}
		if nmax < 0 {
			t.Fatalf("expected nmax >= 0, got %d", nmax)
		}
		chk.Scalar(t, "free energy", 1e-8, F, c.want)
	}
}

func TestNewParametersRejectsBadInputs(t *testing.T) {
	pr := material.PerfectReflector{}
	if _, err := NewParameters(0, 1, 20, 0, 1e-10, 1, math.Inf(1), 0, pr); err == nil {
		t.Fatal("expected error for L/R <= 0")
	}
	if _, err := NewParameters(0.5, 1, 20, 0, 0, 1, math.Inf(1), 0, pr); err == nil {
		t.Fatal("expected error for precision <= 0")
	}
	if _, err := NewParameters(0.5, 1, 20, 0, 1e-10, 0, math.Inf(1), 0, pr); err == nil {
		t.Fatal("expected error for cores <= 0")
	}
}

func TestLmaxDefaultsAndFloors(t *testing.T) {
	pr := material.PerfectReflector{}
	params, err := NewParameters(0.01, 1, 0, 0, 1e-10, 1, math.Inf(1), 0, pr)
	if err != nil {
		t.Fatal(err)
	}
	if params.Lmax < lmaxFloor {
		t.Fatalf("expected lmax floor %d, got %d", lmaxFloor, params.Lmax)
	}

	paramsSmall, err := NewParameters(0.99, 1, 0, 0, 1e-10, 1, math.Inf(1), 0, pr)
	if err != nil {
		t.Fatal(err)
	}
	if paramsSmall.Lmax != lmaxFloor {
		t.Fatalf("expected floor to dominate at L/R close to 1, got %d", paramsSmall.Lmax)
	}
}

func TestSumHalvingFirstMatchesManualWeighting(t *testing.T) {
	values := []float64{10, 1, 2, 3}
	got := sumHalvingFirst(values)
	want := 6.0 + 10.0/2
	chk.Scalar(t, "halved n=0 term", 1e-14, got, want)
}

func TestUnitConversionsRoundTrip(t *testing.T) {
	scriptL := 1e-6

	F := 1.2345
	chk.Scalar(t, "F scaled->SI->scaled", 1e-12, FreeEnergySIToScaled(FreeEnergyScaledToSI(F, scriptL), scriptL), F)

	T := 300.0
	chk.Scalar(t, "T SI->scaled->SI", 1e-9, TemperatureScaledToSI(TemperatureSIToScaled(T, scriptL), scriptL), T)
}
