// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sfunc

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestLnKHalfInt0(t *testing.T) {
	got, err := LnKHalfInt(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log K_{1/2}(10)", 1e-3, got, -10.925501193852295)
}

func TestLnIHalfIntHighOrder(t *testing.T) {
	got, err := LnIHalfInt(119, 3)
	if err != nil {
		t.Fatal(err)
	}
	chk.Scalar(t, "log I_{119+1/2}(3)", 1e-2, got, -406.9458492626251)
}

func TestBesselWronskian(t *testing.T) {
	// exp(lnI + lnK) should reproduce the Wronskian-derived identity
	// I_nu(x)*K_nu(x) decays smoothly; cross-check consistency between the
	// half-integer closed form and the general-order continued fraction at
	// a shared order by comparing I_0 both ways is not directly possible
	// (LnIHalfInt computes l+1/2 order), so we instead verify the Wronskian
	// I_nu*K_{nu+1} + I_{nu+1}*K_nu = 1/x holds for our computed values.
	for _, x := range []float64{0.5, 3, 25} {
		for _, nu := range []int{0, 1, 5} {
			lnInu, err := LnI(nu, x)
			if err != nil {
				t.Fatal(err)
			}
			lnKnu, err := LnK(nu, x)
			if err != nil {
				t.Fatal(err)
			}
			lnInu1, err := LnI(nu+1, x)
			if err != nil {
				t.Fatal(err)
			}
			lnKnu1, err := LnK(nu+1, x)
			if err != nil {
				t.Fatal(err)
			}
			lhs := math.Exp(lnInu+lnKnu1) + math.Exp(lnInu1+lnKnu)
			chk.Scalar(t, "wronskian", 1e-2, lhs*x, 1)
		}
	}
}

func TestPlmBaseCase(t *testing.T) {
	// P_0^0(x) = 1 for all x
	lnP, sign := LnPlm(0, 0, 1.5)
	chk.Scalar(t, "P_0^0", 1e-14, lnP, 0)
	if sign != 1 {
		t.Fatalf("expected positive sign, got %v", sign)
	}
}

func TestGauntQ0(t *testing.T) {
	aTilde, _ := Gaunt(3, 2, 1)
	if len(aTilde) == 0 {
		t.Fatal("expected non-empty Gaunt coefficients")
	}
	chk.Scalar(t, "a_tilde[0]", 1e-14, aTilde[0], 1)
}

func TestGauntQMaxZero(t *testing.T) {
	// choosing n=nu=m gives qmax=0: a_tilde = [1]
	aTilde, _ := Gaunt(1, 1, 1)
	if len(aTilde) != 1 {
		t.Fatalf("expected a single coefficient for qmax=0, got %d", len(aTilde))
	}
	chk.Scalar(t, "a_tilde[0] at qmax=0", 1e-14, aTilde[0], 1)
}
