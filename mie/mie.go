// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mie computes Mie scattering coefficients log|aℓ|, log|bℓ| for
// perfect reflectors and for Drude/plasma spheres at a scaled imaginary
// frequency, with a per-Matsubara-index lazy cache. Ported from caps'
// casimir_lna_perf, casimir_lnb_perf, casimir_lnab, casimir_lnab0
// (libcasimir.c).
package mie

import (
	"fmt"
	"math"

	"github.com/gertingold/caps/sfunc"
	"github.com/gertingold/caps/xprec"
)

// NotRepresentableError reports that a Mie coefficient could not be
// evaluated for the given order and argument.
type NotRepresentableError struct {
	L   int
	Chi float64
}

func (e *NotRepresentableError) Error() string {
	return fmt.Sprintf("mie: coefficient not representable for l=%d, chi=%g", e.L, e.Chi)
}

// PerfectReflectorLnA returns log|aℓ| and its sign for a perfect reflector
// at scaled frequency χ, from I_{ℓ±1/2}(χ) and K_{ℓ±1/2}(χ). Since
// I_{ℓ−1/2}/I_{ℓ+1/2} > (2ℓ+1)/χ, the numerator 1−frac is always negative
// and the sign is (−1)^ℓ. Ported from caps' casimir_lna_perf.
func PerfectReflectorLnA(l int, chi float64) (logAbs float64, sign int, err error) {
	lnIlm, err := sfunc.LnIHalfInt(l-1, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnKlm, err := sfunc.LnKHalfInt(l-1, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnIlp, err := sfunc.LnIHalfInt(l, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnKlp, err := sfunc.LnKHalfInt(l, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}

	prefactor := math.Log(math.Pi) - math.Ln2 + lnIlp - lnKlp
	s := mpow(l + 1)

	lnFrac := math.Log(chi) - math.Log(float64(l))
	frac := math.Exp(lnFrac + lnIlm - lnIlp)

	var nominator float64
	if frac < 1 {
		nominator = math.Log1p(-frac)
	} else {
		if frac > 1 {
			s *= -1
		}
		nominator = math.Log(math.Abs(1 - frac))
	}

	fracDenom := math.Exp(lnFrac + lnKlm - lnKlp)
	denominator := math.Log1p(fracDenom)

	logAbs = prefactor + nominator - denominator
	if isBad(logAbs) {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	return logAbs, s, nil
}

// PerfectReflectorLnB returns log|bℓ| and its sign (−1)^{ℓ+1} for a perfect
// reflector at scaled frequency χ, from I_{ℓ+1/2}(χ) and K_{ℓ+1/2}(χ).
// Ported from caps' casimir_lnb_perf.
func PerfectReflectorLnB(l int, chi float64) (logAbs float64, sign int, err error) {
	lnI, err := sfunc.LnIHalfInt(l, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnK, err := sfunc.LnKHalfInt(l, chi)
	if err != nil {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	logAbs = math.Log(math.Pi) - math.Ln2 + lnI - lnK
	if isBad(logAbs) {
		return 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	return logAbs, mpow(l + 1), nil
}

// LnAB0 returns the low-frequency prefactors aℓ,0, bℓ,0 such that
// aℓ ≈ aℓ,0·(χ/2)^{2ℓ+1}, bℓ ≈ bℓ,0·(χ/2)^{2ℓ+1} for χ ≪ 1. Used by the ξ=0
// closed-form fast path (caps' casimir_lnab0, libcasimir.c).
func LnAB0(l int) (lnA0 float64, signA0 int, lnB0 float64, signB0 int) {
	lgp5, _ := math.Lgamma(float64(l) + 0.5)
	lgp15, _ := math.Lgamma(float64(l) + 1.5)
	lnB0 = math.Log(math.Pi) - lgp5 - lgp15
	lnA0 = lnB0 + math.Log1p(1/float64(l))
	return lnA0, mpow(l), lnB0, mpow(l + 1)
}

// DrudeLnAB returns log|aℓ|, log|bℓ| and their signs for a Drude/plasma
// sphere with plasma frequency ωp and relaxation rate γ ≥ 0 (ωp=+Inf
// recovers the perfect-reflector limit), at Matsubara frequency ξ and
// radius-to-separation ratio RbyL (so χ = ξ·RbyL). Ported from caps'
// casimir_lnab (libcasimir.c).
func DrudeLnAB(l int, xi, RbyL, omegap, gamma float64) (lnA, lnB float64, signA, signB int, err error) {
	if math.IsInf(omegap, 1) {
		lnA, signA, err = PerfectReflectorLnA(l, xi*RbyL)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		lnB, signB, err = PerfectReflectorLnB(l, xi*RbyL)
		return lnA, lnB, signA, signB, err
	}

	chi := xi * RbyL
	lnChi := math.Log(xi) + math.Log(RbyL)

	// n^2 = 1 + wp^2/(xi*(xi+gamma)), computed in log-space as exp(2 ln n).
	nSq := 1 + omegap*omegap/(xi*(xi+gamma))
	lnN := 0.5 * math.Log(nSq)
	n := math.Exp(lnN)

	lnIl, err := sfunc.LnI(l, chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnKl, err := sfunc.LnK(l, chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnIlm, err := sfunc.LnI(l-1, chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	lnKlm, err := sfunc.LnK(l-1, chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}

	lnIlNchi, err := sfunc.LnI(l, n*chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: n * chi}
	}
	_, err = sfunc.LnK(l, n*chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: n * chi}
	}
	lnIlmNchi, err := sfunc.LnI(l-1, n*chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: n * chi}
	}
	_, err = sfunc.LnK(l-1, n*chi)
	if err != nil {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: n * chi}
	}

	add := func(lv1 float64, s1 xprec.Sign, lv2 float64, s2 xprec.Sign) xprec.Value {
		return xprec.LogAddSigned(xprec.FromLog(lv1, s1), xprec.FromLog(lv2, s2))
	}

	sla := add(lnIl, xprec.Positive, lnChi+lnIlm, xprec.Negative)
	slaFull := xprec.FromLog(lnIlNchi+sla.LogAbs, sla.Sign)

	slb := add(lnIlNchi, xprec.Positive, lnN+lnChi+lnIlmNchi, xprec.Negative)
	slbFull := xprec.FromLog(lnIl+slb.LogAbs, slb.Sign)

	slc := add(lnKl, xprec.Positive, lnChi+lnKlm, xprec.Positive)
	slcFull := xprec.FromLog(lnIlNchi+slc.LogAbs, slc.Sign)

	sld := add(lnIlNchi, xprec.Positive, lnN+lnChi+lnIlmNchi, xprec.Negative)
	sldFull := xprec.FromLog(lnKl+sld.LogAbs, sld.Sign)

	aNum := xprec.LogAddSigned(xprec.FromLog(2*lnN+slaFull.LogAbs, slaFull.Sign), slbFull.Neg())
	aDenom := xprec.LogAddSigned(xprec.FromLog(2*lnN+slcFull.LogAbs, slcFull.Sign), sldFull.Neg())
	bNum := xprec.LogAddSigned(slaFull, slbFull.Neg())
	bDenom := xprec.LogAddSigned(slcFull, sldFull.Neg())

	logPiOver2 := math.Log(math.Pi) - math.Ln2
	lnA = logPiOver2 + aNum.LogAbs - aDenom.LogAbs
	lnB = logPiOver2 + bNum.LogAbs - bDenom.LogAbs
	signA = int(aNum.Sign) * int(aDenom.Sign)
	signB = int(bNum.Sign) * int(bDenom.Sign)

	if isBad(lnA) || isBad(lnB) {
		return 0, 0, 0, 0, &NotRepresentableError{L: l, Chi: chi}
	}
	return lnA, lnB, signA, signB, nil
}

func mpow(n int) int {
	if n%2 == 0 {
		return 1
	}
	return -1
}

func isBad(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
