// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scatmat assembles the truncated round-trip matrix D = I - M for a
// fixed Matsubara index n and magnetic quantum number m, balances it in log
// space, and computes log|det D| via a selectable factorization. Ported
// from caps' casimir_logdetD, casimir_logdetD0 (libcasimir.c).
package scatmat

import (
	"math"

	"github.com/gertingold/caps/mie"
	"github.com/gertingold/caps/radint"
	"github.com/gertingold/caps/xprec"
)

// LogMatrix stores a square matrix in log-magnitude+sign form.
type LogMatrix struct {
	Dim int
	E   [][]xprec.Value
}

func newLogMatrix(dim int) *LogMatrix {
	e := make([][]xprec.Value, dim)
	for i := range e {
		e[i] = make([]xprec.Value, dim)
		for j := range e[i] {
			e[i][j] = xprec.ZeroValue
		}
	}
	return &LogMatrix{Dim: dim, E: e}
}

func mpow(n int) int {
	return int(xprec.MPow(n))
}

func scaleBySign(v xprec.Value, s int) xprec.Value {
	if s < 0 {
		return v.Neg()
	}
	return v
}

// combine builds sign_mie*(sA*exp(lnMie+lnA) + sB*exp(lnMie+lnB)) in
// log-magnitude+sign form, the repeated (aℓ·A+bℓ·B)-style pattern in
// casimir_logdetD's matrix entries.
func combine(signMie int, lnMie float64, sA int, lnA float64, sB int, lnB float64) xprec.Value {
	t1 := xprec.FromLog(lnMie+lnA, xprec.Sign(sA))
	t2 := xprec.FromLog(lnMie+lnB, xprec.Sign(sB))
	sum := xprec.LogAddSigned(t1, t2)
	return scaleBySign(sum, signMie)
}

// deltaMinus returns Δ - x in log-magnitude+sign form, where Δ is 0 or 1.
func deltaMinus(delta int, x xprec.Value) xprec.Value {
	return xprec.LogAddSigned(xprec.FromFloat(float64(delta)), x.Neg())
}

// Build assembles the round-trip matrix for Matsubara index n >= 1 and
// magnetic quantum number m >= 0. For m=0 it returns two independent
// dim×dim EE/MM matrices (C form vanishes); for m>0 a single 2·dim×2·dim
// matrix with four blocks. lmax is the angular-momentum truncation order.
// Ported from caps' casimir_logdetD (libcasimir.c).
func Build(n, m, lmax int, nTRbyScriptL float64, mieCoeffs []mie.Coefficient, session *radint.Session) (ee, mm, full *LogMatrix, err error) {
	min := m
	if min < 1 {
		min = 1
	}
	dim := lmax - min + 1

	full = newLogMatrix(2 * dim)

	var rescale float64
	rescaleActive := nTRbyScriptL > 0 && nTRbyScriptL < 1
	if rescaleActive {
		rescale = math.Log(nTRbyScriptL)
	}

	for l1 := min; l1 <= lmax; l1++ {
		for l2 := min; l2 <= l1; l2++ {
			delta := 0
			if l1 == l2 {
				delta = 1
			}
			i, j := l1-min, l2-min

			c1 := mieCoeffs[l1-1]
			c2 := mieCoeffs[l2-1]
			lnAl1, lnBl1 := c1.LogA, c1.LogB
			lnAl2, lnBl2 := c2.LogA, c2.LogB
			if rescaleActive {
				lnAl1 -= float64(l1-l2) * rescale
				lnBl1 -= float64(l1-l2) * rescale
				lnAl2 -= float64(l2-l1) * rescale
				lnBl2 -= float64(l2-l1) * rescale
			}

			logATE, signATE, errA := session.A(l1, l2, radint.TE)
			if errA != nil {
				return nil, nil, nil, errA
			}
			logBTM, signBTM, errB := session.B(l1, l2, radint.TM)
			if errB != nil {
				return nil, nil, nil, errB
			}
			logATM, signATM, errA2 := session.A(l1, l2, radint.TM)
			if errA2 != nil {
				return nil, nil, nil, errA2
			}
			logBTE, signBTE, errB2 := session.B(l1, l2, radint.TE)
			if errB2 != nil {
				return nil, nil, nil, errB2
			}

			eeIJ := combine(c1.SignA, lnAl1, signATE, logATE, signBTM, logBTM)
			eeJI := combine(c2.SignA, lnAl2, signATE, logATE, signBTM, logBTM)
			full.E[i][j] = deltaMinus(delta, eeIJ)
			full.E[j][i] = deltaMinus(delta, scaleBySign(eeJI, mpow(l1+l2)))

			mmIJ := combine(c1.SignB, lnBl1, signATM, logATM, signBTE, logBTE)
			mmJI := combine(c2.SignB, lnBl2, signATM, logATM, signBTE, logBTE)
			full.E[dim+i][dim+j] = deltaMinus(delta, mmIJ)
			full.E[dim+j][dim+i] = deltaMinus(delta, scaleBySign(mmJI, mpow(l1+l2)))

			if m != 0 {
				logCTE, signCTE, errC := session.C(l1, l2, radint.TE)
				if errC != nil {
					return nil, nil, nil, errC
				}
				logDTM, signDTM, errD := session.D(l1, l2, radint.TM)
				if errD != nil {
					return nil, nil, nil, errD
				}
				logCTM, signCTM, errC2 := session.C(l1, l2, radint.TM)
				if errC2 != nil {
					return nil, nil, nil, errC2
				}
				logDTE, signDTE, errD2 := session.D(l1, l2, radint.TE)
				if errD2 != nil {
					return nil, nil, nil, errD2
				}

				emIJ := combine(c1.SignA, lnAl1, signCTE, logCTE, signDTM, logDTM)
				emJI := combine(c2.SignA, lnAl2, signDTE, logDTE, signCTM, logCTM)
				full.E[dim+i][j] = emIJ.Neg()
				full.E[dim+j][i] = scaleBySign(emJI, mpow(l1+l2+1)).Neg()

				meIJ := combine(c1.SignB, lnBl1, signCTM, logCTM, signDTE, logDTE)
				meJI := combine(c2.SignB, lnBl2, signDTM, logDTM, signCTE, logCTE)
				full.E[i][dim+j] = meIJ.Neg()
				full.E[j][dim+i] = scaleBySign(meJI, mpow(l1+l2+1)).Neg()
			}
		}
	}

	if m == 0 {
		ee = newLogMatrix(dim)
		mm = newLogMatrix(dim)
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				ee.E[i][j] = full.E[i][j]
				mm.E[i][j] = full.E[dim+i][dim+j]
			}
		}
		return ee, mm, nil, nil
	}

	return nil, nil, full, nil
}

// lnXi returns log|Ξ_{ℓ1ℓ2}^{(m)}| and its sign, the translation prefactor
// entering the ξ=0 matrix elements. Ported from caps' casimir_lnXi
// (libcasimir.c, Eq. 5.54), restricted to ℓ1,ℓ2 ≥ max(m,1).
func lnXi(l1, l2, m int) (logAbs float64, sign int) {
	fl1, fl2, fm := float64(l1), float64(l2), float64(m)
	half := math.Log(2*fl1+1) + math.Log(2*fl2+1) -
		xprec.LogFactorial(l1-m) - xprec.LogFactorial(l2-m) -
		xprec.LogFactorial(l1+m) - xprec.LogFactorial(l2+m) -
		math.Log(fl1) - math.Log(fl1+1) - math.Log(fl2) - math.Log(fl2+1)
	logAbs = half/2.0 +
		xprec.LogFactorial(2*l1) + xprec.LogFactorial(2*l2) + xprec.LogFactorial(l1+l2) -
		math.Ln2*2*float64(2*l1+l2+1) -
		xprec.LogFactorial(l1-1) - xprec.LogFactorial(l2-1)
	return logAbs, mpow(l2)
}

// BuildZeroFrequency assembles the n=0 EE/MM matrices from the low-frequency
// Mie prefactors and the Ξ translation coefficient. Both blocks are built
// for a perfect-reflector plate; for a Drude plate only EE is built and mm
// is nil (Open Question decision: see DESIGN.md). Ported from caps' casimir_logdetD0
// (libcasimir.c).
func BuildZeroFrequency(m, lmax int, lnRbyScriptL float64, isPerfectReflector bool) (ee, mm *LogMatrix) {
	min := m
	if min < 1 {
		min = 1
	}
	dim := lmax - min + 1
	ee = newLogMatrix(dim)
	if isPerfectReflector {
		mm = newLogMatrix(dim)
	}

	for l1 := min; l1 <= lmax; l1++ {
		for l2 := min; l2 <= lmax; l2++ {
			i, j := l1-min, l2-min
			delta := 0
			if l1 == l2 {
				delta = 1
			}
			lnA0, signA0, lnB0, signB0 := mie.LnAB0(l1)
			lnXiVal, signXi := lnXi(l1, l2, m)
			lnXiRL := lnXiVal + float64(2*l1+1)*lnRbyScriptL

			eeTerm := scaleBySign(xprec.FromLog(lnA0+lnXiRL, xprec.Sign(signA0)), signXi)
			ee.E[i][j] = deltaMinus(delta, eeTerm)
			if isPerfectReflector {
				mmTerm := scaleBySign(xprec.FromLog(lnB0+lnXiRL, xprec.Sign(signB0)), signXi)
				mm.E[i][j] = xprec.LogAddSigned(xprec.FromFloat(float64(delta)), mmTerm)
			}
		}
	}
	return ee, mm
}
