// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sfunc

import (
	"math"

	"github.com/gertingold/caps/xprec"
)

// PlmArray holds log|P_l^m(x)| and its sign for l = m..lmax, x >= 1, one
// pass of the upward recurrence in l. Ported from caps' _lnplm_array
// (sfunc.c).
type PlmArray struct {
	M     int
	LnAbs []float64
	Sign  []xprec.Sign
}

// At returns log|P_l^m(x)| and its sign for l in [M, M+len(LnAbs)-1].
func (a *PlmArray) At(l int) (float64, xprec.Sign) {
	i := l - a.M
	return a.LnAbs[i], a.Sign[i]
}

// NewPlmArray computes {log P_l^m(x), sign} for l = m..lmax in one pass, for
// x >= 1. Ported from caps' _lnplm_array (sfunc.c).
func NewPlmArray(lmax, m int, x float64) *PlmArray {
	if x < 1 {
		panic("sfunc: NewPlmArray requires x >= 1")
	}
	n := lmax - m + 1
	logs := make([]float64, n)
	signs := make([]xprec.Sign, n)
	logx := math.Log(x)

	if m == 0 {
		signs[0] = xprec.Positive
		logs[0] = 0
	} else {
		signs[0] = xprec.MPow(m/2 + m%2)
		logs[0] = xprec.LogDoubleFactorial(2*m-1) + float64(m)*0.5*math.Log(x*x-1)
	}

	if lmax == m {
		return &PlmArray{M: m, LnAbs: logs, Sign: signs}
	}

	signs[1] = signs[0]
	logs[1] = logs[0] + logx + math.Log(float64(2*m+1))

	for l := m + 2; l <= lmax; l++ {
		i := l - m
		v1 := xprec.FromLog(math.Log(float64(2*l-1))+logx+logs[i-1], signs[i-1])
		v2 := xprec.FromLog(math.Log(float64(l+m-1))+logs[i-2], signs[i-2]).Neg()
		sum := xprec.LogAddSigned(v1, v2)
		logs[i] = sum.LogAbs - math.Log(float64(l-m))
		signs[i] = sum.Sign
	}

	return &PlmArray{M: m, LnAbs: logs, Sign: signs}
}

// LnPlm returns log|P_l^m(x)| and its sign for a single (l,m,x).
func LnPlm(l, m int, x float64) (float64, xprec.Sign) {
	a := NewPlmArray(l, m, x)
	return a.At(l)
}

// LnDPlm returns log|dP_l^m/dx(x)| and its sign, via the array of order
// l+1 built in one extra pass. Ported from caps' plm_lndPlm (sfunc.c).
func LnDPlm(l, m int, x float64) (float64, xprec.Sign) {
	a := NewPlmArray(l+1, m, x)
	lnPl, signPl := a.At(l)
	lnPlp1, signPlp1 := a.At(l + 1)
	logx := math.Log(x)
	logx2m1 := math.Log(x*x - 1)

	v1 := xprec.FromLog(math.Log(float64(l-m+1))+lnPlp1, signPlp1)
	v2 := xprec.FromLog(math.Log(float64(l+1))+logx+lnPl, signPl).Neg()
	sum := xprec.LogAddSigned(v1, v2)
	return sum.LogAbs - logx2m1, sum.Sign
}

// PlmCombination packages the four cross-products of associated Legendre
// polynomials and their derivatives needed by the radial-integration
// engine's A,B,C,D construction, all in log-magnitude+sign form. Ported
// from caps' plm_PlmPlm (sfunc.c).
type PlmCombination struct {
	LnPl1mPl2m     float64
	SignPl1mPl2m   xprec.Sign
	LnPl1mDPl2m    float64
	SignPl1mDPl2m  xprec.Sign
	LnDPl1mPl2m    float64
	SignDPl1mPl2m  xprec.Sign
	LnDPl1mDPl2m   float64
	SignDPl1mDPl2m xprec.Sign
}

// LnPlmDerivatives returns the first and second derivative of log P_l^m(x)
// with respect to x, for x > 1. Derived from the associated Legendre
// differential equation (x²-1)P'' + 2xP' - [l(l+1) + m²/(x²-1)]P = 0 divided
// through by P, rather than ported directly, since the reference
// implementation's dlnPlm lives in a translation unit outside the retrieved
// source; used by the radial-integration engine's peak-finding Newton step
// (caps' K_estimate, integration.c).
func LnPlmDerivatives(l, m int, x float64) (d1, d2 float64) {
	lnPl, signPl := LnPlm(l, m, x)
	lnDPl, signDPl := LnDPlm(l, m, x)
	d1 = float64(signDPl*signPl) * math.Exp(lnDPl-lnPl)

	x2m1 := x*x - 1
	fl, fm := float64(l), float64(m)
	pFrac := fl*(fl+1) + fm*fm/x2m1
	d2 = (pFrac-2*x*d1)/x2m1 - d1*d1
	return d1, d2
}

// NewPlmCombination builds all four cross-products for l1, l2, shared order
// m, at x >= 1, from a single shared recurrence pass.
func NewPlmCombination(l1, l2, m int, x float64) *PlmCombination {
	lmax := l1
	if l2 > lmax {
		lmax = l2
	}
	a := NewPlmArray(lmax+1, m, x)
	logx := math.Log(x)
	logx2m1 := math.Log(x*x - 1)
	commonSign := xprec.MPow(m % 2)

	lnPl1, sPl1 := a.At(l1)
	lnPl2, sPl2 := a.At(l2)

	dplm := func(l int) (float64, xprec.Sign) {
		lnPl, sPl := a.At(l)
		lnPlp1, sPlp1 := a.At(l + 1)
		v1 := xprec.FromLog(math.Log(float64(l-m+1))+lnPlp1, sPlp1)
		v2 := xprec.FromLog(math.Log(float64(l+1))+logx+lnPl, sPl).Neg()
		sum := xprec.LogAddSigned(v1, v2)
		return sum.LogAbs - logx2m1, sum.Sign
	}
	lnDPl1, sDPl1 := dplm(l1)
	lnDPl2, sDPl2 := dplm(l2)

	res := &PlmCombination{}
	res.LnPl1mPl2m = lnPl1 + lnPl2
	res.SignPl1mPl2m = commonSign * sPl1 * sPl2

	res.LnPl1mDPl2m = lnPl1 + lnDPl2
	res.SignPl1mDPl2m = commonSign * sPl1 * sDPl2

	res.LnDPl1mPl2m = lnDPl1 + lnPl2
	res.SignDPl1mPl2m = commonSign * sDPl1 * sPl2

	res.LnDPl1mDPl2m = lnDPl1 + lnDPl2
	res.SignDPl1mDPl2m = commonSign * sDPl1 * sDPl2

	return res
}
