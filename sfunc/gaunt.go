// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sfunc

import "math"

// GauntQMax returns q_max for the Gaunt expansion of P_n^m * P_nu^m.
// Ported from caps' gaunt_qmax (sfunc.c).
func GauntQMax(n, nu, m int) int {
	xi := (n + nu - 2*m) / 2
	q := n
	if nu < q {
		q = nu
	}
	if xi < q {
		q = xi
	}
	return q
}

// GauntLogA0 returns log(a0), the prefactor of the Gaunt expansion.
// Ported from caps' gaunt_log_a0 (sfunc.c).
func GauntLogA0(n, nu, m int) float64 {
	lg := func(x int) float64 {
		v, _ := math.Lgamma(float64(x))
		return v
	}
	return lg(2*n+1) - lg(n+1) + lg(2*nu+1) - lg(1+nu) + lg(n+nu+1) - lg(2*n+2*nu+1) +
		lg(1+n+nu-2*m) - lg(1+n-m) - lg(1+nu-m)
}

// Gaunt computes the normalized Gaunt coefficients ã_q for q = 0..qmax via
// the Xu four-term recurrence (Y.-L. Xu, J. Comp. Appl. Math. 85, 53
// (1997)). Rescaling is applied whenever a running coefficient would exceed
// 1e100 or fall below 1e-100 in magnitude, with the accumulated scaling
// factor returned in logScaling so callers can undo it. Ported from caps'
// gaunt (sfunc.c).
func Gaunt(n, nu, m int) (aTilde []float64, logScaling []float64) {
	qmax := GauntQMax(n, nu, m)
	if qmax < 0 {
		return nil, nil
	}

	aTilde = make([]float64, qmax+1)
	logScaling = make([]float64, qmax+1)
	aTilde[0] = 1
	if qmax == 0 {
		return aTilde, logScaling
	}

	n4 := n + nu - 2*m
	fN, fNu, fM := float64(n), float64(nu), float64(m)

	aTilde[1] = (fN + fNu - 1.5) * (1.0 - (2*fN+2*fNu-1)/(float64(n4)*float64(n4-1))*
		((fM-fN)*(fM-fN+1)/(2*fN-1)+(fM-fNu)*(fM-fNu+1)/(2*fNu-1)))
	logScaling[1] = logScaling[0]
	if qmax == 1 {
		return aTilde, logScaling
	}

	aTilde[2] = (2*fN+2*fNu-1)*(2*fN+2*fNu-7)/4*((2*fN+2*fNu-3)/(float64(n4)*float64(n4-1))*
		((2*fN+2*fNu-5)/(2*float64(n4-2)*float64(n4-3))*
			((fM-fN)*(fM-fN+1)*(fM-fN+2)*(fM-fN+3)/(2*fN-1)/(2*fN-3)+
				2*(fM-fN)*(fM-fN+1)*(fM-fNu)*(fM-fNu+1)/((2*fN-1)*(2*fNu-1))+
				(fM-fNu)*(fM-fNu+1)*(fM-fNu+2)*(fM-fNu+3)/(2*fNu-1)/(2*fNu-3))-
			(fM-fN)*(fM-fN+1)/(2*fN-1)-(fM-fNu)*(fM-fNu+1)/(2*fNu-1)) + 0.5)
	logScaling[2] = logScaling[1]
	if qmax == 2 {
		return aTilde, logScaling
	}

	alpha := func(p float64) float64 {
		return ((p*p - float64((n+nu+1)*(n+nu+1))) * (p*p - float64((n-nu)*(n-nu)))) / (4*p*p - 1)
	}

	ap := -2 * m * (n - nu) * (n + nu + 1)
	fAp := float64(ap)

	const rescaleUp = 1e100
	const rescaleDown = 1e-100

	for q := 3; q <= qmax; q++ {
		p := float64(n + nu - 2*q)
		p1 := p - 2*fM
		p2 := p + 2*fM

		var val float64
		if ap != 0 {
			c0 := (p + 2) * (p + 3) * (p1 + 1) * (p1 + 2) * fAp * alpha(p+1)
			c1 := fAp*fAp*fAp +
				(p+1)*(p+3)*(p1+2)*(p2+2)*fAp*alpha(p+2) +
				(p+2)*(p+4)*(p1+3)*(p2+3)*fAp*alpha(p+3)
			c2 := -(p + 2) * (p + 3) * (p2 + 3) * (p2 + 4) * fAp * alpha(p+4)
			val = (c1*aTilde[q-1] + c2*aTilde[q-2]) / c0
		} else {
			val = (p+1)*(p2+2)*alpha(p+2)*aTilde[q-1] / ((p + 2) * (p1 + 1) * alpha(p+1))
		}

		logScaling[q] = logScaling[q-1]
		absVal := val
		if absVal < 0 {
			absVal = -absVal
		}
		if absVal > rescaleUp || (absVal > 0 && absVal < rescaleDown) {
			// rescale the running coefficients (this one and the previous)
			// by the same factor and track it in logScaling so callers can
			// undo it when combining with a prefactor already in log form.
			factor := 1.0
			for absVal*factor > rescaleUp {
				factor /= rescaleUp
			}
			for absVal > 0 && absVal*factor < rescaleDown {
				factor *= rescaleUp
			}
			val *= factor
			aTilde[q-1] *= factor
			logScaling[q-1] -= math.Log(factor)
			logScaling[q] -= math.Log(factor)
		}
		aTilde[q] = val
	}

	return aTilde, logScaling
}
