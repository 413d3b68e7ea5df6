// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"math"

	"github.com/gertingold/caps/sfunc"
)

// peakEstimate is the outcome of locating and characterizing the integrand
// peak, grounded on caps' K_estimate (integration.c).
type peakEstimate struct {
	xmax, fxmax, fpp   float64
	a, b               float64
	logNormalization   float64
}

// f(x) = alpha*x - log P_nu^{2m}(x) + [m>0]*log(x^2-1) (P_nu^2 for m=0), the
// negative log of the (r_p-stripped) K-integrand.
func integrandExponent(nu, m int, alpha, x float64) float64 {
	if m == 0 {
		lnP, _ := sfunc.LnPlm(nu, 2, x)
		return alpha*x - lnP
	}
	lnP, _ := sfunc.LnPlm(nu, 2*m, x)
	return alpha*x - lnP + math.Log(x*x-1)
}

// estimatePeak locates the minimum of f(x) on [1,inf), forms the Laplace
// estimate of the integral, and determines the border points a,b at which
// the integrand has dropped to a fraction eps of its peak value. Ported from
// caps' K_estimate (integration.c).
func estimatePeak(nu, m int, alpha, eps float64) peakEstimate {
	const maxIter = 75
	mpos := 0.0
	if m > 0 {
		mpos = 1
	}
	mEff := m
	if mEff < 1 {
		mEff = 1
	}

	f := func(x float64) float64 { return integrandExponent(nu, m, alpha, x) }

	var xmax, fxmax, fpp float64

	// initial guess
	if nu == 2*m {
		l := nu / 2
		ratio := (float64(l) - 1) / alpha
		xmax = ratio + math.Sqrt(1+ratio*ratio)
	} else {
		xmax = math.Sqrt(1 + ((float64(nu)+0.5)/alpha)*((float64(nu)+0.5)/alpha))
	}
	if xmax <= 1 {
		xmax = 1 + 1e-8
	}

	var fp float64
	for i := 0; i < maxIter; i++ {
		xold := xmax
		x2m1 := xmax*xmax - 1
		d1, d2 := sfunc.LnPlmDerivatives(nu, 2*mEff, xmax)

		fp = alpha - d1 + mpos*2*xmax/x2m1
		fpp = -d2 - mpos*2*(xmax*xmax+1)/(x2m1*x2m1)

		if fpp == 0 {
			break
		}
		xmax = xmax - fp/fpp
		if xmax <= 1 {
			xmax = 1 + (xold-1)/2
		}

		delta := math.Abs(xmax - xold)
		if delta < 1e-13 || (xmax > 1.001 && delta < 1e-6) {
			break
		}
	}

	fxmax = f(xmax)

	var logNormalization, a, b float64
	if isBad(xmax) || isBad(fxmax) || isBad(fpp) || fpp < 0 {
		// fall back to the boundary: the peak sits at x=1 (common for m=1
		// with a shallow or absent interior extremum).
		xmax = 1
		fxmax = f(1)
		logNormalization = -fxmax
		a, b = 1, 1-math.Log(eps)/alpha
	} else {
		logNormalization = 0.5*math.Log(2*math.Pi/fpp) - fxmax
		width := -math.Log(eps) / math.Sqrt(fpp)
		a = math.Max(1, xmax-width)
		b = xmax + width
	}

	// refine left border
	if a > 1 {
		for i := 0; i < maxIter; i++ {
			fa := f(a)
			if math.Exp(fxmax-fa) < eps {
				break
			}
			a = 1 + 0.5*(a-1)
		}
	}
	// refine right border
	for i := 0; i < maxIter; i++ {
		fb := f(b)
		if math.Exp(fxmax-fb) < eps {
			break
		}
		b = 1 + 2*(b-1)
	}

	if a < 1.0001 {
		a = 1
	}

	return peakEstimate{xmax: xmax, fxmax: fxmax, fpp: fpp, a: a, b: b, logNormalization: logNormalization}
}
