// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sfunc

import (
	"fmt"
	"math"

	"github.com/gertingold/caps/xprec"
)

// NotRepresentableError is returned when a modified Bessel function cannot
// be evaluated to the requested precision for the given order and argument
// (§4.2: "failing arguments must report 'not representable' to the caller").
type NotRepresentableError struct {
	Nu int
	X  float64
}

func (e *NotRepresentableError) Error() string {
	return fmt.Sprintf("sfunc: modified Bessel function not representable for nu=%d, x=%g", e.Nu, e.X)
}

// LnKHalfInt returns log K_{l+1/2}(x) for l >= 0, x > 0, via the exact
// closed-form three-term recurrence for half-integer order (K_{1/2} and
// K_{3/2} are elementary; every higher half-integer order follows from the
// same recurrence used for spherical Bessel functions). Ported from caps'
// bessel_lnInuKnu (sfunc.c) K branch.
func LnKHalfInt(l int, x float64) (float64, error) {
	if x <= 0 {
		return 0, &NotRepresentableError{Nu: l, X: x}
	}
	logx := math.Log(x)
	prefactor := -x + 0.5*(math.Log(math.Pi)-math.Ln2-logx)

	if l == 0 {
		return prefactor, nil
	}

	// unnormalized seeds: K_{1/2} -> 1, K_{3/2} -> 1+1/x (both divided by
	// the common prefactor e^-x * sqrt(pi/(2x)))
	knu, knup := 1.0, 1.0+1.0/x
	for k := 2; k <= l; k++ {
		next := float64(2*k-1)*knup/x + knu
		knu, knup = knup, next
	}
	if math.IsNaN(knup) || math.IsInf(knup, 0) {
		return 0, &NotRepresentableError{Nu: l, X: x}
	}
	return prefactor + math.Log(knup), nil
}

// lnKHalfIntPair returns log K_{l+1/2}(x) and log K_{l+3/2}(x) together,
// since the I-branch of the same recurrence needs both.
func lnKHalfIntPair(l int, x float64) (lnKl, lnKlp1 float64, err error) {
	if x <= 0 {
		return 0, 0, &NotRepresentableError{Nu: l, X: x}
	}
	logx := math.Log(x)
	prefactor := -x + 0.5*(math.Log(math.Pi)-math.Ln2-logx)

	knu, knup := 1.0, 1.0+1.0/x
	for k := 2; k <= l+1; k++ {
		next := float64(2*k-1)*knup/x + knu
		knu, knup = knup, next
	}
	if math.IsNaN(knup) || math.IsInf(knup, 0) {
		return 0, 0, &NotRepresentableError{Nu: l, X: x}
	}
	return prefactor + math.Log(knu), prefactor + math.Log(knup), nil
}

// LnIHalfInt returns log I_{l+1/2}(x) for l >= 0, x > 0, via the
// continued-fraction ratio I_{l+1/2}/I_{l+3/2} combined with K through the
// Wronskian I_nu*K_nu' - I_nu'*K_nu = -1/x. Ported from caps'
// bessel_lnInuKnu (sfunc.c) I branch.
func LnIHalfInt(l int, x float64) (float64, error) {
	if x <= 0 {
		return 0, &NotRepresentableError{Nu: l, X: x}
	}
	lnKnu, lnKnup, err := lnKHalfIntPair(l, x)
	if err != nil {
		return 0, err
	}

	an := func(n int) float64 { return 2 * (float64(l) + 0.5 + float64(n)) / x }

	nom := an(2) + 1/an(1)
	denom := an(2)
	ratio := (an(1) * nom) / denom
	ratioLast := 0.0

	const maxIter = 10000
	k := 3
	for {
		nom = an(k) + 1/nom
		denom = an(k) + 1/denom
		ratio *= nom / denom

		if ratioLast != 0 && math.Abs(1-ratio/ratioLast) < 1e-15 {
			break
		}
		ratioLast = ratio
		k++
		if k > maxIter {
			return 0, &NotRepresentableError{Nu: l, X: x}
		}
	}

	logx := math.Log(x)
	lnI := -logx - lnKnu - math.Log(math.Exp(lnKnup-lnKnu)+1/ratio)
	if math.IsNaN(lnI) || math.IsInf(lnI, 0) {
		return 0, &NotRepresentableError{Nu: l, X: x}
	}
	return lnI, nil
}

// besselK01 evaluates log K0(x) and log K1(x) for integer order 0 and 1
// using the Abramowitz & Stegun 9.8.5-9.8.8 rational/polynomial
// approximations, the standard from-scratch technique for bootstrapping the
// stable upward recurrence in the order.
func besselK01(x float64) (lnK0, lnK1 float64) {
	if x <= 2 {
		t := x * x / 4
		i0 := besselI0(x)
		k0 := -math.Log(x/2)*i0 + (-0.57721566 + t*(0.42278420+t*(0.23069756+t*(0.03488590+t*(0.00262698+t*(0.00010750+t*0.00000740))))))
		i1 := besselI1(x)
		k1 := math.Log(x/2)*i1 + (1/x)*(1+t*(0.15443144+t*(-0.67278579+t*(-0.18156897+t*(-0.01919402+t*(-0.00110404+t*(-0.00004686)))))))
		return math.Log(k0), math.Log(k1)
	}
	t := 2 / x
	common := -x - 0.5*math.Log(x)
	k0 := 1.25331414 + t*(-0.07832358+t*(0.02189568+t*(-0.01062446+t*(0.00587872+t*(-0.00251540+t*0.00053208)))))
	k1 := 1.25331414 + t*(0.23498619+t*(-0.03655620+t*(0.01504268+t*(-0.00780353+t*(0.00325614+t*(-0.00068245))))))
	return common + math.Log(k0), common + math.Log(k1)
}

func besselI0(x float64) float64 {
	if math.Abs(x) < 3.75 {
		t := (x / 3.75) * (x / 3.75)
		return 1 + t*(3.5156229+t*(3.0899424+t*(1.2067492+t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}
	ax := math.Abs(x)
	t := 3.75 / ax
	return (math.Exp(ax) / math.Sqrt(ax)) * (0.39894228 + t*(0.01328592+t*(0.00225319+t*(-0.00157565+t*(0.00916281+t*(-0.02057706+t*(0.02635537+t*(-0.01647633+t*0.00392377))))))))
}

func besselI1(x float64) float64 {
	if math.Abs(x) < 3.75 {
		t := (x / 3.75) * (x / 3.75)
		return x * (0.5 + t*(0.87890594+t*(0.51498869+t*(0.15084934+t*(0.02658733+t*(0.00301532+t*0.00032411))))))
	}
	ax := math.Abs(x)
	t := 3.75 / ax
	v := 0.39894228 + t*(-0.03988024+t*(-0.00362018+t*(0.00163801+t*(-0.01031555+t*(0.02282967+t*(-0.02895312+t*(0.01787654+t*(-0.00420059))))))))
	r := (math.Exp(ax) / math.Sqrt(ax)) * v
	if x < 0 {
		return -r
	}
	return r
}

// LnK returns log K_nu(x) for non-negative integer order via the base
// cases K0, K1 and the stable (for K, numerically increasing) upward
// three-term recurrence K_{n+1}(x) = K_{n-1}(x) + (2n/x) K_n(x).
func LnK(nu int, x float64) (float64, error) {
	if x <= 0 || nu < 0 {
		return 0, &NotRepresentableError{Nu: nu, X: x}
	}
	lnK0, lnK1 := besselK01(x)
	if nu == 0 {
		return lnK0, nil
	}
	if nu == 1 {
		return lnK1, nil
	}
	lnKn, lnKnp1 := lnK0, lnK1
	for n := 1; n < nu; n++ {
		term := xprec.LogAdd(lnKn, math.Log(2*float64(n)/x)+lnKnp1)
		lnKn, lnKnp1 = lnKnp1, term
	}
	if math.IsNaN(lnKnp1) || math.IsInf(lnKnp1, 0) {
		return 0, &NotRepresentableError{Nu: nu, X: x}
	}
	return lnKnp1, nil
}

// LnI returns log I_nu(x) for non-negative integer order via the
// continued-fraction ratio I_{nu+1}/I_nu (stable downward recurrence
// direction for I, computed as an upward-evaluated continued fraction) and
// the Wronskian I_nu(x) K_{nu+1}(x) + I_{nu+1}(x) K_nu(x) = 1/x.
func LnI(nu int, x float64) (float64, error) {
	if x <= 0 || nu < 0 {
		return 0, &NotRepresentableError{Nu: nu, X: x}
	}
	lnKnu, err := LnK(nu, x)
	if err != nil {
		return 0, err
	}
	lnKnup1, err := LnK(nu+1, x)
	if err != nil {
		return 0, err
	}

	ratio, err := besselRatioContinuedFraction(nu, x)
	if err != nil {
		return 0, err
	}

	// I_nu = 1 / (x * (K_{nu+1} + ratio*K_nu)), ratio = I_{nu+1}/I_nu
	logKnup1 := lnKnup1
	logRatioKnu := math.Log(ratio) + lnKnu
	denomLog := xprec.LogAdd(logKnup1, logRatioKnu)
	lnI := -math.Log(x) - denomLog
	if math.IsNaN(lnI) || math.IsInf(lnI, 0) {
		return 0, &NotRepresentableError{Nu: nu, X: x}
	}
	return lnI, nil
}

// besselRatioContinuedFraction evaluates I_{nu+1}(x)/I_nu(x) via Lentz's
// algorithm applied to the standard modified-Bessel continued fraction
// (DLMF 10.33.1).
func besselRatioContinuedFraction(nu int, x float64) (float64, error) {
	const tiny = 1e-300
	a := func(k int) float64 { return 2 * (float64(nu) + float64(k)) / x }

	f := tiny
	c := f
	d := 0.0
	const maxIter = 20000
	for k := 1; k <= maxIter; k++ {
		d = a(k) + d
		if d == 0 {
			d = tiny
		}
		c = a(k) + 1/c
		if c == 0 {
			c = tiny
		}
		d = 1 / d
		delta := c * d
		f *= delta
		if math.Abs(delta-1) < 1e-15 {
			return f, nil
		}
	}
	return 0, &NotRepresentableError{Nu: nu, X: x}
}
