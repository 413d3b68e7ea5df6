// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package radint implements the radial-integration engine: the K and I
// integrals over the half-line [1,∞) that enter the scattering-matrix
// elements, combined via Gaunt-coefficient recurrences and memoized in
// array-indexed and bounded-map caches. Ported from caps' integration.c.
package radint

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Polarization selects the TE or TM mode of the radial integrals.
type Polarization int

const (
	TE Polarization = iota
	TM
)

func (p Polarization) String() string {
	if p == TE {
		return "TE"
	}
	return "TM"
}

// ReflectionCoefficients supplies the log-magnitude of the Fresnel
// coefficient r_p as a function of the integration variable x (so that the
// radial-integration engine stays independent of the material model used to
// produce it), plus the single global sign branch that polarization carries
// for the session's material (perfect reflectors: TM -> +1, TE -> -1; for
// Drude/plasma the sign matches r_p's own branch, which does not flip sign
// across the integration path for physical permittivities).
type ReflectionCoefficients interface {
	LogAbs(p Polarization, x float64) float64
	Sign(p Polarization) int
}

// Session bundles the parameters shared by every K- and I-integral
// evaluation at fixed Matsubara index n, magnetic quantum number m, and
// relative accuracy: alpha = 2*xi (in units of L/c), grounded on caps'
// integration_t (integration.c/.h).
type Session struct {
	M       int
	Alpha   float64
	EpsRel  float64
	EpsPeak float64
	Refl    ReflectionCoefficients

	kCache *kCache
	iCache *iCache
}

// NewSession constructs a radial-integration session. epsPeak defaults to
// 1e-6 (the border tolerance of §4.3) when zero is passed; iCacheCapacity
// defaults to 256 when zero is passed.
func NewSession(m int, alpha, epsRel, epsPeak float64, iCacheCapacity int, refl ReflectionCoefficients) *Session {
	if m < 0 {
		chk.Panic("radint: m must be non-negative, got %d", m)
	}
	if alpha < 0 {
		chk.Panic("radint: alpha must be non-negative, got %g", alpha)
	}
	if epsPeak <= 0 {
		epsPeak = 1e-6
	}
	if iCacheCapacity <= 0 {
		iCacheCapacity = 256
	}
	return &Session{
		M:       m,
		Alpha:   alpha,
		EpsRel:  epsRel,
		EpsPeak: epsPeak,
		Refl:    refl,
		kCache:  newKCache(m),
		iCache:  newICache(iCacheCapacity),
	}
}

func isBad(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
