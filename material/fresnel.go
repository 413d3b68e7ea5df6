// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"

	"github.com/gertingold/caps/radint"
)

// Fresnel adapts a plate dielectric function, fixed at a Matsubara
// frequency ξ, into the radint.ReflectionCoefficients the radial-
// integration engine consumes as a function of the integration variable x
// (with k = ξ√(x²−1), §4.7). Ported from caps' casimir_epsilon/casimir_rp
// (libcasimir.c).
type Fresnel struct {
	Xi    float64
	Plate DielectricFunction

	signTE, signTM int
}

// NewFresnel builds the adapter and precomputes the polarization sign
// branch, which does not flip across the integration path for a physical
// permittivity (see radint.ReflectionCoefficients).
func NewFresnel(xi float64, plate DielectricFunction) *Fresnel {
	f := &Fresnel{Xi: xi, Plate: plate}
	f.signTE = sign(f.rp(radint.TE, 2))
	f.signTM = sign(f.rp(radint.TM, 2))
	return f
}

// rp evaluates the real-valued Fresnel coefficient at integration variable
// x>1, k=ξ√(x²−1). Ported from spec.md §4.7 / caps' casimir_rp.
func (f *Fresnel) rp(p radint.Polarization, x float64) float64 {
	if _, ok := f.Plate.(PerfectReflector); ok {
		if p == radint.TE {
			return -1
		}
		return 1
	}

	k := f.Xi * math.Sqrt((x-1)*(x+1))
	epsm1 := f.Plate.EpsilonM1(f.Xi)
	eps := 1 + epsm1
	beta := math.Sqrt(1 + epsm1/(1+(k/f.Xi)*(k/f.Xi)))
	if p == radint.TE {
		return (1 - beta) / (1 + beta)
	}
	return (eps - beta) / (eps + beta)
}

// LogAbs implements radint.ReflectionCoefficients.
func (f *Fresnel) LogAbs(p radint.Polarization, x float64) float64 {
	return math.Log(math.Abs(f.rp(p, x)))
}

// Sign implements radint.ReflectionCoefficients.
func (f *Fresnel) Sign(p radint.Polarization) int {
	if p == radint.TE {
		return f.signTE
	}
	return f.signTM
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
