// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements the plate/sphere dielectric-function adapters
// and the Fresnel-coefficient provider consumed by package radint: Drude,
// lossless-plasma and perfect-reflector closed forms, plus a tabulated
// dielectric function read from a data file with Drude-tail extrapolation
// at its low- and high-frequency ends. Ported from caps' material.c and the
// casimir_epsilon/casimir_rp pair in libcasimir.c.
package material

import "math"

// DielectricFunction returns ε(iξ) − 1 for a plate or sphere material at
// scaled imaginary frequency ξ. A perfect reflector is represented by
// PerfectReflector, whose EpsilonM1 returns +Inf and which the Fresnel
// adapter handles as an explicit branch (see fresnel.go), matching the
// original's isinf(epsilonm1(INFINITY)) sentinel without propagating
// infinities through the Fresnel arithmetic.
type DielectricFunction interface {
	EpsilonM1(xi float64) float64
}

// Drude is the Drude model ε(iξ) − 1 = ωp²/(ξ(ξ+γ)); γ=0 recovers the
// lossless plasma model. Ported from caps' casimir_epsilon.
type Drude struct {
	Omegap float64
	Gamma  float64
}

func (d Drude) EpsilonM1(xi float64) float64 {
	return d.Omegap * d.Omegap / (xi * (xi + d.Gamma))
}

// PerfectReflector marks a surface with (r_TE, r_TM) = (−1, +1) for every ξ
// and k, independent of any dielectric function.
type PerfectReflector struct{}

func (PerfectReflector) EpsilonM1(xi float64) float64 { return math.Inf(1) }

func isBad(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}
