// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package casimir is the collaborator façade: it bundles the physical and
// numerical parameters of a plane-sphere Casimir computation, assembles the
// per-(n,m) round-trip matrix from packages mie/radint/scatmat/material,
// and drives the outer Matsubara/magnetic-quantum-number summation with an
// optional worker-slot scheduler. Ported from caps' casimir_t and
// casimir_F/casimir_F_n (libcasimir.c).
package casimir

import (
	"fmt"
	"math"
	"runtime"

	"github.com/gertingold/caps/material"
)

// lscaleDefault and lmaxFloor mirror caps' CASIMIR_FACTOR_LMAX and the
// ℓ_max ≥ 20 floor of spec.md §3/§8.
const (
	lscaleDefault = 10.0
	lmaxFloor     = 20
)

// Parameters bundles everything needed to evaluate the free energy: the
// geometry, temperature, truncation and precision targets, the sphere's
// Drude/plasma/perfect-reflector parameters (the original only ever
// parameterizes the sphere this way — SphereOmegap=+Inf means perfect
// reflector, matching mie.Sphere), and the plate's dielectric function,
// which may additionally be a tabulated material.Table. Immutable once a
// computation starts (spec.md §5, "Parameters bundle: immutable during
// compute").
type Parameters struct {
	LbyR      float64
	T         float64
	Lmax      int
	Precision float64
	Cores     int
	EpsRel    float64

	SphereOmegap float64
	SphereGamma  float64

	Plate material.DielectricFunction
}

// RbyScriptL returns R/(R+L) ∈ (0,1), the scaled sphere radius caps'
// integration/matrix code is expressed in terms of.
func (p *Parameters) RbyScriptL() float64 {
	return 1 / (1 + p.LbyR)
}

// IsPerfectReflectorPlate reports whether the plate is a perfect reflector,
// the sentinel caps uses to route n=0 to the EE-and-MM closed form instead
// of the EE-only Drude one (see scatmat.BuildZeroFrequency).
func (p *Parameters) IsPerfectReflectorPlate() bool {
	_, ok := p.Plate.(material.PerfectReflector)
	return ok
}

// NewParameters validates and defaults a Parameters bundle. lscale sets the
// ℓ_max default (⌈lscale/(L/R)⌉, floored at lmaxFloor) when lmax<=0 is
// passed; lscale<=0 uses lscaleDefault. Ported from caps' casimir_init.
func NewParameters(lbyR, T float64, lmax int, lscale, precision float64, cores int, sphereOmegap, sphereGamma float64, plate material.DielectricFunction) (*Parameters, error) {
	if lbyR <= 0 {
		return nil, fmt.Errorf("casimir: L/R must be positive, got %g", lbyR)
	}
	if T <= 0 {
		return nil, fmt.Errorf("casimir: T must be positive, got %g", T)
	}
	if precision <= 0 {
		return nil, fmt.Errorf("casimir: precision must be positive, got %g", precision)
	}
	if cores <= 0 {
		return nil, fmt.Errorf("casimir: cores must be positive, got %d", cores)
	}
	if lscale <= 0 {
		lscale = lscaleDefault
	}
	if lmax <= 0 {
		lmax = int(math.Ceil(lscale / lbyR))
		if lmax < lmaxFloor {
			lmax = lmaxFloor
		}
	}
	return &Parameters{
		LbyR:         lbyR,
		T:            T,
		Lmax:         lmax,
		Precision:    precision,
		Cores:        cores,
		EpsRel:       precision,
		SphereOmegap: sphereOmegap,
		SphereGamma:  sphereGamma,
		Plate:        plate,
	}, nil
}

// String renders a readable parameter dump, spec.md §4.8's "readable dump
// of parameters".
func (p *Parameters) String() string {
	return fmt.Sprintf(
		"L/R=%g T=%g lmax=%d precision=%g cores=%d sphere(omegap=%g,gamma=%g) plate=%T",
		p.LbyR, p.T, p.Lmax, p.Precision, p.Cores, p.SphereOmegap, p.SphereGamma, p.Plate,
	)
}

// CompileInfo reports the Go toolchain and word size the binary was built
// with, spec.md §4.8's "compile-info string". Ported from caps'
// casimir_compile_info (libcasimir.c), which reports the C compiler and the
// long-double/quad arithmetic in use; here it reports the Go runtime
// equivalent since xprec (this port's log-space scalar kit) has no
// compile-time arithmetic mode to report.
func CompileInfo() string {
	return fmt.Sprintf("%s, GOARCH=%s, GOOS=%s", runtime.Version(), runtime.GOARCH, runtime.GOOS)
}
