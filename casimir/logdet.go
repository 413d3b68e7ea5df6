// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/gertingold/caps/material"
	"github.com/gertingold/caps/mie"
	"github.com/gertingold/caps/radint"
	"github.com/gertingold/caps/scatmat"
)

// NewMieCache builds the per-n Mie-coefficient cache for this sphere,
// shared across the m-loop at fixed n.
func (p *Parameters) NewMieCache() *mie.Cache {
	sphere := mie.Sphere{RbyL: p.RbyScriptL(), Omegap: p.SphereOmegap, Gamma: p.SphereGamma}
	return mie.NewCache(sphere, p.T)
}

// logDetD computes log det D(nT,m), dispatching to the ξ=0 closed form or
// the general radial-integration + matrix-assembly path. mieCache is
// shared across the m-loop at fixed n (spec.md §5, "Mie cache: read-mostly
// ... fills under a per-n lock"); the n=0 path does not consult it. The
// I-integral cache of each radial-integration session holds 10·Lmax
// entries unless the CAPS_CACHE_ELEMS environment variable gives a positive
// integer. Ported from caps' casimir_logdetD (libcasimir.c).
func (p *Parameters) logDetD(n, m int, mieCache *mie.Cache) (float64, error) {
	RbyScriptL := p.RbyScriptL()

	if n == 0 {
		ee, mm := scatmat.BuildZeroFrequency(m, p.Lmax, math.Log(RbyScriptL), p.IsPerfectReflectorPlate())
		logdetEE, signEE, err := scatmat.LogDet(ee, scatmat.DetLU)
		if err != nil {
			return 0, err
		}
		if signEE < 0 {
			return 0, fmt.Errorf("casimir: logdetD(0,%d): expected non-negative EE determinant", m)
		}
		if mm == nil {
			return logdetEE, nil
		}
		logdetMM, signMM, err := scatmat.LogDet(mm, scatmat.DetLU)
		if err != nil {
			return 0, err
		}
		if signMM < 0 {
			return 0, fmt.Errorf("casimir: logdetD(0,%d): expected non-negative MM determinant", m)
		}
		return logdetEE + logdetMM, nil
	}

	xi := float64(n) * p.T
	coeffs, err := mieCache.Get(n, p.Lmax)
	if err != nil {
		return 0, err
	}

	plateRefl := material.NewFresnel(xi, p.Plate)
	iCacheCapacity := 10 * p.Lmax
	if v, err := strconv.Atoi(os.Getenv("CAPS_CACHE_ELEMS")); err == nil && v > 0 {
		iCacheCapacity = v
	}
	session := radint.NewSession(m, 2*xi, p.EpsRel, 0, iCacheCapacity, plateRefl)

	nTRbyScriptL := xi * RbyScriptL
	ee, mm, full, err := scatmat.Build(n, m, p.Lmax, nTRbyScriptL, coeffs, session)
	if err != nil {
		return 0, err
	}

	if m == 0 {
		logdetEE, signEE, err := scatmat.LogDet(ee, scatmat.DetLU)
		if err != nil {
			return 0, err
		}
		logdetMM, signMM, err := scatmat.LogDet(mm, scatmat.DetLU)
		if err != nil {
			return 0, err
		}
		if signEE < 0 || signMM < 0 {
			return 0, fmt.Errorf("casimir: logdetD(%d,0): expected non-negative determinants", n)
		}
		return logdetEE + logdetMM, nil
	}

	logdet, sign, err := scatmat.LogDet(full, scatmat.DetLU)
	if err != nil {
		return 0, err
	}
	if sign < 0 {
		return 0, fmt.Errorf("casimir: logdetD(%d,%d): expected non-negative determinant", n, m)
	}
	return logdet, nil
}
