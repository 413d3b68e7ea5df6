// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mie

import "sync"

// Coefficient packages log|aℓ|, log|bℓ| and their signs for one order ℓ.
type Coefficient struct {
	LogA, LogB   float64
	SignA, SignB int
}

// Sphere describes the scattering sphere: a perfect reflector when Omegap
// is +Inf, a Drude metal when Gamma > 0, or a lossless plasma when Gamma ==
// 0.
type Sphere struct {
	RbyL   float64
	Omegap float64
	Gamma  float64
}

// Cache maps a Matsubara index n to its per-ℓ array of Mie coefficients,
// computed lazily on first request and shared across the m-loop at that n
// (§4.4: "the cache maps n to a per-ℓ array ... lookup triggers lazy
// compute-and-fill on miss"). Safe for concurrent use by the worker-pool
// dispatch across n in package casimir.
type Cache struct {
	sphere Sphere
	T      float64

	mu      sync.Mutex
	perN    map[int][]Coefficient
}

// NewCache builds a Mie-coefficient cache for a sphere at temperature T (in
// the scaled units of §4.1/§4.6, so that ξ_n = n*T).
func NewCache(sphere Sphere, T float64) *Cache {
	return &Cache{sphere: sphere, T: T, perN: make(map[int][]Coefficient)}
}

// Get returns the coefficients for ℓ=1..lmax at Matsubara index n >= 1,
// extending a previously cached shorter array if lmax grows, and computing
// from scratch on a full miss. The n=0 term uses the separate closed-form
// prefactors in LnAB0, wired directly into the ξ=0 matrix path in package
// scatmat rather than through this cache (caps' casimir_logdetD0 builds
// that path without going through the general per-ℓ Mie cache either).
func (c *Cache) Get(n, lmax int) ([]Coefficient, error) {
	if n < 1 {
		panic("mie: Cache.Get requires n >= 1; use LnAB0 for the n=0 term")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := c.perN[n]
	if len(existing) >= lmax {
		return existing[:lmax], nil
	}

	coeffs := make([]Coefficient, lmax)
	copy(coeffs, existing)

	xi := float64(n) * c.T
	for l := len(existing) + 1; l <= lmax; l++ {
		lnA, lnB, signA, signB, err := DrudeLnAB(l, xi, c.sphere.RbyL, c.sphere.Omegap, c.sphere.Gamma)
		if err != nil {
			return nil, err
		}
		coeffs[l-1] = Coefficient{LogA: lnA, LogB: lnB, SignA: signA, SignB: signB}
	}

	c.perN[n] = coeffs
	return coeffs, nil
}
