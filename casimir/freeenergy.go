// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import (
	"math"

	"github.com/gertingold/caps/mie"
)

const growChunk = 512

// FreeEnergy evaluates F = (T/π)·Σ′ₙ Σₘ log det D(nT,m), with n=0 and m=0
// each carrying a factor ½, terminating the n-loop once the contribution of
// the most recently completed term is smaller than Precision relative to
// twice the n=0 term. nmax reports the highest Matsubara index used.
// Ported from caps' casimir_F (libcasimir.c): the cores=1 path below
// mirrors its sequential branch, FreeEnergy's cores>1 path mirrors its
// worker-slot dispatch/harvest loop via nPool.
func FreeEnergy(p *Parameters) (F float64, nmax int, err error) {
	mieCache := p.NewMieCache()

	if p.Cores <= 1 {
		return freeEnergySequential(p, mieCache)
	}
	return freeEnergyParallel(p, mieCache)
}

func freeEnergySequential(p *Parameters, mieCache *mie.Cache) (float64, int, error) {
	values := make([]float64, 0, growChunk)

	for n := 0; ; n++ {
		v, _, err := p.freeEnergyN(n, mieCache)
		if err != nil {
			return 0, 0, err
		}
		values = append(values, v)

		if values[0] != 0 && math.Abs(values[n]/(2*values[0])) < p.Precision {
			return p.T / math.Pi * sumHalvingFirst(values), n, nil
		}
	}
}

// freeEnergyParallel dispatches p.Cores workers across Matsubara indices,
// growing the accumulator buffer in fixed-size chunks (spec.md §5,
// "Accumulator buffer: grows in fixed-size chunks"), harvesting results as
// they complete, and draining every in-flight job before taking the final
// sum so no not-yet-joined n is silently treated as zero. Ported from caps'
// casimir_F's cores>1 branch.
func freeEnergyParallel(p *Parameters, mieCache *mie.Cache) (float64, int, error) {
	pool := newNPool(p.Cores, p, mieCache)
	defer pool.close()

	values := make([]float64, growChunk)
	ensure := func(n int) {
		for n >= len(values) {
			values = append(values, make([]float64, growChunk)...)
		}
	}

	submitted, completed, ncalc := 0, 0, 0
	for i := 0; i < p.Cores; i++ {
		pool.submit(submitted)
		submitted++
	}

	for {
		r := <-pool.results
		if r.err != nil {
			return 0, 0, r.err
		}
		ensure(r.n)
		values[r.n] = r.value
		completed++
		if r.n > ncalc {
			ncalc = r.n
		}

		if values[0] != 0 && math.Abs(values[ncalc]/(2*values[0])) < p.Precision {
			for completed < submitted {
				r := <-pool.results
				if r.err != nil {
					return 0, 0, r.err
				}
				ensure(r.n)
				values[r.n] = r.value
				completed++
			}
			return p.T / math.Pi * sumHalvingFirst(values[:submitted]), submitted - 1, nil
		}

		pool.submit(submitted)
		submitted++
	}
}
