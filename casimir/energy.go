// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import (
	"math"

	"github.com/gertingold/caps/mie"
)

// sumHalvingFirst sums values[1:len] in descending index order and then
// adds values[0]/2, the fixed accumulation order spec.md §5 requires for
// bit-for-bit determinism ("largest-n first, n=0 halved"). Ported from
// caps' _sum (libcasimir.c), reused for both the per-n m-sum and the outer
// n-sum.
func sumHalvingFirst(values []float64) float64 {
	sum := 0.0
	for i := len(values) - 1; i > 0; i-- {
		sum += values[i]
	}
	sum += values[0] / 2
	return sum
}

// freeEnergyN computes Σₘ log det D(nT,m) with m=0 weighted ½, terminating
// the m-loop once |values[m]/sum| < precision (provided values[0] != 0).
// Returns the sum and the number of m terms evaluated. Ported from caps'
// casimir_F_n (libcasimir.c).
func (p *Parameters) freeEnergyN(n int, mieCache *mie.Cache) (sum float64, mused int, err error) {
	values := make([]float64, 0, p.Lmax+1)

	for m := 0; m <= p.Lmax; m++ {
		v, err := p.logDetD(n, m, mieCache)
		if err != nil {
			return 0, 0, err
		}
		values = append(values, v)

		sum = sumHalvingFirst(values)
		if values[0] != 0 && math.Abs(values[m]/sum) < p.Precision {
			return sum, m + 1, nil
		}
	}
	return sum, len(values), nil
}
