// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scatmat

import (
	"math"

	"github.com/gertingold/caps/xprec"
)

// Balance rescales a LogMatrix by a diagonal similarity transform D so that
// D^-1·M·D has row and column log-norms within a factor of two of each
// other, reducing the dynamic range a downstream factorization has to
// handle without changing the determinant. Performed entirely in log space
// since entries can span hundreds of orders of magnitude before balancing.
// The diagonal scale factors are powers of two (an Osborne-style balance),
// so the transform is applied by simple log-space addition/subtraction.
// Grounded on the MATRIX_BALANCE/MATRIX_LOG_BALANCE calls in caps'
// matrix.c; the macro bodies were not present in the retrieved source, so
// the iteration below follows spec.md §4.5's description directly (see
// DESIGN.md).
func Balance(m *LogMatrix) {
	const maxSweeps = 50
	dim := m.Dim
	if dim == 0 {
		return
	}
	scale := make([]float64, dim)

	rowNorm := func(i int) float64 {
		max := math.Inf(-1)
		for j := 0; j < dim; j++ {
			if j == i {
				continue
			}
			if v := m.E[i][j].LogAbs; v > max {
				max = v
			}
		}
		return max
	}
	colNorm := func(j int) float64 {
		max := math.Inf(-1)
		for i := 0; i < dim; i++ {
			if i == j {
				continue
			}
			if v := m.E[i][j].LogAbs; v > max {
				max = v
			}
		}
		return max
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		converged := true
		for i := 0; i < dim; i++ {
			r, c := rowNorm(i), colNorm(i)
			if math.IsInf(r, -1) || math.IsInf(c, -1) {
				continue
			}
			diff := r - c
			if math.Abs(diff) < math.Ln2 {
				continue
			}
			converged = false
			// f = 2^round(diff/(2 ln2)): scale column i up, row i down by f.
			k := math.Round(diff / (2 * math.Ln2))
			logF := k * math.Ln2
			scale[i] += logF
			for j := 0; j < dim; j++ {
				if j != i {
					m.E[i][j] = xprec.FromLog(m.E[i][j].LogAbs-logF, m.E[i][j].Sign)
					m.E[j][i] = xprec.FromLog(m.E[j][i].LogAbs+logF, m.E[j][i].Sign)
				}
			}
		}
		if converged {
			break
		}
	}
}
