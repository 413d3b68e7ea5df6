// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scatmat

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DetAlg selects the factorization used to extract log|det|. Mirrors caps'
// detalg_t (matrix.h), minus DETALG_HODLR: a hierarchical off-diagonal
// low-rank solver is a general-purpose linear-algebra delegation that
// spec.md's Non-goals rule out for this module (see DESIGN.md).
type DetAlg int

const (
	// DetLU is partial-pivoted Gaussian elimination, the default: cheapest
	// and robust for the round-trip matrices D=I-M, which are diagonally
	// dominant once balanced.
	DetLU DetAlg = iota
	// DetQR is column-pivoted Householder QR, slower but numerically safer
	// when balancing alone does not tame the conditioning.
	DetQR
	// DetCholesky exploits symmetric positive-definiteness; callers must
	// know the matrix qualifies (D is not symmetric in general, so this is
	// only correct for the m=0 EE/MM blocks of a reciprocal medium).
	DetCholesky
)

// Realize converts a balanced LogMatrix into a plain float64 matrix,
// allocated the way the teacher allocates dense working matrices
// (ele/auxiliary.go's la.MatAlloc).
func (m *LogMatrix) Realize() [][]float64 {
	out := la.MatAlloc(m.Dim, m.Dim)
	for i := 0; i < m.Dim; i++ {
		for j := 0; j < m.Dim; j++ {
			out[i][j] = m.E[i][j].Float()
		}
	}
	return out
}

// LogDet balances m, realizes it to float64, and returns log|det m| and its
// sign via the requested factorization. Ported from caps' matrix_logdet
// dispatch over detalg_t (matrix.c), factorizations hand-written per
// spec.md's Non-goals against a general linear-algebra dependency.
func LogDet(m *LogMatrix, alg DetAlg) (logAbsDet float64, sign int, err error) {
	Balance(m)
	a := m.Realize()
	switch alg {
	case DetQR:
		return logDetQR(a)
	case DetCholesky:
		return logDetCholesky(a)
	default:
		return logDetLU(a)
	}
}

// logDetLU performs partial-pivoted Gaussian elimination in place and sums
// the log-magnitudes of the resulting diagonal, tracking the pivot-swap
// parity as the overall sign.
func logDetLU(a [][]float64) (float64, int, error) {
	n := len(a)
	sign := 1
	logAbs := 0.0
	for k := 0; k < n; k++ {
		p := k
		best := math.Abs(a[k][k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(a[i][k]); v > best {
				best, p = v, i
			}
		}
		if best == 0 {
			return math.Inf(-1), 0, nil
		}
		if p != k {
			a[k], a[p] = a[p], a[k]
			sign = -sign
		}
		pivot := a[k][k]
		if pivot < 0 {
			sign = -sign
		}
		logAbs += math.Log(math.Abs(pivot))
		for i := k + 1; i < n; i++ {
			factor := a[i][k] / pivot
			if factor == 0 {
				continue
			}
			for j := k; j < n; j++ {
				a[i][j] -= factor * a[k][j]
			}
		}
	}
	return logAbs, sign, nil
}

// logDetQR performs column-pivoted Householder QR and sums the
// log-magnitudes of R's diagonal; the sign combines the column-permutation
// parity with the sign of each reflected diagonal entry.
func logDetQR(a [][]float64) (float64, int, error) {
	n := len(a)
	sign := 1
	logAbs := 0.0

	colNormSq := make([]float64, n)
	for j := 0; j < n; j++ {
		s := 0.0
		for i := 0; i < n; i++ {
			s += a[i][j] * a[i][j]
		}
		colNormSq[j] = s
	}

	for k := 0; k < n; k++ {
		p := k
		best := colNormSq[k]
		for j := k + 1; j < n; j++ {
			if colNormSq[j] > best {
				best, p = colNormSq[j], j
			}
		}
		if p != k {
			for i := 0; i < n; i++ {
				a[i][k], a[i][p] = a[i][p], a[i][k]
			}
			colNormSq[k], colNormSq[p] = colNormSq[p], colNormSq[k]
			sign = -sign
		}

		normX := 0.0
		for i := k; i < n; i++ {
			normX += a[i][k] * a[i][k]
		}
		normX = math.Sqrt(normX)
		if normX == 0 {
			return math.Inf(-1), 0, nil
		}
		alpha := -normX
		if a[k][k] < 0 {
			alpha = normX
		}

		v := make([]float64, n-k)
		v[0] = a[k][k] - alpha
		for i := k + 1; i < n; i++ {
			v[i-k] = a[i][k]
		}
		vNormSq := 0.0
		for _, vi := range v {
			vNormSq += vi * vi
		}
		if vNormSq > 0 {
			for j := k; j < n; j++ {
				dot := 0.0
				for i := k; i < n; i++ {
					dot += v[i-k] * a[i][j]
				}
				factor := 2 * dot / vNormSq
				for i := k; i < n; i++ {
					a[i][j] -= factor * v[i-k]
				}
			}
		}

		diag := a[k][k]
		if diag < 0 {
			sign = -sign
		}
		logAbs += math.Log(math.Abs(diag))

		for j := k + 1; j < n; j++ {
			colNormSq[j] -= a[k][j] * a[k][j]
			if colNormSq[j] < 0 {
				colNormSq[j] = 0
			}
		}
	}
	return logAbs, sign, nil
}

// logDetCholesky factors a symmetric positive-definite matrix as L·Lᵀ and
// returns log|det| = 2·Σlog(Lᵢᵢ). Panics via chk.Panic if a's diagonal
// pivot goes non-positive, signalling the caller picked the wrong
// algorithm for a non-SPD block.
func logDetCholesky(a [][]float64) (float64, int, error) {
	n := len(a)
	logAbs := 0.0
	l := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					chk.Panic("scatmat: logDetCholesky: matrix is not positive-definite at pivot %d", i)
				}
				l[i][j] = math.Sqrt(sum)
				logAbs += math.Log(l[i][j])
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return 2 * logAbs, 1, nil
}
