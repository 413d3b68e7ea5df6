// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cpmech/gosl/io"
)

// Table is a tabulated ε(iξ) − 1 dielectric function, linearly interpolated
// between measured points and extrapolated below ξ_min/above ξ_max by
// Drude tails read from the file header. Ported from caps' material_t /
// material_init / material_epsilonm1 (material.c).
type Table struct {
	Filename string

	xi    []float64
	epsm1 []float64

	OmegapLow, GammaLow   float64
	OmegapHigh, GammaHigh float64
}

// EpsilonM1 returns ε(iξ) − 1 via binary search and linear interpolation
// inside [ξ_min, ξ_max], or the header's Drude tail outside it.
func (t *Table) EpsilonM1(xi float64) float64 {
	n := len(t.xi)
	xiMin, xiMax := t.xi[0], t.xi[n-1]

	if xi < xiMin {
		return t.OmegapLow * t.OmegapLow / (xi * (xi + t.GammaLow))
	}
	if xi > xiMax {
		return t.OmegapHigh * t.OmegapHigh / (xi * (xi + t.GammaHigh))
	}

	left, right := 0, n-1
	for right-left != 1 {
		middle := (left + right) / 2
		if t.xi[middle] > xi {
			right = middle
		} else {
			left = middle
		}
	}

	xiLower, xiUpper := t.xi[left], t.xi[right]
	epsLower, epsUpper := t.epsm1[left], t.epsm1[right]
	return epsLower + (xi-xiLower)*(epsUpper-epsLower)/(xiUpper-xiLower)
}

// ParseTableError reports a malformed material data file.
type ParseTableError struct {
	Filename string
	Line     int
	Reason   string
}

func (e *ParseTableError) Error() string {
	return fmt.Sprintf("material: %s:%d: %s", e.Filename, e.Line, e.Reason)
}

// LoadTable reads a material data file: header lines start with '#' and may
// carry "key = value" pairs (omegap_low, gamma_low, omegap_high,
// gamma_high); data lines hold whitespace-separated "ξ ε" pairs, ξ strictly
// ascending. Ported from caps' material_init (material.c), which parses
// this format under a temporary LC_NUMERIC=C override — io.Atof already
// parses the decimal point independent of locale, so no such override is
// needed here.
func LoadTable(path string) (*Table, error) {
	data, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t := &Table{Filename: filepath.Base(path)}
	lines := strings.Split(string(data), "\n")
	for lineNo, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			parseHeaderKey(line, "omegap_low", &t.OmegapLow)
			parseHeaderKey(line, "gamma_low", &t.GammaLow)
			parseHeaderKey(line, "omegap_high", &t.OmegapHigh)
			parseHeaderKey(line, "gamma_high", &t.GammaHigh)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		xi := io.Atof(fields[0])
		eps := io.Atof(fields[1])
		if isBad(xi) || isBad(eps) {
			return nil, &ParseTableError{Filename: path, Line: lineNo + 1, Reason: "could not parse ξ/ε pair"}
		}
		if len(t.xi) > 0 && xi <= t.xi[len(t.xi)-1] {
			return nil, &ParseTableError{Filename: path, Line: lineNo + 1, Reason: "ξ values must be strictly ascending"}
		}
		t.xi = append(t.xi, xi)
		t.epsm1 = append(t.epsm1, eps-1)
	}

	if len(t.xi) < 2 {
		return nil, &ParseTableError{Filename: path, Line: 0, Reason: "need at least two data points"}
	}
	if !sort.Float64sAreSorted(t.xi) {
		return nil, &ParseTableError{Filename: path, Line: 0, Reason: "ξ values not sorted"}
	}
	return t, nil
}

func parseHeaderKey(line, key string, out *float64) {
	idx := strings.Index(line, key)
	if idx < 0 {
		return
	}
	rest := line[idx+len(key):]
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return
	}
	v := io.Atof(strings.TrimSpace(rest[eq+1:]))
	if !isBad(v) {
		*out = v
	}
}
