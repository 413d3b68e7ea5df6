// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/gertingold/caps/radint"
)

func TestPerfectReflectorFresnel(t *testing.T) {
	f := NewFresnel(1.5, PerfectReflector{})
	chk.Scalar(t, "log|r_TE| = 0", 1e-14, f.LogAbs(radint.TE, 2), 0)
	chk.Scalar(t, "log|r_TM| = 0", 1e-14, f.LogAbs(radint.TM, 2), 0)
	if f.Sign(radint.TE) != -1 || f.Sign(radint.TM) != 1 {
		t.Fatalf("expected signs (-1,+1), got (%d,%d)", f.Sign(radint.TE), f.Sign(radint.TM))
	}
}

func TestDrudeFresnelMatchesFormula(t *testing.T) {
	d := Drude{Omegap: 3.0, Gamma: 0.1}
	xi := 1.2
	f := NewFresnel(xi, d)

	epsm1 := d.EpsilonM1(xi)
	eps := 1 + epsm1
	x := 2.5
	k := xi * math.Sqrt(x*x-1)
	beta := math.Sqrt(1 + epsm1/(1+(k/xi)*(k/xi)))
	wantTE := (1 - beta) / (1 + beta)
	wantTM := (eps - beta) / (eps + beta)

	gotTE := float64(f.Sign(radint.TE)) * math.Exp(f.LogAbs(radint.TE, x))
	gotTM := float64(f.Sign(radint.TM)) * math.Exp(f.LogAbs(radint.TM, x))
	chk.Scalar(t, "r_TE", 1e-12, gotTE, wantTE)
	chk.Scalar(t, "r_TM", 1e-12, gotTM, wantTM)
}

func TestTableInterpolatesAndExtrapolates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold.dat")
	content := "# omegap_low = 9.0\n# gamma_low = 0.035\n# omegap_high = 9.0\n# gamma_high = 0.035\n1.0 10.0\n2.0 5.0\n3.0 3.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatal(err)
	}

	chk.Scalar(t, "interpolated midpoint", 1e-14, table.EpsilonM1(1.5), 9.0-0.5*5)
	chk.Scalar(t, "exact point", 1e-14, table.EpsilonM1(2.0), 4.0)

	wantLow := table.OmegapLow * table.OmegapLow / (0.5 * (0.5 + table.GammaLow))
	chk.Scalar(t, "low extrapolation", 1e-12, table.EpsilonM1(0.5), wantLow)

	wantHigh := table.OmegapHigh * table.OmegapHigh / (5.0 * (5.0 + table.GammaHigh))
	chk.Scalar(t, "high extrapolation", 1e-12, table.EpsilonM1(5.0), wantHigh)
}

func TestTableRejectsUnsortedXi(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dat")
	content := "1.0 2.0\n0.5 3.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected error for unsorted xi values")
	}
}
