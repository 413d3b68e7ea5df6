// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"

	"github.com/gertingold/caps/sfunc"
)

// TestLnPlmDerivativesMatchNumeric cross-checks the analytic first
// derivative of log P_l^m feeding the peak-finding Newton step against a
// centered finite difference, the same style of check the teacher's solid
// driver runs for its own analytic tangent (mdl/solid/driver.go's
// derivfcn/num.DerivCen use).
func TestLnPlmDerivativesMatchNumeric(t *testing.T) {
	l, m, x := 6, 2, 1.7
	d1, _ := sfunc.LnPlmDerivatives(l, m, x)

	dnum := num.DerivCen(func(xx float64, args ...interface{}) float64 {
		lnP, _ := sfunc.LnPlm(l, m, xx)
		return lnP
	}, x)

	chk.Scalar(t, "d(log Plm)/dx", 1e-6, d1, dnum)
}

func TestEstimatePeakBorders(t *testing.T) {
	est := estimatePeak(20, 3, 4, 1e-6)
	if est.a < 1 || est.b <= est.a {
		t.Fatalf("invalid borders a=%g b=%g", est.a, est.b)
	}
	if est.xmax < est.a || est.xmax > est.b {
		t.Fatalf("xmax=%g not within [a,b]=[%g,%g]", est.xmax, est.a, est.b)
	}
}
