// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xprec

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestLogAddSignedCommutative(t *testing.T) {
	a := FromFloat(3.4)
	b := FromFloat(-1.2)
	ab := LogAddSigned(a, b)
	ba := LogAddSigned(b, a)
	chk.Scalar(t, "log|a+b| == log|b+a|", 1e-14, ab.LogAbs, ba.LogAbs)
	if ab.Sign != ba.Sign {
		t.Fatalf("signs disagree: %v vs %v", ab.Sign, ba.Sign)
	}
}

func TestLogAddSignedCancellation(t *testing.T) {
	a := FromFloat(5.0)
	b := FromFloat(5.0).Neg()
	r := LogAddSigned(a, b)
	if r.Sign != Zero || !math.IsInf(r.LogAbs, -1) {
		t.Fatalf("expected exact cancellation to zero value, got %+v", r)
	}
}

func TestLogAddSignedMatchesLinear(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{1.0, 2.0}, {-3.5, 7.25}, {1e10, -1e10 + 1}, {0.001, -0.002},
	}
	for _, c := range cases {
		got := LogAddSigned(FromFloat(c.x), FromFloat(c.y)).Float()
		want := c.x + c.y
		chk.Scalar(t, "logadd_s matches linear sum", 1e-9, got, want)
	}
}

func TestLogSumExpMatchesLinear(t *testing.T) {
	vals := []Value{FromFloat(1.5), FromFloat(-2.25), FromFloat(0.75), FromFloat(-0.1)}
	full := LogSumExp(vals).Float()
	want := 1.5 - 2.25 + 0.75 - 0.1
	chk.Scalar(t, "logsumexp matches linear sum", 1e-12, full, want)
}

func TestLogFactorial(t *testing.T) {
	chk.Scalar(t, "0!", 1e-14, LogFactorial(0), 0)
	chk.Scalar(t, "5!", 1e-12, math.Exp(LogFactorial(5)), 120)
}

func TestLogDoubleFactorial(t *testing.T) {
	// 7!! = 7*5*3*1 = 105
	chk.Scalar(t, "7!!", 1e-10, math.Exp(LogDoubleFactorial(7)), 105)
	// 8!! = 8*6*4*2 = 384
	chk.Scalar(t, "8!!", 1e-9, math.Exp(LogDoubleFactorial(8)), 384)
}

func TestLogBinomial(t *testing.T) {
	chk.Scalar(t, "C(10,3)", 1e-9, math.Exp(LogBinomial(10, 3)), 120)
}
