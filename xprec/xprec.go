// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xprec implements the extended-precision scalar kit: arithmetic on
// values carried as a natural-log magnitude plus an explicit sign, so that
// products and sums spanning many orders of magnitude never touch a linear
// float64 until the caller chooses to realize one.
package xprec

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Sign is the polarity of a log-magnitude value, one of {-1, 0, +1}.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

// Value is log|x| paired with sign(x). A zero value is represented by
// LogAbs = -Inf and Sign = Zero, never by a finite LogAbs with Sign = Zero.
type Value struct {
	LogAbs float64
	Sign   Sign
}

// Zero value constant, value 0.
var ZeroValue = Value{LogAbs: math.Inf(-1), Sign: Zero}

// FromLog builds a Value from an already-computed log-magnitude and sign.
// If sign is Zero, LogAbs is normalized to -Inf.
func FromLog(logAbs float64, sign Sign) Value {
	if sign == Zero {
		return ZeroValue
	}
	return Value{LogAbs: logAbs, Sign: sign}
}

// FromFloat converts an ordinary float64 into log-magnitude+sign form.
func FromFloat(x float64) Value {
	if x == 0 {
		return ZeroValue
	}
	s := Positive
	if x < 0 {
		s = Negative
		x = -x
	}
	return Value{LogAbs: math.Log(x), Sign: s}
}

// Float realizes a Value as an ordinary float64. May overflow/underflow;
// callers on the hot path should stay in log space as long as possible.
func (v Value) Float() float64 {
	if v.Sign == Zero {
		return 0
	}
	return float64(v.Sign) * math.Exp(v.LogAbs)
}

// Neg flips the sign, leaving the magnitude untouched.
func (v Value) Neg() Value {
	if v.Sign == Zero {
		return v
	}
	return Value{LogAbs: v.LogAbs, Sign: -v.Sign}
}

// Mul multiplies two log-magnitude values: add logs, multiply signs.
func (v Value) Mul(w Value) Value {
	if v.Sign == Zero || w.Sign == Zero {
		return ZeroValue
	}
	return Value{LogAbs: v.LogAbs + w.LogAbs, Sign: v.Sign * w.Sign}
}

// Div divides two log-magnitude values: subtract logs, divide (multiply) signs.
func (v Value) Div(w Value) Value {
	if w.Sign == Zero {
		chk.Panic("xprec: division by zero value")
	}
	if v.Sign == Zero {
		return ZeroValue
	}
	return Value{LogAbs: v.LogAbs - w.LogAbs, Sign: v.Sign * w.Sign}
}

// LogAdd computes log(e^a + e^b) for two plain (unsigned, necessarily
// non-negative) log-magnitudes. Ported from caps' logadd (sfunc.c).
func LogAdd(logA, logB float64) float64 {
	if math.IsInf(logA, -1) {
		return logB
	}
	if math.IsInf(logB, -1) {
		return logA
	}
	if logA > logB {
		return logA + math.Log1p(math.Exp(logB-logA))
	}
	return logB + math.Log1p(math.Exp(logA-logB))
}

// LogAddSigned computes log|sa*e^a + sb*e^b| and its sign. Ported from caps'
// logadd_s (sfunc.c). When the two operands are equal in magnitude and
// opposite in sign, returns the zero value.
func LogAddSigned(a Value, b Value) Value {
	if a.Sign == Zero {
		return b
	}
	if b.Sign == Zero {
		return a
	}
	var big, small Value
	if a.LogAbs >= b.LogAbs {
		big, small = a, b
	} else {
		big, small = b, a
	}
	ratio := float64(big.Sign) * float64(small.Sign) * math.Exp(small.LogAbs-big.LogAbs)
	sum := math.Log1p(ratio)
	if math.IsInf(sum, -1) {
		// exact cancellation: |big|==|small| and signs opposite.
		return ZeroValue
	}
	// sum might go negative-infinite-ish due to near cancellation producing
	// log1p(x) with x close to -1 but not exactly; guard a NaN from log of
	// a tiny negative residual caused purely by floating error.
	logAbs := big.LogAbs + sum
	sign := big.Sign
	if math.IsNaN(logAbs) {
		return ZeroValue
	}
	return Value{LogAbs: logAbs, Sign: sign}
}

// LogSumExp combines a list of signed log-magnitude values using a max-shift
// so that neither overflow nor underflow occurs during the accumulation.
// Ported from caps' logadd_ms (sfunc.c).
func LogSumExp(values []Value) Value {
	if len(values) == 0 {
		return ZeroValue
	}
	max := math.Inf(-1)
	for _, v := range values {
		if v.Sign != Zero && v.LogAbs > max {
			max = v.LogAbs
		}
	}
	if math.IsInf(max, -1) {
		return ZeroValue
	}
	sum := 0.0
	for _, v := range values {
		if v.Sign == Zero {
			continue
		}
		sum += float64(v.Sign) * math.Exp(v.LogAbs-max)
	}
	if sum == 0 {
		return ZeroValue
	}
	sign := Positive
	if sum < 0 {
		sign = Negative
		sum = -sum
	}
	return Value{LogAbs: max + math.Log(sum), Sign: sign}
}

// LogFactorial returns log(n!) via the log-gamma function.
func LogFactorial(n int) float64 {
	if n < 0 {
		chk.Panic("xprec: LogFactorial: negative argument n=%d", n)
	}
	v, _ := math.Lgamma(float64(n + 1))
	return v
}

// LogDoubleFactorial returns log(n!!), the double factorial, for n >= 0.
// Ported from caps' ln_doublefact (sfunc.c).
func LogDoubleFactorial(n int) float64 {
	if n < 0 {
		chk.Panic("xprec: LogDoubleFactorial: negative argument n=%d", n)
	}
	if n == 0 || n == 1 {
		return 0
	}
	if n%2 == 0 {
		k := n / 2
		lg, _ := math.Lgamma(float64(k + 1))
		return float64(k)*math.Ln2 + lg
	}
	k := (n + 1) / 2
	lg2k, _ := math.Lgamma(float64(2*k + 1))
	lgk, _ := math.Lgamma(float64(k + 1))
	return lg2k - float64(k)*math.Ln2 - lgk
}

// LogBinomial returns log(C(n,k)) via log-gamma. Ported from caps' lbinom.
func LogBinomial(n, k int) float64 {
	a, _ := math.Lgamma(float64(n + 1))
	b, _ := math.Lgamma(float64(k + 1))
	c, _ := math.Lgamma(float64(n - k + 1))
	return a - b - c
}

// LogI returns log(n) for small positive integers, a thin named helper so
// call sites read like the rest of the log-space arithmetic.
func LogI(n int) float64 {
	if n <= 0 {
		chk.Panic("xprec: LogI: argument must be positive, got n=%d", n)
	}
	return math.Log(float64(n))
}

// MPow returns (-1)^n as a Sign, a common factor throughout the special
// function recurrences.
func MPow(n int) Sign {
	if n%2 == 0 {
		return Positive
	}
	return Negative
}
