// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"math"

	"github.com/gertingold/caps/xprec"
)

// A returns log|A_{l1,l2,p}^{(m)}(xi)| and its sign. Vanishes identically
// for m=0. Ported from caps' caps_integrate_A (integration.c).
func (s *Session) A(l1, l2 int, p Polarization) (logAbs float64, sign int, err error) {
	if s.M == 0 {
		return math.Inf(-1), 0, nil
	}
	logI, signI, err := s.I(l1, l2, p)
	if err != nil {
		return 0, 0, err
	}
	a0 := 2 * math.Log(float64(s.M))
	return a0 + logI, signI, nil
}

// B returns log|B_{l1,l2,p}^{(m)}(xi)| and its sign. For m=0 it reduces to
// the plain I-integral. Ported from caps' caps_integrate_B (integration.c).
func (s *Session) B(l1, l2 int, p Polarization) (logAbs float64, sign int, err error) {
	if s.M == 0 {
		return s.I(l1, l2, p)
	}
	m := s.M
	fl1, fl2, fm := float64(l1), float64(l2), float64(m)

	i1, s1, err := s.I(l1-1, l2-1, p)
	if err != nil {
		return 0, 0, err
	}
	i2, s2, err := s.I(l1+1, l2-1, p)
	if err != nil {
		return 0, 0, err
	}
	i3, s3, err := s.I(l1-1, l2+1, p)
	if err != nil {
		return 0, 0, err
	}
	i4, s4, err := s.I(l1+1, l2+1, p)
	if err != nil {
		return 0, 0, err
	}

	denom := (2*fl1 + 1) * (2*fl2 + 1)
	c1 := (fl1 + 1) * (fl1 + fm) * (fl2 + 1) * (fl2 + fm) / denom
	c2 := fl1 * (fl1 - fm + 1) * (fl2 + 1) * (fl2 + fm) / denom
	c3 := (fl1 + 1) * (fl1 + fm) * fl2 * (fl2 - fm + 1) / denom
	c4 := fl1 * (fl1 - fm + 1) * fl2 * (fl2 - fm + 1) / denom

	terms := []xprec.Value{
		xprec.FromLog(math.Log(c1)+i1, xprec.Sign(s1)),
		xprec.FromLog(math.Log(c2)+i2, xprec.Sign(s2)).Neg(),
		xprec.FromLog(math.Log(c3)+i3, xprec.Sign(s3)).Neg(),
		xprec.FromLog(math.Log(c4)+i4, xprec.Sign(s4)),
	}
	sum := xprec.LogSumExp(terms)
	if isBad(sum.LogAbs) {
		return 0, 0, &NotRepresentableError{What: "B-integral", L1: l1, L2: l2, P: int(p)}
	}
	return sum.LogAbs, int(sum.Sign), nil
}

// C returns log|C_{l1,l2,p}^{(m)}(xi)| and its sign. Vanishes identically
// for m=0. Ported from caps' caps_integrate_C (integration.c).
func (s *Session) C(l1, l2 int, p Polarization) (logAbs float64, sign int, err error) {
	if s.M == 0 {
		return math.Inf(-1), 0, nil
	}
	m := s.M
	fl2, fm := float64(l2), float64(m)

	i1, s1, err := s.I(l1, l2-1, p)
	if err != nil {
		return 0, 0, err
	}
	i2, s2, err := s.I(l1, l2+1, p)
	if err != nil {
		return 0, 0, err
	}

	denom := 2*fl2 + 1
	c1 := (fl2 + 1) * (fl2 + fm) / denom
	c2 := fl2 * (fl2 - fm + 1) / denom

	terms := []xprec.Value{
		xprec.FromLog(math.Log(c1)+i1, xprec.Sign(s1)).Neg(),
		xprec.FromLog(math.Log(c2)+i2, xprec.Sign(s2)),
	}
	sum := xprec.LogSumExp(terms)
	if isBad(sum.LogAbs) {
		return 0, 0, &NotRepresentableError{What: "C-integral", L1: l1, L2: l2, P: int(p)}
	}
	return math.Log(fm) + sum.LogAbs, int(sum.Sign), nil
}

// D returns log|D_{l1,l2,p}^{(m)}(xi)| and its sign, defined as
// C_{l2,l1,p}^{(m)}(xi). Ported from caps' caps_integrate_D (integration.c).
func (s *Session) D(l1, l2 int, p Polarization) (logAbs float64, sign int, err error) {
	return s.C(l2, l1, p)
}
