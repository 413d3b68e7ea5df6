// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"fmt"
	"math"

	"github.com/gertingold/caps/sfunc"
)

// kCache is the array-indexed cache for K_{nu,p}(alpha), grown by doubling
// when an index beyond its current extent is requested. Ported from caps'
// integration_t.cache_K (integration.c/.h).
type kCache struct {
	m    int
	data [2][]float64 // index by Polarization; NaN marks "not yet computed"
}

func newKCache(m int) *kCache {
	initial := 5 * (10 + 2*m + 100)
	c := &kCache{m: m}
	for p := 0; p < 2; p++ {
		c.data[p] = make([]float64, initial)
		for i := range c.data[p] {
			c.data[p][i] = math.NaN()
		}
	}
	return c
}

func (c *kCache) index(nu int) int { return nu - 2*c.m }

func (c *kCache) ensure(p Polarization, idx int) {
	if idx < len(c.data[p]) {
		return
	}
	newSize := 2 * (idx + 1)
	grown := make([]float64, newSize)
	copy(grown, c.data[p])
	for i := len(c.data[p]); i < newSize; i++ {
		grown[i] = math.NaN()
	}
	c.data[p] = grown
}

func (c *kCache) get(p Polarization, nu int) (float64, bool) {
	idx := c.index(nu)
	if idx < 0 || idx >= len(c.data[p]) {
		return 0, false
	}
	v := c.data[p][idx]
	return v, !math.IsNaN(v)
}

func (c *kCache) set(p Polarization, nu int, v float64) {
	idx := c.index(nu)
	c.ensure(p, idx)
	c.data[p][idx] = v
}

// K returns log|K_{nu,p}(alpha)| for the session's m and alpha, along with
// the sign of the integral (+1 for TM, -1 for TE, matching the fixed sign
// branch of the physical reflection coefficients at this order, per §4.3).
// Ported from caps' caps_integrate_K (integration.c).
func (s *Session) K(nu int, p Polarization) (logAbs float64, sign int, err error) {
	if v, ok := s.kCache.get(p, nu); ok {
		return v, s.Refl.Sign(p), nil
	}

	v, err := s.computeK(nu, p)
	if err != nil {
		return 0, 0, err
	}
	s.kCache.set(p, nu, v)
	return v, s.Refl.Sign(p), nil
}

func (s *Session) computeK(nu int, p Polarization) (float64, error) {
	est := estimatePeak(nu, s.M, s.Alpha, s.EpsPeak)
	a, b := est.a, est.b

	integrand := func(x float64) float64 {
		var lnP float64
		if s.M == 0 {
			lnP, _ = sfunc.LnPlm(nu, 2, x)
		} else {
			lnP, _ = sfunc.LnPlm(nu, 2*s.M, x)
			lnP -= math.Log(x*x - 1)
		}
		v := math.Exp(-est.logNormalization + lnP - s.Alpha*x)
		rAbs := math.Exp(s.Refl.LogAbs(p, x))
		return rAbs * v
	}

	i2, abserr2 := AdaptiveFinite(integrand, a, b, 0, s.EpsRel, 200)

	var i1 float64
	if a > 1 {
		fa := integrand(a)
		if (a-1)*fa > i2*s.EpsRel {
			i1, _ = AdaptiveFinite(integrand, 1, a, abserr2, 0, 200)
		}
	}

	tailIntegrand := func(t float64) float64 { return integrand(t / s.Alpha) }
	i3raw, _ := AdaptiveSemiInfinite(tailIntegrand, b*s.Alpha, abserr2*s.Alpha, s.EpsRel)
	i3 := i3raw / s.Alpha

	sum := i1 + i2 + i3
	if isBad(sum) || sum == 0 {
		return 0, &NotRepresentableError{What: "K-integral", Nu: nu, M: s.M, Alpha: s.Alpha}
	}

	return math.Log(math.Abs(sum)) + est.logNormalization, nil
}

// NotRepresentableError reports that a radial integral could not be
// evaluated to the requested precision for the given arguments (§4.3's
// "missing or NaN results must be flagged").
type NotRepresentableError struct {
	What      string
	Nu, M     int
	Alpha     float64
	L1, L2, P int
}

func (e *NotRepresentableError) Error() string {
	if e.What == "K-integral" {
		return fmt.Sprintf("radint: K-integral not representable for nu=%d, m=%d, alpha=%g", e.Nu, e.M, e.Alpha)
	}
	return fmt.Sprintf("radint: %s not representable for l1=%d, l2=%d, p=%d", e.What, e.L1, e.L2, e.P)
}
