// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package radint

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gertingold/caps/sfunc"
	"github.com/gertingold/caps/xprec"
)

// iCacheKey identifies a memoized I-integral by (l1, l2, p) with l1 >= l2
// already enforced by the caller.
type iCacheKey struct {
	l1, l2 int
	p      Polarization
}

// iCache is a bounded, LRU-evicted cache for I-integrals, keyed by
// (l1,l2,p), backed by hashicorp/golang-lru. Ported in spirit from caps'
// cache_t (misc.c), a fixed-capacity hash map the original manages by hand;
// §4.3's "capacity configurable via a named environment variable" maps to
// the capacity argument threaded in from casimir.Parameters.
type iCache struct {
	inner *lru.Cache[iCacheKey, float64]
}

func newICache(capacity int) *iCache {
	c, err := lru.New[iCacheKey, float64](capacity)
	if err != nil {
		// only returns an error for capacity <= 0, which callers never pass.
		panic(err)
	}
	return &iCache{inner: c}
}

func (c *iCache) get(key iCacheKey) (float64, bool) {
	return c.inner.Get(key)
}

func (c *iCache) set(key iCacheKey, value float64) {
	c.inner.Add(key, value)
}

// I returns log|I_{l1,l2,p}^{(m)}(alpha)| and the sign of the integral.
// Ported from caps' caps_integrate_I (integration.c).
func (s *Session) I(l1, l2 int, p Polarization) (logAbs float64, sign int, err error) {
	m := s.M
	if l1 < m || l2 < m {
		return math.Inf(-1), 0, nil
	}
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	sign = -1
	if p == TM {
		sign = 1
	}

	key := iCacheKey{l1: l1, l2: l2, p: p}
	if v, ok := s.iCache.get(key); ok {
		return v, sign, nil
	}

	v, err := s.computeI(l1, l2, p)
	if err != nil {
		return 0, 0, err
	}
	s.iCache.set(key, v)
	return v, sign, nil
}

func (s *Session) computeI(l1, l2 int, p Polarization) (float64, error) {
	mEff := s.M
	if mEff < 1 {
		mEff = 1
	}

	logA0 := sfunc.GauntLogA0(l1, l2, mEff)
	aTilde, logScaling := sfunc.Gaunt(l1, l2, mEff)
	qmax := len(aTilde) - 1
	if qmax < 0 {
		return 0, &NotRepresentableError{What: "I-integral", L1: l1, L2: l2, P: int(p)}
	}

	terms := make([]xprec.Value, 0, qmax+1)
	leading := math.Inf(-1)
	count := 0

	for q := 0; q <= qmax; q++ {
		nu := l1 + l2 - 2*q
		lnK, kSign, err := s.K(nu, p)
		if err != nil {
			return 0, err
		}

		aq := aTilde[q]
		if aq == 0 {
			continue
		}
		aSign := xprec.Positive
		if aq < 0 {
			aSign = xprec.Negative
		}
		term := xprec.FromLog(logScaling[q]+lnK+math.Log(math.Abs(aq)), xprec.Sign(kSign)*aSign)
		terms = append(terms, term)

		if q == 0 {
			leading = term.LogAbs
		}
		if term.LogAbs-leading < -60 {
			count++
			if count >= 3 {
				break
			}
		} else {
			count = 0
		}
	}

	sum := xprec.LogSumExp(terms)
	logI := logA0 + sum.LogAbs
	if isBad(logI) {
		return 0, &NotRepresentableError{What: "I-integral", L1: l1, L2: l2, P: int(p)}
	}
	return logI, nil
}
