// Copyright 2016 The Caps Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package casimir

import "github.com/gertingold/caps/mie"

// nPool is a persistent worker pool dedicated to one FreeEnergy call: each
// worker pulls the next Matsubara index n from a job channel, evaluates
// freeEnergyN, and posts the result back. This is the one-job-per-n
// dynamic-dispatch analogue of the range-splitting
// janpfeifer-go-highway/hwy/contrib/workerpool.Pool: persistent goroutines
// fed by a buffered channel rather than a fixed [0,n) range, since the
// Matsubara sum's length is only known once the precision target is met.
// Ported from caps' casimir_thread_t/_start_thread/_join_threads
// (libcasimir.c), which spawn one OS thread per dispatched n and
// non-blockingly join completed ones; a fixed pool of goroutines reading
// from a channel is the idiomatic Go equivalent of that worker-slot table.
type nPool struct {
	params   *Parameters
	mieCache *mie.Cache

	jobs    chan int
	results chan nResult
}

type nResult struct {
	n     int
	mused int
	value float64
	err   error
}

func newNPool(workers int, params *Parameters, mieCache *mie.Cache) *nPool {
	p := &nPool{
		params:   params,
		mieCache: mieCache,
		jobs:     make(chan int, workers*2),
		results:  make(chan nResult, workers*2),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *nPool) worker() {
	for n := range p.jobs {
		sum, mused, err := p.params.freeEnergyN(n, p.mieCache)
		p.results <- nResult{n: n, mused: mused, value: sum, err: err}
	}
}

func (p *nPool) submit(n int) { p.jobs <- n }

func (p *nPool) close() { close(p.jobs) }
