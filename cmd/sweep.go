// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd holds the pieces specific to the command-line driver: the
// "start,stop,N[,log]" range-sweep syntax of spec.md §6 and the small
// helpers main.go wires together.
package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// ParseSweep parses a CLI value that is either a single number ("0.85") or
// a range "start,stop,N[,log]". Linear spacing is used unless the optional
// fourth field is the literal "log", in which case N points are spaced
// evenly in log-space between start and stop. Ported from casimir.c's
// parse_range/linspace/logspace (original_source/src/casimir.c).
func ParseSweep(name, s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	switch len(fields) {
	case 1:
		return []float64{io.Atof(fields[0])}, nil

	case 3, 4:
		start := io.Atof(fields[0])
		stop := io.Atof(fields[1])
		n := io.Atoi(fields[2])
		if n <= 0 {
			return nil, fmt.Errorf("caps: -%s: N must be positive, got %d", name, n)
		}
		if start > stop {
			start, stop = stop, start
		}
		isLog := len(fields) == 4 && strings.EqualFold(strings.TrimSpace(fields[3]), "log")
		if isLog {
			if start <= 0 || stop <= 0 {
				return nil, fmt.Errorf("caps: -%s: log-spaced range requires positive bounds", name)
			}
			vals := utl.LinSpace(math.Log(start), math.Log(stop), n)
			for i, v := range vals {
				vals[i] = math.Exp(v)
			}
			return vals, nil
		}
		return utl.LinSpace(start, stop, n), nil

	default:
		return nil, fmt.Errorf("caps: -%s: cannot parse range %q", name, s)
	}
}
