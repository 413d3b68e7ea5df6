// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/gertingold/caps/casimir"
	"github.com/gertingold/caps/cmd"
	"github.com/gertingold/caps/material"
)

func main() {
	app := cli.NewApp()
	app.Name = "caps"
	app.Usage = "Casimir free energy in the plane-sphere geometry"
	app.Version = casimir.CompileInfo()
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "LbyR, x", Usage: "L/R, value or range \"start,stop,N[,log]\" (required)"},
		cli.StringFlag{Name: "T", Usage: "temperature, value or range \"start,stop,N[,log]\" (required)"},
		cli.Float64Flag{Name: "gamma, g", Usage: "Drude relaxation frequency for sphere and plate (used only with omegap > 0; 0: lossless plasma)"},
		cli.Float64Flag{Name: "omegap, w", Usage: "Drude plasma frequency for sphere and plate (0: perfect reflectors)"},
		cli.Float64Flag{Name: "lscale, l", Value: 10.0, Usage: "sets lmax = ceil(lscale/(L/R)), floored at 20"},
		cli.IntFlag{Name: "lmax, L", Usage: "overrides lscale with an explicit lmax"},
		cli.IntFlag{Name: "cores, c", Value: 1, Usage: "number of worker slots"},
		cli.Float64Flag{Name: "precision, p", Value: 1e-12, Usage: "relative precision target for the Matsubara sum"},
		// buffering exists for CLI surface parity with casimir.c's -X; Go's
		// os.Stdout has no stdio buffer to disable, so the flag is accepted
		// and otherwise ignored.
		cli.BoolFlag{Name: "buffering", Usage: "do not force unbuffered stdout/stderr"},
		cli.BoolFlag{Name: "quiet, q", Usage: "suppress the banner and progress output"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	lbyRs, Ts, plate, sphereOmegap, sphereGamma, err := parseArgs(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	quiet := c.Bool("quiet")
	if !quiet {
		fmt.Fprintf(os.Stderr, "# %s\n#\n", casimir.CompileInfo())
		fmt.Fprintf(os.Stderr, "# LbyR, T, F, lmax, nmax, time\n")
	}

	for _, lbyR := range lbyRs {
		for _, T := range Ts {
			start := time.Now()

			params, err := casimir.NewParameters(lbyR, T, c.Int("lmax"), c.Float64("lscale"), c.Float64("precision"), c.Int("cores"), sphereOmegap, sphereGamma, plate)
			if err != nil {
				return cli.NewExitError(err.Error(), 1)
			}

			if !quiet {
				fmt.Fprintf(os.Stderr, "# %v\n", params)
			}

			F, nmax, err := casimir.FreeEnergy(params)
			if err != nil {
				return cli.NewExitError(errors.Wrap(err, "free energy").Error(), 1)
			}

			elapsed := time.Since(start).Seconds()
			fmt.Printf("%.15g,%.15g,%.15g,%d,%d,%.15g\n", lbyR, T, F, params.Lmax, nmax, elapsed)
		}
	}
	return nil
}

// parseArgs validates and expands the CLI flags into the sweep grids and
// the sphere/plate material parameters. A positive omegap selects the Drude
// model for both sphere and plane, with gamma as their relaxation frequency
// (gamma=0 gives the lossless plasma model); otherwise both are perfect
// reflectors and gamma is ignored, mirroring casimir.c's main().
func parseArgs(c *cli.Context) (lbyRs, Ts []float64, plate material.DielectricFunction, sphereOmegap, sphereGamma float64, err error) {
	if c.String("LbyR") == "" {
		return nil, nil, nil, 0, 0, chk.Err("missing required flag --LbyR")
	}
	if c.String("T") == "" {
		return nil, nil, nil, 0, 0, chk.Err("missing required flag --T")
	}

	lbyRs, err = cmd.ParseSweep("LbyR", c.String("LbyR"))
	if err != nil {
		return nil, nil, nil, 0, 0, err
	}
	Ts, err = cmd.ParseSweep("T", c.String("T"))
	if err != nil {
		return nil, nil, nil, 0, 0, err
	}

	gamma := c.Float64("gamma")
	omegap := c.Float64("omegap")
	if gamma < 0 {
		return nil, nil, nil, 0, 0, chk.Err("--gamma must be nonnegative, got %g", gamma)
	}
	if omegap < 0 {
		return nil, nil, nil, 0, 0, chk.Err("--omegap must be nonnegative, got %g", omegap)
	}

	if omegap > 0 {
		plate = material.Drude{Omegap: omegap, Gamma: gamma}
		sphereOmegap = omegap
		sphereGamma = gamma
	} else {
		plate = material.PerfectReflector{}
		sphereOmegap = math.Inf(1)
	}
	return lbyRs, Ts, plate, sphereOmegap, sphereGamma, nil
}
