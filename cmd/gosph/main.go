// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gosph is a thin driver: it reads a run configuration, builds the
// Domain it describes and calls Solve. It carries no scenario physics —
// particle population and boundary callbacks are a scenario program's
// responsibility (spec.md §1's explicit exclusion), mirroring how
// gofem's own main.go only wires inp.ReadSim into fem.Start/fem.Run.
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/inp"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	var fnamepath string
	var nprocOverride int
	var verbose bool
	flag.IntVar(&nprocOverride, "nproc", 0, "override the configuration's worker-pool size (0 => use config value)")
	flag.BoolVar(&verbose, "v", false, "verbose diagnostics")
	flag.Parse()

	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("gosph: please provide a run configuration file. Ex.: gosph run.json")
	}

	io.Pf("gosph -- shared-memory SPH continuum-mechanics core\n")

	cfg := inp.ReadConfig(fnamepath)
	if nprocOverride > 0 {
		cfg.NProc = nprocOverride
	}
	if verbose {
		io.Pfcyan("gosph: loaded %q: dim=%d kernel=%d eos=%d visc=%d nproc=%d\n",
			cfg.Desc, cfg.Dim, cfg.Kernel, cfg.EOS, cfg.Visc, cfg.NProc)
	}

	dom := cfg.NewDomain()
	if len(dom.Particles) == 0 {
		chk.Panic("gosph: configuration %q defines a Domain with no particles; a scenario driver must populate it before calling Solve", fnamepath)
	}

	if err := dom.Solve(cfg.Control.Tf, cfg.Control.Dt, cfg.Control.DtOut, cfg.FileKey); err != nil {
		chk.Panic("gosph: Solve failed: %v", err)
	}

	io.Pfgreen("gosph: done. %d steps, t=%g\n", dom.Step, dom.Time)
}
