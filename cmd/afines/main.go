// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"math"
	"os"

	"github.com/cpmech/gosl/io"

	"github.com/dinner-group/afines-go/inp"
	"github.com/dinner-group/afines-go/out"
	"github.com/dinner-group/afines-go/simerr"
)

func main() {
	os.Exit(run())
}

// run parses the configuration, builds the network, drives it from tinit to
// tfinal, and writes nframes evenly spaced output frames. It returns the
// process exit code described in spec.md §6: 0 normal, 1 usage, nonzero on
// fatal I/O or configuration error.
func run() (code int) {
	var simErr error
	defer simerr.Recover(&simErr)
	defer func() {
		if simErr != nil {
			io.PfRed("ERROR: %v\n", simErr)
			code = 2
		}
	}()

	io.PfWhite("\nAfines-go -- 2-D actomyosin network simulator\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	cfg := inp.Default()
	fs := flag.NewFlagSet("afines", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	var configPath string
	fs.StringVar(&configPath, "config", "", "path to a flat key=value configuration file")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 1
	}

	if configPath != "" {
		fileCfg, err := inp.ParseFile(configPath)
		if err != nil {
			simErr = err
			return 2
		}
		// re-parse the command line over the file's values with a fresh
		// FlagSet, since a FlagSet cannot register the same flag name twice
		fs2 := flag.NewFlagSet("afines", flag.ContinueOnError)
		fileCfg.RegisterFlags(fs2)
		fs2.StringVar(&configPath, "config", configPath, "path to a flat key=value configuration file")
		if err := fs2.Parse(os.Args[1:]); err != nil {
			return 1
		}
		cfg = fileCfg
	}

	net, err := inp.Build(cfg)
	if err != nil {
		simErr = err
		return 2
	}
	net.T = cfg.Tinit

	writer, err := out.Open(cfg.Dir)
	if err != nil {
		simErr = err
		return 2
	}
	defer writer.Close()

	nsteps := int(math.Round((cfg.Tfinal - cfg.Tinit) / cfg.Dt))
	framePeriod := nsteps / cfg.Nframes
	if framePeriod < 1 {
		framePeriod = 1
	}
	msgPeriod := nsteps / cfg.Nmsgs
	if msgPeriod < 1 {
		msgPeriod = 1
	}

	for step := 0; step < nsteps; step++ {
		if err := net.Step(); err != nil {
			simErr = err
			return 2
		}
		if step%framePeriod == 0 {
			dStrain := 0.0
			if net.Shear != nil {
				dStrain = net.Shear(net.T)
			}
			if err := writer.WriteFrame(net.T, net, dStrain); err != nil {
				simErr = err
				return 2
			}
		}
		if step%msgPeriod == 0 {
			io.Pf("t = %g  (step %d/%d)\n", net.T, step, nsteps)
		}
	}

	io.PfGreen("\ndone: %d filaments, t = %g\n", len(net.Filaments), net.T)
	return 0
}
