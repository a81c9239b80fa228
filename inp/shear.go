// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/dinner-group/afines-go/ensemble"
)

// diffStrainPrms, oscStrainPrms and stressPrms hold one shear protocol's
// parameters after Init unpacks them from a fun.Prms parameter list, the same
// named-parameter convention mreten's retention models use (fun.Prm{N, V},
// switched on strings.ToLower(p.N)). buildShearProtocol itself still
// evaluates the resulting strain-rate function with plain Go: gosl/fun's
// dynamic Func registry (fun.New's type-string dispatch) is never resolved
// anywhere in the reference pack, so this module stops at the verified
// fun.Prms parameter shape rather than guessing a registry key.

type diffStrainPrms struct {
	t1, t2, dstrain, dt float64
}

func (o *diffStrainPrms) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "timeofdstrain":
			o.t1 = p.V
		case "timeofdstrain2":
			o.t2 = p.V
		case "dstrainpct":
			o.dstrain = p.V
		case "dt":
			o.dt = p.V
		default:
			return chk.Err("diffStrainPrms: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

type oscStrainPrms struct {
	dstrain, freq, dt float64
}

func (o *oscStrainPrms) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "dstrainpct":
			o.dstrain = p.V
		case "dstrainfreq":
			o.freq = p.V
		case "dt":
			o.dt = p.V
		default:
			return chk.Err("oscStrainPrms: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

type stressPrms struct {
	t1, rate1, rate2, dt float64
}

func (o *stressPrms) Init(prms fun.Prms) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "stress1":
			o.t1 = p.V
		case "stressrate1":
			o.rate1 = p.V
		case "stressrate2":
			o.rate2 = p.V
		case "dt":
			o.dt = p.V
		default:
			return chk.Err("stressPrms: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// buildShearProtocol returns the ensemble.ShearProtocol implied by cfg's
// *_strain_flag options, or nil if none is enabled. At most one protocol
// runs; diff_strain_flag takes precedence over osc_strain_flag, which takes
// precedence over stress_flag, matching the mutually-exclusive way AFINES
// configuration files set these (spec.md §6, §9 open question). Each
// protocol's parameters pass through a fun.Prms list and an Init method
// before use, even though cfg already holds them as plain fields, so the
// named-parameter convention is the same one the rest of the reference stack
// uses for model configuration.
//
// The oscillatory and stress_flag protocols return a strain rate times Dt;
// the diff_strain protocol returns the whole d_strain_pct increment during
// the single step that contains time_of_dstrain (and again for
// time_of_dstrain2) and 0 otherwise. The network applies the returned value
// every Dt; n_bw_shear is not read.
func buildShearProtocol(cfg *Config) ensemble.ShearProtocol {
	switch {
	case cfg.DiffStrainFlag:
		o := &diffStrainPrms{}
		if err := o.Init(fun.Prms{
			&fun.Prm{N: "TimeOfDstrain", V: cfg.TimeOfDstrain},
			&fun.Prm{N: "TimeOfDstrain2", V: cfg.TimeOfDstrain2},
			&fun.Prm{N: "DStrainPct", V: cfg.DStrainPct},
			&fun.Prm{N: "dt", V: cfg.Dt},
		}); err != nil {
			chk.Panic("%v", err)
		}
		return func(t float64) float64 {
			if withinStep(t, o.t1, o.dt) || withinStep(t, o.t2, o.dt) {
				return o.dstrain
			}
			return 0
		}
	case cfg.OscStrainFlag:
		if cfg.DStrainFreq <= 0 {
			return nil
		}
		o := &oscStrainPrms{}
		if err := o.Init(fun.Prms{
			&fun.Prm{N: "DStrainPct", V: cfg.DStrainPct},
			&fun.Prm{N: "DStrainFreq", V: cfg.DStrainFreq},
			&fun.Prm{N: "dt", V: cfg.Dt},
		}); err != nil {
			chk.Panic("%v", err)
		}
		omega := 2 * math.Pi / o.freq
		return func(t float64) float64 {
			return o.dstrain * omega * math.Cos(omega*t) * o.dt
		}
	case cfg.StressFlag:
		o := &stressPrms{}
		if err := o.Init(fun.Prms{
			&fun.Prm{N: "Stress1", V: cfg.Stress1},
			&fun.Prm{N: "StressRate1", V: cfg.StressRate1},
			&fun.Prm{N: "StressRate2", V: cfg.StressRate2},
			&fun.Prm{N: "dt", V: cfg.Dt},
		}); err != nil {
			chk.Panic("%v", err)
		}
		return func(t float64) float64 {
			if t < o.t1 {
				return o.rate1 * o.dt
			}
			return o.rate2 * o.dt
		}
	}
	return nil
}

// withinStep reports whether t falls in the half-open step [target, target+dt)
func withinStep(t, target, dt float64) bool {
	if target <= 0 || dt <= 0 {
		return false
	}
	return t >= target && t < target+dt
}
