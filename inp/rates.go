// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"golang.org/x/exp/rand"
)

// InitRateDistributions must be called once before Build when
// cfg.RateDistributions is non-empty, mirroring the reference stack's own
// declare-then-Init convention for random simulation parameters.
func (c *Config) InitRateDistributions() error {
	if len(c.RateDistributions) == 0 {
		return nil
	}
	return c.RateDistributions.Init()
}

// rateJitter looks up key among cfg.RateDistributions and, if present, draws
// a Gaussian variate of mean v.M and standard deviation v.S, clamped to
// [v.Min, v.Max], using rng; otherwise it returns base unchanged. The
// VarData's own D (Distribution) field is populated by rnd.GetDistribution at
// declaration time for fidelity with the rnd.Variables convention, but no
// sampling method on it is used here: the reference pack never shows one
// resolved, so the draw itself uses the VarData's M/S/Min/Max fields with a
// Box-Muller normal variate.
func (c *Config) rateJitter(key string, base float64, rng *rand.Rand) float64 {
	for _, v := range c.RateDistributions {
		if v.Key != key {
			continue
		}
		x := v.M + v.S*gaussian(rng)
		if v.Min < v.Max {
			if x < v.Min {
				x = v.Min
			}
			if x > v.Max {
				x = v.Max
			}
		}
		return x
	}
	return base
}

// gaussian draws one standard-normal variate via the Box-Muller transform.
func gaussian(rng *rand.Rand) float64 {
	u1 := rng.Float64()
	if u1 <= 0 {
		u1 = 1e-300
	}
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// rateDistVarData constructs a *rnd.VarData declaring key as a random
// variable with mean m, stdev s, clamped to [min,max], resolving its
// Distribution via rnd.GetDistribution(dist) the same way
// append_adjustable_parameter does for the reference stack's own adjustable
// parameters. dist names a distribution kind (e.g. "normal", "uniform");
// callers append the result to cfg.RateDistributions.
func rateDistVarData(key, dist string, m, s, min, max float64) *rnd.VarData {
	return &rnd.VarData{
		D:   rnd.GetDistribution(dist),
		M:   m,
		S:   s,
		Min: min,
		Max: max,
		Key: key,
	}
}
