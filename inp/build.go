// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"golang.org/x/exp/rand"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/ensemble"
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/motor"
)

// Build assembles an ensemble.Network from cfg: the box, npolymer straight
// filaments of nmonomer beads (plus, with probability extra_bead_prob, one of
// nmonomer_extra additional beads each, spec.md §4 supplement), the active
// and passive motor populations sized by density * box area, and the
// external/shear protocols.
func Build(cfg *Config) (*ensemble.Network, error) {
	kind, err := cfg.BoundaryKind()
	if err != nil {
		return nil, err
	}
	if err := cfg.InitRateDistributions(); err != nil {
		return nil, err
	}
	bx := box.New(kind, cfg.Xrange, cfg.Yrange)
	if cfg.Restart {
		bx.DrX = cfg.RestartStrain * cfg.Yrange
	}

	placer := rand.New(rand.NewSource(cfg.Myseed))

	amotors := motor.NewEnsemble(motor.Active, cfg.Myseed+1)
	pmotors := motor.NewEnsemble(motor.Passive, cfg.Myseed+2)

	ext := ensemble.External{}
	if cfg.CircleFlag {
		ext = ensemble.External{Kind: ensemble.Circle, R: cfg.CircleRadius, K: cfg.CircleSpringConstant}
	}

	net := ensemble.NewNetwork(bx, cfg.GridFactor, cfg.QuadOffFlag, cfg.CheckDupInQuad, cfg.Rmax, cfg.Kexv, amotors, pmotors, ext, cfg.Dt, cfg.Myseed+3)
	net.GrowthRestLen = cfg.L0min
	net.QuadUpdatePeriod = cfg.QuadUpdatePeriod
	net.Shear = buildShearProtocol(cfg)

	for i := 0; i < cfg.Npolymer; i++ {
		n := cfg.Nmonomer
		if cfg.NmonomerExtra > 0 && placer.Float64() < cfg.ExtraBeadProb {
			n += 1 + placer.Intn(cfg.NmonomerExtra)
		}
		if n < 2 {
			chk.Panic("inp: npolymer filament must have at least 2 monomers, got %d", n)
		}
		f := newStraightFilament(i, n, cfg, placer)
		net.AddFilament(f)
	}

	seedMotors(amotors, net, cfg, cfg.AMotorDensity, cfg.AMotorLen, cfg.AMotorStiffness, cfg.AMotorMaxExt,
		"AMotorKon", cfg.AMotorKon, cfg.AMotorKoff, cfg.AMotorKend, cfg.AMotorV0, cfg.AMotorFStall, cfg.AMotorCutoff, cfg.AMotorDamp)
	seedMotors(pmotors, net, cfg, cfg.PMotorDensity, cfg.PMotorLen, cfg.PMotorStiffness, cfg.PMotorMaxExt,
		"PMotorKon", cfg.PMotorKon, cfg.PMotorKoff, cfg.PMotorKend, 0, 0, cfg.PMotorCutoff, cfg.PMotorDamp)

	return net, nil
}

// newStraightFilament lays n beads of diameter actin_length spaced
// link_length apart starting from a random position and orientation, and
// wires in the per-filament parameters the inp.Config carries.
func newStraightFilament(id, n int, cfg *Config, placer *rand.Rand) *filament.Filament {
	x0 := (placer.Float64() - 0.5) * cfg.Xrange
	y0 := (placer.Float64() - 0.5) * cfg.Yrange
	theta := placer.Float64() * 2 * math.Pi
	dx, dy := math.Cos(theta)*cfg.LinkLength, math.Sin(theta)*cfg.LinkLength

	positions := make([][2]float64, n)
	for i := 0; i < n; i++ {
		positions[i] = [2]float64{x0 + float64(i)*dx, y0 + float64(i)*dy}
	}

	seed := cfg.Myseed + 1000 + uint64(id)
	f := filament.New(id, positions, cfg.ActinLength, cfg.Viscosity, cfg.LinkLength, cfg.LinkStretchingStiffness, seed)
	f.Kb = cfg.PolymerBendingModulus
	f.Dt = cfg.Dt
	f.Temperature = cfg.Temperature
	f.FracForce = cfg.FractureForce
	f.Kgrow = cfg.Kgrow
	f.Lgrow = cfg.Lgrow
	f.L0Min = cfg.L0min
	f.L0Max = cfg.L0max
	f.MaxSprings = cfg.NlinkMax

	if cfg.FenePct > 0 {
		maxExt := cfg.FenePct * cfg.LinkLength
		for _, s := range f.Springs {
			s.Fene = true
			s.MaxExt = maxExt
			s.EpsExt = maxExt * 0.01
		}
	}
	return f
}

// seedMotors spawns round(density * Lx * Ly) motors of one kind at uniformly
// random positions, per spec.md §6 "a_motor_density"/"p_motor_density". When
// cfg.RateDistributions declares konKey as a random variable, each motor
// draws its own Kon independently around that distribution's mean instead of
// sharing the single configured rate.
func seedMotors(e *motor.Ensemble, net *ensemble.Network, cfg *Config, density, length, stiffness, maxExt float64, konKey string, kon, koff, kend, v0, fstall, cutoff, damp float64) {
	if density <= 0 {
		return
	}
	area := net.Box.Lx * net.Box.Ly
	count := int(math.Round(density * area))
	for i := 0; i < count; i++ {
		x := (e.Rand() - 0.5) * net.Box.Lx
		y := (e.Rand() - 0.5) * net.Box.Ly
		thisKon := cfg.rateJitter(konKey, kon, e.RNG())
		e.Spawn(x, y, length, stiffness, maxExt, thisKon, koff, kend, v0, fstall, cutoff, damp)
	}
}
