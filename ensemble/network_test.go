// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/motor"
)

func TestNetworkStepAdvancesTimeAndStaysFinite(t *testing.T) {
	bx := box.New(box.Periodic, 20, 20)
	f := filament.New(0, [][2]float64{{-0.5, 0}, {0.5, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.Dt = 1e-3
	f.Temperature = 0

	n := NewNetwork(bx, 1.0, false, false, 0.2, 1.0, nil, nil, External{}, f.Dt, 1)
	n.AddFilament(f)

	err := n.Step()
	require.NoError(t, err)
	assert.InDelta(t, f.Dt, n.T, 1e-12)
}

func TestNetworkStepAggregatesStretchingEnergy(t *testing.T) {
	bx := box.New(box.Open, 20, 20)
	f := filament.New(0, [][2]float64{{-1, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.Dt = 1e-3

	n := NewNetwork(bx, 1.0, false, false, 0, 0, nil, nil, External{}, f.Dt, 1)
	n.AddFilament(f)

	require.NoError(t, n.Step())
	assert.Greater(t, n.PEStretch, 0.0)
}

func TestNetworkFractureDetachesMotorsAndSplitsFilament(t *testing.T) {
	bx := box.New(box.Open, 20, 20)
	f := filament.New(0, [][2]float64{{0, 0}, {1, 0}, {2, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.FracForce = 0.5
	f.Springs[1].Force = [2]float64{1.0, 0}

	motors := motor.NewEnsemble(motor.Active, 1)
	m := motors.Spawn(1.0, 0, 0.1, 1.0, 0.5, 0, 0, 0, 0, 0, 0.2, 1.0)
	m.Heads[0].State = motor.Bound
	m.Heads[0].FilIdx, m.Heads[0].SpringIdx, m.Heads[0].PosOnSpring = 0, 1, 0.2
	f.Springs[1].AttachMotor(m.Handle(0))

	n := &Network{Box: bx, Motors: motors, GrowthRestLen: 0.3}
	n.AddFilament(f)

	n.tryFractureAll()

	require.Len(t, n.Filaments, 2)
	assert.Equal(t, motor.Free, m.Heads[0].State)
}

func TestNetworkGrowthInsertsBeadAndReassignsMotor(t *testing.T) {
	f := filament.New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.Kgrow = 1e9 // guarantee the Monte Carlo draw triggers
	f.Lgrow = 10.0
	f.L0Max = 0.5 // force TryGrow to insert rather than extend
	f.MaxSprings = 10
	f.Dt = 0.01
	bx := box.New(box.Open, 20, 20)
	f.RefreshGeometry(bx)

	motors := motor.NewEnsemble(motor.Active, 1)
	m := motors.Spawn(0.8, 0, 0.1, 1.0, 0.5, 0, 0, 0, 0, 0, 0.2, 1.0)
	m.Heads[0].State = motor.Bound
	m.Heads[0].FilIdx, m.Heads[0].SpringIdx, m.Heads[0].PosOnSpring = 0, 0, 0.8
	f.Springs[0].AttachMotor(m.Handle(0))

	n := &Network{Box: bx, Motors: motors, GrowthRestLen: 0.3, Dt: f.Dt, rng: rand.New(rand.NewSource(1))}
	n.AddFilament(f)

	n.tryGrowAll()

	require.Len(t, f.Springs, 2)
	assert.Equal(t, 1, m.Heads[0].SpringIdx)
	assert.InDelta(t, 0.5, m.Heads[0].PosOnSpring, 1e-9)
}
