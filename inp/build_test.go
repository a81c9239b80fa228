// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProducesRequestedFilamentCount(t *testing.T) {
	cfg := Default()
	cfg.Npolymer = 3
	cfg.Nmonomer = 4
	cfg.Xrange, cfg.Yrange = 10, 10

	net, err := Build(cfg)
	require.NoError(t, err)
	assert.Len(t, net.Filaments, 3)
	for _, f := range net.Filaments {
		assert.Len(t, f.Beads, 4)
	}
}

func TestBuildSeedsMotorPopulationFromDensity(t *testing.T) {
	cfg := Default()
	cfg.Npolymer = 1
	cfg.Nmonomer = 2
	cfg.Xrange, cfg.Yrange = 10, 10
	cfg.AMotorDensity = 1.0
	cfg.AMotorLen = 0.1
	cfg.AMotorCutoff = 0.2

	net, err := Build(cfg)
	require.NoError(t, err)
	assert.Equal(t, 100, len(net.Motors.Motors))
}

func TestBuildJittersMotorRateFromDeclaredDistribution(t *testing.T) {
	cfg := Default()
	cfg.Npolymer = 1
	cfg.Nmonomer = 2
	cfg.Xrange, cfg.Yrange = 10, 10
	cfg.AMotorDensity = 4.0
	cfg.AMotorLen = 0.1
	cfg.AMotorCutoff = 0.2
	cfg.AMotorKon = 1.0
	cfg.RateDistributions = append(cfg.RateDistributions,
		rateDistVarData("AMotorKon", "normal", cfg.AMotorKon, 0.1, 0.5, 1.5))

	net, err := Build(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, net.Motors.Motors)

	allSame := true
	first := net.Motors.Motors[0].Kon
	for _, m := range net.Motors.Motors {
		assert.GreaterOrEqual(t, m.Kon, 0.5)
		assert.LessOrEqual(t, m.Kon, 1.5)
		if m.Kon != first {
			allSame = false
		}
	}
	assert.False(t, allSame, "expected jittered Kon to vary across spawned motors")
}

func TestBuildRunsOneStepWithoutError(t *testing.T) {
	cfg := Default()
	cfg.Npolymer = 2
	cfg.Nmonomer = 3
	cfg.Xrange, cfg.Yrange = 10, 10
	cfg.Dt = 1e-3

	net, err := Build(cfg)
	require.NoError(t, err)
	require.NoError(t, net.Step())
}
