// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/quadrants"
)

func buildGrid(bx *box.Box, fils []*filament.Filament) *quadrants.Grid {
	g := quadrants.New(bx, 1.0, false, false)
	for fi, f := range fils {
		f.RefreshGeometry(bx)
		for si, s := range f.Springs {
			b0 := f.Beads[s.BeadIdx]
			b1 := f.Beads[s.BeadIdx+1]
			g.AddSpring(quadrants.SpringId{FilIdx: fi, SpringIdx: si}, b0.X, b0.Y, b1.X, b1.Y)
		}
	}
	return g
}

func TestExcludedVolumeRepelsCloseFilaments(t *testing.T) {
	bx := box.New(box.Open, 20, 20)
	f0 := filament.New(0, [][2]float64{{-1, 0}, {1, 0}}, 0.1, 1e-3, 2.0, 10.0, 1)
	f1 := filament.New(1, [][2]float64{{-1, 0.1}, {1, 0.1}}, 0.1, 1e-3, 2.0, 10.0, 2)
	fils := []*filament.Filament{f0, f1}
	grid := buildGrid(bx, fils)

	eng := New(0.5, 10.0)
	pe := eng.Apply(fils, grid)
	assert.Greater(t, pe, 0.0)
	// repulsion should push f0's beads away from f1 (negative y)
	assert.Less(t, f0.Beads[0].Fy, 0.0)
	assert.Greater(t, f1.Beads[0].Fy, 0.0)
}

func TestExcludedVolumeSkipsOwnAdjacentSprings(t *testing.T) {
	bx := box.New(box.Open, 20, 20)
	f0 := filament.New(0, [][2]float64{{0, 0}, {0.05, 0}, {0.1, 0}}, 0.1, 1e-3, 0.05, 10.0, 1)
	fils := []*filament.Filament{f0}
	grid := buildGrid(bx, fils)

	eng := New(1.0, 10.0)
	eng.Apply(fils, grid)
	assert.Equal(t, 0.0, f0.Beads[1].Fx)
	assert.Equal(t, 0.0, f0.Beads[1].Fy)
}
