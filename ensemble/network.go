// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"golang.org/x/exp/rand"

	"github.com/cpmech/gosl/la"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/exv"
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/motor"
	"github.com/dinner-group/afines-go/quadrants"
	"github.com/dinner-group/afines-go/simerr"
)

// ShearProtocol returns the strain-rate increment dGamma to apply at
// simulation time t; the zero value (nil) means no shear.
type ShearProtocol func(t float64) float64

// Network owns every filament, the spatial index and excluded-volume engine
// they share, the two motor populations, and the external/shear protocols;
// Step advances the whole system by one Dt following spec.md §4.11.
type Network struct {
	Box       *box.Box
	Filaments []*filament.Filament
	Grid      *quadrants.Grid
	Exv       *exv.Engine
	Motors    *motor.Ensemble // active, Kind == motor.Active
	Xlinks    *motor.Ensemble // passive, Kind == motor.Passive
	Ext       External
	Shear     ShearProtocol

	Dt               float64
	GridFactor       float64
	GridOff          bool
	CheckDup         bool
	GrowthRestLen    float64 // rest length assigned to a spring inserted by growth (spec.md §4.6)
	QuadUpdatePeriod int     // rebuild the spatial index every this many steps (spec.md §4.11 step 1); <= 1 rebuilds every step

	nextFilID int
	rng       *rand.Rand
	stepCount int

	T float64 // simulation time, advanced by Dt every Step

	// network-wide accumulators, refreshed each Step. VirStretch/VirBend are
	// 2x2 row-major tensors (la.MatAlloc), [0][0]=XX, [0][1]=XY, [1][0]=YX,
	// [1][1]=YY.
	PEStretch, PEBend, PEExv, PEMotor, PEXlink, PEExt float64
	KEVel, KEVir                                      float64
	VirStretch, VirBend                               [][]float64
}

// NewNetwork returns an empty Network over bx, with a spatial grid sized at
// gridFactor cells per unit length (spec.md §6 "grid_factor"), an
// excluded-volume engine with cutoff rmax and amplitude aExv, and the given
// motor/crosslinker populations.
func NewNetwork(bx *box.Box, gridFactor float64, off, checkDup bool, rmax, aExv float64, motors, xlinks *motor.Ensemble, ext External, dt float64, seed uint64) *Network {
	return &Network{
		Box:              bx,
		Grid:             quadrants.New(bx, gridFactor, off, checkDup),
		Exv:              exv.New(rmax, aExv),
		Motors:           motors,
		Xlinks:           xlinks,
		Ext:              ext,
		Dt:               dt,
		GridFactor:       gridFactor,
		GridOff:          off,
		CheckDup:         checkDup,
		QuadUpdatePeriod: 1,
		rng:              rand.New(rand.NewSource(seed)),
		VirStretch:       la.MatAlloc(2, 2),
		VirBend:          la.MatAlloc(2, 2),
	}
}

// AddFilament appends f to the network and tracks it for fresh-id allocation
// on subsequent fracture splits.
func (n *Network) AddFilament(f *filament.Filament) {
	n.Filaments = append(n.Filaments, f)
	if f.Id >= n.nextFilID {
		n.nextFilID = f.Id + 1
	}
}

// shouldRebuildGrid reports whether this step should rebuild the spatial
// index, per QuadUpdatePeriod (spec.md §4.11 step 1: "every
// quad_update_period steps"); the first call always rebuilds, since the grid
// starts empty.
func (n *Network) shouldRebuildGrid() bool {
	period := n.QuadUpdatePeriod
	if period < 1 {
		period = 1
	}
	return n.stepCount%period == 0
}

// rebuildGrid resets the spatial index and re-inserts every spring at its
// current configuration; called every QuadUpdatePeriod steps (spec.md
// §4.11 step 1), so attachment and excluded-volume queries this step use the
// positions left by the previous step's integration.
func (n *Network) rebuildGrid() {
	n.Grid.Reset()
	for fi, f := range n.Filaments {
		for si, s := range f.Springs {
			b0 := f.Beads[s.BeadIdx]
			b1 := f.Beads[s.BeadIdx+1]
			n.Grid.AddSpring(quadrants.SpringId{FilIdx: fi, SpringIdx: si}, b0.X, b0.Y, b1.X, b1.Y)
		}
	}
}

// Step advances the whole network by Dt, following the authoritative
// per-step ordering of spec.md §4.11: rebuild the spatial index; zero and
// recompute stretching/bending/excluded-volume/external forces; update the
// two motor populations (which also apply their own spring forces); integrate
// every filament's overdamped Langevin step; attempt growth and fracture;
// aggregate the network's energies and virials; advance the shear protocol;
// advance time.
func (n *Network) Step() (err error) {
	defer simerr.Recover(&err)

	if n.VirStretch == nil {
		n.VirStretch = la.MatAlloc(2, 2)
	}
	if n.VirBend == nil {
		n.VirBend = la.MatAlloc(2, 2)
	}

	if n.shouldRebuildGrid() {
		n.rebuildGrid()
	}

	n.PEStretch, n.PEBend = 0, 0
	la.MatFill(n.VirStretch, 0)
	la.MatFill(n.VirBend, 0)
	for _, f := range n.Filaments {
		f.ZeroForces()
		f.RefreshGeometry(n.Box)
		f.UpdateStretching()
		f.UpdateBending()
		n.PEStretch += f.PEStretch
		n.PEBend += f.PEBend
		n.VirStretch[0][0] += f.VirStretch[0][0]
		n.VirStretch[0][1] += f.VirStretch[0][1]
		n.VirStretch[1][0] += f.VirStretch[1][0]
		n.VirStretch[1][1] += f.VirStretch[1][1]
		n.VirBend[0][0] += f.VirBend[0][0]
		n.VirBend[0][1] += f.VirBend[0][1]
		n.VirBend[1][0] += f.VirBend[1][0]
		n.VirBend[1][1] += f.VirBend[1][1]
	}

	n.PEExv = n.Exv.Apply(n.Filaments, n.Grid)
	n.PEExt = n.Ext.Apply(n.Filaments)

	if n.Motors != nil {
		n.Motors.Step(n.Filaments, n.Grid, n.Box, n.Dt)
		n.PEMotor = n.Motors.PE
	}
	if n.Xlinks != nil {
		n.Xlinks.Step(n.Filaments, n.Grid, n.Box, n.Dt)
		n.PEXlink = n.Xlinks.PE
	}

	n.KEVel, n.KEVir = 0, 0
	for _, f := range n.Filaments {
		f.KEVel, f.KEVir = 0, 0
		f.Integrate(n.Box)
		n.KEVel += f.KEVel
		n.KEVir += f.KEVir
	}

	n.tryGrowAll()
	n.tryFractureAll()

	if n.Shear != nil {
		dGamma := n.Shear(n.T)
		actual := n.Box.UpdateStrain(dGamma)
		for _, f := range n.Filaments {
			f.Shear(actual)
		}
	}

	n.T += n.Dt
	n.stepCount++
	return nil
}
