// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package filament implements the bead/spring chain data model: Bead,
// Spring, and Filament, together with the stretching, bending, growth,
// fracture and overdamped-Langevin integration operations that advance one
// filament per time step.
package filament

import "math"

// Bead is a point particle in the 2-D plane carrying a drag coefficient
// (derived from Stokes' law, 4*pi*viscosity*length) and an accumulated force
// that is zeroed once per step by the owning Filament.
type Bead struct {
	X, Y   float64 // position
	Length float64 // bead "diameter" used only to derive Gamma
	Visc   float64 // local viscosity
	Gamma  float64 // drag coefficient, 4*pi*Visc*Length
	Fx, Fy float64 // accumulated force

	// prevRndX/Y hold the previous step's standard-normal draw so the
	// Brownian force can use the Leimkuhler-style sum (xi + xi_prev).
	// Zero-valued until the first draw, matching the original's prv_rnds
	// initialization to {0,0}.
	prevRndX, prevRndY float64
}

// NewBead returns a Bead at (x,y) with the given length and viscosity
func NewBead(x, y, length, visc float64) *Bead {
	return &Bead{X: x, Y: y, Length: length, Visc: visc, Gamma: stokesDrag(length, visc)}
}

// stokesDrag returns 4*pi*viscosity*length
func stokesDrag(length, visc float64) float64 {
	return 4 * math.Pi * visc * length
}

// AddForce accumulates (fx,fy) onto the bead
func (b *Bead) AddForce(fx, fy float64) {
	b.Fx += fx
	b.Fy += fy
}

// ZeroForce resets the accumulated force to zero
func (b *Bead) ZeroForce() {
	b.Fx, b.Fy = 0, 0
}
