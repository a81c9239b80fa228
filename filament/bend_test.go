// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dinner-group/afines-go/box"
)

// TestBendingRodStraightens is end-to-end scenario 2 from spec.md §8.
func TestBendingRodStraightens(tst *testing.T) {
	chk.PrintTitle("filament: bending rod straightens (scenario 2)")
	eps := 0.1
	positions := [][2]float64{{-1, eps}, {-0.5, 0}, {0, eps}, {0.5, 0}, {1, eps}}
	// viscosity 0.1 keeps kl*dt/gamma ~ 0.08, inside the explicit integrator's
	// stability range; at 1e-3 the stretching mode grows ~15x per step
	f := New(0, positions, 0.1, 0.1, 0.5, 100.0, 42)
	f.Kb = 1.0
	f.Dt = 1e-4
	bx := box.New(box.Periodic, 10, 10)
	f.RefreshGeometry(bx)

	for step := 0; step < 50000; step++ {
		f.ZeroForces()
		f.UpdateStretching()
		f.UpdateBending()
		f.Integrate(bx)
	}

	// collinear: every bead within 1e-3 of the line through the two end beads
	// (the rod's center of mass stays at its initial y = 0.06)
	first, last := f.Beads[0], f.Beads[len(f.Beads)-1]
	lx, ly := last.X-first.X, last.Y-first.Y
	ll := math.Hypot(lx, ly)
	for _, b := range f.Beads {
		d := math.Abs((b.X-first.X)*ly-(b.Y-first.Y)*lx) / ll
		if d > 1e-3 {
			tst.Fatalf("expected beads collinear to 1e-3, got distance %v from the end-to-end line at y=%v", d, b.Y)
		}
	}
}

func TestBendForcesZeroWhenStraight(tst *testing.T) {
	chk.PrintTitle("filament: zero bend energy/force when segments are parallel")
	r1 := [2]float64{1, 0}
	r2 := [2]float64{1, 0}
	f1, f2, energy := bendForcesBetween(r1, r2, 5.0)
	chk.Scalar(tst, "energy", 1e-15, energy, 0)
	chk.Scalar(tst, "f1x", 1e-12, f1[0], 0)
	chk.Scalar(tst, "f1y", 1e-12, f1[1], 0)
	chk.Scalar(tst, "f2x", 1e-12, f2[0], 0)
	chk.Scalar(tst, "f2y", 1e-12, f2[1], 0)
}

func TestBendForcesPerpendicularSegments(tst *testing.T) {
	chk.PrintTitle("filament: bend energy at a right angle is 0.5*kb*(pi/2)^2")
	r1 := [2]float64{1, 0}
	r2 := [2]float64{0, 1}
	_, _, energy := bendForcesBetween(r1, r2, 2.0)
	want := 0.5 * 2.0 * (math.Pi / 2) * (math.Pi / 2)
	chk.Scalar(tst, "energy", 1e-10, energy, want)
}
