// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dinner-group/afines-go/box"
)

// TestTwoBeadRelaxation is end-to-end scenario 1 from spec.md §8: a two-bead
// filament relaxes to its rest length under zero temperature.
func TestTwoBeadRelaxation(tst *testing.T) {
	chk.PrintTitle("filament: two-bead relaxation (scenario 1)")
	bx := box.New(box.Periodic, 10, 10)
	f := New(0, [][2]float64{{-0.4, 0}, {0.4, 0}}, 0.1, 1e-3, 1.0, 10.0, 42)
	f.Dt = 1e-4
	f.RefreshGeometry(bx)
	for step := 0; step < 10000; step++ {
		f.ZeroForces()
		f.UpdateStretching()
		f.Integrate(bx)
	}
	if diff := f.Springs[0].Length - 1.0; diff > 1e-3 || diff < -1e-3 {
		tst.Fatalf("expected |length-1.0| < 1e-3, got length=%v", f.Springs[0].Length)
	}
	f.UpdateStretching()
	if f.PEStretch > 1e-4 {
		tst.Fatalf("expected PE_stretch < 1e-4, got %v", f.PEStretch)
	}
}

// TestIdentityStepAtZeroTemperatureAndRates: with the Brownian term off (T=0)
// and no external/bend force, a bead with zero net force does not move.
func TestIdentityStepAtZeroTemperatureAndRates(tst *testing.T) {
	chk.PrintTitle("filament: identity step at T=0 with no forces")
	bx := box.New(box.Periodic, 10, 10)
	f := New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 7)
	f.Dt = 1e-4
	f.RefreshGeometry(bx)
	x0, y0 := f.Beads[0].X, f.Beads[0].Y
	f.ZeroForces()
	f.Integrate(bx) // stretching force is zero because length == l0
	chk.Scalar(tst, "x", 1e-15, f.Beads[0].X, x0)
	chk.Scalar(tst, "y", 1e-15, f.Beads[0].Y, y0)
}

func TestTryGrowExtendsRestLengthBeforeInserting(tst *testing.T) {
	chk.PrintTitle("filament: TryGrow extends l0 before inserting a bead")
	bx := box.New(box.Open, 10, 10)
	f := New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.Lgrow = 0.05
	f.L0Max = 2.0
	f.MaxSprings = 10
	ev := f.TryGrow(0.5, bx)
	if ev == nil || ev.Inserted {
		tst.Fatalf("expected a rest-length extension, got %+v", ev)
	}
	chk.Scalar(tst, "l0", 1e-15, f.Springs[0].L0, 1.05)
}

func TestTryGrowInsertsBeadAtCap(tst *testing.T) {
	chk.PrintTitle("filament: TryGrow inserts a bead once l0 is capped")
	f := New(0, [][2]float64{{0, 0}, {1, 0}}, 0.1, 1e-3, 1.95, 10.0, 1)
	bx := box.New(box.Open, 10, 10)
	f.RefreshGeometry(bx)
	f.Lgrow = 0.2
	f.L0Max = 2.0
	f.MaxSprings = 10
	nBeadsBefore := f.Nbeads()
	ev := f.TryGrow(0.5, bx)
	if ev == nil || !ev.Inserted {
		tst.Fatalf("expected an insertion event, got %+v", ev)
	}
	if f.Nbeads() != nBeadsBefore+1 {
		tst.Fatalf("expected %d beads, got %d", nBeadsBefore+1, f.Nbeads())
	}
	if len(f.Springs) != 2 {
		tst.Fatalf("expected 2 springs after insertion, got %d", len(f.Springs))
	}
	chk.Scalar(tst, "spring0 l0", 1e-15, f.Springs[0].L0, 0.5)
	chk.Scalar(tst, "spring1 l0", 1e-15, f.Springs[1].L0, 0.5)
	chk.IntAssert(f.Springs[1].BeadIdx, 1)
}

func TestFractureNodeDetectsOverstretchedSpring(tst *testing.T) {
	chk.PrintTitle("filament: FractureNode finds the overstretched spring")
	bx := box.New(box.Open, 10, 10)
	f := New(0, [][2]float64{{0, 0}, {2, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	f.FracForce = 1.0
	f.RefreshGeometry(bx)
	f.UpdateStretching()
	node := f.FractureNode()
	if node != 0 {
		tst.Fatalf("expected fracture at spring 0, got %d", node)
	}
}

func TestSplitProducesTwoConsistentFilaments(tst *testing.T) {
	chk.PrintTitle("filament: Split preserves per-segment indexing")
	f := New(0, [][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, 0.1, 1e-3, 1.0, 10.0, 1)
	left, right := f.Split(1, 10, 11)
	if left.Nbeads() != 2 || len(left.Springs) != 1 {
		tst.Fatalf("expected left filament with 2 beads/1 spring, got %d/%d", left.Nbeads(), len(left.Springs))
	}
	if right.Nbeads() != 2 || len(right.Springs) != 1 {
		tst.Fatalf("expected right filament with 2 beads/1 spring, got %d/%d", right.Nbeads(), len(right.Springs))
	}
	chk.IntAssert(left.Springs[0].BeadIdx, 0)
	chk.IntAssert(right.Springs[0].BeadIdx, 0)
}
