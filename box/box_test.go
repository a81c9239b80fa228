// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestPeriodicMinimumImage(tst *testing.T) {
	chk.PrintTitle("box: periodic minimum image")
	o := New(Periodic, 10, 10)
	rx, ry := o.Rij(7, 0)
	chk.Scalar(tst, "rx", 1e-15, rx, -3)
	chk.Scalar(tst, "ry", 1e-15, ry, 0)
}

func TestCanonicalizeBoundary(tst *testing.T) {
	chk.PrintTitle("box: x=Lx/2 canonicalizes to -Lx/2")
	o := New(Periodic, 10, 10)
	px, _ := o.Pos(5.0, 0)
	chk.Scalar(tst, "px", 1e-15, px, -5.0)
}

func TestLeesEdwardsShift(tst *testing.T) {
	chk.PrintTitle("box: Lees-Edwards couples x-wrap to y-wrap")
	o := New(LeesEdwards, 10, 10)
	o.DrX = 3.0
	rx, ry := o.Rij(0, 7)
	chk.Scalar(tst, "ry", 1e-15, ry, -3)
	chk.Scalar(tst, "rx", 1e-15, rx, -3.0)
}

func TestUpdateStrainAccumulates(tst *testing.T) {
	chk.PrintTitle("box: UpdateStrain accumulates DrX and reports the increment")
	o := New(LeesEdwards, 10, 10)
	inc := o.UpdateStrain(0.01)
	chk.Scalar(tst, "increment", 1e-15, inc, 0.01)
	chk.Scalar(tst, "DrX", 1e-15, o.DrX, 0.1)
	_, ry := o.Rij(0, 7)
	chk.Scalar(tst, "ry after strain", 1e-15, ry, -3)
}

func TestOpenBoundaryIsIdentity(tst *testing.T) {
	chk.PrintTitle("box: OPEN boundary never wraps")
	o := New(Open, 10, 10)
	rx, ry := o.Rij(17, -23)
	chk.Scalar(tst, "rx", 1e-15, rx, 17)
	chk.Scalar(tst, "ry", 1e-15, ry, -23)
}
