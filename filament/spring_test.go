// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/dinner-group/afines-go/box"
)

func TestSpringGeometryAndForce(tst *testing.T) {
	chk.PrintTitle("spring: geometry and harmonic force")
	bx := box.New(box.Periodic, 10, 10)
	b0 := NewBead(-0.4, 0, 0.1, 1e-3)
	b1 := NewBead(0.4, 0, 0.1, 1e-3)
	s := NewSpring(0, 1.0, 10.0)
	s.Step(b0, b1, bx)
	chk.Scalar(tst, "length", 1e-12, s.Length, 0.8)
	s.UpdateForce()
	// length < l0, spring is compressed: Force (applied to bead0) pushes it away from bead1 (negative x)
	if s.Force[0] >= 0 {
		tst.Fatalf("expected compressive force with negative x component, got %v", s.Force)
	}
}

func TestSpringIntpointClampsToSegment(tst *testing.T) {
	chk.PrintTitle("spring: closest-point projection clamps to [0,1]")
	bx := box.New(box.Open, 10, 10)
	b0 := NewBead(0, 0, 0.1, 1e-3)
	b1 := NewBead(1, 0, 0.1, 1e-3)
	s := NewSpring(0, 1.0, 10.0)
	s.Step(b0, b1, bx)
	_, _, t, dist := s.Intpoint(b0, 2.0, 0.5)
	chk.Scalar(tst, "t", 1e-12, t, 1.0)
	chk.Scalar(tst, "dist", 1e-12, dist, 1.118033988749895)
}

func TestSpringMotorSet(tst *testing.T) {
	chk.PrintTitle("spring: motor set attach/detach")
	s := NewSpring(0, 1.0, 10.0)
	h := MotorHandle{MotorID: 3, Head: 1}
	s.AttachMotor(h)
	if !s.MotorSet[h] {
		tst.Fatal("expected motor handle to be attached")
	}
	s.DetachMotor(h)
	if s.MotorSet[h] {
		tst.Fatal("expected motor handle to be detached")
	}
}
