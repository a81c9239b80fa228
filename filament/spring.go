// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"math"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/simerr"
)

// MotorHandle identifies one head of one motor attached to a Spring, without
// the filament package importing the motor package: motor owns the storage,
// Spring only keeps a non-owning set of these handles (spec.md §9
// back-references note).
type MotorHandle struct {
	MotorID int
	Head    int
}

// Spring is the harmonic (or Fraenkel-FENE) edge between beads
// [BeadIdx, BeadIdx+1] of one filament.
type Spring struct {
	BeadIdx int // index of the first endpoint bead; second is BeadIdx+1

	L0     float64 // rest length, mutable within [l0min, l0max]
	Kl     float64 // stretching stiffness
	Fene   bool    // use the Fraenkel-FENE force law instead of harmonic
	MaxExt float64 // FENE maximum extension
	EpsExt float64 // FENE clamp distance from divergence (heuristic, spec.md §9 open question b)

	// geometry, refreshed by Step()
	Disp      [2]float64 // minimum-image displacement from bead i to bead i+1
	Length    float64
	Direction [2]float64 // unit vector along Disp, zero if Length == 0

	Force [2]float64 // force applied to bead i (equal and opposite on bead i+1)

	MotorSet map[MotorHandle]bool // attached motor heads
}

// NewSpring returns a Spring with the given rest length and stiffness
func NewSpring(beadIdx int, l0, kl float64) *Spring {
	return &Spring{
		BeadIdx:  beadIdx,
		L0:       l0,
		Kl:       kl,
		MotorSet: make(map[MotorHandle]bool),
	}
}

// Step recomputes Disp, Length and Direction from the two endpoint beads
// under the box's current minimum-image convention.
func (s *Spring) Step(b0, b1 *Bead, bx *box.Box) {
	dx, dy := bx.Rij(b1.X-b0.X, b1.Y-b0.Y)
	s.Disp = [2]float64{dx, dy}
	s.Length = math.Hypot(dx, dy)
	if s.Length > 0 {
		s.Direction = [2]float64{dx / s.Length, dy / s.Length}
	} else {
		s.Direction = [2]float64{0, 0}
	}
	if math.IsNaN(s.Length) || math.IsInf(s.Length, 0) {
		simerr.Fatal(simerr.Numeric, -1, "spring length is not finite", s.BeadIdx)
	}
}

// UpdateForce computes Force = kl*(length-l0)*direction, or the FENE form
// kl/(1-(ext/maxExt)^2) near the divergence, clamped once the remaining
// extension falls below epsExt.
func (s *Spring) UpdateForce() {
	ext := s.Length - s.L0
	prefactor := s.Kl
	if s.Fene && s.MaxExt > 0 {
		remaining := s.MaxExt - ext
		if remaining < s.EpsExt {
			remaining = s.EpsExt
		}
		ratio := ext / s.MaxExt
		prefactor = s.Kl / (1 - ratio*ratio)
		if remaining == s.EpsExt {
			// clamp regime: cap the prefactor using the clamped remaining extension
			clampedRatio := (s.MaxExt - s.EpsExt) / s.MaxExt
			prefactor = s.Kl / (1 - clampedRatio*clampedRatio)
		}
	}
	mag := prefactor * ext
	s.Force = [2]float64{mag * s.Direction[0], mag * s.Direction[1]}
}

// FilamentUpdate applies +Force to bead i and -Force to bead i+1, so a
// stretched spring pulls its endpoints together and a compressed one pushes
// them apart
func (s *Spring) FilamentUpdate(b0, b1 *Bead) {
	b0.AddForce(s.Force[0], s.Force[1])
	b1.AddForce(-s.Force[0], -s.Force[1])
}

// Virial returns the outer product Force (X) Disp, flattened row-major
func (s *Spring) Virial() (xx, xy, yx, yy float64) {
	xx = s.Force[0] * s.Disp[0]
	xy = s.Force[0] * s.Disp[1]
	yx = s.Force[1] * s.Disp[0]
	yy = s.Force[1] * s.Disp[1]
	return
}

// Energy returns the spring's stretching energy 0.5*Force^2/Kl, the
// convenient form used for the PE_stretch invariant in spec.md §8 property 5
// (valid for the harmonic law; for FENE it is evaluated at the same Force,
// Kl pair as an equivalent-harmonic proxy).
func (s *Spring) Energy() float64 {
	if s.Kl == 0 {
		return 0
	}
	f2 := s.Force[0]*s.Force[0] + s.Force[1]*s.Force[1]
	return 0.5 * f2 / s.Kl
}

// Intpoint returns the closest point on the segment [b0,b1] to P=(px,py),
// the parameter t in [0,1] along the segment, and the perpendicular
// distance. Used by motor attachment and excluded volume.
func (s *Spring) Intpoint(b0 *Bead, px, py float64) (qx, qy, t, dist float64) {
	if s.Length == 0 {
		qx, qy = b0.X, b0.Y
		return qx, qy, 0, math.Hypot(px-b0.X, py-b0.Y)
	}
	ux, uy := s.Direction[0], s.Direction[1]
	t = (px-b0.X)*ux + (py-b0.Y)*uy
	if t < 0 {
		t = 0
	}
	if t > s.Length {
		t = s.Length
	}
	qx = b0.X + t*ux
	qy = b0.Y + t*uy
	dist = math.Hypot(px-qx, py-qy)
	t = t / s.Length
	return
}

// AttachMotor inserts h into the spring's motor set
func (s *Spring) AttachMotor(h MotorHandle) {
	s.MotorSet[h] = true
}

// DetachMotor removes h from the spring's motor set
func (s *Spring) DetachMotor(h MotorHandle) {
	delete(s.MotorSet, h)
}
