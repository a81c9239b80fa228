// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package motor implements the two-headed transient-spring state machine
// (attach / walk / stall / detach) described in spec.md §4.7, and the
// population-level Monte Carlo update (XlinkEnsemble in spec.md) that
// drives one or more Motors per time step.
package motor

import (
	"math"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/filament"
)

// HeadState is FREE or BOUND, independently per head of a Motor
type HeadState int

// head states
const (
	Free HeadState = iota
	Bound
)

// Head is one end of a Motor
type Head struct {
	State HeadState
	X, Y  float64 // absolute position, always valid

	FilIdx      int     // owning filament index, valid only when State == Bound
	SpringIdx   int     // owning spring index within that filament, valid only when State == Bound
	PosOnSpring float64 // arc length from the spring's first endpoint bead, valid only when State == Bound
}

// Motor is a two-headed transient spring. Kind distinguishes an active,
// driving motor (Active, v0 != 0) from a passive crosslinker (Passive,
// v0 == 0), per spec.md §4 supplemented features.
type Motor struct {
	ID    int
	Kind  Kind
	Heads [2]Head

	RestLen   float64
	Stiffness float64
	MaxExt    float64

	Kon, Koff, Kend float64
	V0, FStall      float64
	Cutoff          float64
	Damp            float64 // drag coefficient used for free-head Brownian diffusion
	ShearOn         bool    // carried per motor; no code in this module reads it, so free heads are not sheared with the box

	// geometry/force, refreshed by Step
	Disp   [2]float64
	Length float64
	Force  [2]float64 // force from head0 toward head1
}

// Kind distinguishes an active motor from a passive crosslinker
type Kind int

// motor kinds
const (
	Active Kind = iota
	Passive
)

// HeadPos returns the current absolute position of head k, recomputing it
// from (filament, spring, arc-length) when bound.
func (m *Motor) HeadPos(k int, fils []*filament.Filament) (x, y float64) {
	h := &m.Heads[k]
	if h.State == Free {
		return h.X, h.Y
	}
	f := fils[h.FilIdx]
	s := f.Springs[h.SpringIdx]
	b0 := f.Beads[s.BeadIdx]
	if s.Length == 0 {
		return b0.X, b0.Y
	}
	frac := h.PosOnSpring / s.Length
	return b0.X + frac*s.Disp[0], b0.Y + frac*s.Disp[1]
}

// RefreshGeometry recomputes Disp, Length and Force from the two heads'
// current positions under the box's minimum-image convention; Force follows
// a plain harmonic law (AFINES motors are not FENE).
func (m *Motor) RefreshGeometry(fils []*filament.Filament, bx *box.Box) {
	x0, y0 := m.HeadPos(0, fils)
	x1, y1 := m.HeadPos(1, fils)
	dx, dy := bx.Rij(x1-x0, y1-y0)
	m.Disp = [2]float64{dx, dy}
	m.Length = math.Hypot(dx, dy)
	ext := m.Length - m.RestLen
	mag := m.Stiffness * ext
	if m.Length > 0 {
		m.Force = [2]float64{mag * dx / m.Length, mag * dy / m.Length}
	} else {
		m.Force = [2]float64{0, 0}
	}
}

// ApplyForces distributes the motor's spring force onto the filament beads
// each bound head is attached to, splitting across the host segment's two
// endpoints by linear interpolation of PosOnSpring (spec.md §4.7).
func (m *Motor) ApplyForces(fils []*filament.Filament) {
	// head0 feels +Force, head1 feels -Force: a stretched motor pulls its heads together
	m.applyHeadForce(0, fils, m.Force[0], m.Force[1])
	m.applyHeadForce(1, fils, -m.Force[0], -m.Force[1])
}

func (m *Motor) applyHeadForce(k int, fils []*filament.Filament, fx, fy float64) {
	h := &m.Heads[k]
	if h.State == Free {
		return
	}
	f := fils[h.FilIdx]
	s := f.Springs[h.SpringIdx]
	b0 := f.Beads[s.BeadIdx]
	b1 := f.Beads[s.BeadIdx+1]
	t := 0.0
	if s.Length > 0 {
		t = h.PosOnSpring / s.Length
	}
	b0.AddForce(fx*(1-t), fy*(1-t))
	b1.AddForce(fx*t, fy*t)
}

// Energy returns 0.5*Stiffness*(Length-RestLen)^2
func (m *Motor) Energy() float64 {
	ext := m.Length - m.RestLen
	return 0.5 * m.Stiffness * ext * ext
}

// Virial returns the outer product Force (X) Disp
func (m *Motor) Virial() (xx, xy, yx, yy float64) {
	return m.Force[0] * m.Disp[0], m.Force[0] * m.Disp[1], m.Force[1] * m.Disp[0], m.Force[1] * m.Disp[1]
}

// Handle returns the filament.MotorHandle for head k, for insertion into a
// Spring's motor set.
func (m *Motor) Handle(k int) filament.MotorHandle {
	return filament.MotorHandle{MotorID: m.ID, Head: k}
}
