// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import "github.com/dinner-group/afines-go/box"

// GrowthEvent describes what TryGrow did, so the owning ensemble can keep
// any attached motor heads consistent (spec.md §4.6). Motor reassignment
// itself lives in the ensemble package (Network.reassignMotorsForGrowth)
// since Filament does not know about motor state; Inserted/SpringRestLen are
// exactly the information that reassignment needs.
type GrowthEvent struct {
	Inserted      bool    // true if a bead/spring pair was inserted; false if only L0 was extended
	SpringRestLen float64 // the constant rest length used for the reset spring 0 / new spring 1
}

// TryGrow attempts one growth event on this filament, per spec.md §4.6:
// extend spring[0]'s rest length while it stays under L0Max, else (if under
// MaxSprings) insert a new bead/spring pair near bead 0. Returns nil if the
// filament is already at MaxSprings. bx canonicalizes the inserted bead's
// position under the box's current boundary condition, per spec.md §4.6's
// literal pos(bead[1].pos - l0*spring[0].direction).
func (f *Filament) TryGrow(springRestLen float64, bx *box.Box) *GrowthEvent {
	if f.MaxSprings > 0 && len(f.Springs) >= f.MaxSprings {
		return nil
	}
	s0 := f.Springs[0]
	if s0.L0+f.Lgrow < f.L0Max {
		s0.L0 += f.Lgrow
		return &GrowthEvent{Inserted: false}
	}

	b0, b1 := f.Beads[0], f.Beads[1]
	nx, ny := bx.Pos(b1.X-s0.L0*s0.Direction[0], b1.Y-s0.L0*s0.Direction[1])
	newBead := NewBead(nx, ny, b0.Length, b0.Visc)

	// insert newBead at position 1: old bead1 (and all following) shift by one
	f.Beads = append(f.Beads[:1:1], append([]*Bead{newBead}, f.Beads[1:]...)...)

	// every spring at slot >= 1 now connects beads one index higher
	for i := 1; i < len(f.Springs); i++ {
		f.Springs[i].BeadIdx++
	}

	// new spring 1 connects the inserted bead (slot 1) to the old bead 1 (now slot 2)
	newSpring := NewSpring(1, springRestLen, s0.Kl)
	newSpring.Fene, newSpring.MaxExt, newSpring.EpsExt = s0.Fene, s0.MaxExt, s0.EpsExt
	f.Springs = append(f.Springs[:1:1], append([]*Spring{newSpring}, f.Springs[1:]...)...)

	s0.L0 = springRestLen // spring 0 now spans bead0 -> insertedBead
	return &GrowthEvent{Inserted: true, SpringRestLen: springRestLen}
}
