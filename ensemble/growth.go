// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ensemble

import (
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/motor"
)

// tryGrowAll attempts one growth event on every filament with probability
// Kgrow*Dt, reassigning any attached motor heads afterward (spec.md §4.6).
func (n *Network) tryGrowAll() {
	for fi, f := range n.Filaments {
		if f.Kgrow <= 0 {
			continue
		}
		if n.rng.Float64() >= f.Kgrow*n.Dt {
			continue
		}
		ev := f.TryGrow(n.GrowthRestLen, n.Box)
		if ev == nil {
			continue
		}
		n.reassignMotorsForGrowth(fi, ev)
	}
}

// reassignMotorsForGrowth keeps every motor/crosslinker head bound to
// filament fi consistent with a growth event that just ran on it.
//
// When the event only extended spring 0's rest length, no bound head's
// (SpringIdx, PosOnSpring) changes meaning. When it inserted a bead, spring 0
// now spans only the first SpringRestLen of arc length: a head bound to
// spring 0 with PosOnSpring under that threshold stays there unchanged; one
// at or beyond it moves to the newly inserted spring 1, with its offset
// measured from that spring's start. Every other bound spring shifted up one
// slot in the filament's Springs slice (same *Spring object, new index), so
// any head at SpringIdx >= 1 before the insertion needs SpringIdx+1 to keep
// pointing at the same object.
func (n *Network) reassignMotorsForGrowth(filIdx int, ev *filament.GrowthEvent) {
	if !ev.Inserted {
		return
	}
	n.reassignEnsemble(n.Motors, filIdx, ev)
	n.reassignEnsemble(n.Xlinks, filIdx, ev)
}

func (n *Network) reassignEnsemble(e *motor.Ensemble, filIdx int, ev *filament.GrowthEvent) {
	if e == nil {
		return
	}
	f := n.Filaments[filIdx]
	for _, m := range e.Motors {
		for k := 0; k < 2; k++ {
			h := &m.Heads[k]
			if h.State != motor.Bound || h.FilIdx != filIdx {
				continue
			}
			if h.SpringIdx == 0 {
				if h.PosOnSpring >= ev.SpringRestLen {
					old := h.PosOnSpring
					f.Springs[0].DetachMotor(m.Handle(k))
					h.SpringIdx = 1
					h.PosOnSpring = old - ev.SpringRestLen
					f.Springs[1].AttachMotor(m.Handle(k))
				}
				continue
			}
			h.SpringIdx++
		}
	}
}
