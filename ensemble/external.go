// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ensemble implements the filament network: the collection of
// filaments, the spatial index and excluded-volume engine shared across them,
// the two motor populations, the external-force and shear protocols, and the
// per-step update ordering of spec.md §4.11.
package ensemble

import (
	"math"

	"github.com/dinner-group/afines-go/filament"
)

// ExternalKind selects the whole-network external potential applied to every
// bead, per spec.md §4.10.
type ExternalKind int

// external force kinds
const (
	NoExternal ExternalKind = iota
	Circle
)

// External is a simple externally imposed potential: NONE applies nothing;
// Circle confines every bead to radius R of the origin with stiffness K,
// like a soft circular wall.
type External struct {
	Kind ExternalKind
	R    float64
	K    float64
}

// Apply adds the external force to every bead of every filament and returns
// the accumulated external potential energy.
func (e External) Apply(fils []*filament.Filament) (pe float64) {
	if e.Kind == NoExternal || e.K == 0 {
		return 0
	}
	for _, f := range fils {
		for _, b := range f.Beads {
			switch e.Kind {
			case Circle:
				r := math.Hypot(b.X, b.Y)
				if r <= e.R {
					continue
				}
				ext := r - e.R
				mag := e.K * ext
				b.AddForce(-mag*b.X/r, -mag*b.Y/r)
				pe += 0.5 * e.K * ext * ext
			}
		}
	}
	return pe
}
