// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package exv implements the pairwise repulsive bead<->segment excluded
// volume force described in spec.md §4.9.
package exv

import (
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/quadrants"
)

// Engine holds the excluded-volume parameters: cutoff radius Rmax and
// amplitude A of the shifted-truncated harmonic potential.
type Engine struct {
	Rmax float64
	A    float64
}

// New returns an Engine with the given cutoff and amplitude
func New(rmax, a float64) *Engine {
	return &Engine{Rmax: rmax, A: a}
}

// Apply queries grid for every bead of every filament and applies a soft
// repulsion to any segment within Rmax, excluding the bead's own two
// adjacent springs (self or otherwise); returns the accumulated
// excluded-volume energy.
func (e *Engine) Apply(fils []*filament.Filament, grid *quadrants.Grid) (peExv float64) {
	if e.A == 0 || e.Rmax <= 0 {
		return 0
	}
	for fi, f := range fils {
		for bi, bead := range f.Beads {
			candidates := grid.GetAttachList(bead.X, bead.Y)
			for _, cand := range candidates {
				if cand.FilIdx == fi && (cand.SpringIdx == bi-1 || cand.SpringIdx == bi) {
					continue // skip the bead's own adjacent springs
				}
				other := fils[cand.FilIdx]
				s := other.Springs[cand.SpringIdx]
				b0 := other.Beads[s.BeadIdx]
				_, _, _, dist := s.Intpoint(b0, bead.X, bead.Y)
				if dist >= e.Rmax || dist == 0 {
					continue
				}
				peExv += e.applyPair(fi, bi, bead, other, s, b0, dist)
			}
		}
	}
	return peExv
}

// applyPair applies the shifted-truncated harmonic repulsion between bead
// and the closest point on spring s (whose first endpoint is b0), splitting
// the reaction force onto s's two endpoint beads by linear interpolation of
// the projection parameter, per spec.md §4.9.
func (e *Engine) applyPair(fi, bi int, bead *filament.Bead, other *filament.Filament, s *filament.Spring, b0 *filament.Bead, dist float64) float64 {
	qx, qy, t, _ := s.Intpoint(b0, bead.X, bead.Y)
	nx, ny := bead.X-qx, bead.Y-qy
	if dist > 0 {
		nx, ny = nx/dist, ny/dist
	}
	// shifted-truncated harmonic: U(r) = 0.5*A*(r-Rmax)^2, F = -dU/dr along +n
	mag := e.A * (e.Rmax - dist)
	fx, fy := mag*nx, mag*ny

	bead.AddForce(fx, fy)
	b1 := other.Beads[s.BeadIdx+1]
	b0.AddForce(-fx*(1-t), -fy*(1-t))
	b1.AddForce(-fx*t, -fy*t)

	return 0.5 * e.A * (e.Rmax - dist) * (e.Rmax - dist)
}

