// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// smallAngleEps bounds sin(theta) away from zero so the bending-force
// derivative does not blow up near theta=0 or theta=pi (spec.md §4.4).
const smallAngleEps = 1e-6

// UpdateBending accumulates the harmonic-bend force (theta0 = 0, energy
// 0.5*Kb*theta^2 between consecutive segment directions) onto the three
// beads of each consecutive spring pair, and caches PEBend/VirBend*.
//
// Reads every Spring.Disp as it stands, so spring geometry must be current
// (RefreshGeometry or Integrate refresh it; UpdateStretching does not). Runs
// after UpdateStretching per spec.md §4.11 step 2.
func (f *Filament) UpdateBending() {
	f.PEBend = 0
	la.MatFill(f.VirBend, 0)
	if f.Kb == 0 {
		return
	}
	for n := 0; n+1 < len(f.Springs); n++ {
		r1 := f.Springs[n].Disp
		r2 := f.Springs[n+1].Disp
		f1, f2, energy := bendForcesBetween(r1, r2, f.Kb)

		f.Beads[n].AddForce(-f1[0], -f1[1])
		f.Beads[n+1].AddForce(f1[0]-f2[0], f1[1]-f2[1])
		f.Beads[n+2].AddForce(f2[0], f2[1])

		f.PEBend += energy
		f.VirBend[0][0] += r1[0]*f1[0] + r2[0]*f2[0]
		f.VirBend[0][1] += r1[0]*f1[1] + r2[0]*f2[1]
		f.VirBend[1][0] += r1[1]*f1[0] + r2[1]*f2[0]
		f.VirBend[1][1] += r1[1]*f1[1] + r2[1]*f2[1]
	}
}

// bendForcesBetween returns the force applied to the three-bead bending
// potential defined by consecutive segment vectors r1, r2 (spec.md §4.4):
// force on bead n is -f1, on bead n+1 is f1-f2, on bead n+2 is f2.
func bendForcesBetween(r1, r2 [2]float64, kb float64) (f1, f2 [2]float64, energy float64) {
	l1 := math.Hypot(r1[0], r1[1])
	l2 := math.Hypot(r2[0], r2[1])
	if l1 == 0 || l2 == 0 {
		return
	}
	u1 := [2]float64{r1[0] / l1, r1[1] / l1}
	u2 := [2]float64{r2[0] / l2, r2[1] / l2}
	c := u1[0]*u2[0] + u1[1]*u2[1]
	if c > 1 {
		c = 1
	}
	if c < -1 {
		c = -1
	}
	theta := math.Acos(c)
	s := math.Sqrt(1 - c*c)
	if s < smallAngleEps {
		s = smallAngleEps
	}
	coef := kb * theta / s

	dcDr1 := [2]float64{(u2[0] - c*u1[0]) / l1, (u2[1] - c*u1[1]) / l1}
	dcDr2 := [2]float64{(u1[0] - c*u2[0]) / l2, (u1[1] - c*u2[1]) / l2}

	f1 = [2]float64{coef * dcDr1[0], coef * dcDr1[1]}
	f2 = [2]float64{coef * dcDr2[0], coef * dcDr2[1]}
	energy = 0.5 * kb * theta * theta
	return
}
