// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package motor

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/filament"
	"github.com/dinner-group/afines-go/quadrants"
)

// Ensemble is a population of Motors of one Kind (Active motors or Passive
// crosslinkers), each stepped by the same Monte Carlo attach/walk/detach
// rules, per spec.md §4.7 and the two-population supplement in SPEC_FULL.md.
type Ensemble struct {
	Kind   Kind
	Motors []*Motor

	rng    *rand.Rand
	nextID int

	// accumulated over the population, refreshed by Step
	PE                         float64
	VirXX, VirXY, VirYX, VirYY float64
}

// NewEnsemble returns an empty Ensemble of the given kind, seeded
// independently from the filament RNG streams (spec.md §9 per-stream split).
func NewEnsemble(kind Kind, seed uint64) *Ensemble {
	return &Ensemble{Kind: kind, rng: rand.New(rand.NewSource(seed))}
}

// Rand draws one uniform [0,1) variate from the ensemble's own stream, for
// callers (e.g. initial motor placement) that need randomness consistent
// with the same per-population seed without reaching into its internals.
func (e *Ensemble) Rand() float64 {
	return e.rng.Float64()
}

// RNG exposes the ensemble's own random source, for callers (e.g. per-motor
// rate jitter at spawn time) that need more than a single uniform draw.
func (e *Ensemble) RNG() *rand.Rand {
	return e.rng
}

// Spawn adds a new unattached Motor with both heads Free at (x,y) and
// (x,y)+RestLen in a random direction, returning it.
func (e *Ensemble) Spawn(x, y float64, restLen, stiffness, maxExt, kon, koff, kend, v0, fstall, cutoff, damp float64) *Motor {
	theta := e.rng.Float64() * 2 * math.Pi
	m := &Motor{
		ID:        e.nextID,
		Kind:      e.Kind,
		RestLen:   restLen,
		Stiffness: stiffness,
		MaxExt:    maxExt,
		Kon:       kon,
		Koff:      koff,
		Kend:      kend,
		V0:        v0,
		FStall:    fstall,
		Cutoff:    cutoff,
		Damp:      damp,
	}
	e.nextID++
	m.Heads[0] = Head{State: Free, X: x, Y: y}
	m.Heads[1] = Head{State: Free, X: x + restLen*math.Cos(theta), Y: y + restLen*math.Sin(theta)}
	e.Motors = append(e.Motors, m)
	return m
}

// Step advances every motor in the population by one time step dt: attempts
// to attach free heads, walks/detaches bound heads, diffuses free heads, then
// refreshes geometry/force and accumulates PE and the virial.
func (e *Ensemble) Step(fils []*filament.Filament, grid *quadrants.Grid, bx *box.Box, dt float64) {
	e.PE, e.VirXX, e.VirXY, e.VirYX, e.VirYY = 0, 0, 0, 0, 0
	for _, m := range e.Motors {
		for k := 0; k < 2; k++ {
			e.updateHead(m, k, fils, grid, bx, dt)
		}
		m.RefreshGeometry(fils, bx)
		m.ApplyForces(fils)
		e.PE += m.Energy()
		xx, xy, yx, yy := m.Virial()
		e.VirXX += xx
		e.VirXY += xy
		e.VirYX += yx
		e.VirYY += yy
	}
}

func (e *Ensemble) updateHead(m *Motor, k int, fils []*filament.Filament, grid *quadrants.Grid, bx *box.Box, dt float64) {
	h := &m.Heads[k]
	if h.State == Free {
		e.tryAttach(m, k, fils, grid, dt)
		if h.State == Free {
			e.diffuseFree(m, k, bx, dt)
		}
		return
	}
	e.tryDetach(m, k, fils, dt)
	if h.State == Bound {
		e.walk(m, k, fils, dt)
	}
}

// attachCandidate is one spring within Cutoff of a free head, eligible to
// receive it.
type attachCandidate struct {
	filIdx, springIdx int
	t, dist           float64
}

// tryAttach queries grid around the free head's position and, with
// probability 1-exp(-Kon*dt), binds to one eligible candidate spring within
// Cutoff, chosen by inverse-distance weighting among every eligible
// candidate (spec.md §4.7 attachment rule; "weighted ... by distance" per
// spec.md §9(a), resolved in DESIGN.md). A candidate on the same filament as
// the motor's other already-bound head is excluded, per spec.md §4.7's
// "different filaments" rule.
func (e *Ensemble) tryAttach(m *Motor, k int, fils []*filament.Filament, grid *quadrants.Grid, dt float64) {
	h := &m.Heads[k]
	raw := grid.GetAttachList(h.X, h.Y)
	if len(raw) == 0 {
		return
	}
	if e.rng.Float64() >= rateProb(m.Kon, dt) {
		return
	}

	other := &m.Heads[1-k]
	excludeFilIdx := -1
	if other.State == Bound {
		excludeFilIdx = other.FilIdx
	}

	var candidates []attachCandidate
	for _, cand := range raw {
		if cand.FilIdx == excludeFilIdx {
			continue
		}
		f := fils[cand.FilIdx]
		s := f.Springs[cand.SpringIdx]
		b0 := f.Beads[s.BeadIdx]
		_, _, t, dist := s.Intpoint(b0, h.X, h.Y)
		if dist > m.Cutoff {
			continue
		}
		candidates = append(candidates, attachCandidate{cand.FilIdx, cand.SpringIdx, t, dist})
	}
	if len(candidates) == 0 {
		return
	}

	chosen := e.pickWeightedByDistance(candidates)
	f := fils[chosen.filIdx]
	s := f.Springs[chosen.springIdx]
	h.State = Bound
	h.FilIdx = chosen.filIdx
	h.SpringIdx = chosen.springIdx
	h.PosOnSpring = chosen.t * s.Length
	s.AttachMotor(m.Handle(k))
}

// pickWeightedByDistance draws one candidate with probability proportional
// to 1/(dist+eps), so nearer springs are more likely to capture the head
// without excluding farther ones outright.
func (e *Ensemble) pickWeightedByDistance(candidates []attachCandidate) attachCandidate {
	const eps = 1e-9
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		weights[i] = 1 / (c.dist + eps)
		total += weights[i]
	}
	r := e.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return candidates[i]
		}
		r -= w
	}
	return candidates[len(candidates)-1]
}

// tryDetach applies the end-detachment rate Kend when the head sits at
// either tip of its filament and the interior-detachment rate Koff otherwise
// (spec.md §4.7); a detached head becomes Free at its last bound position.
func (e *Ensemble) tryDetach(m *Motor, k int, fils []*filament.Filament, dt float64) {
	h := &m.Heads[k]
	f := fils[h.FilIdx]
	s := f.Springs[h.SpringIdx]
	atFilamentEnd := (h.SpringIdx == 0 && h.PosOnSpring <= 0) ||
		(h.SpringIdx == len(f.Springs)-1 && h.PosOnSpring >= s.Length)

	rate := m.Koff
	if atFilamentEnd {
		rate = m.Kend
	}
	if e.rng.Float64() >= rateProb(rate, dt) {
		return
	}
	x, y := m.HeadPos(k, fils)
	s.DetachMotor(m.Handle(k))
	h.State = Free
	h.X, h.Y = x, y
}

// walk advances an Active motor's bound head toward the spring's plus end
// (increasing PosOnSpring) at a load-dependent velocity v0*(1-f/fstall)
// clamped to [0,v0]; Passive crosslinkers (V0 == 0) never walk. Walking past
// the end of the current spring carries the head onto the next spring
// (SpringIdx+1, away from bead 0), per spec.md §4.7. At the filament's plus
// end the head stops at the tip and stays bound; tryDetach then applies the
// end rate Kend on the following update.
func (e *Ensemble) walk(m *Motor, k int, fils []*filament.Filament, dt float64) {
	if m.V0 == 0 {
		return
	}
	h := &m.Heads[k]
	f := fils[h.FilIdx]
	s := f.Springs[h.SpringIdx]

	load := m.Force[0]*s.Direction[0] + m.Force[1]*s.Direction[1]
	if k == 0 {
		load = -load
	}
	v := m.V0 * (1 - load/m.FStall)
	if v < 0 {
		v = 0
	}
	if v > m.V0 {
		v = m.V0
	}
	h.PosOnSpring += v * dt

	for h.PosOnSpring > s.Length {
		if h.SpringIdx == len(f.Springs)-1 {
			h.PosOnSpring = s.Length
			break
		}
		h.PosOnSpring -= s.Length
		s.DetachMotor(m.Handle(k))
		h.SpringIdx++
		s = f.Springs[h.SpringIdx]
		s.AttachMotor(m.Handle(k))
	}
}

// diffuseFree moves a free head by one overdamped step with drag Damp: a
// drift of (motor spring force on this head)*dt/Damp, which pulls a stretched
// motor's free head toward the other head, plus a Gaussian kick of variance
// 2*dt/Damp per axis drawn from the ensemble's own rng stream (no temperature
// factor: the free head has no thermostat of its own). The spring force is
// the one left by the motor's last RefreshGeometry.
func (e *Ensemble) diffuseFree(m *Motor, k int, bx *box.Box, dt float64) {
	if m.Damp <= 0 {
		return
	}
	h := &m.Heads[k]
	fx, fy := m.Force[0], m.Force[1] // force on head 0
	if k == 1 {
		fx, fy = -fx, -fy
	}
	sigma := math.Sqrt(2 * dt / m.Damp)
	dx := fx*dt/m.Damp + sigma*e.gaussian()
	dy := fy*dt/m.Damp + sigma*e.gaussian()
	h.X, h.Y = bx.Pos(h.X+dx, h.Y+dy)
}

// rateProb returns the probability of a first-order event of rate occurring
// within dt: 1 - exp(-rate*dt), per spec.md §4.7's attach/detach rules.
func rateProb(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}

// gaussian draws one standard-normal variate via the Box-Muller transform
// from the ensemble's own uniform stream.
func (e *Ensemble) gaussian() float64 {
	u1 := e.rng.Float64()
	if u1 <= 0 {
		u1 = 1e-300
	}
	u2 := e.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// DetachAll clears every bound head's motor-set membership and marks it Free
// at its current position; used before a fracture splits a filament out from
// under attached motors (spec.md §4.5).
func (e *Ensemble) DetachAll(fils []*filament.Filament, filIdx int) {
	for _, m := range e.Motors {
		for k := 0; k < 2; k++ {
			h := &m.Heads[k]
			if h.State == Bound && h.FilIdx == filIdx {
				x, y := m.HeadPos(k, fils)
				fils[filIdx].Springs[h.SpringIdx].DetachMotor(m.Handle(k))
				h.State = Free
				h.X, h.Y = x, y
			}
		}
	}
}
