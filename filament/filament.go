// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filament

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cpmech/gosl/la"

	"github.com/dinner-group/afines-go/box"
	"github.com/dinner-group/afines-go/simerr"
)

// Filament is an ordered chain of beads and the springs connecting
// consecutive beads; Springs[i] always connects Beads[i] and Beads[i+1].
type Filament struct {
	Id      int
	Beads   []*Bead
	Springs []*Spring

	Kb          float64 // bending modulus
	Dt          float64
	Temperature float64
	FracForce   float64 // force magnitude above which a spring fractures

	Kgrow      float64 // growth attempt rate
	Lgrow      float64 // rest-length increment per growth event
	L0Min      float64
	L0Max      float64
	MaxSprings int

	rng *rand.Rand // per-filament Brownian noise stream (spec.md §9: split RNG per filament)

	// accumulated per-filament energies/virials, refreshed by UpdateStretching/UpdateBending.
	// VirStretch and VirBend are 2x2 row-major tensors (la.MatAlloc), [0][0]=XX,
	// [0][1]=XY, [1][0]=YX, [1][1]=YY.
	PEStretch float64
	PEBend    float64
	VirStretch [][]float64
	VirBend    [][]float64

	KEVel float64 // sum |v|^2 accumulated during Integrate
	KEVir float64 // sum -0.5*(F+Fbrn).pos accumulated during Integrate
}

// New returns a Filament built from the given bead positions, all connected
// by springs with rest length l0 and stiffness kl.
func New(id int, positions [][2]float64, length, viscosity, l0, kl float64, seed uint64) *Filament {
	f := &Filament{Id: id, rng: rand.New(rand.NewSource(seed)), VirStretch: la.MatAlloc(2, 2), VirBend: la.MatAlloc(2, 2)}
	f.Beads = make([]*Bead, len(positions))
	for i, p := range positions {
		f.Beads[i] = NewBead(p[0], p[1], length, viscosity)
	}
	f.Springs = make([]*Spring, 0, len(positions)-1)
	for i := 0; i < len(positions)-1; i++ {
		f.Springs = append(f.Springs, NewSpring(i, l0, kl))
	}
	return f
}

// Nbeads returns the number of beads
func (f *Filament) Nbeads() int { return len(f.Beads) }

// RefreshGeometry calls Step on every spring; callers use this after a
// growth/fracture mutation or before the first force pass of a step.
func (f *Filament) RefreshGeometry(bx *box.Box) {
	for _, s := range f.Springs {
		s.Step(f.Beads[s.BeadIdx], f.Beads[s.BeadIdx+1], bx)
	}
}

// UpdateStretching recomputes every spring's force and accumulates the
// filament's stretching energy and virial (spec.md §4.2, §8 property 5).
func (f *Filament) UpdateStretching() {
	f.PEStretch = 0
	la.MatFill(f.VirStretch, 0)
	for _, s := range f.Springs {
		s.UpdateForce()
		s.FilamentUpdate(f.Beads[s.BeadIdx], f.Beads[s.BeadIdx+1])
		f.PEStretch += s.Energy()
		xx, xy, yx, yy := s.Virial()
		f.VirStretch[0][0] += xx
		f.VirStretch[0][1] += xy
		f.VirStretch[1][0] += yx
		f.VirStretch[1][1] += yy
	}
}

// ZeroForces resets every bead's accumulated force to zero
func (f *Filament) ZeroForces() {
	for _, b := range f.Beads {
		b.ZeroForce()
	}
}

// Integrate advances every bead one overdamped-Langevin step of size Dt
// using the Leimkuhler-averaged Brownian force described in spec.md §4.3,
// then refreshes spring geometry. kB*T == f.Temperature (already in
// pN*um units, spec.md §6).
func (f *Filament) Integrate(bx *box.Box) {
	for _, b := range f.Beads {
		var brnX, brnY float64
		if f.Temperature > 0 && b.Gamma > 0 {
			bdPrefactor := math.Sqrt(f.Temperature / (2 * f.Dt * b.Gamma))
			xiX := distuv.Normal{Mu: 0, Sigma: 1, Src: f.rng}.Rand()
			xiY := distuv.Normal{Mu: 0, Sigma: 1, Src: f.rng}.Rand()
			brnX = bdPrefactor * b.Gamma * (xiX + b.prevRndX)
			brnY = bdPrefactor * b.Gamma * (xiY + b.prevRndY)
			b.prevRndX, b.prevRndY = xiX, xiY
		}
		vx := (b.Fx + brnX) / b.Gamma
		vy := (b.Fy + brnY) / b.Gamma
		f.KEVel += vx*vx + vy*vy
		f.KEVir += -0.5 * ((b.Fx + brnX) * b.X + (b.Fy + brnY) * b.Y)
		nx, ny := bx.Pos(b.X+vx*f.Dt, b.Y+vy*f.Dt)
		if math.IsNaN(nx) || math.IsNaN(ny) || math.IsInf(nx, 0) || math.IsInf(ny, 0) {
			simerr.Fatal(simerr.Numeric, -1, "bead position is not finite after integration", f.Id)
		}
		b.X, b.Y = nx, ny
		b.ZeroForce()
	}
	f.RefreshGeometry(bx)
}

// Shear applies the affine Lees-Edwards shift x += dGamma*y to every bead;
// called by the ensemble after Box.UpdateStrain.
func (f *Filament) Shear(dGamma float64) {
	if dGamma == 0 {
		return
	}
	for _, b := range f.Beads {
		b.X += dGamma * b.Y
	}
}

// FractureNode returns the index of the first spring whose force magnitude
// exceeds FracForce, or -1 if the filament is intact.
func (f *Filament) FractureNode() int {
	if f.FracForce <= 0 {
		return -1
	}
	for i, s := range f.Springs {
		mag := math.Hypot(s.Force[0], s.Force[1])
		if mag > f.FracForce {
			return i
		}
	}
	return -1
}

// Split cuts the filament at spring index `node`: beads [0..=node] become the
// first returned filament, beads [node+1:] the second. Attached motors must
// be detached by the caller (the ensemble owns motor state) before calling
// Split, per spec.md §4.5.
func (f *Filament) Split(node, id0, id1 int) (left, right *Filament) {
	leftBeads := f.Beads[:node+1]
	rightBeads := f.Beads[node+1:]

	left = &Filament{Id: id0, Kb: f.Kb, Dt: f.Dt, Temperature: f.Temperature, FracForce: f.FracForce,
		Kgrow: f.Kgrow, Lgrow: f.Lgrow, L0Min: f.L0Min, L0Max: f.L0Max, MaxSprings: f.MaxSprings,
		rng: f.rng, Beads: append([]*Bead{}, leftBeads...),
		VirStretch: la.MatAlloc(2, 2), VirBend: la.MatAlloc(2, 2)}
	right = &Filament{Id: id1, Kb: f.Kb, Dt: f.Dt, Temperature: f.Temperature, FracForce: f.FracForce,
		Kgrow: f.Kgrow, Lgrow: f.Lgrow, L0Min: f.L0Min, L0Max: f.L0Max, MaxSprings: f.MaxSprings,
		rng: f.rng, Beads: append([]*Bead{}, rightBeads...),
		VirStretch: la.MatAlloc(2, 2), VirBend: la.MatAlloc(2, 2)}

	for i := 0; i < len(left.Beads)-1; i++ {
		left.Springs = append(left.Springs, copySpring(i, f.Springs[i]))
	}
	for i := 0; i < len(right.Beads)-1; i++ {
		right.Springs = append(right.Springs, copySpring(i, f.Springs[node+1+i]))
	}
	return
}

// copySpring returns a fresh spring at beadIdx carrying over src's rest
// length, stiffness and FENE parameters, so a fracture never silently
// reverts a FENE spring to the harmonic law.
func copySpring(beadIdx int, src *Spring) *Spring {
	s := NewSpring(beadIdx, src.L0, src.Kl)
	s.Fene, s.MaxExt, s.EpsExt = src.Fene, src.MaxExt, src.EpsExt
	return s
}
