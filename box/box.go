// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package box implements the simulation domain: its extents, boundary
// condition and the Lees-Edwards shear state used to compute minimum-image
// displacements and canonical bead positions.
package box

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Kind identifies a boundary condition
type Kind int

// boundary condition kinds
const (
	Open Kind = iota
	Periodic
	LeesEdwards
	XPeriodic
	YPeriodic
)

// String implements fmt.Stringer
func (k Kind) String() string {
	switch k {
	case Open:
		return "OPEN"
	case Periodic:
		return "PERIODIC"
	case LeesEdwards:
		return "LEES_EDWARDS"
	case XPeriodic:
		return "XPERIODIC"
	case YPeriodic:
		return "YPERIODIC"
	}
	return "UNKNOWN"
}

// ParseKind converts a configuration string (e.g. "LEES-EDWARDS") into a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "OPEN":
		return Open, nil
	case "PERIODIC":
		return Periodic, nil
	case "LEES-EDWARDS", "LEES_EDWARDS":
		return LeesEdwards, nil
	case "XPERIODIC":
		return XPeriodic, nil
	case "YPERIODIC":
		return YPeriodic, nil
	}
	return Open, chk.Err("box: unknown boundary condition kind %q", s)
}

// Box holds the field-of-view of the simulation, its boundary condition, and
// the current Lees-Edwards shear offset.
//
// DrX advances through UpdateStrain (inp.Build also sets it directly when
// restarting from a strained state); Rij reads it, so any minimum-image
// vector computed after a strain update reflects the new shear immediately.
type Box struct {
	Kind Kind    // boundary condition
	Lx   float64 // x extent
	Ly   float64 // y extent
	DrX  float64 // Lees-Edwards shift (signed length)
}

// New returns a Box with the given extents and boundary condition
func New(kind Kind, lx, ly float64) *Box {
	return &Box{Kind: kind, Lx: lx, Ly: ly}
}

// Rij returns the minimum-image displacement for a raw displacement (dx,dy)
func (o *Box) Rij(dx, dy float64) (rx, ry float64) {
	rx, ry = dx, dy
	switch o.Kind {
	case Periodic:
		rx = wrap(rx, o.Lx)
		ry = wrapShift(ry, o.Ly, &rx, 0)
	case LeesEdwards:
		ry = wrapShift(ry, o.Ly, &rx, o.DrX)
		rx = wrap(rx, o.Lx)
	case XPeriodic:
		rx = wrap(rx, o.Lx)
	case YPeriodic:
		ry = wrap(ry, o.Ly)
	case Open:
		// identity
	}
	return
}

// wrap returns dx shifted by integer multiples of L so that |dx| <= L/2
func wrap(dx, L float64) float64 {
	if L <= 0 {
		return dx
	}
	return dx - L*math.Round(dx/L)
}

// wrapShift wraps dy by L and, whenever a nonzero number of wraps occurred,
// shifts rx by -n*shift (the Lees-Edwards x-coupling); shift == 0 reduces to
// plain periodic wrapping in y.
func wrapShift(dy, L float64, rx *float64, shift float64) float64 {
	if L <= 0 {
		return dy
	}
	n := math.Round(dy / L)
	if n != 0 && shift != 0 {
		*rx -= n * shift
	}
	return dy - L*n
}

// Pos canonicalizes an absolute position into [-L/2, L/2) on each periodic axis
func (o *Box) Pos(x, y float64) (px, py float64) {
	px, py = x, y
	switch o.Kind {
	case Periodic, LeesEdwards:
		px = canon(px, o.Lx)
		py = canon(py, o.Ly)
	case XPeriodic:
		px = canon(px, o.Lx)
	case YPeriodic:
		py = canon(py, o.Ly)
	case Open:
		// identity
	}
	return
}

// canon maps x into [-L/2, L/2); x == L/2 canonicalizes to -L/2
func canon(x, L float64) float64 {
	if L <= 0 {
		return x
	}
	half := L / 2
	x = math.Mod(x+half, L)
	if x < 0 {
		x += L
	}
	return x - half
}

// UpdateStrain adds dGamma*Ly to DrX and returns the strain increment dGamma
// so the caller (the filament ensemble) can shear every bead's x-coordinate
// affinely by x += dGamma*y before the next step. For any Kind other than
// LeesEdwards it leaves DrX unchanged and returns 0.
func (o *Box) UpdateStrain(dGamma float64) float64 {
	if o.Kind != LeesEdwards {
		return 0
	}
	o.DrX += dGamma * o.Ly
	return dGamma
}
