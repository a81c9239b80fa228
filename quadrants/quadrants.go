// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package quadrants implements the uniform-grid spatial index ("quadrants")
// over spring segments that makes motor attachment O(1) amortized, per
// spec.md §4.8.
package quadrants

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/dinner-group/afines-go/box"
)

// SpringId identifies one spring by its owning filament's index and its
// index within that filament's Springs slice.
type SpringId struct {
	FilIdx    int
	SpringIdx int
}

// Grid is the uniform Nx*Ny cell grid over the box; Off disables indexing
// and makes every query return AllSprings.
type Grid struct {
	Nx, Ny     int
	bx         *box.Box
	bins       [][][]SpringId // [Nx][Ny] -> spring ids touching that cell
	AllSprings []SpringId     // flat list, always kept up to date
	Off        bool           // when true, Add/Get behave as a single flat bucket
	CheckDup   bool           // invariant-regression mode: panic on duplicate id in a cell
}

// New returns a Grid with gridFactor cells per unit length of the box along
// each axis (spec.md §6 "grid_factor").
func New(bx *box.Box, gridFactor float64, off, checkDup bool) *Grid {
	nx := int(utl.Max(1, math.Round(bx.Lx*gridFactor)))
	ny := int(utl.Max(1, math.Round(bx.Ly*gridFactor)))
	g := &Grid{Nx: nx, Ny: ny, bx: bx, Off: off, CheckDup: checkDup}
	g.Reset()
	return g
}

// Reset clears all bins and the flat list, ready for a fresh rebuild
func (g *Grid) Reset() {
	g.bins = make([][][]SpringId, g.Nx)
	for i := range g.bins {
		g.bins[i] = make([][]SpringId, g.Ny)
	}
	g.AllSprings = g.AllSprings[:0]
}

// cellIndex maps a coordinate into a wrapped cell index along an axis of n
// cells spanning length L centered at 0
func cellIndex(x, L float64, n int) int {
	if L <= 0 || n <= 0 {
		return 0
	}
	frac := (x + L/2) / L
	idx := int(math.Floor(frac * float64(n)))
	idx = ((idx % n) + n) % n
	return idx
}

// AddSpring computes the axis-aligned bounding box of segment (x0,y0)-(x1,y1)
// in the current box frame and inserts id into every cell it touches. Under
// Lees-Edwards, the y-traversal shifts the x-bounds by DrX per wrap, per
// spec.md §4.8.
func (g *Grid) AddSpring(id SpringId, x0, y0, x1, y1 float64) {
	g.AllSprings = append(g.AllSprings, id)
	if g.Off {
		return
	}

	xlo, xhi := utl.Min(x0, x1), utl.Max(x0, x1)
	ylo, yhi := utl.Min(y0, y1), utl.Max(y0, y1)

	iylo := cellIndex(ylo, g.bx.Ly, g.Ny)
	iyhi := cellIndex(yhi, g.bx.Ly, g.Ny)
	if iyhi < iylo {
		iyhi += g.Ny
	}
	for iy := iylo; iy <= iyhi; iy++ {
		wrappedIy := ((iy % g.Ny) + g.Ny) % g.Ny
		dx := 0.0
		if g.bx.Kind == box.LeesEdwards {
			wraps := iy / g.Ny
			dx = -float64(wraps) * g.bx.DrX
		}
		ixlo := cellIndex(xlo+dx, g.bx.Lx, g.Nx)
		ixhi := cellIndex(xhi+dx, g.bx.Lx, g.Nx)
		if ixhi < ixlo {
			ixhi += g.Nx
		}
		for ix := ixlo; ix <= ixhi; ix++ {
			wrappedIx := ((ix % g.Nx) + g.Nx) % g.Nx
			g.insert(wrappedIx, wrappedIy, id)
		}
	}
}

func (g *Grid) insert(ix, iy int, id SpringId) {
	if g.CheckDup {
		for _, existing := range g.bins[ix][iy] {
			if existing == id {
				chk.Panic("quadrants: duplicate spring id %v in cell (%d,%d)", id, ix, iy)
			}
		}
	}
	g.bins[ix][iy] = append(g.bins[ix][iy], id)
}

// GetAttachList rounds P=(px,py) to a cell (wrapping the index under
// periodic conditions) and returns that cell's spring id list; when Off, it
// returns the flat list of every spring (spec.md §4.8).
func (g *Grid) GetAttachList(px, py float64) []SpringId {
	if g.Off {
		return g.AllSprings
	}
	ix := cellIndex(px, g.bx.Lx, g.Nx)
	iy := cellIndex(py, g.bx.Ly, g.Ny)
	return g.bins[ix][iy]
}

// NCellsOccupied returns the total number of (cell, id) pairs stored,
// mostly useful for tests asserting the grid is actually populated.
func (g *Grid) NCellsOccupied() int {
	n := 0
	for _, col := range g.bins {
		for _, cell := range col {
			n += len(cell)
		}
	}
	return n
}
