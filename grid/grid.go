// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements the uniform cell index (spec.md §4.E): an
// axis-aligned bounding box over the particle set, divided into cells
// of edge length cellFactor*hmax, each holding a head-of-chain (HOC)
// pointer into a per-particle linked list. Periodic axes get two ghost
// cell layers whose HOC entries alias the two opposite real columns.
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/gosph/particle"
)

// Grid is the spatial index covering the current particle set
type Grid struct {
	CellSize [3]float64 // cell edge length per axis
	CellNo   [3]int     // number of cells per axis, including ghost layers
	BLPF     [3]float64 // bottom-left-front corner
	TRPR     [3]float64 // top-right-rear corner
	DomSize  [3]float64 // domain size per axis (only set when periodic)
	Periodic [3]bool
	Dim      int
	Hmax     float64
	HOC      []int // flattened CellNo[0]*CellNo[1]*CellNo[2], sentinel particle.None
}

// Idx returns the flattened HOC index for cell (i,j,k)
func (g *Grid) Idx(i, j, k int) int {
	return (i*g.CellNo[1]+j)*g.CellNo[2] + k
}

// Build (re)computes the bounding box, cell counts and HOC/link-next
// chains for the given particle set. Each periodic face is padded by
// jitter/50 (jitter is R of spec.md §4.E's R/50); cellFactor is 3 when the
// quintic-spline kernel is active, else 2.
func Build(particles []*particle.Particle, dim int, periodic [3]bool, cellFactor, jitter float64) *Grid {
	if dim != 2 && dim != 3 {
		chk.Panic("grid: dimension must be 2 or 3; got %d", dim)
	}
	if len(particles) == 0 {
		chk.Panic("grid: cannot build an index over an empty particle set")
	}

	g := &Grid{Periodic: periodic, Dim: dim}

	g.BLPF = particles[0].X
	g.TRPR = particles[0].X
	hmax := particles[0].H
	for _, p := range particles {
		for k := 0; k < 3; k++ {
			g.TRPR[k] = utl.Max(g.TRPR[k], p.X[k])
			g.BLPF[k] = utl.Min(g.BLPF[k], p.X[k])
		}
		hmax = utl.Max(hmax, p.H)
	}
	g.Hmax = hmax

	naxes := 3
	if dim == 2 {
		naxes = 2
	}
	for k := 0; k < naxes; k++ {
		if periodic[k] {
			g.TRPR[k] += jitter / 50.0
			g.BLPF[k] -= jitter / 50.0
		} else {
			g.TRPR[k] += hmax / 2.0
			g.BLPF[k] -= hmax / 2.0
		}
	}
	for k := naxes; k < 3; k++ {
		g.CellNo[k] = 1
	}

	for k := 0; k < naxes; k++ {
		span := g.TRPR[k] - g.BLPF[k]
		raw := span / (cellFactor * hmax)
		n := int(math.Floor(raw))
		if math.Ceil(raw)-raw < hmax/10.0 {
			n = int(math.Ceil(raw))
		}
		if n < 1 {
			n = 1
		}
		g.CellNo[k] = n
		g.CellSize[k] = span / float64(n)
	}

	for k := 0; k < naxes; k++ {
		if periodic[k] {
			g.DomSize[k] = g.TRPR[k] - g.BLPF[k]
			g.CellNo[k] += 2
		}
	}

	total := g.CellNo[0] * g.CellNo[1] * g.CellNo[2]
	g.HOC = make([]int, total)
	for i := range g.HOC {
		g.HOC[i] = particle.None
	}

	g.insert(particles)
	g.aliasGhostColumns()
	return g
}

// insert performs the head-insertion linked-list build of spec.md §4.E
func (g *Grid) insert(particles []*particle.Particle) {
	for idx, p := range particles {
		p.LinkNext = particle.None
		var cell [3]int
		for k := 0; k < 3; k++ {
			if g.CellSize[k] == 0 {
				cell[k] = 0
				continue
			}
			c := int(math.Floor((p.X[k] - g.BLPF[k]) / g.CellSize[k]))
			if c < 0 {
				if g.BLPF[k]-p.X[k] <= g.Hmax {
					c = 0
				} else {
					io.Pfred("grid: particle %d (idx %d) left the domain on axis %d (low side)\n", p.ID, idx, k)
				}
			}
			if c >= g.CellNo[k] {
				if p.X[k]-g.TRPR[k] <= g.Hmax {
					c = g.CellNo[k] - 1
				} else {
					io.Pfred("grid: particle %d (idx %d) left the domain on axis %d (high side)\n", p.ID, idx, k)
				}
			}
			cell[k] = c
		}
		p.Cell = cell
		h := g.Idx(cell[0], cell[1], cell[2])
		p.LinkNext = g.HOC[h]
		g.HOC[h] = idx
	}
}

// aliasGhostColumns wires the ghost cell layers of each periodic axis
// to their opposite real columns: column 0 <-> column N-2, column 1 <-> column N-1
func (g *Grid) aliasGhostColumns() {
	if g.Periodic[0] {
		for j := 0; j < g.CellNo[1]; j++ {
			for k := 0; k < g.CellNo[2]; k++ {
				g.HOC[g.Idx(g.CellNo[0]-1, j, k)] = g.HOC[g.Idx(1, j, k)]
				g.HOC[g.Idx(g.CellNo[0]-2, j, k)] = g.HOC[g.Idx(0, j, k)]
			}
		}
	}
	if g.Dim == 3 && g.Periodic[1] {
		for i := 0; i < g.CellNo[0]; i++ {
			for k := 0; k < g.CellNo[2]; k++ {
				g.HOC[g.Idx(i, g.CellNo[1]-1, k)] = g.HOC[g.Idx(i, 1, k)]
				g.HOC[g.Idx(i, g.CellNo[1]-2, k)] = g.HOC[g.Idx(i, 0, k)]
			}
		}
	} else if g.Dim == 2 && g.Periodic[1] {
		for i := 0; i < g.CellNo[0]; i++ {
			g.HOC[g.Idx(i, g.CellNo[1]-1, 0)] = g.HOC[g.Idx(i, 1, 0)]
			g.HOC[g.Idx(i, g.CellNo[1]-2, 0)] = g.HOC[g.Idx(i, 0, 0)]
		}
	}
	if g.Dim == 3 && g.Periodic[2] {
		for i := 0; i < g.CellNo[0]; i++ {
			for j := 0; j < g.CellNo[1]; j++ {
				g.HOC[g.Idx(i, j, g.CellNo[2]-1)] = g.HOC[g.Idx(i, j, 1)]
				g.HOC[g.Idx(i, j, g.CellNo[2]-2)] = g.HOC[g.Idx(i, j, 0)]
			}
		}
	}
}

// Reset clears the HOC array and every particle's link-next to the
// sentinel, without recomputing bounds (spec.md §4.G step 13's
// lighter-weight "rebuild" used when the bounding box has not changed)
func (g *Grid) Reset(particles []*particle.Particle) {
	for i := range g.HOC {
		g.HOC[i] = particle.None
	}
	for _, p := range particles {
		p.LinkNext = particle.None
	}
	g.insert(particles)
	g.aliasGhostColumns()
}
