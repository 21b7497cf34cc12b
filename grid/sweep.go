// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"sync"
	"sync/atomic"

	"github.com/cpmech/gosph/particle"
)

// offset3D is the 13-direction forward half-stencil: every unordered
// pair of distinct neighboring cells is visited from exactly one of the
// two ends. The same-cell chain is not part of the stencil; sweepColumn
// visits it separately.
var offset3D = [13][3]int{
	{1, 0, 0}, {1, 1, 0}, {1, -1, 0}, {0, 1, 0},
	{1, 0, 1}, {1, 1, 1}, {1, -1, 1}, {0, 1, 1}, {0, -1, 1}, {0, 0, 1},
	{-1, 1, 1}, {-1, 0, 1}, {-1, -1, 1},
}

// offset2D is the 4-direction forward half-stencil for the z=0 plane
var offset2D = [4][3]int{
	{1, 0, 0}, {1, 1, 0}, {1, -1, 0}, {0, 1, 0},
}

// bounds returns, for axis k, the inclusive [lo, hi] range of cell
// indices that act as stencil centers: every real cell when
// non-periodic, or 1..N-2 when periodic. In the periodic case real cell
// 0 is visited through its ghost alias N-2, and ghost N-1 (the alias of
// cell 1) is never a center, so each real cell is a center exactly once.
func (g *Grid) bounds(k int) (lo, hi int) {
	if g.Periodic[k] {
		return 1, g.CellNo[k] - 2
	}
	return 0, g.CellNo[k] - 1
}

// pairIdx is a candidate neighbor pair of global particle indices
type pairIdx struct{ I, J int }

// Sweep walks the forward cell stencil of spec.md §4.F and invokes
// onPair once for every candidate neighbor pair (i, j), including
// same-cell pairs, using a fixed pool of nproc goroutines. Work is
// distributed dynamically: a shared column cursor is claimed via
// atomic.AddInt32 by whichever worker finishes its current column
// first, rather than a static per-worker partition, so that columns
// with uneven particle counts don't stall the pool.
func Sweep(g *Grid, particles []*particle.Particle, nproc int, onPair func(i, j int)) {
	iLo, iHi := g.bounds(0)
	jLo, jHi := g.bounds(1)
	kLo, kHi := 0, 0
	if g.Dim == 3 {
		kLo, kHi = g.bounds(2)
	}

	if nproc < 1 {
		nproc = 1
	}
	ncols := iHi - iLo + 1
	if ncols < 1 {
		return
	}

	var cursor int32 = -1
	var wg sync.WaitGroup
	wg.Add(nproc)
	for w := 0; w < nproc; w++ {
		go func() {
			defer wg.Done()
			// buf is thread-local: each worker owns the only reference to
			// it, so draining it needs no lock of its own. onPair (the
			// pair-interaction callback) is responsible for its own
			// per-particle locking and for serializing any shared list
			// it appends to (spec.md §5's coarse lock on pairs_with_fixed) —
			// Sweep's job is column scheduling, not interaction safety.
			var buf []pairIdx
			for {
				col := int(atomic.AddInt32(&cursor, 1)) + iLo
				if col > iHi {
					break
				}
				buf = buf[:0]
				g.sweepColumn(col, jLo, jHi, kLo, kHi, particles, &buf)
				for _, pr := range buf {
					onPair(pr.I, pr.J)
				}
			}
		}()
	}
	wg.Wait()
}

// sweepColumn visits every cell in column i and appends its candidate
// pairs (same-cell and forward-stencil) to buf. jLo/jHi and kLo/kHi are
// inclusive ranges (Sweep's dim==2 case already passes kLo==kHi==0, the
// single z-layer, so no override is needed here).
func (g *Grid) sweepColumn(i, jLo, jHi, kLo, kHi int, particles []*particle.Particle, buf *[]pairIdx) {
	for j := jLo; j <= jHi; j++ {
		for k := kLo; k <= kHi; k++ {
			h := g.Idx(i, j, k)
			sameCellPairs(g.HOC[h], particles, buf)

			if g.Dim == 2 {
				for _, o := range offset2D {
					g.stencilPairs(i, j, k, o, particles, buf)
				}
			} else {
				for _, o := range offset3D {
					g.stencilPairs(i, j, k, o, particles, buf)
				}
			}
		}
	}
}

// sameCellPairs enumerates all unordered pairs within one cell's chain
func sameCellPairs(head int, particles []*particle.Particle, buf *[]pairIdx) {
	for a := head; a != particle.None; a = particles[a].LinkNext {
		for b := particles[a].LinkNext; b != particle.None; b = particles[b].LinkNext {
			*buf = append(*buf, pairIdx{a, b})
		}
	}
}

// stencilPairs enumerates all pairs between cell (i,j,k) and its
// neighbor at offset o, skipping neighbor cells outside the grid
func (g *Grid) stencilPairs(i, j, k int, o [3]int, particles []*particle.Particle, buf *[]pairIdx) {
	ni, nj, nk := i+o[0], j+o[1], k+o[2]
	if ni < 0 || ni >= g.CellNo[0] || nj < 0 || nj >= g.CellNo[1] || nk < 0 || nk >= g.CellNo[2] {
		return
	}
	h := g.Idx(i, j, k)
	nh := g.Idx(ni, nj, nk)
	for a := g.HOC[h]; a != particle.None; a = particles[a].LinkNext {
		for b := g.HOC[nh]; b != particle.None; b = particles[b].LinkNext {
			*buf = append(*buf, pairIdx{a, b})
		}
	}
}
