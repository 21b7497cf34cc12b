// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"sort"
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/particle"
)

// bruteForcePairs returns every unordered pair within cutoff, as a
// reference to check Sweep's cell-list output against
func bruteForcePairs(ps []*particle.Particle, cutoff float64) map[[2]int]bool {
	want := make(map[[2]int]bool)
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X[0] - ps[j].X[0]
			dy := ps[i].X[1] - ps[j].X[1]
			r := dx*dx + dy*dy
			if r <= cutoff*cutoff {
				want[[2]int{i, j}] = true
			}
		}
	}
	return want
}

func Test_sweep01(tst *testing.T) {

	chk.PrintTitle("sweep01. Sweep finds every pair within the cell-size cutoff, exactly once")

	h := 0.01
	ps := make([]*particle.Particle, 0, 36)
	id := 0
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			x := [3]float64{float64(i) * 0.015, float64(j) * 0.015, 0}
			ps = append(ps, particle.New(id, x, [3]float64{}, 1, 1000, h, true))
			id++
		}
	}
	g := Build(ps, 2, [3]bool{false, false, false}, 2, 0)
	cutoff := g.CellSize[0]
	if g.CellSize[1] < cutoff {
		cutoff = g.CellSize[1]
	}

	want := bruteForcePairs(ps, cutoff)

	var mu sync.Mutex
	got := make(map[[2]int]bool)
	dup := false
	Sweep(g, ps, 4, func(i, j int) {
		mu.Lock()
		defer mu.Unlock()
		a, b := i, j
		if a > b {
			a, b = b, a
		}
		if got[[2]int{a, b}] {
			dup = true
		}
		got[[2]int{a, b}] = true
	})

	if dup {
		tst.Errorf("expected no duplicate pairs")
	}
	for k := range want {
		if !got[k] {
			tst.Errorf("missing expected pair %v", k)
		}
	}
	if chk.Verbose {
		var keys [][2]int
		for k := range got {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(a, b int) bool { return keys[a][0] < keys[b][0] })
	}
}

func Test_sweep02(tst *testing.T) {

	chk.PrintTitle("sweep02. a single particle produces no pairs")

	ps := []*particle.Particle{
		particle.New(0, [3]float64{0, 0, 0}, [3]float64{}, 1, 1000, 0.01, true),
	}
	g := Build(ps, 2, [3]bool{false, false, false}, 2, 0)
	count := 0
	Sweep(g, ps, 2, func(i, j int) { count++ })
	if count != 0 {
		tst.Errorf("expected no pairs for a single particle, got %d", count)
	}
}
