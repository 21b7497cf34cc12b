// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/particle"
)

func makeLine(n int, spacing, h float64) []*particle.Particle {
	ps := make([]*particle.Particle, n)
	for i := 0; i < n; i++ {
		x := [3]float64{float64(i) * spacing, 0, 0}
		ps[i] = particle.New(i, x, [3]float64{}, 1, 1000, h, true)
	}
	return ps
}

func Test_grid01(tst *testing.T) {

	chk.PrintTitle("grid01. every particle is reachable from its cell's HOC chain")

	ps := makeLine(10, 0.02, 0.01)
	g := Build(ps, 2, [3]bool{false, false, false}, 2, 0)

	found := make(map[int]bool)
	for h := range g.HOC {
		for idx := g.HOC[h]; idx != particle.None; idx = ps[idx].LinkNext {
			found[idx] = true
		}
	}
	if len(found) != len(ps) {
		tst.Errorf("expected all %d particles reachable, got %d", len(ps), len(found))
	}
}

func Test_grid02(tst *testing.T) {

	chk.PrintTitle("grid02. non-periodic bounding box is padded by hmax/2")

	ps := makeLine(3, 1.0, 0.1)
	g := Build(ps, 2, [3]bool{false, false, false}, 2, 0)

	if chk.Verbose {
		chk.PrintOk("blpf=%v trpr=%v\n", g.BLPF, g.TRPR)
	}
	if g.BLPF[0] > -0.05+1e-9 {
		tst.Errorf("expected BLPF[0] padded to <= -0.05, got %g", g.BLPF[0])
	}
	if g.TRPR[0] < 2.0+0.05-1e-9 {
		tst.Errorf("expected TRPR[0] padded to >= 2.05, got %g", g.TRPR[0])
	}
}

func Test_grid03(tst *testing.T) {

	chk.PrintTitle("grid03. periodic axis gets two aliased ghost columns")

	ps := makeLine(10, 0.1, 0.01)
	g := Build(ps, 2, [3]bool{true, false, false}, 2, 0.01)

	for j := 0; j < g.CellNo[1]; j++ {
		if g.HOC[g.Idx(g.CellNo[0]-1, j, 0)] != g.HOC[g.Idx(1, j, 0)] {
			tst.Errorf("ghost column N-1 not aliased to column 1")
		}
		if g.HOC[g.Idx(g.CellNo[0]-2, j, 0)] != g.HOC[g.Idx(0, j, 0)] {
			tst.Errorf("ghost column N-2 not aliased to column 0")
		}
	}
	if g.DomSize[0] <= 0 {
		tst.Errorf("expected a positive periodic domain size, got %g", g.DomSize[0])
	}
}

func Test_grid04(tst *testing.T) {

	chk.PrintTitle("grid04. Reset reinserts without recomputing bounds")

	ps := makeLine(5, 0.1, 0.01)
	g := Build(ps, 2, [3]bool{false, false, false}, 2, 0)
	blpf := g.BLPF

	for _, p := range ps {
		p.X[0] += 1e-4
	}
	g.Reset(ps)

	if g.BLPF != blpf {
		tst.Errorf("expected bounds unchanged by Reset, got %v vs %v", g.BLPF, blpf)
	}
	total := 0
	for h := range g.HOC {
		for idx := g.HOC[h]; idx != particle.None; idx = ps[idx].LinkNext {
			total++
		}
	}
	if total != len(ps) {
		tst.Errorf("expected %d particles after reset, found %d", len(ps), total)
	}
}

func Test_grid05(tst *testing.T) {

	chk.PrintTitle("grid05. empty particle set panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected a panic building a grid with no particles")
		}
	}()
	Build(nil, 2, [3]bool{false, false, false}, 2, 0)
}
