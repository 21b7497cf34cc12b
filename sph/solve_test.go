// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/gosph/eos"
	"github.com/cpmech/gosph/grid"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
)

// Test_solve01 is spec.md §8 property 1 (pair exhaustiveness): over a
// random particle cloud, every unordered pair within cell_factor*hbar
// is visited by Interact exactly once, never zero, never twice.
func Test_solve01(tst *testing.T) {

	chk.PrintTitle("solve01. pair exhaustiveness over a random cloud")

	rnd.Init(4321)
	dom := NewDomain(2)
	dom.Kernel = kernel.Cubic
	dom.EOS = eos.Linear
	h := 0.01
	n := 80
	for i := 0; i < n; i++ {
		x := [3]float64{rnd.Float64(0, 0.2), rnd.Float64(0, 0.2), 0}
		p := dom.AddSingleParticle(i, x, [3]float64{}, 1, 1000, h, true)
		p.RefDensity, p.Cs = 1000, 10
	}
	dom.Grid = grid.Build(dom.Particles, dom.Dim, dom.Periodic, dom.cellFactor(), dom.InitialDist)
	dom.DomSize = dom.Grid.DomSize
	for _, p := range dom.Particles {
		p.ResetStepAccumulators([3]float64{})
	}

	counts := make(map[[2]int]int)
	grid.Sweep(dom.Grid, dom.Particles, 4, func(i, j int) {
		a, b := i, j
		if a > b {
			a, b = b, a
		}
		counts[[2]int{a, b}]++
		dom.Interact(i, j)
	})

	cutoff := dom.cellFactor() * h
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := dom.Particles[i].X[0] - dom.Particles[j].X[0]
			dy := dom.Particles[i].X[1] - dom.Particles[j].X[1]
			r := math.Sqrt(dx*dx + dy*dy)
			c := counts[[2]int{i, j}]
			if r <= cutoff && c != 1 {
				tst.Errorf("pair (%d,%d) at r=%g: expected exactly 1 visit, got %d", i, j, r, c)
			}
			if c > 1 {
				tst.Errorf("pair (%d,%d): duplicate visit count %d", i, j, c)
			}
		}
	}
}

// Test_solve02 is spec.md §8 S5: displacing a particle far outside the
// domain on a non-periodic axis drops it after the leave-check.
func Test_solve02(tst *testing.T) {

	chk.PrintTitle("solve02. non-periodic escapee is dropped after leave-check")

	dom := NewDomain(2)
	dom.Kernel = kernel.Cubic
	dom.EOS = eos.Linear
	for i := 0; i < 9; i++ {
		x := [3]float64{float64(i%3) * 0.02, float64(i/3) * 0.02, 0}
		p := dom.AddSingleParticle(i, x, [3]float64{}, 1, 1000, 0.01, true)
		p.RefDensity, p.Cs = 1000, 10
	}
	dom.buildGrid()
	before := len(dom.Particles)

	// displace one particle far outside the padded bounding box
	dom.Particles[0].X[0] = dom.Grid.TRPR[0] + 10*dom.Grid.Hmax

	dropped := dom.dropLeavingParticles()
	if !dropped {
		tst.Errorf("expected a particle to be reported as leaving")
	}
	if len(dom.Particles) != before-1 {
		tst.Errorf("expected %d particles remaining, got %d", before-1, len(dom.Particles))
	}
}

// Test_solve03 is spec.md §8 property 5 (periodic symmetry): a pair
// separated by L-eps on a periodic domain of length L produces the same
// force magnitude as separation eps on a non-periodic domain.
func Test_solve03(tst *testing.T) {

	chk.PrintTitle("solve03. periodic wrap reproduces the near-separation force")

	eps := 0.0005
	L := 0.1
	h := 0.002

	// non-periodic: separation eps
	domA := NewDomain(2)
	domA.Kernel, domA.EOS = kernel.Cubic, eos.Linear
	domA.DomSize = [3]float64{L, L, L}
	pa1 := particle.New(1, [3]float64{0, 0, 0}, [3]float64{}, 1, 1010, h, true)
	pa2 := particle.New(2, [3]float64{eps, 0, 0}, [3]float64{}, 1, 990, h, true)
	pa1.RefDensity, pa2.RefDensity = 1000, 1000
	pa1.Cs, pa2.Cs = 10, 10
	domA.Particles = []*particle.Particle{pa1, pa2}
	pa1.ResetStepAccumulators([3]float64{})
	pa2.ResetStepAccumulators([3]float64{})
	domA.Interact(0, 1)
	magA := math.Sqrt(pa1.A[0]*pa1.A[0] + pa1.A[1]*pa1.A[1])

	// periodic: separation L-eps, wraps to the same eps gap
	domB := NewDomain(2)
	domB.Kernel, domB.EOS = kernel.Cubic, eos.Linear
	domB.Periodic = [3]bool{true, false, false}
	domB.DomSize = [3]float64{L, L, L}
	pb1 := particle.New(1, [3]float64{0, 0, 0}, [3]float64{}, 1, 1010, h, true)
	pb2 := particle.New(2, [3]float64{L - eps, 0, 0}, [3]float64{}, 1, 990, h, true)
	pb1.RefDensity, pb2.RefDensity = 1000, 1000
	pb1.Cs, pb2.Cs = 10, 10
	pb1.Cell, pb2.Cell = [3]int{0, 0, 0}, [3]int{9, 0, 0}
	domB.Particles = []*particle.Particle{pb1, pb2}
	pb1.ResetStepAccumulators([3]float64{})
	pb2.ResetStepAccumulators([3]float64{})
	domB.Interact(0, 1)
	magB := math.Sqrt(pb1.A[0]*pb1.A[0] + pb1.A[1]*pb1.A[1])

	if math.Abs(magA-magB) > 1e-10*math.Max(1, magA) {
		tst.Errorf("expected matching force magnitude, got %g vs %g", magA, magB)
	}
}
