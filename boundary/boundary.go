// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package boundary implements the periodic and no-slip boundary
// treatment applied at the neighbor-pair level (spec.md §4.H), plus the
// inflow/outflow callback contract.
package boundary

import (
	"math"

	"github.com/cpmech/gosph/particle"
)

// WrapPairDisplacement applies the periodic correction to a pair
// displacement rij, in place, for every periodic axis whose separation
// exceeds twice the cell_factor*h threshold. The sign is chosen from
// the relative cell coordinates of the two particles.
func WrapPairDisplacement(rij *[3]float64, celli, cellj [3]int, periodic [3]bool, domSize [3]float64, h, cellFactor float64) {
	threshold := 2 * cellFactor * h
	for k := 0; k < 3; k++ {
		if !periodic[k] || domSize[k] <= 0 {
			continue
		}
		if rij[k] > threshold || rij[k] < -threshold {
			if celli[k] > cellj[k] {
				rij[k] -= domSize[k]
			} else {
				rij[k] += domSize[k]
			}
		}
	}
}

// NoSlipResolve scans every fixed particle and records, on the free
// particle p, the unit normal and plane offset of the nearest wall
// particle (spec.md §4.H "No-slip virtual velocity"). It is a no-op if
// p has already been resolved this step.
func NoSlipResolve(p *particle.Particle, fixed []*particle.Particle) {
	if !p.IsFree || p.NSResolv || len(fixed) == 0 {
		return
	}
	bestDist := math.Inf(1)
	var bestWall [3]float64
	for _, w := range fixed {
		d := dist(p.X, w.X)
		if d < bestDist {
			bestDist = d
			bestWall = w.X
		}
	}
	if math.IsInf(bestDist, 1) {
		return
	}
	var normal [3]float64
	for k := 0; k < 3; k++ {
		normal[k] = (p.X[k] - bestWall[k]) / bestDist
	}
	p.NSNormal = normal
	p.NSPlane = -dot(normal, bestWall)
	p.NSDist = bestDist
	p.NSResolv = true
}

// VirtualVelocity returns the Morris et al. 1997 virtual velocity used
// to mirror a zero-velocity wall through a free particle; "other" is
// the position of the opposite particle in the pair (free or fixed,
// depending on which side p is on), and vFree is the free particle's
// velocity.
func VirtualVelocity(p *particle.Particle, other [3]float64, vFree [3]float64, initialDist float64) [3]float64 {
	num := math.Abs(dot(p.NSNormal, other) + p.NSPlane)
	den := math.Max(math.Sqrt(3.0)/4.0*initialDist, p.NSDist)
	factor := math.Max(-0.5, -num/den)
	return scale(vFree, factor)
}

// InCon, OutCon, AllCon are scenario-supplied callbacks invoked for
// particles in designated inflow/outflow bands, prescribing v and
// density each step (spec.md §4.H). They are optional; a nil hook is
// simply skipped.
type InCon func(p *particle.Particle)
type OutCon func(p *particle.Particle)
type AllCon func(p *particle.Particle)

func dist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func scale(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}
