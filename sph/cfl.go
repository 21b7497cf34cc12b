// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/particle"
)

// CFL computes tau = min over particles of 0.25*sqrt(h/|a|) (spec.md
// §4.G.11, §8 property 7). Particles with |a| < 1e-12 are treated as
// unconstrained (spec.md §9's open-question resolution) rather than
// dividing by a near-zero acceleration. warn reports whether dt exceeds
// the computed bound.
func CFL(particles []*particle.Particle, dt float64) (tau float64, warn bool) {
	tau = math.Inf(1)
	for _, p := range particles {
		amag := math.Sqrt(p.A[0]*p.A[0] + p.A[1]*p.A[1] + p.A[2]*p.A[2])
		if amag < 1e-12 {
			continue
		}
		t := 0.25 * math.Sqrt(p.H/amag)
		if t < tau {
			tau = t
		}
	}
	if math.IsInf(tau, 1) {
		return tau, false
	}
	return tau, dt > tau
}

// ViscosityBound returns the two bounds checked once at init (spec.md
// §4.G.11): the sound-speed CFL bound 0.25*h/(c+u) and the viscous
// diffusion bound 0.125*h^2*rho/mu
func ViscosityBound(h, c, u, rho, mu float64) (soundBound, viscBound float64) {
	soundBound = 0.25 * h / (c + u)
	if mu <= 0 {
		return soundBound, math.Inf(1)
	}
	viscBound = 0.125 * h * h * rho / mu
	return soundBound, viscBound
}

// checkInitBounds logs (does not abort) if dt violates either of the
// worst-case (tightest) init-time bounds of spec.md §4.G.11 across the
// particle ensemble
func checkInitBounds(dt, soundBound, viscBound float64) {
	if dt > soundBound {
		io.Pfyel("sph: dt=%g exceeds sound-speed CFL bound %g\n", dt, soundBound)
	}
	if dt > viscBound {
		io.Pfyel("sph: dt=%g exceeds viscous diffusion bound %g\n", dt, viscBound)
	}
}
