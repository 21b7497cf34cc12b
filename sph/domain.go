// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sph implements the per-step orchestration, pair interaction
// and CFL monitor that drive a particle collection through time
// (spec.md §4.D, §4.G). It wires together kernel, eos, visc,
// solidmodel, grid and boundary into the engine's Domain type.
package sph

import (
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/gosph/boundary"
	"github.com/cpmech/gosph/eos"
	"github.com/cpmech/gosph/grid"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/solidmodel"
	"github.com/cpmech/gosph/visc"
)

// pairRef records one (free, fixed) pair discovered during the
// neighbor sweep, carried over to the next step's no-slip pre-pass
// (spec.md §4.G step 4)
type pairRef struct {
	Free, Fixed int // indices into Domain.Particles
}

// Domain is the driver surface of spec.md §6: configuration, the live
// particle collection, the spatial index and the two optional hook
// points
type Domain struct {
	// configuration
	Dim              int
	Gravity          [3]float64
	Kernel           kernel.Kind
	EOS              eos.Kind
	Visc             visc.Kind
	Periodic         [3]bool
	NoSlip           bool
	Shepard          bool
	ShepardStride    int
	XSPHCoeff        float64
	NProc            int
	InitialDist      float64
	Cs, P0           float64
	ConstVelPeriodic float64 // >0 activates the constant-velocity x-zone
	ConstVelValue    [3]float64
	ConstVelPart2    bool // see SPEC_FULL.md §13: off by default, matches original_source's default-commented behavior

	RigidBody   bool
	RBTag       int
	AutoSaveInt float64 // simulated-time interval between restart snapshots

	// inflow/outflow bands (spec.md §4.H): particles carrying these tags
	// have InCon/OutCon invoked on them each step; particle.None disables
	// the corresponding band. AllCon, when set, runs over every particle
	// regardless of tag.
	InTag  int
	OutTag int

	// live state
	Particles []*particle.Particle
	Grid      *grid.Grid
	DomSize   [3]float64

	Step int
	Time float64

	PairsWithFixed []pairRef
	pairsMu        sync.Mutex

	Leaving []int // indices scheduled for removal this step (non-periodic escapees)
	leaveMu sync.Mutex

	RBForce    [3]float64
	RBForceVis [3]float64

	// AvgParticleVelocity is the mean x-velocity of the two particle
	// columns nearest the outflow face, reported when ConstVelPeriodic>0
	// (original_source's AvgParticleVelocity, spec.md §13 supplement)
	AvgParticleVelocity float64

	GeneralBefore GeneralHook
	GeneralAfter  GeneralHook

	InCon  boundary.InCon
	OutCon boundary.OutCon
	AllCon boundary.AllCon

	// ModelOf resolves the external constitutive model driving a given
	// Soil particle (spec.md §1's "core only calls advance particle
	// state by dt"); nil means no soil particles are present
	ModelOf func(p *particle.Particle) (solidmodel.Model, bool)
}

// cellFactor returns 3 when the quintic-spline kernel is active, else 2
// (spec.md §4.E)
func (dom *Domain) cellFactor() float64 {
	if dom.Kernel == kernel.QuinticSpline {
		return 3
	}
	return 2
}

// NewDomain constructs an empty domain with sane defaults; ShepardStride
// defaults to 30 (spec.md §9's open question — exposed, not hardcoded)
func NewDomain(dim int) *Domain {
	if dim != 2 && dim != 3 {
		chk.Panic("sph: dimension must be 2 or 3; got %d", dim)
	}
	return &Domain{
		Dim:           dim,
		Kernel:        kernel.Cubic,
		EOS:           eos.Linear,
		Visc:          visc.Morris,
		ShepardStride: 30,
		NProc:         1,
		InTag:         particle.None,
		OutTag:        particle.None,
	}
}

// AddSingleParticle appends one particle and returns it
func (dom *Domain) AddSingleParticle(tag int, x, v [3]float64, mass, density, h float64, isFree bool) *particle.Particle {
	p := particle.New(tag, x, v, mass, density, h, isFree)
	p.Cs, p.P0 = dom.Cs, dom.P0
	dom.Particles = append(dom.Particles, p)
	return p
}

// AddBoxLength fills an axis-aligned box with a regular grid of
// particles spaced by initialDist, starting at corner blpf, spanning
// boxSize, all sharing the given tag/material/h/density/mass
func (dom *Domain) AddBoxLength(tag int, blpf, boxSize [3]float64, initialDist, mass, density, h float64, mat particle.Material, isFree bool) {
	nx := int(boxSize[0]/initialDist + 0.5)
	ny := int(boxSize[1]/initialDist + 0.5)
	nz := 1
	if dom.Dim == 3 {
		nz = int(boxSize[2]/initialDist + 0.5)
	}
	if nx < 1 {
		nx = 1
	}
	if ny < 1 {
		ny = 1
	}
	if nz < 1 {
		nz = 1
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k < nz; k++ {
				x := [3]float64{
					blpf[0] + float64(i)*initialDist,
					blpf[1] + float64(j)*initialDist,
					blpf[2] + float64(k)*initialDist,
				}
				p := particle.New(tag, x, [3]float64{}, mass, density, h, isFree)
				p.Mat = mat
				p.Cs, p.P0 = dom.Cs, dom.P0
				dom.Particles = append(dom.Particles, p)
			}
		}
	}
}

// AddRandomBox is AddBoxLength with a small random jitter applied to
// each particle's position, grounded on original_source's hexagonal
// close-packing jitter (there generated via rand()/RAND_MAX; here via
// gosl/rnd, seeded once by the caller via rnd.Init)
func (dom *Domain) AddRandomBox(tag int, blpf, boxSize [3]float64, initialDist, mass, density, h float64, mat particle.Material, isFree bool) {
	before := len(dom.Particles)
	dom.AddBoxLength(tag, blpf, boxSize, initialDist, mass, density, h, mat, isFree)
	jitter := initialDist / 10.0
	for _, p := range dom.Particles[before:] {
		for k := 0; k < dom.Dim; k++ {
			p.X[k] += (rnd.Float64(0, 1) - 0.5) * jitter
		}
	}
}

// DelParticles removes every particle whose tag matches, returning the
// number removed; a no-match is a fatal input error (spec.md §7)
func (dom *Domain) DelParticles(tag int) int {
	kept := dom.Particles[:0]
	removed := 0
	for _, p := range dom.Particles {
		if p.ID == tag {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed == 0 {
		chk.Panic("sph: DelParticles: no particle with tag %d", tag)
	}
	dom.Particles = kept
	return removed
}
