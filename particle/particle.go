// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package particle defines the per-particle mutable record shared by
// every component of the SPH core. The record itself is treated as an
// opaque collaborator by the scenario driver; this package only
// exposes the fields the core reads and writes plus the lock and the
// leap-frog Move operation.
package particle

import (
	"sync"

	"github.com/cpmech/gosl/chk"
)

// Material selects the physical role of a particle
type Material int

// materials
const (
	Fluid Material = iota
	BoundaryWall
	Soil
)

// None is the end-of-chain / empty-cell sentinel used by the grid
const None = -1

// Particle is the unit of simulation state (spec.md §3)
type Particle struct {

	// identity & kinematics
	ID     int        // tag used for grouping/selection
	IsFree bool        // if false, x and v are externally prescribed
	X      [3]float64  // position
	V      [3]float64  // velocity
	VHalf  [3]float64  // mid-step velocity for leap-frog
	A      [3]float64  // acceleration accumulator, reset each step

	// mass/thermodynamics
	Mass        float64
	Density     float64 // ρ
	DensityHalf float64 // ρb
	DDensity    float64 // ρ̇ accumulator
	RefDensity  float64 // ρ0
	Pressure    float64

	// smoothing
	H    float64 // current smoothing length
	HRef float64 // initial h

	// numerical policy
	Cs            float64 // local sound speed parameter
	P0            float64 // background pressure
	PresEq        int     // EOS selector 0/1/2
	Alpha, Beta   float64 // artificial-viscosity coefficients
	TI            float64 // tensile-instability coefficient
	TIInitialDist float64 // tensile-instability correction reference distance
	Mu            float64 // dynamic viscosity
	MuRef         float64
	Mat           Material
	Shepard       bool // enable density re-normalization

	// spatial index state
	Cell     [3]int // owning cell indices
	LinkNext int    // index of next particle in the same cell's chain, or None

	// concurrency
	Lock sync.Mutex

	// no-slip scratch
	NSNormal [3]float64 // unit vector nearest fixed wall particle -> this free particle
	NSPlane  float64    // plane offset: -NSNormal·x_wall
	NSResolv bool       // resolved this step
	NSDist   float64    // current nearest distance, reset to the large sentinel 1e15 each step

	// auxiliary accumulators (reset each step)
	VXSPH  [3]float64
	ZWab   float64
	SumDen float64
	Visc   [3]float64
}

// New constructs a particle with initial position/velocity/mass/density/h
func New(tag int, x, v [3]float64, mass, density, h float64, isFree bool) *Particle {
	if mass <= 0 {
		chk.Panic("particle: mass must be positive; got %g", mass)
	}
	if density <= 0 {
		chk.Panic("particle: density must be positive; got %g", density)
	}
	if h <= 0 {
		chk.Panic("particle: h must be positive; got %g", h)
	}
	p := &Particle{
		ID:          tag,
		IsFree:      isFree,
		X:           x,
		V:           v,
		VHalf:       v,
		Mass:        mass,
		Density:     density,
		DensityHalf: density,
		RefDensity:  density,
		H:           h,
		HRef:        h,
		LinkNext:    None,
	}
	return p
}

// ResetStepAccumulators zeroes the per-step accumulators and no-slip
// scratch, seeding the acceleration with gravity (spec.md §4.G.1)
func (o *Particle) ResetStepAccumulators(gravity [3]float64) {
	o.A = gravity
	o.DDensity = 0
	o.VXSPH = [3]float64{}
	o.ZWab = 0
	o.SumDen = 0
	o.Visc = [3]float64{}
	o.NSNormal = [3]float64{}
	o.NSPlane = 0
	o.NSResolv = false
	o.NSDist = 1e15
}

// Move applies one leap-frog step to this particle (spec.md §4.C, §4.G.8).
// Non-free particles are left untouched except for density, which may
// still evolve via DDensity unless the particle is also a wall.
//
//	domSize   -- domain size per axis, used for periodic wrap
//	periodic  -- which axes are periodic
//	trpr,blpf -- top-right/bottom-left-front corners of the cell-index box
//	step      -- current step counter, used for the Shepard cadence
//	shepardEvery -- Shepard re-normalization stride (0 disables)
func (o *Particle) Move(dt float64, domSize [3]float64, periodic [3]bool, trpr, blpf [3]float64, step, shepardEvery int) {
	if o.IsFree {
		for k := 0; k < 3; k++ {
			o.VHalf[k] += o.A[k] * dt
			o.X[k] += o.VHalf[k] * dt
			o.V[k] = o.VHalf[k] + 0.5*o.A[k]*dt
		}
	}
	if o.IsFree || o.Mat != BoundaryWall {
		o.DensityHalf += o.DDensity * dt
		o.Density = o.DensityHalf
	}

	if o.IsFree {
		for k := 0; k < 3; k++ {
			if !periodic[k] {
				continue
			}
			if o.X[k] > trpr[k] {
				o.X[k] -= domSize[k]
			} else if o.X[k] < blpf[k] {
				o.X[k] += domSize[k]
			}
		}
	}

	if o.Shepard && shepardEvery > 0 && step%shepardEvery == 0 && o.ZWab > 1e-15 {
		o.Density = o.SumDen / o.ZWab
		o.DensityHalf = o.Density
	}
}
