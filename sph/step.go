// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

import (
	"math"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/boundary"
	"github.com/cpmech/gosph/eos"
	"github.com/cpmech/gosph/grid"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/solidmodel"
	"github.com/cpmech/gosph/sphout"
)

// Solve runs the engine from the current state to tFinal, advancing by
// dt, writing an output snapshot every dtOut of simulated time and a
// restart snapshot every dom.AutoSaveInt (spec.md §4.G, §6).
func (dom *Domain) Solve(tFinal, dt, dtOut float64, fileKey string) error {
	if len(dom.Particles) == 0 {
		return nil
	}
	dom.checkInitBoundsAll(dt)
	dom.buildGrid()
	nextOut := dtOut
	nextSave := dom.AutoSaveInt
	outIdx := 0

	for dom.Time < tFinal {
		dom.stepOnce(dt)

		if dtOut > 0 && dom.Time >= nextOut {
			if err := sphout.WriteSnapshot(dom.Particles, dom.RBForce, dom.RBForceVis, fileKey, outIdx); err != nil {
				return err
			}
			outIdx++
			nextOut += dtOut
		}
		if dom.AutoSaveInt > 0 && dom.Time >= nextSave {
			if err := sphout.SaveRestart(dom.Particles, fileKey); err != nil {
				return err
			}
			nextSave += dom.AutoSaveInt
		}
	}
	return nil
}

// stepOnce runs the 13-step per-step orchestration of spec.md §4.G
func (dom *Domain) stepOnce(dt float64) {

	// 1. accumulator reset
	for _, p := range dom.Particles {
		p.ResetStepAccumulators(dom.Gravity)
	}

	// 2. pre-hook
	dom.callBefore()

	// 3. optional constant-velocity zone
	if dom.Periodic[0] && dom.ConstVelPeriodic > 0 {
		dom.applyConstVelZone()
	}

	// 3b. inflow/outflow prescription (spec.md §4.H): scenario-supplied
	// callbacks fix v/density on particles in designated entry/exit
	// bands before the sweep reads them
	dom.applyFlowCons()

	// 4. no-slip pre-pass: resolve wall normals from last step's pairs
	if dom.NoSlip {
		dom.resolveNoSlip()
	}

	// 5. clear pairs-with-fixed
	dom.PairsWithFixed = dom.PairsWithFixed[:0]

	// 6. sweep
	grid.Sweep(dom.Grid, dom.Particles, dom.NProc, dom.Interact)

	// 7. post-hook
	dom.callAfter()

	// 8. integrate
	for _, p := range dom.Particles {
		p.Move(dt, dom.DomSize, dom.Periodic, dom.Grid.TRPR, dom.Grid.BLPF, dom.Step, dom.shepardStrideOrZero())
		if p.Mat == particle.Soil {
			if err := solidmodel.Advance(p, dt, dom.ModelOf); err != nil {
				io.Pfred("sph: step %d: %v\n", dom.Step, err)
			}
		}
	}

	if dom.ConstVelPart2 && dom.Periodic[0] && dom.ConstVelPeriodic > 0 {
		dom.applyConstVelPart2()
	}
	if dom.ConstVelPeriodic > 0 {
		dom.reportAvgParticleVelocity()
	}

	// 9. rigid-body aggregate
	if dom.RigidBody {
		dom.aggregateRigidBody()
	}

	// 10. leave-check
	rebuiltByLeave := false
	if !anyPeriodic(dom.Periodic) {
		rebuiltByLeave = dom.dropLeavingParticles()
	}

	// 11. CFL monitor
	if tau, warn := CFL(dom.Particles, dt); warn {
		io.Pfyel("sph: step %d: dt=%g exceeds CFL bound tau=%g\n", dom.Step, dt, tau)
	}

	// 13. advance time; rebuild the cell index (unless the leave-check
	// already did, step 11's "automatically" note)
	dom.Time += dt
	dom.Step++
	if !rebuiltByLeave {
		dom.buildGrid()
	}
}

func anyPeriodic(p [3]bool) bool { return p[0] || p[1] || p[2] }

// checkInitBoundsAll runs the two once-at-init stability bounds of
// spec.md §4.G.11 over every particle, reporting only the tightest
// (worst-case) bound rather than one line per particle
func (dom *Domain) checkInitBoundsAll(dt float64) {
	worstSound, worstVisc := math.Inf(1), math.Inf(1)
	for _, p := range dom.Particles {
		if !p.IsFree {
			continue
		}
		c := eos.SoundSpeed(dom.EOS, p.Density, p.RefDensity, p.Cs)
		u := math.Sqrt(p.V[0]*p.V[0] + p.V[1]*p.V[1] + p.V[2]*p.V[2])
		sb, vb := ViscosityBound(p.H, c, u, p.Density, p.Mu)
		worstSound = math.Min(worstSound, sb)
		worstVisc = math.Min(worstVisc, vb)
	}
	checkInitBounds(dt, worstSound, worstVisc)
}

func (dom *Domain) shepardStrideOrZero() int {
	if dom.Shepard {
		return dom.ShepardStride
	}
	return 0
}

// buildGrid (re)computes the spatial index from the current particle
// positions
func (dom *Domain) buildGrid() {
	dom.Grid = grid.Build(dom.Particles, dom.Dim, dom.Periodic, dom.cellFactor(), dom.InitialDist)
	dom.DomSize = dom.Grid.DomSize
}

// applyConstVelZone forces the velocity of particles in x-cells 0..1 to
// the prescribed value (spec.md §4.G.3)
func (dom *Domain) applyConstVelZone() {
	for _, p := range dom.Particles {
		if p.Cell[0] <= 1 {
			p.V = dom.ConstVelValue
			p.VHalf = dom.ConstVelValue
		}
	}
}

// applyConstVelPart2 zeroes acceleration and resets pressure to P0 in
// the constant-velocity zone after the sweep — spec.md §13's supplement
// from original_source's ConstVelPart2, off by default
func (dom *Domain) applyConstVelPart2() {
	for _, p := range dom.Particles {
		if p.Cell[0] <= 1 {
			p.A = [3]float64{}
			p.Pressure = p.P0
		}
	}
}

// reportAvgParticleVelocity computes the mean x-velocity of the two
// columns nearest the outflow face (spec.md §13 supplement, grounded on
// original_source's AvgParticleVelocity)
func (dom *Domain) reportAvgParticleVelocity() {
	maxCol := 0
	for _, p := range dom.Particles {
		if p.Cell[0] > maxCol {
			maxCol = p.Cell[0]
		}
	}
	var sum float64
	var n int
	for _, p := range dom.Particles {
		if p.Cell[0] >= maxCol-1 {
			sum += p.V[0]
			n++
		}
	}
	if n > 0 {
		dom.AvgParticleVelocity = sum / float64(n)
	}
}

// applyFlowCons invokes the scenario-supplied inflow/outflow/all-particle
// callbacks (spec.md §4.H): InCon and OutCon run over particles tagged
// InTag/OutTag, AllCon (if set) runs over every particle
func (dom *Domain) applyFlowCons() {
	if dom.InCon == nil && dom.OutCon == nil && dom.AllCon == nil {
		return
	}
	for _, p := range dom.Particles {
		if dom.AllCon != nil {
			dom.AllCon(p)
		}
		if dom.InCon != nil && dom.InTag != particle.None && p.ID == dom.InTag {
			dom.InCon(p)
		}
		if dom.OutCon != nil && dom.OutTag != particle.None && p.ID == dom.OutTag {
			dom.OutCon(p)
		}
	}
}

// resolveNoSlip populates wall normals on free particles from last
// step's pairs-with-fixed list (spec.md §4.G.4, §4.H)
func (dom *Domain) resolveNoSlip() {
	byFree := make(map[int][]*particle.Particle)
	for _, pr := range dom.PairsWithFixed {
		byFree[pr.Free] = append(byFree[pr.Free], dom.Particles[pr.Fixed])
	}
	for freeIdx, fixed := range byFree {
		boundary.NoSlipResolve(dom.Particles[freeIdx], fixed)
	}
}

// aggregateRigidBody sums m*a and m*visc across particles tagged RBTag
// into RBForce/RBForceVis (spec.md §4.G.9)
func (dom *Domain) aggregateRigidBody() {
	var force, forceVis [3]float64
	for _, p := range dom.Particles {
		if p.ID != dom.RBTag {
			continue
		}
		for k := 0; k < 3; k++ {
			force[k] += p.Mass * p.A[k]
			forceVis[k] += p.Mass * p.Visc[k]
		}
	}
	dom.RBForce = force
	dom.RBForceVis = forceVis
}

// dropLeavingParticles removes particles that moved outside the padded
// bounding box when no axis is periodic, rebuilding the index if any
// left (spec.md §4.G.10)
func (dom *Domain) dropLeavingParticles() bool {
	kept := dom.Particles[:0]
	left := false
	for _, p := range dom.Particles {
		outside := false
		for k := 0; k < dom.Dim; k++ {
			if p.X[k] < dom.Grid.BLPF[k] || p.X[k] > dom.Grid.TRPR[k] {
				outside = true
				break
			}
		}
		if outside {
			left = true
			io.Pfred("sph: particle %d left the domain at step %d\n", p.ID, dom.Step)
			continue
		}
		kept = append(kept, p)
	}
	dom.Particles = kept
	if left {
		dom.buildGrid()
	}
	return left
}
