// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solidmodel defines the external constitutive-model contract
// for particles tagged particle.Soil. The elasto-plastic/soil model
// internals are deliberately out of scope for the core (spec.md §1):
// the core only ever calls "advance particle state by dt" through this
// interface. This mirrors msolid's registry of solid models — a named
// allocator database looked up once at setup — but narrows the
// interface down to the single hook the SPH core actually calls.
package solidmodel

import (
	"log"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gosph/particle"
)

// Model defines the interface an external elasto-plastic/soil model
// must satisfy to be driven by the core's integrator
type Model interface {
	Init(prms fun.Prms) error // initialises model with its parameters
	GetPrms() fun.Prms        // gets (an example) of parameters
	Advance(p *particle.Particle, dt float64) error
}

// allocators holds all available models; modelname => allocator
var allocators = make(map[string]func() Model)

// Register makes a named model allocator available to GetModel. Called
// once at program setup by the package implementing the model.
func Register(name string, allocator func() Model) {
	allocators[name] = allocator
}

// GetModel returns a new instance of the named model
func GetModel(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("solidmodel: model %q is not registered", name)
	}
	return allocator(), nil
}

// LogModels prints to log the names of every registered model
func LogModels() {
	l := "solidmodel: available:"
	for name := range allocators {
		l += " " + name
	}
	log.Println(l)
}

// Advance drives a single soil/elasto-plastic particle through one
// time step using the model that the scenario driver's modelOf
// returns for it. Particles
// without an external model attached are left untouched — the core
// does not know or care how a soil particle's internal state evolves.
func Advance(p *particle.Particle, dt float64, modelOf func(*particle.Particle) (Model, bool)) error {
	if p.Mat != particle.Soil {
		return nil
	}
	if modelOf == nil {
		return nil
	}
	model, ok := modelOf(p)
	if !ok || model == nil {
		return nil
	}
	if err := model.Advance(p, dt); err != nil {
		return chk.Err("solidmodel: Advance failed for particle %d: %v", p.ID, err)
	}
	return nil
}
