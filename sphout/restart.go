// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sphout

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/io/h5"

	"github.com/cpmech/gosph/particle"
)

// SaveRestart writes one HDF5 group per particle under "<key>.state",
// symmetric with LoadRestart, holding only the fields spec.md §6 names
// (mass, density, h, tag, is_free, x, v); auxiliary accumulators are
// rebuilt on the first step after load.
func SaveRestart(particles []*particle.Particle, key string) error {
	f, err := h5.Create(io.Sf("%s.state", key))
	if err != nil {
		return err
	}
	defer f.Close()

	f.PutInt("/NP", len(particles))
	for i, p := range particles {
		g := io.Sf("/Particle_%08d", i)
		f.PutArray(g+"/Mass", []float32{float32(p.Mass)})
		f.PutArray(g+"/Rho", []float32{float32(p.Density)})
		f.PutArray(g+"/h", []float32{float32(p.H)})
		f.PutInts(g+"/Tag", []int32{int32(p.ID)})
		isFree := int32(0)
		if p.IsFree {
			isFree = 1
		}
		f.PutInts(g+"/IsFree", []int32{isFree})
		f.PutArray(g+"/x", []float32{float32(p.X[0]), float32(p.X[1]), float32(p.X[2])})
		f.PutArray(g+"/v", []float32{float32(p.V[0]), float32(p.V[1]), float32(p.V[2])})
	}
	return nil
}

// LoadRestart reads back a restart snapshot written by SaveRestart into
// freshly-constructed particles: every field the format carries is
// passed to particle.New, and the fields it does not carry (material,
// numerical policy) keep particle.New's defaults
func LoadRestart(key string) ([]*particle.Particle, error) {
	f, err := h5.Open(io.Sf("%s.state", key))
	if err != nil {
		return nil, chk.Err("sphout: cannot open restart file %q: %v", key, err)
	}
	defer f.Close()

	n := f.GetInt("/NP")
	out := make([]*particle.Particle, n)
	for i := 0; i < n; i++ {
		g := io.Sf("/Particle_%08d", i)
		mass := float64(f.GetArray(g + "/Mass")[0])
		rho := float64(f.GetArray(g + "/Rho")[0])
		h := float64(f.GetArray(g + "/h")[0])
		tag := int(f.GetInts(g + "/Tag")[0])
		isFree := f.GetInts(g+"/IsFree")[0] != 0
		xv := f.GetArray(g + "/x")
		vv := f.GetArray(g + "/v")
		x := [3]float64{float64(xv[0]), float64(xv[1]), float64(xv[2])}
		v := [3]float64{float64(vv[0]), float64(vv[1]), float64(vv[2])}
		out[i] = particle.New(tag, x, v, mass, rho, h, isFree)
	}
	return out, nil
}
