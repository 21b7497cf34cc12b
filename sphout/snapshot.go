// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sphout writes the per-step output contract of spec.md §6: an
// HDF5 dataset file plus a sibling XDMF description, and symmetric
// restart snapshots. It depends only on particle, not sph, so that
// sph.Domain can call into it without an import cycle.
package sphout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/io/h5"

	"github.com/cpmech/gosph/particle"
)

// WriteSnapshot writes "<fileKey>_NNNN.hdf5" and "<fileKey>_NNNN.xmf"
// for the given particle set (spec.md §6's output format)
func WriteSnapshot(particles []*particle.Particle, rbForce, rbForceVis [3]float64, fileKey string, index int) error {
	n := len(particles)
	pos := make([]float32, 3*n)
	vel := make([]float32, 3*n)
	pres := make([]float32, n)
	dens := make([]float32, n)
	mass := make([]float32, n)
	hvals := make([]float32, n)
	tag := make([]int32, n)
	isFree := make([]int32, n)
	for i, p := range particles {
		pos[3*i], pos[3*i+1], pos[3*i+2] = float32(p.X[0]), float32(p.X[1]), float32(p.X[2])
		vel[3*i], vel[3*i+1], vel[3*i+2] = float32(p.V[0]), float32(p.V[1]), float32(p.V[2])
		pres[i] = float32(p.Pressure)
		dens[i] = float32(p.Density)
		mass[i] = float32(p.Mass)
		hvals[i] = float32(p.H)
		tag[i] = int32(p.ID)
		if p.IsFree {
			isFree[i] = 1
		}
	}
	rb := []float32{
		float32(rbForce[0]), float32(rbForce[1]), float32(rbForce[2]),
		float32(rbForceVis[0]), float32(rbForceVis[1]), float32(rbForceVis[2]),
	}

	hdfPath := io.Sf("%s_%04d.hdf5", fileKey, index)
	f, err := h5.Create(hdfPath)
	if err != nil {
		return err
	}
	defer f.Close()

	f.PutInt("/NP", n)
	f.PutArray("/Position", pos)
	f.PutArray("/Velocity", vel)
	f.PutArray("/Pressure", pres)
	f.PutArray("/Density", dens)
	f.PutArray("/Mass", mass)
	f.PutArray("/h", hvals)
	f.PutInts("/Tag", tag)
	f.PutInts("/IsFree", isFree)
	f.PutArray("/Rigid_Body_Force", rb)

	return writeXDMF(io.Sf("%s_%04d.xmf", fileKey, index), filepath.Base(hdfPath), n)
}

// writeXDMF writes the XDMF 2.0 sidecar describing the HDF5 datasets
// with a Polyvertex topology (spec.md §6)
func writeXDMF(path, hdfName string, n int) error {
	xml := fmt.Sprintf(`<?xml version="1.0" ?>
<Xdmf Version="2.0">
  <Domain>
    <Grid Name="particles" GridType="Uniform">
      <Topology TopologyType="Polyvertex" NumberOfElements="%d"/>
      <Geometry GeometryType="XYZ">
        <DataItem Dimensions="%d 3" NumberType="Float" Precision="4" Format="HDF">%s:/Position</DataItem>
      </Geometry>
      <Attribute Name="Velocity" AttributeType="Vector" Center="Node">
        <DataItem Dimensions="%d 3" NumberType="Float" Precision="4" Format="HDF">%s:/Velocity</DataItem>
      </Attribute>
      <Attribute Name="Pressure" AttributeType="Scalar" Center="Node">
        <DataItem Dimensions="%d" NumberType="Float" Precision="4" Format="HDF">%s:/Pressure</DataItem>
      </Attribute>
      <Attribute Name="Density" AttributeType="Scalar" Center="Node">
        <DataItem Dimensions="%d" NumberType="Float" Precision="4" Format="HDF">%s:/Density</DataItem>
      </Attribute>
      <Attribute Name="Tag" AttributeType="Scalar" Center="Node">
        <DataItem Dimensions="%d" NumberType="Int" Precision="4" Format="HDF">%s:/Tag</DataItem>
      </Attribute>
    </Grid>
  </Domain>
</Xdmf>
`, n, n, hdfName, n, hdfName, n, hdfName, n, hdfName, n, hdfName)
	// the XDMF sidecar is a plain XML text file; gosl has no XML/XDMF
	// helper to wire here, so this one write goes through os.WriteFile
	// (see DESIGN.md)
	return os.WriteFile(path, []byte(xml), 0644)
}
