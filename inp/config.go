// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sph) JSON run
// configuration file: the driver-surface fields of spec.md §6
// (dimension, gravity, kernel/EOS/viscosity selectors, periodic flags,
// rigid-body flags, no-slip, Shepard, XSPH, tensile-instability
// parameters, NProc, InitialDist, Cs, P0, ConstVelPeriodic) plus the
// time-control and file-key fields a scenario driver needs to call
// sph.Domain.Solve. Grounded on gofem's inp/sim.go ReadSim: JSON tags,
// io.ReadFile + chk.Panic on decode failure, SetDefault before decoding
// and a validation pass in ReadConfig after it.
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gosph/eos"
	"github.com/cpmech/gosph/kernel"
	"github.com/cpmech/gosph/particle"
	"github.com/cpmech/gosph/sph"
	"github.com/cpmech/gosph/visc"
)

// Region describes one call to Domain.AddBoxLength or AddRandomBox,
// the JSON-driven analogue of gofem's Region.Mshfile geometry input —
// here the "mesh" is a simple axis-aligned particle box rather than an
// external mesh file, since the core has no mesh format of its own
// (spec.md §1 excludes scenario setup, but literal box fills are part
// of the driver surface's own constructors, §6).
type Region struct {
	Tag         int              `json:"tag"`
	BLPF        [3]float64       `json:"blpf"`        // bottom-left-front corner
	Size        [3]float64       `json:"size"`        // box size
	InitialDist float64          `json:"initialdist"` // particle spacing; 0 => use Config.InitialDist
	Mass        float64          `json:"mass"`
	Density     float64          `json:"density"`
	H           float64          `json:"h"`
	Material    string           `json:"material"` // "fluid", "boundary", "soil"
	IsFree      bool             `json:"isfree"`
	Random      bool             `json:"random"` // use AddRandomBox instead of AddBoxLength
	Alpha       float64          `json:"alpha"`
	Beta        float64          `json:"beta"`
	Mu          float64          `json:"mu"`
	TI          float64          `json:"ti"`
	Shepard     bool             `json:"shepard"`
}

func (r *Region) material() particle.Material {
	switch r.Material {
	case "boundary":
		return particle.BoundaryWall
	case "soil":
		return particle.Soil
	default:
		return particle.Fluid
	}
}

// TimeControl holds the time-stepping fields of a run (spec.md §4.G,
// §6's solve(t_final, dt, dt_out, file_key) entry point)
type TimeControl struct {
	Tf          float64 `json:"tf"`          // final simulated time
	Dt          float64 `json:"dt"`          // fixed time step
	DtOut       float64 `json:"dtout"`       // output snapshot cadence
	AutoSaveInt float64 `json:"autosaveint"` // restart snapshot cadence; 0 disables
}

// Config holds all driver-surface configuration read from a run's
// JSON file (spec.md §6's Domain configuration fields)
type Config struct {

	// global
	Desc    string `json:"desc"`    // description of the run
	DirOut  string `json:"dirout"`  // output directory; e.g. /tmp/gosph
	FileKey string `json:"filekey"` // output file key (NNNN-numbered snapshots)

	// problem definition
	Dim         int        `json:"dim"`         // 2 or 3
	Gravity     [3]float64 `json:"gravity"`      // gravity vector, seeded into `a` each step
	Kernel      int        `json:"kernel"`       // kernel.Kind selector
	EOS         int        `json:"eos"`          // eos.Kind selector
	Visc        int        `json:"visc"`         // visc.Kind selector
	Periodic    [3]bool    `json:"periodic"`     // periodic axis flags
	NoSlip      bool       `json:"noslip"`       // Morris et al. no-slip wall treatment
	Shepard     bool       `json:"shepard"`      // density re-normalization
	ShepardStride int      `json:"shepardstride"` // cadence; 0 => default 30 (spec.md §9)
	XSPHCoeff   float64    `json:"xsphcoeff"`   // XSPH velocity-correction coefficient
	NProc       int        `json:"nproc"`        // worker-pool size for the neighbor sweep
	InitialDist float64    `json:"initialdist"` // initial particle spacing
	Cs          float64    `json:"cs"`           // reference sound speed
	P0          float64    `json:"p0"`           // background pressure

	// constant-velocity periodic zone (spec.md §4.G.3, §13 supplement)
	ConstVelPeriodic float64    `json:"constvelperiodic"`
	ConstVelValue    [3]float64 `json:"constvelvalue"`
	ConstVelPart2    bool       `json:"constvelpart2"`

	// rigid-body aggregate (spec.md §4.G.9)
	RigidBody bool `json:"rigidbody"`
	RBTag     int  `json:"rbtag"`

	// inflow/outflow bands (spec.md §4.H); a pointer because the JSON
	// zero value 0 is a valid tag: an absent key (nil) leaves the band
	// disabled at sph.NewDomain's particle.None default, and any value
	// given in the file, 0 included, is used as the tag
	InTag  *int `json:"intag"`
	OutTag *int `json:"outtag"`

	// particle population — a literal box-fill alternative to writing a
	// scenario driver, for runs simple enough to need nothing more
	Regions []*Region `json:"regions"`

	// time control
	Control TimeControl `json:"control"`
}

// SetDefault fills in the fields a bare-bones JSON file may omit
func (o *Config) SetDefault() {
	o.Dim = 2
	o.Kernel = int(kernel.Cubic)
	o.EOS = int(eos.Linear)
	o.Visc = int(visc.Morris)
	o.NProc = 1
	o.ShepardStride = 30
	o.DirOut = "/tmp/gosph"
	o.FileKey = "run"
}

// ReadConfig reads a run configuration from a JSON file, applying
// defaults first so the file only needs to override what it cares
// about (mirrors gofem's ReadSim: o.Solver.SetDefault() before
// json.Unmarshal)
func ReadConfig(path string) *Config {
	var o Config
	o.SetDefault()

	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("inp: ReadConfig: cannot read configuration file %q", path)
	}
	if err := json.Unmarshal(b, &o); err != nil {
		chk.Panic("inp: ReadConfig: cannot unmarshal configuration file %q: %v", path, err)
	}
	if o.Dim != 2 && o.Dim != 3 {
		chk.Panic("inp: ReadConfig: dim must be 2 or 3; got %d", o.Dim)
	}
	if o.ShepardStride <= 0 {
		o.ShepardStride = 30
	}
	if o.NProc < 1 {
		o.NProc = 1
	}
	return &o
}

// NewDomain constructs an *sph.Domain wired from this configuration and
// fills it with the particle boxes listed in Regions. Any further
// population (AddSingleParticle etc.) and the optional hooks
// (GeneralBefore/GeneralAfter/InCon/OutCon/AllCon/ModelOf) remain the
// scenario driver's responsibility — spec.md §1 explicitly excludes
// scenario setup from the core.
func (o *Config) NewDomain() *sph.Domain {
	dom := sph.NewDomain(o.Dim)
	dom.Gravity = o.Gravity
	dom.Kernel = kernel.Kind(o.Kernel)
	dom.EOS = eos.Kind(o.EOS)
	dom.Visc = visc.Kind(o.Visc)
	dom.Periodic = o.Periodic
	dom.NoSlip = o.NoSlip
	dom.Shepard = o.Shepard
	dom.ShepardStride = o.ShepardStride
	dom.XSPHCoeff = o.XSPHCoeff
	dom.NProc = o.NProc
	dom.InitialDist = o.InitialDist
	dom.Cs = o.Cs
	dom.P0 = o.P0
	dom.ConstVelPeriodic = o.ConstVelPeriodic
	dom.ConstVelValue = o.ConstVelValue
	dom.ConstVelPart2 = o.ConstVelPart2
	dom.RigidBody = o.RigidBody
	dom.RBTag = o.RBTag
	dom.AutoSaveInt = o.Control.AutoSaveInt
	if o.InTag != nil {
		dom.InTag = *o.InTag
	}
	if o.OutTag != nil {
		dom.OutTag = *o.OutTag
	}

	for _, r := range o.Regions {
		dist := r.InitialDist
		if dist <= 0 {
			dist = o.InitialDist
		}
		before := len(dom.Particles)
		if r.Random {
			dom.AddRandomBox(r.Tag, r.BLPF, r.Size, dist, r.Mass, r.Density, r.H, r.material(), r.IsFree)
		} else {
			dom.AddBoxLength(r.Tag, r.BLPF, r.Size, dist, r.Mass, r.Density, r.H, r.material(), r.IsFree)
		}
		// set the per-particle numerical-policy fields (spec.md §3) that
		// AddBoxLength/AddRandomBox don't take, since they're shared by
		// every material rather than specific to box geometry
		for _, p := range dom.Particles[before:] {
			p.Alpha, p.Beta = r.Alpha, r.Beta
			p.Mu, p.MuRef = r.Mu, r.Mu
			p.TI = r.TI
			p.TIInitialDist = dist
			p.Shepard = r.Shepard
		}
	}
	return dom
}
