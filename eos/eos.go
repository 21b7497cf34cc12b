// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eos implements the equations of state for a weakly
// compressible fluid: pressure and sound speed as functions of density.
package eos

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/io"
)

// Kind selects one of the three equation-of-state forms
type Kind int

// EOS kinds
const (
	Linear     Kind = iota // P = p0 + cs²(ρ-ρ0)
	Tait                   // P = p0 + (ρ0 cs²/7)((ρ/ρ0)⁷-1)
	Isothermal             // P = cs² ρ
)

var fallbackWarn sync.Once

func normalize(kind Kind) Kind {
	if kind < Linear || kind > Isothermal {
		fallbackWarn.Do(func() {
			io.Pfyel("eos: invalid equation-of-state selector %d, falling back to linear\n", kind)
		})
		return Linear
	}
	return kind
}

// Pressure returns P(ρ) for the given reference density ρ0, background
// pressure p0 and reference sound speed cs
func Pressure(kind Kind, density, refDensity, p0, cs float64) float64 {
	switch normalize(kind) {
	case Linear:
		return p0 + cs*cs*(density-refDensity)
	case Tait:
		return p0 + (refDensity*cs*cs/7.0)*(math.Pow(density/refDensity, 7)-1)
	case Isothermal:
		return cs * cs * density
	}
	return 0
}

// SoundSpeed returns the local sound speed for the given density
func SoundSpeed(kind Kind, density, refDensity, cs float64) float64 {
	switch normalize(kind) {
	case Linear:
		return cs
	case Tait:
		return cs * math.Pow(density/refDensity, 3)
	case Isothermal:
		return cs
	}
	return cs
}
