// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package visc implements the four selectable real-viscosity
// formulas used by the pair interaction (spec.md §4.D). It follows the
// same name<->selector registry idiom as mconduct's liquid/gas
// conductivity models, adapted from a swappable-Model interface to a
// fixed tagged-variant dispatch since the hot path reads the selector
// once per pair rather than calling through an interface (see
// msolid/solidmodel for where the interface-based registry pattern is
// kept, for the constitutive-model hook where swappability still
// matters).
package visc

import "github.com/cpmech/gosl/chk"

// Kind selects one of the four real-viscosity formulas
type Kind int

// viscosity formula kinds
const (
	Morris    Kind = iota // Morris et al. 1997
	Shao                  // Shao et al. 2003
	Laplacian             // Laplacian form (incompressible fluid)
	Takeda                // Takeda et al. 1994, full Navier-Stokes with 1/3 bulk term
)

// names maps each Kind to its descriptive label, used only for
// diagnostics (e.g. an unrecognized selector in a config file)
var names = map[Kind]string{
	Morris:    "morris1997",
	Shao:      "shao2003",
	Laplacian: "laplacian",
	Takeda:    "takeda1994",
}

// Name returns the descriptive label for kind, or "" if unknown
func Name(kind Kind) string {
	return names[kind]
}

// Tau computes the viscous contribution VI to the pair's acceleration
// term (spec.md §4.D "Real viscosity"). vAccel is the relative
// velocity that replaces v_ij in the leading term — equal to v_ij in
// the free-free case, or the Morris virtual velocity v_ij↦v_free-v_virt
// when a no-slip substitution is in effect; vReal is always the true
// v_ij and only matters to the Takeda formula's second bracket.
func Tau(kind Kind, dim int, mu, di, dj, r, h float64, rij, vAccel, vReal [3]float64, gradW, laplaceW, deriv2W float64) [3]float64 {
	if mu == 0 || r <= 0 {
		return [3]float64{}
	}
	switch kind {
	case Morris:
		scale := 2 * mu / (di * dj * r) * gradW
		return scaleVec(vAccel, scale)

	case Shao:
		rr := dot(rij, rij)
		scale := 8 * mu / ((di + dj) * (di + dj) * (rr + 0.01*h*h)) * gradW * r
		return scaleVec(vAccel, scale)

	case Laplacian:
		scale := mu / (di * dj) * laplaceW
		return scaleVec(vAccel, scale)

	case Takeda:
		rr := dot(rij, rij)
		term1 := addVec(scaleVec(vAccel, float64(dim)), scaleVec(vReal, 1.0/3.0))
		part1 := scaleVec(term1, gradW/r)
		term2 := addVec(scaleVec(rij, dot(vReal, rij)/3.0), scaleVec(vAccel, rr))
		coef := -gradW/(r*r) + deriv2W/r
		part2 := scaleVec(term2, coef/r)
		return scaleVec(addVec(part1, part2), mu/(di*dj))

	default:
		chk.Panic("visc: invalid viscosity selector %d", kind)
	}
	return [3]float64{}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func scaleVec(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func addVec(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}
