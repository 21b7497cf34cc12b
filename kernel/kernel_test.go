// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// Test_kernel01 checks that every kernel vanishes outside its support radius
func Test_kernel01(tst *testing.T) {

	chk.PrintTitle("kernel01. compact support")

	h := 0.5
	for dim := 2; dim <= 3; dim++ {
		for k := Cubic; k <= QuinticSpline; k++ {
			sr := SupportRadius(k)
			r := (sr + 0.1) * h
			if w := W(k, r, h, dim); math.Abs(w) > 1e-12 {
				tst.Errorf("kernel %d dim %d: W(%g)=%g expected 0 beyond support", k, dim, r, w)
			}
		}
	}
}

// Test_kernel02 checks normalization by spherical/circular numeric quadrature
func Test_kernel02(tst *testing.T) {

	chk.PrintTitle("kernel02. normalization")

	h := 0.7
	n := 20000
	for dim := 2; dim <= 3; dim++ {
		for k := Cubic; k <= QuinticSpline; k++ {
			sr := SupportRadius(k)
			rmax := sr * h
			dr := rmax / float64(n)
			sum := 0.0
			for i := 0; i < n; i++ {
				r := (float64(i) + 0.5) * dr
				w := W(k, r, h, dim)
				var measure float64
				if dim == 2 {
					measure = 2 * math.Pi * r
				} else {
					measure = 4 * math.Pi * r * r
				}
				sum += w * measure * dr
			}
			if math.Abs(sum-1) > 1e-3 {
				tst.Errorf("kernel %d dim %d: integral=%g expected 1", k, dim, sum)
			}
		}
	}
}

// Test_kernel03 checks the silent fallback for an invalid selector
func Test_kernel03(tst *testing.T) {

	chk.PrintTitle("kernel03. invalid selector falls back to cubic")

	h := 1.0
	r := 0.3
	got := W(Kind(99), r, h, 3)
	want := W(Cubic, r, h, 3)
	if math.Abs(got-want) > 1e-15 {
		tst.Errorf("invalid kernel selector did not fall back to cubic: got %g want %g", got, want)
	}
}

// Test_kernel04 checks an invalid dimension is fatal
func Test_kernel04(tst *testing.T) {

	chk.PrintTitle("kernel04. invalid dimension panics")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for invalid dimension")
		}
	}()
	normConst(Cubic, 1.0, 4)
}
