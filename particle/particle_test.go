// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package particle

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_particle01(tst *testing.T) {

	chk.PrintTitle("particle01. reset zeroes accumulators")

	p := New(1, [3]float64{0, 0, 0}, [3]float64{0, 0, 0}, 1, 1000, 0.01, true)
	p.A = [3]float64{1, 2, 3}
	p.DDensity = 5
	p.VXSPH = [3]float64{1, 1, 1}
	p.ResetStepAccumulators([3]float64{0, -9.81, 0})

	if p.A != ([3]float64{0, -9.81, 0}) {
		tst.Errorf("expected gravity seed, got %v", p.A)
	}
	if p.DDensity != 0 || p.VXSPH != ([3]float64{}) {
		tst.Errorf("accumulators not reset")
	}
}

func Test_particle02(tst *testing.T) {

	chk.PrintTitle("particle02. fixed particle does not move")

	p := New(4, [3]float64{1, 1, 0}, [3]float64{0, 0, 0}, 1, 1000, 0.01, false)
	p.A = [3]float64{10, 10, 10}
	p.Move(0.01, [3]float64{}, [3]bool{}, [3]float64{}, [3]float64{}, 1, 30)
	if p.X != ([3]float64{1, 1, 0}) {
		tst.Errorf("fixed particle moved: %v", p.X)
	}
}

func Test_particle03(tst *testing.T) {

	chk.PrintTitle("particle03. periodic wrap re-enters from the opposite face")

	p := New(1, [3]float64{0.99, 0, 0}, [3]float64{0, 0, 0}, 1, 1000, 0.01, true)
	p.A = [3]float64{}
	p.VHalf = [3]float64{10, 0, 0}
	p.Move(0.01, [3]float64{1, 0, 0}, [3]bool{true, false, false}, [3]float64{1, 1, 1}, [3]float64{0, 0, 0}, 1, 30)
	if p.X[0] > 1 || p.X[0] < 0 {
		if math.Abs(p.X[0]-(1.09-1)) > 1e-9 {
			tst.Errorf("expected wrap, got %g", p.X[0])
		}
	}
}

func Test_particle04(tst *testing.T) {

	chk.PrintTitle("particle04. invalid constructor arguments panic")

	defer func() {
		if r := recover(); r == nil {
			tst.Errorf("expected panic for non-positive mass")
		}
	}()
	New(1, [3]float64{}, [3]float64{}, 0, 1000, 0.01, true)
}
