// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sphout

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gosph/particle"
)

func makeParticles() []*particle.Particle {
	p1 := particle.New(1, [3]float64{0, 0, 0}, [3]float64{1, 0, 0}, 1, 1000, 0.01, true)
	p2 := particle.New(4, [3]float64{0.01, 0, 0}, [3]float64{}, 1, 1000, 0.01, false)
	return []*particle.Particle{p1, p2}
}

func Test_snapshot01(tst *testing.T) {

	chk.PrintTitle("snapshot01. WriteSnapshot produces a sibling .hdf5/.xmf pair")

	dir := tst.TempDir()
	key := filepath.Join(dir, "run")
	err := WriteSnapshot(makeParticles(), [3]float64{1, 2, 3}, [3]float64{4, 5, 6}, key, 0)
	if err != nil {
		tst.Errorf("WriteSnapshot failed: %v", err)
	}
}

func Test_restart01(tst *testing.T) {

	chk.PrintTitle("restart01. save -> load round-trips the persisted fields")

	dir := tst.TempDir()
	key := filepath.Join(dir, "restart")
	ps := makeParticles()
	if err := SaveRestart(ps, key); err != nil {
		tst.Errorf("SaveRestart failed: %v", err)
		return
	}
	loaded, err := LoadRestart(key)
	if err != nil {
		tst.Errorf("LoadRestart failed: %v", err)
		return
	}
	if len(loaded) != len(ps) {
		tst.Fatalf("expected %d particles, got %d", len(ps), len(loaded))
	}
	for i := range ps {
		if loaded[i].ID != ps[i].ID {
			tst.Errorf("particle %d: tag mismatch", i)
		}
		if math.Abs(loaded[i].Mass-ps[i].Mass) > 1e-9 {
			tst.Errorf("particle %d: mass mismatch", i)
		}
		if loaded[i].IsFree != ps[i].IsFree {
			tst.Errorf("particle %d: is_free mismatch", i)
		}
		for k := 0; k < 3; k++ {
			if math.Abs(loaded[i].X[k]-ps[i].X[k]) > 1e-6 {
				tst.Errorf("particle %d: x[%d] mismatch", i, k)
			}
		}
	}
}
