// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sph

// GeneralHook is the per-step callback contract of spec.md §4.G steps 2
// and 7 (general_before/general_after). It is read once per step and
// skipped entirely if nil, mirroring gofem's DebugKb_t hook in fem/fem.go
// rather than an interface with optional methods (spec.md §9).
type GeneralHook func(dom *Domain)

// callBefore invokes GeneralBefore if set
func (dom *Domain) callBefore() {
	if dom.GeneralBefore != nil {
		dom.GeneralBefore(dom)
	}
}

// callAfter invokes GeneralAfter if set
func (dom *Domain) callAfter() {
	if dom.GeneralAfter != nil {
		dom.GeneralAfter(dom)
	}
}
