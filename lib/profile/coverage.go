//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package profile

import (
	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
)

// Accumulate sums the coverage of pairs over window offsets. Offset 0 is the
// window start for forward and unknown strand windows. Reverse strand windows
// are reversed so offsets are relative to the reference point orientation.
// The returned coverage has upstream+downstream positions.
func Accumulate(pairs []feature.Pair, upstream, downstream uint64, span SpanMode) []float64 {
	size := int(upstream + downstream)
	// Inclusive span uses a trailing guard position, dropped at the end
	n := size
	if span == SpanInclusive {
		n++
	}
	// Reverse strand coverage is summed in genome orientation and reversed once
	fwd := make([]float64, n)
	rev := make([]float64, n)
	for _, p := range pairs {
		s := max(p.Read.Start, p.Window.Start)
		e := min(p.Read.End, p.Window.End)
		if s > e {
			continue
		}
		ss := int(s - p.Window.Start)
		ee := ss + int(e-s)
		if span == SpanInclusive {
			ee++
		}
		if ee > n {
			ee = n
		}
		cov := fwd
		if p.Window.Strand == feature.StrandReverse {
			cov = rev
		}
		for i := ss; i < ee; i++ {
			cov[i]++
		}
	}
	Reverse(rev)
	for i := range fwd {
		fwd[i] += rev[i]
	}
	return fwd[:size]
}

// Reverse reverses v in place.
func Reverse(v []float64) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}
