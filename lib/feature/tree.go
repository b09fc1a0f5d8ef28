//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"sort"

	"github.com/biogo/store/interval"
	"github.com/pkg/errors"
	"gopkg.in/fatih/set.v0"
)

// Pair is a read overlapping a window.
type Pair struct {
	Read   Interval
	Window Window
}

type IntersectStats struct {
	Reads         int
	Pairs         int
	ReadsOutside  int
	MissingChroms []string
}

// BuildWindowTrees builds one tree of windows per chromosome. Trees are not
// modified afterwards and can be queried concurrently.
func BuildWindowTrees(windows []Window) (trees map[string]*interval.IntTree, err error) {
	trees = make(map[string]*interval.IntTree)
	for iw, w := range windows {
		if w.Start > w.End || w.End > MaxCoordinate {
			return nil, errors.Wrapf(ErrArithmeticOverflow, "window %d on %s: [%d,%d)", iw, w.Chrom, w.Start, w.End)
		}
		// New tree for unseen chromosome
		if _, ok := trees[w.Chrom]; !ok {
			trees[w.Chrom] = &interval.IntTree{}
		}
		// Inserting interval
		iv := WindowInterval{Start: int(w.Start), End: int(w.End), UID: uintptr(iw), Window: w}
		if err = trees[w.Chrom].Insert(iv, false); err != nil {
			return nil, errors.Wrapf(err, "indexing window %d on %s", iw, w.Chrom)
		}
	}
	for _, t := range trees {
		t.AdjustRanges()
	}
	return
}

// Intersect returns every (read, window) pair where the read overlaps the
// window: read.Start < window.End && read.End > window.Start. Reads on
// chromosomes without window or ending after MaxCoordinate yield no pair.
func Intersect(reads []Interval, trees map[string]*interval.IntTree) ([]Pair, IntersectStats) {
	var pairs []Pair
	stats := IntersectStats{Reads: len(reads)}
	missing := set.New(set.NonThreadSafe)
	for _, read := range reads {
		tree, ok := trees[read.Chrom]
		if ok && (read.Start > read.End || read.End > MaxCoordinate) {
			stats.ReadsOutside++
			continue
		}
		if !ok {
			missing.Add(read.Chrom)
			stats.ReadsOutside++
			continue
		}
		n := len(pairs)
		tree.DoMatching(func(e interval.IntInterface) (done bool) {
			pairs = append(pairs, Pair{Read: read, Window: e.(WindowInterval).Window})
			return
		}, readQuery{Start: int(read.Start), End: int(read.End)})
		if len(pairs) == n {
			stats.ReadsOutside++
		}
	}
	stats.Pairs = len(pairs)
	stats.MissingChroms = set.StringSlice(missing)
	sort.Strings(stats.MissingChroms)
	return pairs, stats
}
