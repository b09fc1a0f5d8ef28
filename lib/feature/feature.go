//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// MaxCoordinate is the largest coordinate that can be indexed.
const MaxCoordinate uint64 = math.MaxInt

type Strand int8

const (
	StrandUnknown Strand = 0
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// ParseStrand parses a strand column: "+", "-" or "." (Unknown).
func ParseStrand(raw string) (Strand, error) {
	switch raw {
	case "+":
		return StrandForward, nil
	case "-":
		return StrandReverse, nil
	case ".":
		return StrandUnknown, nil
	}
	return StrandUnknown, errors.Wrapf(ErrParse, "unknown strand %q", raw)
}

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	}
	return "."
}

// Interval is a genomic interval with 0-based [Start,End) coordinates.
type Interval struct {
	ID       uint32
	Chrom    string
	Start    uint64
	End      uint64
	Strand   Strand
	Score    float64
	HasScore bool
}

// NewInterval returns an Interval after checking Start <= End.
func NewInterval(chrom string, start, end uint64, strand Strand) (Interval, error) {
	if start > end {
		return Interval{}, errors.Wrapf(ErrParse, "start %d after end %d on %s", start, end, chrom)
	}
	if end > MaxCoordinate {
		return Interval{}, errors.Wrapf(ErrParse, "end %d above %d on %s", end, MaxCoordinate, chrom)
	}
	return Interval{Chrom: chrom, Start: start, End: end, Strand: strand}, nil
}

// Length returns the length of interval
func (iv Interval) Length() uint64 {
	return iv.End - iv.Start
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s:[%d,%d)%s", iv.Chrom, iv.Start, iv.End, iv.Strand)
}

// Sorting functions: By Chrom then Start
// Use it with: sort.Sort(feature.ByPosition(intervals))
type ByPosition []Interval

func (f ByPosition) Len() int      { return len(f) }
func (f ByPosition) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f ByPosition) Less(i, j int) bool {
	if f[i].Chrom != f[j].Chrom {
		return f[i].Chrom < f[j].Chrom
	}
	return f[i].Start < f[j].Start
}
