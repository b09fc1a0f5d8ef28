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

	"github.com/pkg/errors"
)

type RefPoint int

const (
	RefCenter RefPoint = iota
	RefStart
	RefEnd
)

// ParseRefPoint validates a reference point name.
func ParseRefPoint(raw string) (RefPoint, error) {
	switch raw {
	case "center":
		return RefCenter, nil
	case "start":
		return RefStart, nil
	case "end":
		return RefEnd, nil
	}
	return RefCenter, errors.Wrapf(ErrInvalidReferencePoint, "%q (center, start or end)", raw)
}

func (rp RefPoint) String() string {
	switch rp {
	case RefCenter:
		return "center"
	case RefStart:
		return "start"
	case RefEnd:
		return "end"
	}
	return fmt.Sprintf("RefPoint(%d)", int(rp))
}

// Window is a region extended around its reference point: [Start,End) with
// End-Start = upstream+downstream. Strand is the region strand.
type Window struct {
	RegionID uint32
	Chrom    string
	Start    uint64
	End      uint64
	Strand   Strand
}

// Length returns the window length
func (w Window) Length() uint64 {
	return w.End - w.Start
}

// Anchor returns the reference point coordinate of region.
func Anchor(region Interval, rp RefPoint) (uint64, error) {
	switch rp {
	case RefCenter:
		return region.Start + (region.End-region.Start)/2, nil
	case RefStart:
		return region.Start, nil
	case RefEnd:
		return region.End, nil
	}
	return 0, errors.Wrapf(ErrInvalidReferencePoint, "%v", rp)
}

// Extend builds the window [anchor-upstream, anchor+downstream) of region.
func Extend(region Interval, rp RefPoint, upstream, downstream uint64) (Window, error) {
	anchor, err := Anchor(region, rp)
	if err != nil {
		return Window{}, err
	}
	if anchor < upstream {
		return Window{}, errors.Wrapf(ErrArithmeticUnderflow, "%s: %s %d minus upstream %d", region, rp, anchor, upstream)
	}
	if anchor > MaxCoordinate || downstream > MaxCoordinate-anchor {
		return Window{}, errors.Wrapf(ErrArithmeticOverflow, "%s: %s %d plus downstream %d", region, rp, anchor, downstream)
	}
	return Window{RegionID: region.ID, Chrom: region.Chrom, Start: anchor - upstream, End: anchor + downstream, Strand: region.Strand}, nil
}

// ExtendAll extends every region, stopping at the first error.
func ExtendAll(regions []Interval, rp RefPoint, upstream, downstream uint64) ([]Window, error) {
	windows := make([]Window, len(regions))
	for i, region := range regions {
		w, err := Extend(region, rp, upstream, downstream)
		if err != nil {
			return nil, err
		}
		windows[i] = w
	}
	return windows, nil
}
