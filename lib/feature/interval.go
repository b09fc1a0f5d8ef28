//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// Integer-specific intervals

// WindowInterval stores a Window in an interval.IntTree.
type WindowInterval struct {
	Start, End int
	UID        uintptr
	Window     Window
}

func (i WindowInterval) Overlap(b interval.IntRange) bool {
	// Half-open interval indexing.
	return i.End > b.Start && i.Start < b.End
}

func (i WindowInterval) ID() uintptr {
	return i.UID
}

func (i WindowInterval) Range() interval.IntRange {
	return interval.IntRange{Start: i.Start, End: i.End}
}

func (i WindowInterval) String() string {
	return fmt.Sprintf("[%d,%d)#%d-%d", i.Start, i.End, i.UID, i.Window.RegionID)
}

// readQuery is a read used to query a tree.
type readQuery struct {
	Start, End int
}

func (q readQuery) Overlap(b interval.IntRange) bool {
	return q.End > b.Start && q.Start < b.End
}
