//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import "github.com/pkg/errors"

var (
	// ErrParse reports a malformed row: wrong column count, non-integer coordinate or bad strand.
	ErrParse = errors.New("parse error")
	// ErrInvalidReferencePoint reports a reference point outside center, start and end.
	ErrInvalidReferencePoint = errors.New("invalid reference point")
	// ErrArithmeticUnderflow reports a window that would start before coordinate 0.
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")
	// ErrArithmeticOverflow reports a window that would end after MaxCoordinate.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
