//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package profile

import "github.com/pkg/errors"

// SpanMode sets how many positions a clipped read covers.
type SpanMode int

const (
	// SpanInclusive covers e-s+1 positions from a guard-extended window and
	// reverses the window including the guard.
	SpanInclusive SpanMode = iota
	// SpanHalfOpen covers the e-s positions of [s,e).
	SpanHalfOpen
)

// TailMode sets the divisor of the last, possibly shorter, bin.
type TailMode int

const (
	// TailNominal divides every bin by the bin size.
	TailNominal TailMode = iota
	// TailActual divides every bin by its number of positions.
	TailActual
)

var (
	// ErrDivisionByZero reports an empty region or read file.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupportedReadCount reports a relative profile without exactly two read files.
	ErrUnsupportedReadCount = errors.New("unsupported read count")
	// ErrInvalidBinSize reports a bin size below 1.
	ErrInvalidBinSize = errors.New("invalid bin size")
)

// Series is a labeled profile.
type Series struct {
	Label  string
	Values []float64
}
