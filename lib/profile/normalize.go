//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package profile

import (
	"github.com/pkg/errors"
)

// SizeFactor returns the library size factor of readCount reads. It is
// 1/(tpm*kb) with kb=binSize/1000 and tpm=(readCount/kb)/1e6, which reduces
// to 1e6/readCount.
func SizeFactor(readCount float64) (float64, error) {
	if readCount <= 0 {
		return 0, errors.Wrapf(ErrDivisionByZero, "library size %g", readCount)
	}
	return 1000000. / readCount, nil
}

// Normalize divides coverage by the number of regions, bins it and scales
// bins by the library size factor.
func Normalize(coverage []float64, readCount float64, regionCount int, binSize int, tail TailMode) ([]float64, error) {
	if regionCount == 0 {
		return nil, errors.Wrap(ErrDivisionByZero, "no region")
	}
	if binSize < 1 {
		return nil, errors.Wrapf(ErrInvalidBinSize, "%d", binSize)
	}
	sf, err := SizeFactor(readCount)
	if err != nil {
		return nil, err
	}
	nr := float64(regionCount)
	binned := make([]float64, 0, (len(coverage)+binSize-1)/binSize)
	for start := 0; start < len(coverage); start += binSize {
		end := start + binSize
		if end > len(coverage) {
			end = len(coverage)
		}
		var sum float64
		for _, c := range coverage[start:end] {
			sum += c / nr
		}
		divisor := float64(binSize)
		if tail == TailActual {
			divisor = float64(end - start)
		}
		binned = append(binned, (sum/divisor)*sf)
	}
	return binned, nil
}
