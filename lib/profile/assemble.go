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

// Assemble returns series unchanged, or in relative mode a single series with
// the ratio of the first to the second series.
func Assemble(series []Series, relative bool) ([]Series, error) {
	if !relative {
		return series, nil
	}
	if len(series) != 2 {
		return nil, errors.Wrapf(ErrUnsupportedReadCount, "relative mode needs 2 read files, got %d", len(series))
	}
	a, b := series[0], series[1]
	if len(a.Values) != len(b.Values) {
		return nil, errors.Errorf("profiles %s and %s differ in length (%d, %d)", a.Label, b.Label, len(a.Values), len(b.Values))
	}
	ratio := make([]float64, len(a.Values))
	for i := range a.Values {
		ratio[i] = a.Values[i] / b.Values[i]
	}
	return []Series{{Label: a.Label + " / " + b.Label, Values: ratio}}, nil
}
