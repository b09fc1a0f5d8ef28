//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package plot

import (
	"math"

	"github.com/pkg/errors"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/profile"
)

// Pixels per inch of raster outputs
const dpi = 96

type Info struct {
	Path   string
	Title  string
	Width  int
	Height int
}

// BinCenters returns the position of each bin center relative to the reference point.
func BinCenters(nbin int, upstream uint64, binSize int) []float64 {
	x := make([]float64, nbin)
	for i := range x {
		x[i] = float64(i*binSize) - float64(upstream) + float64(binSize)/2
	}
	return x
}

// Render draws one line per series. The output format follows the extension
// of info.Path. Non-finite values are not drawn.
func Render(series []profile.Series, info Info, upstream, downstream uint64, binSize int) (skipped int, err error) {
	p := gplot.New()
	p.Title.Text = info.Title
	p.X.Label.Text = "distance to reference point (bp)"
	p.Y.Label.Text = "normalized coverage"
	p.Legend.Top = true

	low, high := math.Inf(1), math.Inf(-1)
	for is, s := range series {
		x := BinCenters(len(s.Values), upstream, binSize)
		xys := make(plotter.XYs, 0, len(s.Values))
		for i, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				skipped++
				continue
			}
			xys = append(xys, plotter.XY{X: x[i], Y: v})
			low = math.Min(low, v)
			high = math.Max(high, v)
		}
		if len(xys) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return skipped, errors.Wrapf(err, "line %s", s.Label)
		}
		l.Color = plotutil.Color(is)
		p.Add(l)
		p.Legend.Add(s.Label, l)
	}
	p.X.Min = -float64(upstream)
	p.X.Max = float64(downstream)
	if low <= high {
		p.Y.Min = low
		p.Y.Max = high + (high-low)/10
	}

	w := vg.Length(info.Width) * vg.Inch / dpi
	h := vg.Length(info.Height) * vg.Inch / dpi
	if err = p.Save(w, h, info.Path); err != nil {
		return skipped, errors.Wrapf(err, "saving plot %s", info.Path)
	}
	return skipped, nil
}
