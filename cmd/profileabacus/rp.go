//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/esam"
	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
	"git.sr.ht/~vejnar/ProfileAbacus/lib/profile"
)

// RPOptions configures a reference-point run.
type RPOptions struct {
	PathRegions       string
	PathReads         []string
	Labels            []string
	Upstream          uint64
	Downstream        uint64
	BinSize           int
	RefPoint          feature.RefPoint
	Relative          bool
	Span              profile.SpanMode
	Tail              profile.TailMode
	ReadTotals        []float64
	MinMappingQuality byte
	NWorker           int
}

// ReadStats describes one read file of a run.
type ReadStats struct {
	Label       string   `json:"label"`
	Path        string   `json:"path"`
	Intervals   int      `json:"intervals"`
	LibrarySize float64  `json:"library_size"`
	Pairs       int      `json:"pairs"`
	Outside     int      `json:"reads_outside_windows"`
	MissingChrs []string `json:"chroms_without_region"`
}

type RPResult struct {
	NRegion int
	Series  []profile.Series
	Stats   []ReadStats
}

// RunReferencePoint computes the profile of each read file around the
// reference point of regions. Series keep the order of opts.PathReads.
func RunReferencePoint(ctx context.Context, opts RPOptions, log logrus.FieldLogger) (res RPResult, err error) {
	timeStart := time.Now()
	// Check arguments
	if opts.Relative && len(opts.PathReads) != 2 {
		return res, errors.Wrapf(profile.ErrUnsupportedReadCount, "relative mode needs 2 read files, got %d", len(opts.PathReads))
	}
	if len(opts.Labels) != len(opts.PathReads) {
		return res, errors.Errorf("%d label(s) for %d read file(s)", len(opts.Labels), len(opts.PathReads))
	}
	if len(opts.ReadTotals) > 0 && len(opts.ReadTotals) != len(opts.PathReads) {
		return res, errors.Errorf("%d read total(s) for %d read file(s)", len(opts.ReadTotals), len(opts.PathReads))
	}
	if opts.BinSize < 1 {
		return res, errors.Wrapf(profile.ErrInvalidBinSize, "%d", opts.BinSize)
	}
	for _, t := range opts.ReadTotals {
		if t < 0 {
			return res, errors.Errorf("negative read total %g", t)
		}
	}
	nWorker := opts.NWorker
	if nWorker < 1 {
		nWorker = 1
	}

	// Regions
	regions, err := feature.OpenBED(opts.PathRegions)
	if err != nil {
		return res, err
	}
	if len(regions) == 0 {
		return res, errors.Wrapf(profile.ErrDivisionByZero, "no region in %s", opts.PathRegions)
	}
	res.NRegion = len(regions)
	windows, err := feature.ExtendAll(regions, opts.RefPoint, opts.Upstream, opts.Downstream)
	if err != nil {
		return res, err
	}
	trees, err := feature.BuildWindowTrees(windows)
	if err != nil {
		return res, err
	}
	log.WithFields(logrus.Fields{"regions": len(regions), "chroms": len(trees), "elapsed_min": minutes(timeStart)}).Info("Windows indexed")

	// Profile each read file
	series := make([]profile.Series, len(opts.PathReads))
	res.Stats = make([]ReadStats, len(opts.PathReads))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(nWorker)
	for i, pathRead := range opts.PathReads {
		i, pathRead := i, pathRead
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reads, err := esam.OpenIntervals(pathRead, opts.MinMappingQuality, 1)
			if err != nil {
				return err
			}
			pairs, istats := feature.Intersect(reads, trees)
			coverage := profile.Accumulate(pairs, opts.Upstream, opts.Downstream, opts.Span)
			// Read total 0 uses the number of reads
			librarySize := float64(len(reads))
			if len(opts.ReadTotals) > 0 && opts.ReadTotals[i] > 0 {
				librarySize = opts.ReadTotals[i]
			}
			values, err := profile.Normalize(coverage, librarySize, len(regions), opts.BinSize, opts.Tail)
			if err != nil {
				return errors.Wrapf(err, "normalizing %s", pathRead)
			}
			series[i] = profile.Series{Label: opts.Labels[i], Values: values}
			res.Stats[i] = ReadStats{Label: opts.Labels[i], Path: pathRead, Intervals: len(reads), LibrarySize: librarySize, Pairs: istats.Pairs, Outside: istats.ReadsOutside, MissingChrs: istats.MissingChroms}
			log.WithFields(logrus.Fields{"path": pathRead, "reads": len(reads), "pairs": istats.Pairs, "elapsed_min": minutes(timeStart)}).Info("Profile done")
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return res, err
	}

	// Assemble
	res.Series, err = profile.Assemble(series, opts.Relative)
	if err != nil {
		return res, err
	}
	return res, nil
}

func minutes(timeStart time.Time) float64 {
	return time.Since(timeStart).Minutes()
}
