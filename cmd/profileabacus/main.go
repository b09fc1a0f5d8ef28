//
// Copyright © 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
	"git.sr.ht/~vejnar/ProfileAbacus/lib/plot"
	"git.sr.ht/~vejnar/ProfileAbacus/lib/profile"
)

var version = "DEV"

// rpArgs holds the raw reference-point arguments.
type rpArgs struct {
	regions, outFileName, plotTitle, refPoint    *string
	readTotals, pathMapping, pathReport          *string
	profilePath, profileFormat                   *string
	reads                                        *[]string
	upstream, downstream, binSize                *int
	plotHeight, plotWidth, minMapQ, nWorker      *int
	relative, halfOpen, trueTailBin, verboseFlag *bool
}

func addRPArgs(cmd *argparse.Command) rpArgs {
	var a rpArgs
	// Arguments: Input
	a.regions = cmd.String("R", "regions", &argparse.Options{Required: true, Help: "Path to regions file (chrom, start, end, name, score, strand)"})
	a.reads = cmd.StringList("r", "reads", &argparse.Options{Required: true, Help: "Path to read file(s): BED-like, SAM or BAM"})
	a.readTotals = cmd.String("", "read_totals", &argparse.Options{Help: "Library size(s) for normalization (comma separated, 0 uses the number of reads)"})
	a.minMapQ = cmd.Int("", "min_mapping_quality", &argparse.Options{Default: 0, Help: "Minimum mapping quality of SAM/BAM reads"})
	a.pathMapping = cmd.String("", "path_mapping", &argparse.Options{Help: "Path to read file name(s) to label mapping (tabulated file)"})
	// Arguments: Profiling
	a.upstream = cmd.Int("u", "upstream", &argparse.Options{Default: 1000, Help: "Distance upstream of the reference point"})
	a.downstream = cmd.Int("d", "downstream", &argparse.Options{Default: 1000, Help: "Distance downstream of the reference point"})
	a.binSize = cmd.Int("b", "binSize", &argparse.Options{Default: 10, Help: "Bin size"})
	a.refPoint = cmd.Selector("p", "referencePoint", []string{"center", "start", "end"}, &argparse.Options{Default: "center", Help: "Reference point: 'center', 'start' or 'end'"})
	a.relative = cmd.Flag("", "relative", &argparse.Options{Help: "Plot the ratio of two read files"})
	a.halfOpen = cmd.Flag("", "half_open", &argparse.Options{Help: "Count reads over [start,end) instead of [start,end]"})
	a.trueTailBin = cmd.Flag("", "true_tail_bin", &argparse.Options{Help: "Average the last bin over its own length instead of bin size"})
	// Arguments: Output
	a.outFileName = cmd.String("o", "outFileName", &argparse.Options{Required: true, Help: "Path to plot (format from extension: png, svg, pdf)"})
	a.plotTitle = cmd.String("t", "plotTitle", &argparse.Options{Help: "Plot title (default: regions file name)"})
	a.plotHeight = cmd.Int("", "plotHeight", &argparse.Options{Default: 600, Help: "Plot height in pixels"})
	a.plotWidth = cmd.Int("", "plotWidth", &argparse.Options{Default: 800, Help: "Plot width in pixels"})
	a.profilePath = cmd.String("", "profile_path", &argparse.Options{Help: "Path to profile table output"})
	a.profileFormat = cmd.String("", "profile_format", &argparse.Options{Default: "csv", Help: "Profile output format: 'csv' or 'binary', optionally with '+lz4', '+lz4hc' or '+gz'"})
	a.pathReport = cmd.String("", "path_report", &argparse.Options{Help: "Write report to path (stdout with -)"})
	// Arguments: General
	a.nWorker = cmd.Int("", "num_worker", &argparse.Options{Default: 1, Help: "Number of worker(s)"})
	a.verboseFlag = cmd.Flag("v", "verbose", &argparse.Options{Help: "Verbose"})
	return a
}

// rpOptions validates raw arguments.
func (a rpArgs) rpOptions() (opts RPOptions, err error) {
	if *a.upstream < 0 || *a.downstream < 0 {
		return opts, errors.Errorf("upstream (%d) and downstream (%d) must be non-negative", *a.upstream, *a.downstream)
	}
	if *a.binSize < 1 {
		return opts, errors.Wrapf(profile.ErrInvalidBinSize, "%d", *a.binSize)
	}
	if *a.minMapQ < 0 || *a.minMapQ > 255 {
		return opts, errors.Errorf("mapping quality %d outside 0-255", *a.minMapQ)
	}
	opts = RPOptions{
		PathRegions:       *a.regions,
		PathReads:         *a.reads,
		Upstream:          uint64(*a.upstream),
		Downstream:        uint64(*a.downstream),
		BinSize:           *a.binSize,
		Relative:          *a.relative,
		MinMappingQuality: byte(*a.minMapQ),
		NWorker:           *a.nWorker,
	}
	if opts.RefPoint, err = feature.ParseRefPoint(*a.refPoint); err != nil {
		return opts, err
	}
	if _, err = profile.ParseFormat(*a.profileFormat); err != nil {
		return opts, err
	}
	if *a.halfOpen {
		opts.Span = profile.SpanHalfOpen
	}
	if *a.trueTailBin {
		opts.Tail = profile.TailActual
	}
	// readTotals
	if len(*a.readTotals) > 0 {
		for _, t := range strings.Split(*a.readTotals, ",") {
			tf, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return opts, errors.Wrapf(err, "read total %q", t)
			}
			if tf < 0 || math.IsNaN(tf) || math.IsInf(tf, 0) {
				return opts, errors.Errorf("read total %q must be a non-negative number", t)
			}
			opts.ReadTotals = append(opts.ReadTotals, tf)
		}
	}
	// Labels
	var mapping map[string]string
	if len(*a.pathMapping) > 0 {
		if mapping, err = feature.OpenMapping(*a.pathMapping); err != nil {
			return opts, err
		}
	}
	for _, p := range opts.PathReads {
		opts.Labels = append(opts.Labels, feature.MapName(feature.TrimExt(p), mapping))
	}
	return opts, nil
}

func referencePoint(a rpArgs, log *logrus.Logger) (err error) {
	opts, err := a.rpOptions()
	if err != nil {
		return err
	}
	res, err := RunReferencePoint(context.Background(), opts, log)
	if err != nil {
		return err
	}

	// Outputs are removed if any of them fails
	var written []string
	defer func() {
		if err != nil {
			for _, p := range written {
				os.Remove(p)
			}
		}
	}()
	// Output: Plot
	title := *a.plotTitle
	if len(title) == 0 {
		title = feature.TrimExt(opts.PathRegions)
	}
	info := plot.Info{Path: *a.outFileName, Title: title, Width: *a.plotWidth, Height: *a.plotHeight}
	written = append(written, info.Path)
	skipped, err := plot.Render(res.Series, info, opts.Upstream, opts.Downstream, opts.BinSize)
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.WithField("bins", skipped).Warn("Non-finite bin(s) not drawn")
	}
	log.WithField("path", info.Path).Info("Plot written")
	// Output: Profile
	if len(*a.profilePath) > 0 {
		if err = profile.WriteProfiles(res.Series, *a.profilePath, *a.profileFormat); err != nil {
			return err
		}
		written = append(written, *a.profilePath)
		log.WithFields(logrus.Fields{"path": *a.profilePath, "format": *a.profileFormat}).Info("Profiles written")
	}
	// Output: Report
	if len(*a.pathReport) > 0 {
		if *a.pathReport != "-" {
			written = append(written, *a.pathReport)
		}
		if err = WriteReport(*a.pathReport, NewReport(opts, res)); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	parser := argparse.NewParser("profileabacus", "Read coverage profiles around genomic reference points")
	versionCmd := parser.NewCommand("version", "Print version and quit")
	rpCmd := parser.NewCommand("reference-point", "Profile reads around the center, start or end of regions")
	a := addRPArgs(rpCmd)
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	switch {
	case versionCmd.Happened():
		fmt.Println(version)
	case rpCmd.Happened():
		if *a.verboseFlag {
			log.SetLevel(logrus.InfoLevel)
		}
		if err := referencePoint(a, log); err != nil {
			log.Fatal(err)
		}
	}
}
