package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
	"git.sr.ht/~vejnar/ProfileAbacus/lib/profile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0666))
	return p
}

type testFiles struct {
	regions, empty, reads1, reads2, reads3 string
}

func newTestFiles(t *testing.T) testFiles {
	dir := t.TempDir()
	return testFiles{
		regions: writeFile(t, dir, "tss.bed", "chr1\t1000\t1100\tg1\t0\t+\n"),
		empty:   writeFile(t, dir, "empty.bed", ""),
		reads1:  writeFile(t, dir, "s1.bed", "chr1\t1020\t1030\n"),
		reads2:  writeFile(t, dir, "s2.bed", "chr1\t1020\t1030\nchr1\t1060\t1070\nchr2\t1020\t1030\nchr1\t5000\t5010\n"),
		reads3:  writeFile(t, dir, "s3.bed", "chr3\t1\t2\n"),
	}
}

func testOptions(f testFiles, reads ...string) RPOptions {
	opts := RPOptions{PathRegions: f.regions, PathReads: reads, Upstream: 50, Downstream: 50, BinSize: 10, RefPoint: feature.RefCenter, NWorker: 3}
	for _, r := range reads {
		opts.Labels = append(opts.Labels, feature.TrimExt(r))
	}
	return opts
}

func TestRunReferencePoint(t *testing.T) {
	f := newTestFiles(t)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.InfoLevel)
	opts := testOptions(f, f.reads2, f.reads1, f.reads3)
	res, err := RunReferencePoint(context.Background(), opts, log)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NRegion)
	require.Len(t, res.Series, 3)
	for i, label := range []string{"s2", "s1", "s3"} {
		assert.Equal(t, label, res.Series[i].Label)
		assert.Len(t, res.Series[i].Values, 10)
		assert.Equal(t, label, res.Stats[i].Label)
	}
	// s1: one read at offsets 20-30
	assert.InDelta(t, 1e6, res.Series[1].Values[2], 1e-6)
	assert.InDelta(t, 1e5, res.Series[1].Values[3], 1e-6)
	assert.Equal(t, 0., res.Series[1].Values[0])
	// s2: 4 reads, 2 inside
	assert.InDelta(t, 2.5e5, res.Series[0].Values[2], 1e-6)
	assert.InDelta(t, 2.5e5, res.Series[0].Values[6], 1e-6)
	assert.Equal(t, ReadStats{Label: "s2", Path: f.reads2, Intervals: 4, LibrarySize: 4, Pairs: 2, Outside: 2, MissingChrs: []string{"chr2"}}, res.Stats[0])
	// s3: no read in windows
	assert.Equal(t, make([]float64, 10), res.Series[2].Values)
	assert.NotEmpty(t, hook.Entries)
}

func TestRunReferencePointRelative(t *testing.T) {
	f := newTestFiles(t)
	log, _ := test.NewNullLogger()
	opts := testOptions(f, f.reads1, f.reads2)
	opts.Relative = true
	opts.ReadTotals = []float64{2, 0}
	res, err := RunReferencePoint(context.Background(), opts, log)
	require.NoError(t, err)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "s1 / s2", res.Series[0].Label)
	// s1 normalized with library size 2, s2 with 4 reads
	assert.InDelta(t, 2., res.Series[0].Values[2], 1e-9)
	assert.Equal(t, 2., res.Stats[0].LibrarySize)
	assert.Equal(t, 4., res.Stats[1].LibrarySize)

	for _, reads := range [][]string{{f.reads1}, {f.reads1, f.reads2, f.reads3}} {
		opts := testOptions(f, reads...)
		opts.Relative = true
		_, err = RunReferencePoint(context.Background(), opts, log)
		assert.True(t, errors.Is(err, profile.ErrUnsupportedReadCount))
	}
}

func TestRunReferencePointErrors(t *testing.T) {
	f := newTestFiles(t)
	log, _ := test.NewNullLogger()

	opts := testOptions(f, f.reads1)
	opts.PathRegions = f.empty
	_, err := RunReferencePoint(context.Background(), opts, log)
	assert.True(t, errors.Is(err, profile.ErrDivisionByZero))

	opts = testOptions(f, f.reads1)
	opts.Upstream = 1051
	_, err = RunReferencePoint(context.Background(), opts, log)
	assert.True(t, errors.Is(err, feature.ErrArithmeticUnderflow))

	opts = testOptions(f, f.reads1, f.empty)
	_, err = RunReferencePoint(context.Background(), opts, log)
	assert.True(t, errors.Is(err, profile.ErrDivisionByZero))

	opts = testOptions(f, f.reads1, filepath.Join(filepath.Dir(f.reads1), "missing.bed"))
	_, err = RunReferencePoint(context.Background(), opts, log)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	opts = testOptions(f, f.reads1)
	opts.ReadTotals = []float64{-5}
	_, err = RunReferencePoint(context.Background(), opts, log)
	assert.Error(t, err)

	opts = testOptions(f, f.reads1)
	opts.BinSize = 0
	_, err = RunReferencePoint(context.Background(), opts, log)
	assert.True(t, errors.Is(err, profile.ErrInvalidBinSize))
}

func newTestArgs(f testFiles, out string) rpArgs {
	str := func(s string) *string { return &s }
	integer := func(i int) *int { return &i }
	boolean := func(b bool) *bool { return &b }
	return rpArgs{
		regions: str(f.regions), outFileName: str(filepath.Join(out, "plot.png")), plotTitle: str(""), refPoint: str("center"),
		readTotals: str(""), pathMapping: str(""), pathReport: str(filepath.Join(out, "report.json")),
		profilePath: str(filepath.Join(out, "profiles.csv")), profileFormat: str("csv"),
		reads:    &[]string{f.reads1, f.reads2},
		upstream: integer(50), downstream: integer(50), binSize: integer(10),
		plotHeight: integer(300), plotWidth: integer(400), minMapQ: integer(0), nWorker: integer(2),
		relative: boolean(false), halfOpen: boolean(false), trueTailBin: boolean(false), verboseFlag: boolean(false),
	}
}

func TestRPOptions(t *testing.T) {
	f := newTestFiles(t)
	dir := t.TempDir()
	a := newTestArgs(f, dir)
	*a.refPoint = "end"
	*a.halfOpen = true
	*a.trueTailBin = true
	*a.readTotals = "10,20.5"
	*a.pathMapping = writeFile(t, dir, "mapping.tab", "s1\tControl\n")
	opts, err := a.rpOptions()
	require.NoError(t, err)
	assert.Equal(t, feature.RefEnd, opts.RefPoint)
	assert.Equal(t, profile.SpanHalfOpen, opts.Span)
	assert.Equal(t, profile.TailActual, opts.Tail)
	assert.Equal(t, []float64{10, 20.5}, opts.ReadTotals)
	assert.Equal(t, []string{"Control", "s2"}, opts.Labels)

	a = newTestArgs(f, dir)
	*a.refPoint = "middle"
	_, err = a.rpOptions()
	assert.True(t, errors.Is(err, feature.ErrInvalidReferencePoint))

	a = newTestArgs(f, dir)
	*a.upstream = -1
	_, err = a.rpOptions()
	assert.Error(t, err)

	a = newTestArgs(f, dir)
	*a.binSize = 0
	_, err = a.rpOptions()
	assert.True(t, errors.Is(err, profile.ErrInvalidBinSize))

	a = newTestArgs(f, dir)
	*a.readTotals = "10,x"
	_, err = a.rpOptions()
	assert.Error(t, err)

	for _, totals := range []string{"-5,10", "10,NaN", "Inf,1"} {
		a = newTestArgs(f, dir)
		*a.readTotals = totals
		_, err = a.rpOptions()
		assert.Error(t, err, totals)
	}

	a = newTestArgs(f, dir)
	*a.readTotals = "0,0"
	opts, err = a.rpOptions()
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, opts.ReadTotals)

	for _, format := range []string{"csv+zip", "bedgraph", "csv+"} {
		a = newTestArgs(f, dir)
		*a.profileFormat = format
		_, err = a.rpOptions()
		assert.Error(t, err, format)
	}
}

func TestReferencePointOutputs(t *testing.T) {
	f := newTestFiles(t)
	dir := t.TempDir()
	log, _ := test.NewNullLogger()
	a := newTestArgs(f, dir)
	require.NoError(t, referencePoint(a, log))

	st, err := os.Stat(*a.outFileName)
	require.NoError(t, err)
	assert.True(t, st.Size() > 0)

	b, err := os.ReadFile(*a.profilePath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\"s1\",10,")

	b, err = os.ReadFile(*a.pathReport)
	require.NoError(t, err)
	var report Report
	require.NoError(t, json.Unmarshal(b, &report))
	assert.Equal(t, 1, report.Regions)
	assert.Equal(t, "center", report.ReferencePoint)
	assert.Equal(t, 10, report.Bins)
	require.Len(t, report.Reads, 2)
	assert.Equal(t, "s2", report.Reads[1].Label)
	assert.Equal(t, []string{"chr2"}, report.Reads[1].MissingChrs)
}

func TestReferencePointNoPartialOutput(t *testing.T) {
	f := newTestFiles(t)
	log, _ := test.NewNullLogger()
	tests := []struct {
		name  string
		setup func(a rpArgs, dir string)
	}{
		{"empty reads", func(a rpArgs, dir string) { *a.reads = []string{f.reads1, f.empty} }},
		{"profile format", func(a rpArgs, dir string) { *a.profileFormat = "csv+zip" }},
		{"profile path", func(a rpArgs, dir string) { *a.profilePath = filepath.Join(dir, "missing", "profiles.csv") }},
		{"report path", func(a rpArgs, dir string) { *a.pathReport = filepath.Join(dir, "missing", "report.json") }},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		a := newTestArgs(f, dir)
		tt.setup(a, dir)
		assert.Error(t, referencePoint(a, log), tt.name)
		for _, p := range []string{*a.outFileName, *a.profilePath, *a.pathReport} {
			_, err := os.Stat(p)
			assert.True(t, os.IsNotExist(err), "%s: %s", tt.name, p)
		}
	}

	a := newTestArgs(f, t.TempDir())
	*a.reads = []string{f.reads1, f.empty}
	assert.True(t, errors.Is(referencePoint(a, log), profile.ErrDivisionByZero))
}
