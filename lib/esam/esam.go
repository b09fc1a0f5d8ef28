//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package esam

import (
	"io"
	"os"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
)

// PathSAM stores Path to SAM (Binary=false) or BAM (Binary=true) file.
type PathSAM struct {
	Path   string
	Binary bool
}

// NewPathSAM returns the PathSAM of path if it is a SAM or BAM file.
func NewPathSAM(path string) (PathSAM, bool) {
	switch {
	case strings.HasSuffix(path, ".bam"):
		return PathSAM{Path: path, Binary: true}, true
	case strings.HasSuffix(path, ".sam"):
		return PathSAM{Path: path, Binary: false}, true
	}
	return PathSAM{}, false
}

// OpenSAM opens a SAM or BAM file. Closing the returned Closer releases the file.
func OpenSAM(pathSAM PathSAM, nWorker int) (rr sam.RecordReader, c io.Closer, err error) {
	f, err := os.Open(pathSAM.Path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening %s", pathSAM.Path)
	}
	if pathSAM.Binary {
		br, err := bam.NewReader(f, nWorker)
		if err != nil {
			f.Close()
			return nil, nil, errors.Wrapf(err, "reading BAM header %s", pathSAM.Path)
		}
		return br, &multiCloser{[]io.Closer{f, br}}, nil
	}
	sr, err := sam.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "reading SAM header %s", pathSAM.Path)
	}
	return sr, f, nil
}

type multiCloser struct {
	closers []io.Closer
}

func (m *multiCloser) Close() (err error) {
	for i := len(m.closers) - 1; i >= 0; i-- {
		if cerr := m.closers[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return
}

// ReadIntervals returns the reference interval of every mapped primary alignment.
// Unmapped, secondary and supplementary records are ignored, as are records
// below minMappingQuality.
func ReadIntervals(rr sam.RecordReader, minMappingQuality byte) (intervals []feature.Interval, err error) {
	var id uint32
	for {
		aread, err := rr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return intervals, errors.Wrap(err, "reading alignment")
		}
		// Ignore unmapped read, secondary and supplementary alignment
		if aread.Flags&(sam.Unmapped|sam.Secondary|sam.Supplementary) != 0 || aread.Ref == nil {
			continue
		}
		if aread.MapQ < minMappingQuality {
			continue
		}
		iv, err := feature.NewInterval(aread.Ref.Name(), uint64(aread.Start()), uint64(aread.End()), feature.Strand(aread.Strand()))
		if err != nil {
			return intervals, errors.Wrapf(err, "alignment %s", aread.Name)
		}
		iv.ID = id
		id++
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// OpenIntervals reads intervals from a SAM/BAM file or else from a BED-like file.
func OpenIntervals(path string, minMappingQuality byte, nWorker int) ([]feature.Interval, error) {
	pathSAM, ok := NewPathSAM(path)
	if !ok {
		return feature.OpenBED(path)
	}
	rr, c, err := OpenSAM(pathSAM, nWorker)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	intervals, err := ReadIntervals(rr, minMappingQuality)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return intervals, nil
}
