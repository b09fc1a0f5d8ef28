//
// Copyright (C) 2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	bedColStrand = 5
	bedColScore  = 4
)

// ReadBED parses tabulated chrom, start, end records. The 5th column is kept as
// score if numeric and the 6th column as strand. Intervals are numbered in
// file order.
func ReadBED(r io.Reader, name string) (intervals []Interval, err error) {
	var nline int
	var id uint32
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		nline++
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 || line[0] == '#' || strings.HasPrefix(line, "track") || strings.HasPrefix(line, "browser") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return intervals, errors.Wrapf(ErrParse, "%s:%d: %d column(s), need at least 3", name, nline, len(fields))
		}
		var start, end uint64
		if start, err = strconv.ParseUint(fields[1], 10, 64); err != nil {
			return intervals, errors.Wrapf(ErrParse, "%s:%d: start %q", name, nline, fields[1])
		}
		if end, err = strconv.ParseUint(fields[2], 10, 64); err != nil {
			return intervals, errors.Wrapf(ErrParse, "%s:%d: end %q", name, nline, fields[2])
		}
		strand := StrandUnknown
		if len(fields) > bedColStrand {
			if strand, err = ParseStrand(fields[bedColStrand]); err != nil {
				return intervals, errors.Wrapf(err, "%s:%d", name, nline)
			}
		}
		iv, err := NewInterval(fields[0], start, end, strand)
		if err != nil {
			return intervals, errors.Wrapf(err, "%s:%d", name, nline)
		}
		if len(fields) > bedColScore {
			if score, err := strconv.ParseFloat(fields[bedColScore], 64); err == nil {
				iv.Score = score
				iv.HasScore = true
			}
		}
		iv.ID = id
		id++
		intervals = append(intervals, iv)
	}
	if err = scanner.Err(); err != nil {
		return intervals, errors.Wrapf(err, "reading %s", name)
	}
	return intervals, nil
}

// OpenBED reads all intervals of a (possibly compressed) BED-like file.
func OpenBED(path string) ([]Interval, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBED(f, path)
}
