//
// Copyright © 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package profile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/adler32"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4"
	"github.com/pkg/errors"
)

const binaryVersion uint8 = 1

type GenericWriter interface {
	Write(buf []byte) (n int, err error)
	Close() error
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Format is a profile table format with its optional compression.
type Format struct {
	Table string
	Zip   string
}

func (f Format) String() string {
	if len(f.Zip) == 0 {
		return f.Table
	}
	return f.Table + "+" + f.Zip
}

// ParseFormat parses "csv" or "binary", optionally followed by "+lz4",
// "+lz4hc" or "+gz".
func ParseFormat(profileFormat string) (f Format, err error) {
	f.Table = profileFormat
	if strings.Contains(profileFormat, "+") {
		doubleFormat := strings.SplitN(profileFormat, "+", 2)
		f.Table, f.Zip = doubleFormat[0], doubleFormat[1]
		if len(f.Zip) == 0 {
			return f, errors.Errorf("missing profile compression in %q", profileFormat)
		}
	}
	switch f.Table {
	case "csv", "binary":
	default:
		return f, errors.Errorf("unknown profile format %q", f.Table)
	}
	switch f.Zip {
	case "", "lz4", "lz4hc", "gz":
	default:
		return f, errors.Errorf("unknown profile compression %q", f.Zip)
	}
	return f, nil
}

// WriteProfiles writes series to profilePath in profileFormat (see
// ParseFormat). profilePath is removed if writing fails.
func WriteProfiles(series []Series, profilePath string, profileFormat string) error {
	format, err := ParseFormat(profileFormat)
	if err != nil {
		return err
	}
	if err = writeProfiles(series, profilePath, format); err != nil {
		os.Remove(profilePath)
		return err
	}
	return nil
}

func writeProfiles(series []Series, profilePath string, format Format) error {
	f, err := os.Create(profilePath)
	if err != nil {
		return errors.Wrapf(err, "creating %s", profilePath)
	}
	defer f.Close()
	var writer GenericWriter
	switch format.Zip {
	case "lz4":
		writer = lz4.NewWriter(f)
	case "lz4hc":
		lzWriter := lz4.NewWriter(f)
		lzWriter.Header = lz4.Header{CompressionLevel: 9}
		writer = lzWriter
	case "gz":
		writer = gzip.NewWriter(f)
	default:
		writer = nopCloser{f}
	}
	if format.Table == "binary" {
		err = writeBinary(writer, series)
	} else {
		err = writeCSV(writer, series)
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", profilePath)
	}
	if err = writer.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", profilePath)
	}
	return f.Close()
}

// writeCSV writes one line per series: label, number of bins and values.
func writeCSV(w io.Writer, series []Series) error {
	var buf bytes.Buffer
	for _, s := range series {
		buf.Reset()
		buf.WriteString(strconv.Quote(s.Label))
		fmt.Fprintf(&buf, ",%d", len(s.Values))
		for _, v := range s.Values {
			buf.WriteByte(',')
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		buf.WriteByte('\n')
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// writeBinary writes version, series count, bins per series, adler32 of the
// labels, then float32 values of each series (little-endian).
func writeBinary(w io.Writer, series []Series) error {
	var nbin uint32
	if len(series) > 0 {
		nbin = uint32(len(series[0].Values))
	}
	bufChecksum := new(bytes.Buffer)
	for _, s := range series {
		if uint32(len(s.Values)) != nbin {
			return errors.Errorf("series %s has %d bins, expected %d", s.Label, len(s.Values), nbin)
		}
		bufChecksum.WriteString(s.Label)
		bufChecksum.WriteByte('\n')
	}
	for _, v := range []interface{}{binaryVersion, uint32(len(series)), nbin, adler32.Checksum(bufChecksum.Bytes())} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, s := range series {
		values := make([]float32, len(s.Values))
		for i, v := range s.Values {
			values[i] = float32(v)
		}
		if err := binary.Write(w, binary.LittleEndian, values); err != nil {
			return err
		}
	}
	return nil
}
