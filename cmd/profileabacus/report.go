//
// Copyright (C) 2015-2024 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

type Report struct {
	Version        string      `json:"version"`
	Regions        int         `json:"regions"`
	ReferencePoint string      `json:"reference_point"`
	Upstream       uint64      `json:"upstream"`
	Downstream     uint64      `json:"downstream"`
	BinSize        int         `json:"bin_size"`
	Bins           int         `json:"bins"`
	Reads          []ReadStats `json:"reads"`
}

// NewReport summarizes a run.
func NewReport(opts RPOptions, res RPResult) Report {
	r := Report{Version: version, Regions: res.NRegion, ReferencePoint: opts.RefPoint.String(), Upstream: opts.Upstream, Downstream: opts.Downstream, BinSize: opts.BinSize, Reads: res.Stats}
	if len(res.Series) > 0 {
		r.Bins = len(res.Series[0].Values)
	}
	return r
}

// WriteReport writes report as JSON to pathReport (stdout with -).
func WriteReport(pathReport string, r Report) error {
	report, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if pathReport != "-" {
		if err := os.WriteFile(pathReport, append(report, '\n'), 0666); err != nil {
			return errors.Wrapf(err, "writing report %s", pathReport)
		}
	} else {
		fmt.Println(string(report))
	}
	return nil
}
