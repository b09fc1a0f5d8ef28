//
// Copyright © 2015 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

package feature

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
)

// OpenMapping reads a two-column tabulated file: name and display label.
func OpenMapping(mpath string) (map[string]string, error) {
	m := make(map[string]string)

	mfos, err := Open(mpath)
	if err != nil {
		return m, err
	}
	defer mfos.Close()

	var nline int
	tscanner := bufio.NewScanner(mfos)
	for tscanner.Scan() {
		nline++
		if len(tscanner.Text()) == 0 {
			continue
		}
		fields := strings.Split(tscanner.Text(), "\t")
		if len(fields) < 2 {
			return m, errors.Wrapf(ErrParse, "%s:%d: mapping needs 2 columns", mpath, nline)
		}
		m[fields[0]] = fields[1]
	}
	if err := tscanner.Err(); err != nil {
		return m, errors.Wrapf(err, "reading %s", mpath)
	}
	return m, nil
}

func MapName(name string, m map[string]string) string {
	if nn, ok := m[name]; ok {
		return nn
	}
	return name
}
