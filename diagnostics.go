// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"fmt"

	"github.com/db2ixf/ixf/internal/log"
)

// diagnostics is the warning channel §7 keeps distinct from the data
// output: per-record and per-field faults are recovered locally and
// reported here instead of aborting the row, the way the teacher collects
// Anomalies on File rather than failing ParseDataDirectories outright.
type diagnostics struct {
	logger   *log.Helper
	Warnings []string

	UnknownRecordTypes int
}

func newDiagnostics(logger *log.Helper) *diagnostics {
	return &diagnostics{logger: logger}
}

func (d *diagnostics) warnf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	d.Warnings = append(d.Warnings, msg)
	if d.logger != nil {
		d.logger.Warnf("%s", msg)
	}
}

func (d *diagnostics) unknownRecordType(tag byte) {
	d.UnknownRecordTypes++
	if d.logger != nil {
		d.logger.Debugf("skipping unknown record type %q", string(tag))
	}
}
