// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "strconv"

// fieldDesc is one (name, byte length) entry in a record-type layout (§4.2).
// A zero Length on the last entry means "consume the remainder".
type fieldDesc struct {
	Name   string
	Length int
}

// Record-type layouts, ported field-for-field from IBM's PC/IXF record
// descriptions (see original_source/src/IXFTools.py's recordTypes table).
var (
	headerLayout = []fieldDesc{
		{"IXFHID", 3},
		{"IXFHVERS", 4},
		{"IXFHPROD", 12},
		{"IXFHDATE", 8},
		{"IXFHTIME", 6},
		{"IXFHHCNT", 5},
		{"IXFHSBCP", 5},
		{"IXFHDBCP", 5},
		{"IXFHFIL1", 0},
	}

	tableLayout = []fieldDesc{
		{"IXFTNAML", 3},
		{"IXFTNAME", 256},
		{"IXFTQULL", 3},
		{"IXFTQUAL", 256},
		{"IXFTSRC", 12},
		{"IXFTDATA", 1},
		{"IXFTFORM", 1},
		{"IXFTMFRM", 5},
		{"IXFTLOC", 1},
		{"IXFTCCNT", 5},
		{"IXFTFIL1", 2},
		{"IXFTDESC", 30},
		{"IXFTPKNM", 257},
		{"IXFTDSPC", 257},
		{"IXFTISPC", 257},
		{"IXFTLSPC", 0},
	}

	columnLayout = []fieldDesc{
		{"IXFCNAML", 3},
		{"IXFCNAME", 256},
		{"IXFCNULL", 1},
		{"IXFCDEF", 1},
		{"IXFCSLCT", 1},
		{"IXFCKPOS", 2},
		{"IXFCCLAS", 1},
		{"IXFCTYPE", 3},
		{"IXFCSBCP", 5},
		{"IXFCDBCP", 5},
		{"IXFCLENG", 5},
		{"IXFCDRID", 3},
		{"IXFCPOSN", 6},
		{"IXFCDESC", 30},
		{"IXFCLOBL", 20},
		{"IXFCUDTL", 3},
		{"IXFCUDTN", 256},
		{"IXFCDEFL", 3},
		{"IXFCDEFV", 254},
		{"IXFCREF", 1},
		{"IXFCNDIM", 2},
		{"IXFCDSIZ", 0},
	}

	dataLayout = []fieldDesc{
		{"IXFDRID", 3},
		{"IXFDFIL1", 4},
		{"IXFDCOLS", 0},
	}

	applicationLayout = []fieldDesc{
		{"IXFAPPID", 12},
		{"IXFADATA", 0},
	}
)

// splitFields carves payload into named slices with no reallocation (§4.2).
func splitFields(layout []fieldDesc, payload []byte) map[string][]byte {
	out := make(map[string][]byte, len(layout))
	off := 0
	for i, f := range layout {
		if f.Length == 0 || i == len(layout)-1 {
			if off > len(payload) {
				off = len(payload)
			}
			out[f.Name] = payload[off:]
			break
		}
		end := off + f.Length
		if end > len(payload) {
			end = len(payload)
		}
		if off > len(payload) {
			off = len(payload)
		}
		out[f.Name] = payload[off:end]
		off = end
	}
	return out
}

// parseASCIIInt decodes an ASCII-decimal integer field, as used for every
// CHARACTER-typed numeric sub-field in an IXF record. A blank or malformed
// field decodes to 0, matching original_source/src/IXFTools.py's parseInt.
func parseASCIIInt(b []byte) (int, bool) {
	s := trimBlank(b)
	if len(s) == 0 {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func trimBlank(b []byte) string {
	start, end := 0, len(b)
	for start < end && b[start] == ' ' {
		start++
	}
	for end > start && b[end-1] == ' ' {
		end--
	}
	return string(b[start:end])
}

// trimTrailingNulAndBlank trims trailing NUL and space bytes, the padding
// convention for CHARACTER fields shorter than their declared width.
func trimTrailingNulAndBlank(s string) string {
	end := len(s)
	for end > 0 && (s[end-1] == 0 || s[end-1] == ' ') {
		end--
	}
	return s[:end]
}
