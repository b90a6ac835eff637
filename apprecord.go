// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"fmt"
	"strings"
)

// ApplicationRecord is one decoded 'A' record (§3, §4.8). Fields holds the
// subtype's named fields in descriptor order; Raw carries the full
// application-specific payload regardless of whether it was decoded.
type ApplicationRecord struct {
	AppID   string            `json:"app_id"`
	Subtype byte              `json:"subtype,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Raw     []byte            `json:"-"`
}

// db2AppID is the application identifier IBM's own export/import tools
// stamp on 'A' records (§4.8); anything else decodes generically.
const db2AppID = "DB2    02.00"

// appFieldKind distinguishes a textual field from a length prefix that
// governs the byte width of the textual field immediately following it
// (§4.8: "length of name of ..." fields paired with a CHARACTER field).
type appFieldKind int

const (
	appText appFieldKind = iota
	appLenPrefix
)

type appFieldDesc struct {
	Name   string
	Length int // byte width on the wire; 0 means "governed by the preceding length prefix"
	Kind   appFieldKind
}

// appRecordLayouts maps a DB2 application subtype byte to its descriptor,
// ported from the DB2-specific 'A' record layouts in
// original_source/src/IXFTools.py's header documentation (§4.8).
var appRecordLayouts = map[byte][]appFieldDesc{
	'I': { // DB2 INDEX RECORD
		{"IXFADATE", 8, appText},
		{"IXFATIME", 6, appText},
		{"IXFANDXL", 2, appLenPrefix},
		{"IXFANDXN", 0, appText},
		{"IXFANCL", 2, appLenPrefix},
		{"IXFANCN", 0, appText},
		{"IXFATABL", 2, appLenPrefix},
		{"IXFATABN", 0, appText},
		{"IXFATCL", 2, appLenPrefix},
		{"IXFATCN", 0, appText},
		{"IXFAUNIQ", 1, appText},
		{"IXFACCNT", 2, appText},
		{"IXFAREVS", 1, appText},
		{"IXFAIDXT", 1, appText},
		{"IXFAPCTF", 2, appText},
		{"IXFAPCTU", 2, appText},
		{"IXFAEXTI", 1, appText},
		{"IXFACNML", 6, appLenPrefix},
		{"IXFACOLN", 0, appText},
	},
	'X': { // DB2 HIERARCHY RECORD
		{"IXFADATE", 8, appText},
		{"IXFATIME", 6, appText},
		{"IXFAYCNT", 10, appText},
		{"IXFAYSTR", 10, appText},
	},
	'Y': { // DB2 SUBTABLE RECORD
		{"IXFADATE", 8, appText},
		{"IXFATIME", 6, appText},
		{"IXFASCHL", 3, appLenPrefix},
		{"IXFASCHN", 0, appText},
		{"IXFATYPL", 3, appLenPrefix},
		{"IXFATYPN", 0, appText},
		{"IXFATABL", 3, appLenPrefix},
		{"IXFATABN", 0, appText},
		{"IXFAPNDX", 10, appText},
		{"IXFASNDX", 5, appText},
		{"IXFAENDX", 5, appText},
	},
	'C': { // DB2 CONTINUATION RECORD
		{"IXFADATE", 8, appText},
		{"IXFATIME", 6, appText},
		{"IXFALAST", 2, appText},
		{"IXFATHIS", 2, appText},
		{"IXFANEXT", 2, appText},
	},
	'E': { // DB2 TERMINATE RECORD
		{"IXFADATE", 8, appText},
		{"IXFATIME", 6, appText},
	},
}

// identityRecordLayout is the DB2 IDENTITY RECORD ('S' subtype); it has no
// length-prefixed fields, so it is decoded with a plain fixed-width walk.
var identityRecordLayout = []fieldDesc{
	{"IXFADATE", 8},
	{"IXFATIME", 6},
	{"IXFACOLN", 6},
	{"IXFAITYP", 1},
	{"IXFASTRT", 33},
	{"IXFAINCR", 33},
	{"IXFACACH", 10},
	{"IXFAMINV", 33},
	{"IXFAMAXV", 33},
	{"IXFACYCL", 1},
	{"IXFAORDR", 1},
	{"IXFARMRL", 3},
	{"IXFARMRK", 254},
}

// sqlcaRecordLayout is the DB2 SQLCA RECORD ('A' subtype).
var sqlcaRecordLayout = []fieldDesc{
	{"IXFADATE", 8},
	{"IXFATIME", 6},
	{"IXFASLCA", 136},
}

// decodeApplicationRecord implements the Application-Record Decoder (§4.8).
// Unrecognized application ids, or a DB2 subtype this decoder doesn't list,
// fall back to a generic record carrying the raw payload untouched.
func decodeApplicationRecord(payload []byte) ApplicationRecord {
	f := splitFields(applicationLayout, payload)
	appID := string(f["IXFAPPID"])
	data := f["IXFADATA"]

	if strings.TrimRight(appID, " ") != strings.TrimRight(db2AppID, " ") || len(data) == 0 {
		return ApplicationRecord{AppID: appID, Raw: append([]byte(nil), data...)}
	}

	subtype := data[0]
	rest := data[1:]

	switch subtype {
	case 'S':
		return ApplicationRecord{
			AppID:   appID,
			Subtype: subtype,
			Fields:  decodeFixedAppFields(identityRecordLayout, rest),
			Raw:     append([]byte(nil), data...),
		}
	case 'A':
		return ApplicationRecord{
			AppID:   appID,
			Subtype: subtype,
			Fields:  decodeFixedAppFields(sqlcaRecordLayout, rest),
			Raw:     append([]byte(nil), data...),
		}
	}

	layout, ok := appRecordLayouts[subtype]
	if !ok {
		return ApplicationRecord{
			AppID:   appID,
			Subtype: subtype,
			Raw:     append([]byte(nil), data...),
		}
	}

	return ApplicationRecord{
		AppID:   appID,
		Subtype: subtype,
		Fields:  decodeVariableAppFields(layout, rest),
		Raw:     append([]byte(nil), data...),
	}
}

func decodeFixedAppFields(layout []fieldDesc, data []byte) map[string]string {
	f := splitFields(layout, data)
	out := make(map[string]string, len(layout))
	for _, fd := range layout {
		out[fd.Name] = trimTrailingNulAndBlank(trimBlank(f[fd.Name]))
	}
	return out
}

// decodeVariableAppFields walks a descriptor where a length-prefix field
// sets the byte width of the CHARACTER field that immediately follows it
// (§4.8).
func decodeVariableAppFields(layout []appFieldDesc, data []byte) map[string]string {
	out := make(map[string]string, len(layout))
	off := 0
	pendingLen := -1

	for _, fd := range layout {
		n := fd.Length
		if fd.Kind == appText && n == 0 {
			if pendingLen >= 0 {
				n = pendingLen
			}
		}
		if off > len(data) {
			off = len(data)
		}
		end := off + n
		if end > len(data) {
			end = len(data)
		}
		raw := data[off:end]
		off = end

		switch fd.Kind {
		case appLenPrefix:
			// 2-byte length fields are SHORT INT (binary, little-endian);
			// the 3- and 6-byte ones are CHARACTER fields holding ASCII
			// decimal digits, like the other numeric sub-fields.
			if fd.Length == 2 {
				pendingLen = int(readUintLEWidth(raw))
			} else {
				pendingLen, _ = parseASCIIInt(raw)
			}
			out[fd.Name] = fmt.Sprintf("%d", pendingLen)
		default:
			out[fd.Name] = trimTrailingNulAndBlank(trimBlank(raw))
			pendingLen = -1
		}
	}
	return out
}
