// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

// Header is the single IXF 'H' record (§3).
type Header struct {
	Identifier         string `json:"identifier"`
	Version            string `json:"version"`
	Product            string `json:"product"`
	WriteDate          string `json:"write_date"`
	WriteTime          string `json:"write_time"`
	HeadingRecordCount int    `json:"heading_record_count"`
	SingleByteCodePage string `json:"single_byte_code_page"`
	DoubleByteCodePage string `json:"double_byte_code_page"`
}

func parseHeader(payload []byte) Header {
	f := splitFields(headerLayout, payload)
	hcnt, _ := parseASCIIInt(f["IXFHHCNT"])
	return Header{
		Identifier:         string(f["IXFHID"]),
		Version:            string(f["IXFHVERS"]),
		Product:            string(f["IXFHPROD"]),
		WriteDate:          string(f["IXFHDATE"]),
		WriteTime:          string(f["IXFHTIME"]),
		HeadingRecordCount: hcnt,
		SingleByteCodePage: trimBlank(f["IXFHSBCP"]),
		DoubleByteCodePage: trimBlank(f["IXFHDBCP"]),
	}
}
