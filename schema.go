// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "strings"

// TableDescriptor is built from the single 'T' record plus the 'C' records
// that follow it (§3, §4.4).
type TableDescriptor struct {
	Name           string             `json:"name"`
	Qualifier      string             `json:"qualifier"`
	DataSource     string             `json:"data_source"`
	Convention     string             `json:"convention"`
	Format         string             `json:"format"`
	MachineFormat  string             `json:"machine_format"`
	DataLocation   string             `json:"data_location"`
	CRecordCount   int                `json:"c_record_count"`
	Description    string             `json:"description"`
	PrimaryKeyName string             `json:"primary_key_name"`
	Columns        []ColumnDescriptor `json:"columns"`

	// SingleByteCodePage and DoubleByteCodePage complete the Code-Page
	// Resolver's table-level precedence step (§4.3). IBM's PC/IXF 'T'
	// record carries no code-page sub-fields, so these are always empty in
	// practice; they exist so the resolver's precedence chain is literally
	// implemented end to end, and so a future record-layout revision has
	// somewhere to put them.
	SingleByteCodePage string `json:"single_byte_code_page,omitempty"`
	DoubleByteCodePage string `json:"double_byte_code_page,omitempty"`
}

// ColumnDescriptor is one 'C' record (§3).
type ColumnDescriptor struct {
	Colno             int    `json:"colno"`
	Name              string `json:"name"`
	Nullable          bool   `json:"nullable"`
	HasDefault        bool   `json:"has_default"`
	PrimaryKeyPos     int    `json:"primary_key_pos,omitempty"`
	Selected          bool   `json:"selected"`
	DataClass         byte   `json:"data_class"`
	Type              int    `json:"type"`
	SingleByteCodePage string `json:"single_byte_code_page,omitempty"`
	DoubleByteCodePage string `json:"double_byte_code_page,omitempty"`
	DataLen           int    `json:"data_len"`
	CID               int    `json:"cid"`
	Pos               int    `json:"pos"`
	Description       string `json:"description,omitempty"`
	LobLength         int64  `json:"lob_length,omitempty"`
	UDTName           string `json:"udt_name,omitempty"`
	DefaultValue      string `json:"default_value,omitempty"`
	ReferenceType     byte   `json:"reference_type,omitempty"`
	DimCount          int    `json:"dim_count,omitempty"`
	DimSizes          []int  `json:"dim_sizes,omitempty"`
}

// schemaBuilder implements §4.4 (on_H/on_T/on_C) and the cid index used by
// the Row Assembler.
type schemaBuilder struct {
	header  *Header
	table   *TableDescriptor
	columns []ColumnDescriptor
	frozen  bool
	cidMap  map[int][]ColumnDescriptor
}

func newSchemaBuilder() *schemaBuilder {
	return &schemaBuilder{}
}

func (s *schemaBuilder) onH(payload []byte) {
	h := parseHeader(payload)
	s.header = &h
}

func (s *schemaBuilder) onT(payload []byte) {
	f := splitFields(tableLayout, payload)
	naml, _ := parseASCIIInt(f["IXFTNAML"])
	qull, _ := parseASCIIInt(f["IXFTQULL"])
	ccnt, _ := parseASCIIInt(f["IXFTCCNT"])

	name := sliceUpTo(f["IXFTNAME"], naml)
	if strings.HasSuffix(name, ".ixf") {
		name = name[:len(name)-4]
	}

	s.table = &TableDescriptor{
		Name:           name,
		Qualifier:      sliceUpTo(f["IXFTQUAL"], qull),
		DataSource:     trimBlank(f["IXFTSRC"]),
		Convention:     string(f["IXFTDATA"]),
		Format:         string(f["IXFTFORM"]),
		MachineFormat:  trimBlank(f["IXFTMFRM"]),
		DataLocation:   string(f["IXFTLOC"]),
		CRecordCount:   ccnt,
		Description:    trimBlank(f["IXFTDESC"]),
		PrimaryKeyName: trimBlank(f["IXFTPKNM"]),
	}
}

func (s *schemaBuilder) onC(payload []byte) error {
	if s.frozen {
		return ErrSchemaFrozen
	}

	f := splitFields(columnLayout, payload)
	naml, _ := parseASCIIInt(f["IXFCNAML"])
	typ, _ := parseASCIIInt(f["IXFCTYPE"])
	dataLen, _ := parseASCIIInt(f["IXFCLENG"])
	cid, _ := parseASCIIInt(f["IXFCDRID"])
	pos, _ := parseASCIIInt(f["IXFCPOSN"])
	pkpos, _ := parseASCIIInt(f["IXFCKPOS"])
	lobLen, _ := parseASCIIInt(f["IXFCLOBL"])
	udtl, _ := parseASCIIInt(f["IXFCUDTL"])
	defl, _ := parseASCIIInt(f["IXFCDEFL"])
	ndim, _ := parseASCIIInt(f["IXFCNDIM"])

	col := ColumnDescriptor{
		Colno:              len(s.columns),
		Name:               sliceUpTo(f["IXFCNAME"], naml),
		Nullable:           string(f["IXFCNULL"]) == "Y",
		HasDefault:         string(f["IXFCDEF"]) == "Y",
		PrimaryKeyPos:      pkpos,
		Selected:           string(f["IXFCSLCT"]) == "Y",
		DataClass:          firstByte(f["IXFCCLAS"]),
		Type:               typ,
		SingleByteCodePage: normalizeCodePage(trimBlank(f["IXFCSBCP"])),
		DoubleByteCodePage: normalizeCodePage(trimBlank(f["IXFCDBCP"])),
		DataLen:            dataLen,
		CID:                cid,
		Pos:                pos,
		Description:        trimBlank(f["IXFCDESC"]),
		LobLength:          int64(lobLen),
		UDTName:            sliceUpTo(f["IXFCUDTN"], udtl),
		DefaultValue:       sliceUpTo(f["IXFCDEFV"], defl),
		ReferenceType:      firstByte(f["IXFCREF"]),
		DimCount:           ndim,
	}

	if ndim > 0 {
		raw := f["IXFCDSIZ"]
		if ndim <= len(raw) {
			chunk := len(raw) / ndim
			if chunk > 0 {
				sizes := make([]int, 0, ndim)
				for i := 0; i < ndim; i++ {
					start := i * chunk
					end := start + chunk
					if end > len(raw) {
						end = len(raw)
					}
					n, _ := parseASCIIInt(raw[start:end])
					sizes = append(sizes, n)
				}
				col.DimSizes = sizes
			}
		}
	}

	s.columns = append(s.columns, col)
	return nil
}

// freeze finalizes the TableDescriptor and builds the cid index, fired by
// the first 'D' record (§3 "schema freeze", §4.10).
func (s *schemaBuilder) freeze() *TableDescriptor {
	if s.table == nil {
		s.table = &TableDescriptor{}
	}
	s.table.Columns = s.columns

	s.cidMap = make(map[int][]ColumnDescriptor)
	for _, c := range s.columns {
		s.cidMap[c.CID] = append(s.cidMap[c.CID], c)
	}
	s.frozen = true
	return s.table
}

// normalizeCodePage maps the all-zero "unset" sentinel to the empty string
// so the Code-Page Resolver's precedence chain can treat it as absent (§3).
func normalizeCodePage(cp string) string {
	if cp == "00000" || cp == "" {
		return ""
	}
	return cp
}

func sliceUpTo(b []byte, n int) string {
	if n < 0 {
		n = 0
	}
	if n > len(b) {
		n = len(b)
	}
	return string(b[:n])
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
