// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "fmt"

// Sink is the decoder's output boundary (§4.9). It is a plain struct of
// function fields rather than an interface so a caller can wire up only the
// callbacks it cares about, the function-valued-field "no inheritance"
// shape the teacher uses for its own optional hooks.
type Sink struct {
	// OnTableDef fires once, at schema freeze.
	OnTableDef func(*TableDescriptor)
	// OnRow fires once per emitted row; rowIndex is zero-origin among rows
	// actually emitted, after from_row skipping (§4.9).
	OnRow func(rowIndex int, row Row)
	// OnApplicationRecord fires for each 'A' record seen, in any state
	// except End (§4.10).
	OnApplicationRecord func(ApplicationRecord)
	// OnEnd fires once, after the last row or at truncation.
	OnEnd func()
}

func (s *Sink) tableDef(t *TableDescriptor) {
	if s.OnTableDef != nil {
		s.OnTableDef(t)
	}
}

func (s *Sink) row(idx int, r Row) {
	if s.OnRow != nil {
		s.OnRow(idx, r)
	}
}

func (s *Sink) applicationRecord(a ApplicationRecord) {
	if s.OnApplicationRecord != nil {
		s.OnApplicationRecord(a)
	}
}

func (s *Sink) end() {
	if s.OnEnd != nil {
		s.OnEnd()
	}
}

// lobExtension picks the canonical identifier extension for a LOB-bearing
// column's type: binary for BLOB-family types, XML for XML, text otherwise
// (§4.9).
func lobExtension(typeCode int) string {
	switch typeCode {
	case TypeXML:
		return "xml"
	case TypeBlob, TypeBlobLocation, TypeBlobFile, TypeVarbinary, TypeBinary:
		return "bin"
	default:
		return "txt"
	}
}

// LobIdentifier builds the canonical side-channel identifier
// "<table>_<column>_<row>.{bin|txt|xml}" (§4.9) a sink can use in place of
// inlining a resolved LOB payload.
func LobIdentifier(table string, col *ColumnDescriptor, rowIndex int) string {
	return fmt.Sprintf("%s_%s_%d.%s", table, col.Name, rowIndex, lobExtension(col.Type))
}
