// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

// rowAssembler implements the Row Assembler (§3, §4.5): a logical row may
// span several physical 'D' records, one per distinct cid, each carrying
// the columns whose IXFCDRID equals that record's IXFDRID. A record whose
// cid is not greater than the previous one seen closes the current row and
// opens the next, the same boundary rule IXFTools.py's row builder uses.
// This also re-opens a row on a repeated cid (e.g. two cid==1 records back
// to back), not only on the spec's literal "cid==1 starts a new row" case.
type rowAssembler struct {
	table   *TableDescriptor
	cidMap  map[int][]ColumnDescriptor
	ctx     *decodeContext
	numCols int

	current Row
	lastCID int
	rowOpen bool
}

func newRowAssembler(table *TableDescriptor, cidMap map[int][]ColumnDescriptor, ctx *decodeContext) *rowAssembler {
	return &rowAssembler{
		table:   table,
		cidMap:  cidMap,
		ctx:     ctx,
		numCols: len(table.Columns),
	}
}

// onD feeds one 'D' record's payload into the assembler. It returns a
// completed Row when the record closes one (i.e. a row is open and the
// record's cid is not greater than the previous record's cid), nil
// otherwise.
func (a *rowAssembler) onD(payload []byte) Row {
	f := splitFields(dataLayout, payload)
	cid, _ := parseASCIIInt(f["IXFDRID"])
	columnData := f["IXFDCOLS"]

	var completed Row
	if a.rowOpen && cid <= a.lastCID {
		completed = a.current
		a.startRow()
	} else if !a.rowOpen {
		a.startRow()
	}

	cols := a.cidMap[cid]
	for i := range cols {
		col := &cols[i]
		if col.Colno < 0 || col.Colno >= len(a.current) {
			continue
		}
		a.current[col.Colno] = extractField(a.ctx, col, columnData)
	}

	a.lastCID = cid
	return completed
}

func (a *rowAssembler) startRow() {
	a.current = make(Row, a.numCols)
	a.rowOpen = true
	a.lastCID = 0
}

// flush returns the last in-progress row, if any, at end of stream (§4.10).
func (a *rowAssembler) flush() Row {
	if !a.rowOpen {
		return nil
	}
	a.rowOpen = false
	return a.current
}
