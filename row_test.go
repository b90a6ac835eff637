package ixf

import "testing"

func buildDPayload(cid int, cols []byte) []byte {
	out := make([]byte, 0, 3+4+len(cols))
	out = append(out, []byte(threeDigits(cid))...)
	out = append(out, 0, 0, 0, 0) // IXFDFIL1 reserved
	out = append(out, cols...)
	return out
}

func threeDigits(n int) string {
	s := ""
	for i := 0; i < 3; i++ {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}

func intColumn(name string, colno, cid, pos int) ColumnDescriptor {
	return ColumnDescriptor{
		Colno: colno,
		Name:  name,
		Type:  TypeInteger,
		CID:   cid,
		Pos:   pos,
	}
}

func TestRowAssembler_SingleRecordRows(t *testing.T) {
	table := &TableDescriptor{Columns: []ColumnDescriptor{
		intColumn("A", 0, 1, 1),
		intColumn("B", 1, 1, 5),
	}}
	cidMap := map[int][]ColumnDescriptor{1: table.Columns}
	ctx := &decodeContext{table: table, diag: newDiagnostics(nil)}
	asm := newRowAssembler(table, cidMap, ctx)

	row1 := asm.onD(buildDPayload(1, []byte{1, 0, 0, 0, 2, 0, 0, 0}))
	if row1 != nil {
		t.Fatalf("first D record should not close a row yet, got %v", row1)
	}

	row2 := asm.onD(buildDPayload(1, []byte{3, 0, 0, 0, 4, 0, 0, 0}))
	if row2 == nil {
		t.Fatal("second cid==1 record should close the first row")
	}
	if row2[0].Int != 1 || row2[1].Int != 2 {
		t.Errorf("row1 = %+v, want [1, 2]", row2)
	}

	final := asm.flush()
	if final == nil || final[0].Int != 3 || final[1].Int != 4 {
		t.Errorf("flushed row = %+v, want [3, 4]", final)
	}
}

func TestRowAssembler_MultiRecordRow(t *testing.T) {
	table := &TableDescriptor{Columns: []ColumnDescriptor{
		{Colno: 0, Name: "A", Type: TypeInteger, CID: 1, Pos: 1},
		{Colno: 1, Name: "B", Type: TypeInteger, CID: 2, Pos: 1},
	}}
	cidMap := map[int][]ColumnDescriptor{
		1: {table.Columns[0]},
		2: {table.Columns[1]},
	}
	ctx := &decodeContext{table: table, diag: newDiagnostics(nil)}
	asm := newRowAssembler(table, cidMap, ctx)

	if done := asm.onD(buildDPayload(1, []byte{7, 0, 0, 0})); done != nil {
		t.Fatalf("cid 1 should not close a row, got %v", done)
	}
	if done := asm.onD(buildDPayload(2, []byte{9, 0, 0, 0})); done != nil {
		t.Fatalf("cid 2 should not close the row, got %v", done)
	}

	final := asm.flush()
	if final == nil || final[0].Int != 7 || final[1].Int != 9 {
		t.Errorf("flushed row = %+v, want [7, 9]", final)
	}
}
