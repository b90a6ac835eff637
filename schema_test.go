package ixf

import "testing"

func buildField(name string, val string, width int) string {
	for len(val) < width {
		val += " "
	}
	return val[:width]
}

func TestSchemaBuilder_OnT(t *testing.T) {
	payload := buildField("naml", "011", 3) +
		buildField("name", "mytable.ixf", 256) +
		buildField("qull", "000", 3) +
		buildField("qual", "", 256) +
		buildField("src", "", 12) +
		"C" + "M" +
		buildField("mfrm", "", 5) +
		"I" +
		buildField("ccnt", "00002", 5) +
		buildField("fil1", "", 2) +
		buildField("desc", "", 30) +
		buildField("pknm", "", 257) +
		buildField("dspc", "", 257) +
		buildField("ispc", "", 257)

	sb := newSchemaBuilder()
	sb.onT([]byte(payload))

	if sb.table.Name != "mytable" {
		t.Errorf("Name: got %q, want %q", sb.table.Name, "mytable")
	}
	if sb.table.CRecordCount != 2 {
		t.Errorf("CRecordCount: got %d, want 2", sb.table.CRecordCount)
	}
}

func TestSchemaBuilder_OnC_FreezeAfterFirstD(t *testing.T) {
	sb := newSchemaBuilder()
	sb.onT([]byte(buildField("naml", "001", 3) + buildField("name", "t", 256) +
		buildField("qull", "000", 3) + buildField("qual", "", 256) +
		buildField("src", "", 12) + "C" + "M" + buildField("mfrm", "", 5) + "I" +
		buildField("ccnt", "00000", 5) + buildField("fil1", "", 2) +
		buildField("desc", "", 30) + buildField("pknm", "", 257) +
		buildField("dspc", "", 257) + buildField("ispc", "", 257)))

	colPayload := buildField("naml", "003", 3) +
		buildField("name", "COL", 256) +
		"Y" + "N" + "N" +
		buildField("kpos", "00", 2) +
		"X" +
		buildField("type", "496", 3) +
		buildField("sbcp", "00000", 5) +
		buildField("dbcp", "00000", 5) +
		buildField("leng", "00004", 5) +
		buildField("drid", "001", 3) +
		buildField("posn", "000001", 6) +
		buildField("desc", "", 30) +
		buildField("lobl", "", 20) +
		buildField("udtl", "000", 3) +
		buildField("udtn", "", 256) +
		buildField("defl", "000", 3) +
		buildField("defv", "", 254) +
		"N" +
		buildField("ndim", "00", 2)

	if err := sb.onC([]byte(colPayload)); err != nil {
		t.Fatalf("onC failed: %v", err)
	}
	if len(sb.columns) != 1 || sb.columns[0].Name != "COL" {
		t.Fatalf("columns = %+v", sb.columns)
	}
	if sb.columns[0].Type != 496 {
		t.Errorf("Type: got %d, want 496", sb.columns[0].Type)
	}

	sb.freeze()
	if !sb.frozen {
		t.Fatal("expected frozen after freeze()")
	}
	if err := sb.onC([]byte(colPayload)); err != ErrSchemaFrozen {
		t.Errorf("onC after freeze: got %v, want ErrSchemaFrozen", err)
	}
}

func TestNormalizeCodePage(t *testing.T) {
	if got := normalizeCodePage("00000"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	if got := normalizeCodePage("01200"); got != "01200" {
		t.Errorf("got %q, want 01200", got)
	}
}
