package ixf

import "testing"

func testCtx() *decodeContext {
	return &decodeContext{diag: newDiagnostics(nil)}
}

func TestFrame2BytePrefix(t *testing.T) {
	data := []byte{5, 0, 'h', 'e', 'l', 'l', 'o'}
	start, length, isNull, err := frame2BytePrefix(&ColumnDescriptor{}, data, 0)
	if err != nil {
		t.Fatalf("frame2BytePrefix failed: %v", err)
	}
	if isNull || start != 2 || length != 5 {
		t.Errorf("got start=%d length=%d isNull=%v", start, length, isNull)
	}
}

func TestFrame2BytePrefix_Null(t *testing.T) {
	data := []byte{0xFF, 0xFF}
	_, _, isNull, err := frame2BytePrefix(&ColumnDescriptor{}, data, 0)
	if err != nil || !isNull {
		t.Errorf("got isNull=%v err=%v, want isNull=true", isNull, err)
	}
}

func TestFrameFixedN_NullSentinel(t *testing.T) {
	data := []byte{0xFF}
	_, _, isNull, err := frameFixedN(10, true)(&ColumnDescriptor{}, data, 0)
	if err != nil || !isNull {
		t.Errorf("got isNull=%v err=%v, want isNull=true", isNull, err)
	}
}

func TestFrameDataLen_Overrun(t *testing.T) {
	col := &ColumnDescriptor{DataLen: 10}
	_, _, _, err := frameDataLen(false)(col, []byte("short"), 0)
	if err == nil {
		t.Error("expected an overrun error")
	}
}

func TestExtractField_UnknownType(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: 999, DataLen: 4, Pos: 1}
	v := extractField(ctx, col, []byte{1, 2, 3, 4})
	if v.Kind != KindRaw || len(v.Raw) != 4 {
		t.Errorf("got %+v, want 4 raw bytes", v)
	}
	if len(ctx.diag.Warnings) != 1 {
		t.Errorf("expected one warning, got %d", len(ctx.diag.Warnings))
	}
}

func TestExtractField_Overrun(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: TypeInteger, Pos: 1}
	v := extractField(ctx, col, []byte{1, 2}) // needs 4 bytes, only 2 given
	if v.Kind != KindAbsent {
		t.Errorf("got %+v, want absent on overrun", v)
	}
	if len(ctx.diag.Warnings) != 1 {
		t.Errorf("expected one warning, got %d", len(ctx.diag.Warnings))
	}
}

func TestExtractField_Integer(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: TypeInteger, Pos: 1}
	v := extractField(ctx, col, []byte{42, 0, 0, 0})
	if v.Kind != KindInt || v.Int != 42 {
		t.Errorf("got %+v, want int 42", v)
	}
}

func TestExtractField_Varchar(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: TypeVarchar, Pos: 1}
	data := append([]byte{5, 0}, []byte("hello")...)
	v := extractField(ctx, col, data)
	if v.Kind != KindText || v.Text != "hello" {
		t.Errorf("got %+v, want text hello", v)
	}
}

func TestExtractField_VarcharNull(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: TypeVarchar, Pos: 1}
	v := extractField(ctx, col, []byte{0xFF, 0xFF})
	if v.Kind != KindAbsent {
		t.Errorf("got %+v, want absent for NULL varchar", v)
	}
}

func TestExtractField_BlobLocation(t *testing.T) {
	ctx := testCtx()
	col := &ColumnDescriptor{Type: TypeBlobLocation, Pos: 1}
	locStr := "file.5.10"
	// 2-byte length prefix counts the locator string plus a trailing
	// sentinel byte that gets dropped (§9).
	payload := append([]byte{byte(len(locStr) + 1), 0}, append([]byte(locStr), 0)...)
	v := extractField(ctx, col, payload)
	if v.Kind != KindLocator || v.Locator == nil {
		t.Fatalf("got %+v, want a locator", v)
	}
	if v.Locator.FilePath != "file" || v.Locator.Offset != 5 || v.Locator.Length != 10 {
		t.Errorf("got %+v", v.Locator)
	}
}

func TestTypeName(t *testing.T) {
	if got := TypeName(TypeBigInt); got != "BIGINT" {
		t.Errorf("got %q, want BIGINT", got)
	}
	if got := TypeName(12345); got != "" {
		t.Errorf("got %q, want empty for unknown code", got)
	}
}
