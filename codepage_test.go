package ixf

import "testing"

func TestResolveCodePage_Precedence(t *testing.T) {
	col := &ColumnDescriptor{SingleByteCodePage: "01140"}
	table := &TableDescriptor{SingleByteCodePage: "01141"}
	header := &Header{SingleByteCodePage: "01142"}

	if got := resolveCodePage("override", col, table, header); got != "override" {
		t.Errorf("override precedence: got %q", got)
	}
	if got := resolveCodePage("", col, table, header); got != "01140" {
		t.Errorf("column precedence: got %q, want 01140", got)
	}
	if got := resolveCodePage("", nil, table, header); got != "01141" {
		t.Errorf("table precedence: got %q, want 01141", got)
	}
	if got := resolveCodePage("", nil, nil, header); got != "01142" {
		t.Errorf("header precedence: got %q, want 01142", got)
	}
	if got := resolveCodePage("", nil, nil, nil); got != DefaultCodePage {
		t.Errorf("default: got %q, want %q", got, DefaultCodePage)
	}
}

func TestResolveCodePage_HeaderAllZeroIgnored(t *testing.T) {
	header := &Header{SingleByteCodePage: "00000", DoubleByteCodePage: "00000"}
	if got := resolveCodePage("", nil, nil, header); got != DefaultCodePage {
		t.Errorf("got %q, want default %q", got, DefaultCodePage)
	}
}

func TestDecodeText_UnknownCodePage(t *testing.T) {
	_, err := decodeText("99999", []byte("hi"))
	if _, ok := err.(*UnknownCodePageError); !ok {
		t.Errorf("got %v, want *UnknownCodePageError", err)
	}
}

func TestDecodeText_UTF8(t *testing.T) {
	got, err := decodeText("01200", []byte("hello"))
	if err != nil {
		t.Fatalf("decodeText failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}
