package ixf

import (
	"reflect"
	"testing"
)

func TestSplitFields(t *testing.T) {
	layout := []fieldDesc{
		{"A", 3},
		{"B", 2},
		{"C", 0},
	}
	payload := []byte("abcdeREST")
	got := splitFields(layout, payload)
	want := map[string][]byte{
		"A": []byte("abc"),
		"B": []byte("de"),
		"C": []byte("REST"),
	}
	for k, v := range want {
		if !reflect.DeepEqual(got[k], v) {
			t.Errorf("field %s: got %q, want %q", k, got[k], v)
		}
	}
}

func TestSplitFields_ShortPayload(t *testing.T) {
	layout := []fieldDesc{
		{"A", 5},
		{"B", 5},
	}
	got := splitFields(layout, []byte("ab"))
	if string(got["A"]) != "ab" {
		t.Errorf("A: got %q, want %q", got["A"], "ab")
	}
	if len(got["B"]) != 0 {
		t.Errorf("B: got %q, want empty", got["B"])
	}
}

func TestParseASCIIInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00123", 123},
		{"     ", 0},
		{"", 0},
		{"42", 42},
	}
	for _, tt := range tests {
		got, _ := parseASCIIInt([]byte(tt.in))
		if got != tt.want {
			t.Errorf("parseASCIIInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTrimBlank(t *testing.T) {
	if got := trimBlank([]byte("  hi there  ")); got != "hi there" {
		t.Errorf("got %q, want %q", got, "hi there")
	}
}

func TestTrimTrailingNulAndBlank(t *testing.T) {
	if got := trimTrailingNulAndBlank("hi\x00\x00  "); got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}
