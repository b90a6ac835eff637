package ixf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLobLocatorString(t *testing.T) {
	loc, err := parseLobLocatorString("my.file.name.ixf.100.20")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if loc.FilePath != "my.file.name.ixf" || loc.Offset != 100 || loc.Length != 20 {
		t.Errorf("got %+v", loc)
	}
}

func TestParseLobLocatorString_Malformed(t *testing.T) {
	if _, err := parseLobLocatorString("nodots"); err == nil {
		t.Error("expected an error for a locator with no dots")
	}
}

func TestParseXDS(t *testing.T) {
	loc, err := parseXDS(`<XDS FIL='lob001.blob' OFF='0' LEN='128' />`)
	if err != nil {
		t.Fatalf("parseXDS failed: %v", err)
	}
	if loc.FilePath != "lob001.blob" || loc.Offset != 0 || loc.Length != 128 {
		t.Errorf("got %+v", loc)
	}
}

func TestLobResolver_Resolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lob001.blob")
	if err := os.WriteFile(path, []byte("0123456789"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewLobResolver(dir, "")
	data, err := r.Resolve(LobLocator{FilePath: "lob001.blob", Offset: 3, Length: 4})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(data) != "3456" {
		t.Errorf("got %q, want %q", data, "3456")
	}
}

func TestLobResolver_RecursiveSearch(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested", "deeper")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	path := filepath.Join(sub, "lob002.blob")
	if err := os.WriteFile(path, []byte("abcdef"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewLobResolver(dir, dir)
	data, err := r.Resolve(LobLocator{FilePath: "lob002.blob", Offset: 0, Length: 6})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(data) != "abcdef" {
		t.Errorf("got %q, want %q", data, "abcdef")
	}
}

func TestLobResolver_NotFound(t *testing.T) {
	r := NewLobResolver(t.TempDir(), "")
	if _, err := r.Resolve(LobLocator{FilePath: "missing.blob", Offset: 0, Length: 1}); err == nil {
		t.Error("expected an error for a missing lob file")
	} else if _, ok := err.(*LobFetchError); !ok {
		t.Errorf("got %T, want *LobFetchError", err)
	}
}
