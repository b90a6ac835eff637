// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// LobLocator points at an externally-stored LOB/XML payload (§3, §4.6,
// §4.7). It is cheap to carry around; Resolve only touches the filesystem
// when the caller actually wants the bytes, the same deferred-fetch shape
// as go-hdb's LobOutDescr.
type LobLocator struct {
	FilePath  string
	Offset    int64
	Length    int64
	Encoding  string // resolved code page; empty for binary (BLOB) locators
	LobFolder string // search root, filled in by the decoder
}

// String renders the canonical "file.offset.length" form (§3, §6).
func (l LobLocator) String() string {
	return fmt.Sprintf("%s.%d.%d", l.FilePath, l.Offset, l.Length)
}

// parseLobLocatorString parses "file_name.offset.length", splitting on the
// last two dots so a file name that itself contains dots still parses
// (§6).
func parseLobLocatorString(s string) (LobLocator, error) {
	lastDot := strings.LastIndexByte(s, '.')
	if lastDot < 0 {
		return LobLocator{}, fmt.Errorf("ixf: malformed lob locator %q", s)
	}
	secondDot := strings.LastIndexByte(s[:lastDot], '.')
	if secondDot < 0 {
		return LobLocator{}, fmt.Errorf("ixf: malformed lob locator %q", s)
	}

	length, err := strconv.ParseInt(s[lastDot+1:], 10, 64)
	if err != nil {
		return LobLocator{}, fmt.Errorf("ixf: malformed lob locator %q: %w", s, err)
	}
	offset, err := strconv.ParseInt(s[secondDot+1:lastDot], 10, 64)
	if err != nil {
		return LobLocator{}, fmt.Errorf("ixf: malformed lob locator %q: %w", s, err)
	}

	return LobLocator{FilePath: s[:secondDot], Offset: offset, Length: length}, nil
}

var xdsPattern = regexp.MustCompile(`FIL='([^']*)'\s+OFF='(\d+)'\s+LEN='(\d+)'`)

// parseXDS parses the XML Data Specifier form
// `<XDS FIL='…' OFF='n' LEN='m' />` (§4.6, §GLOSSARY).
func parseXDS(s string) (LobLocator, error) {
	m := xdsPattern.FindStringSubmatch(s)
	if m == nil {
		return LobLocator{}, fmt.Errorf("ixf: malformed XDS locator %q", s)
	}
	offset, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return LobLocator{}, err
	}
	length, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return LobLocator{}, err
	}
	return LobLocator{FilePath: m[1], Offset: offset, Length: length}, nil
}

// LobResolver materializes LobLocator values by opening the named side
// file, with search fallback against a LOB folder (§4.7).
type LobResolver struct {
	BaseDir   string
	LobFolder string
}

// NewLobResolver builds a resolver rooted at baseDir (the IXF file's own
// directory), optionally overridden by a separate lobFolder.
func NewLobResolver(baseDir, lobFolder string) *LobResolver {
	return &LobResolver{BaseDir: baseDir, LobFolder: lobFolder}
}

// Resolve reads exactly [offset, offset+length) from the locator's file
// (§4.7).
func (r *LobResolver) Resolve(loc LobLocator) ([]byte, error) {
	path, err := r.locate(loc.FilePath)
	if err != nil {
		return nil, &LobFetchError{Locator: loc.String(), Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LobFetchError{Locator: loc.String(), Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(loc.Offset, io.SeekStart); err != nil {
		return nil, &LobFetchError{Locator: loc.String(), Err: err}
	}

	buf := make([]byte, loc.Length)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, &LobFetchError{Locator: loc.String(), Err: err}
	}
	return buf, nil
}

// ResolveText resolves the locator and, if it carries a code page, decodes
// the bytes through it.
func (r *LobResolver) ResolveText(loc LobLocator) (string, error) {
	data, err := r.Resolve(loc)
	if err != nil {
		return "", err
	}
	if loc.Encoding == "" {
		return string(data), nil
	}
	return decodeText(loc.Encoding, data)
}

// locate implements the three-step search of §4.7: literal path, then
// lobFolder/name, then a recursive basename search under lobFolder.
func (r *LobResolver) locate(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	folder := r.LobFolder
	if folder == "" {
		folder = r.BaseDir
	}
	if folder == "" {
		return "", fmt.Errorf("lob file %q not found", name)
	}

	direct := filepath.Join(folder, name)
	if _, err := os.Stat(direct); err == nil {
		return direct, nil
	}

	base := filepath.Base(name)
	var found string
	_ = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil || found != "" {
			return nil
		}
		if !d.IsDir() && d.Name() == base {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if found == "" {
		return "", fmt.Errorf("lob file %q not found under %q", name, folder)
	}
	return found, nil
}
