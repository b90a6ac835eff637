// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"bytes"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ByteSource is the abstraction the Record Framer and the LOB Resolver read
// from (§2, "Byte Source"). Any io.Reader qualifies, which lets the decoder
// run equally well over a memory-mapped file or a stdin pipe.
type ByteSource interface {
	io.Reader
}

// FileSource memory-maps a file on disk instead of issuing read syscalls for
// every record, the same trade the teacher makes in file.go's New.
type FileSource struct {
	f      *os.File
	data   mmap.MMap
	reader *bytes.Reader
	dir    string
}

// OpenFile memory-maps name for sequential reading by the Record Framer.
func OpenFile(name string) (*FileSource, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &FileSource{
		f:      f,
		data:   data,
		reader: bytes.NewReader(data),
		dir:    dirOf(name),
	}, nil
}

// Read implements io.Reader by delegating to the underlying memory map.
func (s *FileSource) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Dir returns the directory the source file lives in, used as the default
// search root for LOB locators (§4.7) when no explicit LOB folder is given.
func (s *FileSource) Dir() string { return s.dir }

// Close unmaps the file and releases the underlying descriptor.
func (s *FileSource) Close() error {
	if s.data != nil {
		_ = s.data.Unmap()
	}
	if s.f != nil {
		return s.f.Close()
	}
	return nil
}

// BytesSource wraps an in-memory buffer as a ByteSource, for callers that
// already hold the whole file (or a test fixture) in memory.
type BytesSource struct {
	reader *bytes.Reader
	dir    string
}

// NewBytesSource builds a BytesSource over data. dir, if non-empty, is used
// as the default LOB search directory.
func NewBytesSource(data []byte, dir string) *BytesSource {
	return &BytesSource{reader: bytes.NewReader(data), dir: dir}
}

func (s *BytesSource) Read(p []byte) (int, error) { return s.reader.Read(p) }
func (s *BytesSource) Dir() string                { return s.dir }

func dirOf(name string) string {
	i := len(name) - 1
	for i >= 0 && name[i] != '/' && name[i] != '\\' {
		i--
	}
	if i < 0 {
		return "."
	}
	return name[:i]
}
