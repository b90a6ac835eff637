// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "io"

// DefaultMaxRecordSize is the recommended cap on a single record's payload
// (§5): 64 MiB.
const DefaultMaxRecordSize = 64 * 1024 * 1024

// Record is one framed IXF record: a type tag and its raw payload, with the
// six length-prefix bytes and the type byte already stripped (§4.1).
type Record struct {
	Type    byte
	Payload []byte
}

// recordFramer implements next_record(src) from §4.1.
type recordFramer struct {
	src           ByteSource
	maxRecordSize uint32
}

func newRecordFramer(src ByteSource, maxRecordSize uint32) *recordFramer {
	if maxRecordSize == 0 {
		maxRecordSize = DefaultMaxRecordSize
	}
	return &recordFramer{src: src, maxRecordSize: maxRecordSize}
}

// next reads one record, or returns io.EOF when the stream is cleanly
// exhausted (fewer than 6 length bytes, or no type byte). Truncation inside
// the payload is a fatal ErrTruncated, not EOF.
func (f *recordFramer) next() (*Record, error) {
	var lenBuf [6]byte
	n, err := io.ReadFull(f.src, lenBuf[:])
	if err != nil {
		if n == 0 || err == io.ErrUnexpectedEOF || err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}

	var typeBuf [1]byte
	if _, err := io.ReadFull(f.src, typeBuf[:]); err != nil {
		return nil, io.EOF
	}

	recLen, _ := parseASCIIInt(lenBuf[:])
	if recLen < 1 {
		// A record must at least cover its own type byte.
		return &Record{Type: typeBuf[0], Payload: nil}, nil
	}

	payloadLen := uint32(recLen - 1)
	if payloadLen > f.maxRecordSize {
		return nil, ErrRecordTooLarge
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(f.src, payload); err != nil {
		return nil, ErrTruncated
	}

	return &Record{Type: typeBuf[0], Payload: payload}, nil
}
