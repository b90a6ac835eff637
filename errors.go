// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"errors"
	"fmt"
)

// Fatal errors. These abort decoding entirely (§7).
var (
	// ErrTruncated is returned when the input ends inside a record's
	// payload, i.e. the payload is shorter than declared. A stream that ends
	// within the 6 length bytes or before the type byte is a clean end of
	// stream, not a truncation.
	ErrTruncated = errors.New("ixf: truncated record")

	// ErrRecordTooLarge is returned when a record's declared length exceeds
	// Options.MaxRecordSize.
	ErrRecordTooLarge = errors.New("ixf: record exceeds maximum size")

	// ErrSchemaFrozen is returned internally when a C record arrives after
	// the first D record; callers only observe it as a logged warning, per
	// §4.10 (out-of-order records are warnings, not fatal).
	ErrSchemaFrozen = errors.New("ixf: column descriptor after schema freeze")
)

// UnknownCodePageError reports a code page this decoder cannot map to a
// text decoder (§4.3). It is fatal to the column being decoded but not to
// the enclosing row or stream.
type UnknownCodePageError struct {
	CodePage string
}

func (e *UnknownCodePageError) Error() string {
	return fmt.Sprintf("ixf: unknown code page %q", e.CodePage)
}

// LobFetchError reports a failure resolving a LobLocator against the
// filesystem (§4.7, §7). It never aborts row production.
type LobFetchError struct {
	Locator string
	Err     error
}

func (e *LobFetchError) Error() string {
	return fmt.Sprintf("ixf: failed to fetch lob %q: %v", e.Locator, e.Err)
}

func (e *LobFetchError) Unwrap() error { return e.Err }

// DecodeError reports a field whose raw bytes could not be decoded as text
// in the resolved code page; the field falls back to raw bytes.
type DecodeError struct {
	Column string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ixf: column %q decode error: %v", e.Column, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
