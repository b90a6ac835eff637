// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// DefaultCodePage is used when override, column, table and header all leave
// the code page unset (§4.3).
const DefaultCodePage = "01200"

// codePageDecoders maps an IXF code-page string to the x/text decoder that
// reads it, the same transform.Transformer-based approach helper.go uses
// for UTF-16 (DecodeUTF16String). Extending support to another code page is
// a one-line addition here.
var codePageDecoders = map[string]encoding.Encoding{
	"01200": unicode.UTF8,
	"01208": unicode.UTF8,
}

// resolveCodePage implements the precedence chain in §4.3: override, then
// column double/single-byte, then table double/single-byte, then header
// double/single-byte, then the default.
func resolveCodePage(override string, col *ColumnDescriptor, table *TableDescriptor, header *Header) string {
	if override != "" {
		return override
	}
	if col != nil {
		if col.DoubleByteCodePage != "" {
			return col.DoubleByteCodePage
		}
		if col.SingleByteCodePage != "" {
			return col.SingleByteCodePage
		}
	}
	if table != nil {
		if table.DoubleByteCodePage != "" {
			return table.DoubleByteCodePage
		}
		if table.SingleByteCodePage != "" {
			return table.SingleByteCodePage
		}
	}
	if header != nil {
		if header.DoubleByteCodePage != "" && header.DoubleByteCodePage != "00000" {
			return header.DoubleByteCodePage
		}
		if header.SingleByteCodePage != "" && header.SingleByteCodePage != "00000" {
			return header.SingleByteCodePage
		}
	}
	return DefaultCodePage
}

// decodeText decodes b using the decoder registered for codePage.
func decodeText(codePage string, b []byte) (string, error) {
	enc, ok := codePageDecoders[codePage]
	if !ok {
		return "", &UnknownCodePageError{CodePage: codePage}
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", &DecodeError{Err: err}
	}
	return string(out), nil
}
