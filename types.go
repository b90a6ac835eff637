// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"fmt"
	"strings"
)

// DB2 IXF column type codes (§4.6), ported from
// original_source/src/IXFTools.py's typeInfo table and cross-checked
// against the decoder table in spec.md §4.6.
const (
	TypeBigInt         = 492
	TypeBinary         = 912
	TypeBlob           = 404
	TypeClob           = 408
	TypeDBClob         = 412
	TypeBlobLocation   = 960
	TypeClobLocation   = 964
	TypeDBClobLocation = 968
	TypeBlobFile       = 916
	TypeClobFile       = 920
	TypeDBClobFile     = 924
	TypeChar           = 452
	TypeDate           = 384
	TypeDecimal        = 484
	TypeDecfloat       = 996
	TypeFloatingPoint  = 480
	TypeGraphic        = 468
	TypeInteger        = 496
	TypeLongVarchar    = 456
	TypeLongVargraphic = 472
	TypeSmallInt       = 500
	TypeTime           = 388
	TypeTimestamp      = 392
	TypeVarbinary      = 908
	TypeVarchar        = 448
	TypeVargraphic     = 464
	TypeXML            = 988
)

// decodeContext carries the ambient state field extraction needs: the
// active Header/TableDescriptor for code-page resolution (§4.3), and where
// to route warnings (§7).
type decodeContext struct {
	header           *Header
	table            *TableDescriptor
	codePageOverride string
	lobFolder        string
	diag             *diagnostics
}

func (c *decodeContext) resolveCodePage(col *ColumnDescriptor) string {
	return resolveCodePage(c.codePageOverride, col, c.table, c.header)
}

// frameFunc computes where a field's value bytes start and how long they
// are within columnData, given the column's one-origin Pos converted to a
// zero-based offset. isNull reports a NULL sentinel (§4.6).
type frameFunc func(col *ColumnDescriptor, columnData []byte, pos int) (start, length int, isNull bool, err error)

// decodeFunc turns framed bytes into a tagged Value (§9).
type decodeFunc func(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error)

type typeEntry struct {
	Name   string
	frame  frameFunc
	decode decodeFunc
}

var typeRegistry = map[int]typeEntry{
	TypeSmallInt:      {"SMALLINT", frameFixedN(2, false), decodeInt16},
	TypeInteger:       {"INTEGER", frameFixedN(4, false), decodeInt32},
	TypeBigInt:        {"BIGINT", frameFixedN(8, false), decodeInt64},
	TypeFloatingPoint: {"FLOATING POINT", frameFloatingPoint, decodeFloat},

	TypeChar:      {"CHAR", frameDataLen(true), decodeTextField},
	TypeDate:      {"DATE", frameFixedN(10, true), decodeTextField},
	TypeTime:      {"TIME", frameFixedN(8, true), decodeTextField},
	TypeTimestamp: {"TIMESTAMP", frameTimestamp, decodeTextField},

	TypeVarchar:        {"VARCHAR", frame2BytePrefix, decodeTextField},
	TypeGraphic:        {"GRAPHIC", frameDataLen(true), decodeTextField},
	TypeVargraphic:     {"VARGRAPHIC", frame2BytePrefix, decodeTextField},
	TypeLongVargraphic: {"LONG VARGRAPHIC", frame2BytePrefix, decodeTextField},
	TypeLongVarchar:    {"LONGVARCHAR", frame2BytePrefix, decodeTextField},
	TypeVarbinary:      {"VARBINARY", frame2BytePrefix, decodeRaw},
	TypeBinary:         {"BINARY", frameDataLen(true), decodeRaw},

	TypeBlob:   {"BLOB", frame4BytePrefix, decodeRaw},
	TypeClob:   {"CLOB", frame4BytePrefix, decodeTextField},
	TypeDBClob: {"DBCLOB", frame2BytePrefix, decodeTextField},

	TypeBlobLocation:   {"BLOB_LOCATION", frameLocator, decodeLocator(false)},
	TypeClobLocation:   {"CLOB_LOCATION", frameLocator, decodeLocator(true)},
	TypeDBClobLocation: {"DBCLOB_LOCATION", frameLocator, decodeLocator(true)},
	TypeBlobFile:       {"BLOB_FILE", frameLocator, decodeLocator(false)},
	TypeClobFile:       {"CLOB_FILE", frameLocator, decodeLocator(true)},
	TypeDBClobFile:     {"DBCLOB_FILE", frameLocator, decodeLocator(true)},

	TypeXML: {"XML", frameXML, decodeXML},

	TypeDecimal:  {"DECIMAL", frameDecimal, decodeRaw},
	TypeDecfloat: {"DECFLOAT", frameDecfloat, decodeRaw},
}

// TypeName returns the semantic name for a type code, or "" if unknown.
func TypeName(code int) string {
	if e, ok := typeRegistry[code]; ok {
		return e.Name
	}
	return ""
}

func overrunErr(need, have int) error {
	return fmt.Errorf("field needs %d bytes, only %d available", need, have)
}

func frameFixedN(n int, nullSentinel bool) frameFunc {
	return func(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
		if pos < 0 || pos >= len(data) {
			return 0, 0, false, overrunErr(n, len(data)-pos)
		}
		if nullSentinel && data[pos] == 0xFF {
			return pos, 0, true, nil
		}
		if pos+n > len(data) {
			return 0, 0, false, overrunErr(n, len(data)-pos)
		}
		return pos, n, false, nil
	}
}

func frameDataLen(nullSentinel bool) frameFunc {
	return func(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
		if pos < 0 || pos >= len(data) {
			return 0, 0, false, overrunErr(col.DataLen, len(data)-pos)
		}
		if nullSentinel && data[pos] == 0xFF {
			return pos, 0, true, nil
		}
		n := col.DataLen
		if n < 0 {
			n = 0
		}
		if pos+n > len(data) {
			return 0, 0, false, overrunErr(n, len(data)-pos)
		}
		return pos, n, false, nil
	}
}

// frame2BytePrefix reads a 2-byte little-endian length prefix (rule 0 in
// §4.6). A prefix of 0xFFFF marks NULL, distinguishing it from a genuine
// zero-length (empty string) value.
func frame2BytePrefix(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos+2 > len(data) {
		return 0, 0, false, overrunErr(2, len(data)-pos)
	}
	l := readUint16LE(data[pos : pos+2])
	if l == 0xFFFF {
		return pos + 2, 0, true, nil
	}
	n := int(l)
	if pos+2+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos-2)
	}
	return pos + 2, n, false, nil
}

// frame4BytePrefix reads a 4-byte little-endian length prefix (rule -4 in
// §4.6), used for inline BLOB/CLOB payloads.
func frame4BytePrefix(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos+4 > len(data) {
		return 0, 0, false, overrunErr(4, len(data)-pos)
	}
	l := readUint32LE(data[pos : pos+4])
	if l == 0xFFFFFFFF {
		return pos + 4, 0, true, nil
	}
	n := int(l)
	if n < 0 || pos+4+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos-4)
	}
	return pos + 4, n, false, nil
}

// frameLocator reads a 2-byte length prefix followed by the locator string
// plus one trailing sentinel byte, which is dropped (§4.6, §9: "the
// reference decoder's LOB-locator path slices [2:-1]").
func frameLocator(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos+2 > len(data) {
		return 0, 0, false, overrunErr(2, len(data)-pos)
	}
	l := int(readUint16LE(data[pos : pos+2]))
	if l == 0 {
		return pos + 2, 0, true, nil
	}
	if pos+2+l > len(data) {
		return 0, 0, false, overrunErr(l, len(data)-pos-2)
	}
	return pos + 2, l - 1, false, nil
}

// frameXML reads a 4-byte length prefix followed by the XDS payload
// (§4.6).
func frameXML(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos+4 > len(data) {
		return 0, 0, false, overrunErr(4, len(data)-pos)
	}
	l := int(readUint32LE(data[pos : pos+4]))
	if pos+4+l > len(data) {
		return 0, 0, false, overrunErr(l, len(data)-pos-4)
	}
	return pos + 4, l, false, nil
}

// frameFloatingPoint frames FLOATING POINT (480) fields, whose storage
// length is the column's declared data_len (4 or 8 bytes) rather than a
// fixed constant (§4.6).
func frameFloatingPoint(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos >= len(data) {
		return 0, 0, false, overrunErr(col.DataLen, len(data)-pos)
	}
	n := col.DataLen
	if pos+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos)
	}
	return pos, n, false, nil
}

// frameDecimal frames DECIMAL (484): the storage length in bytes of a
// packed decimal number of precision P is (P+2)/2, with P taken from the
// upper 16 bits of data_len (spec.md's pinned reading of an ambiguity in
// the reference decoder; §9).
func frameDecimal(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos >= len(data) {
		return 0, 0, false, overrunErr(0, len(data)-pos)
	}
	precision := col.DataLen >> 16
	n := (precision + 2) / 2
	if pos+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos)
	}
	return pos, n, false, nil
}

// frameDecfloat frames DECFLOAT (996): 8 bytes store a 16-digit value, 16
// bytes store a 34-digit value (§4.6).
func frameDecfloat(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos >= len(data) {
		return 0, 0, false, overrunErr(0, len(data)-pos)
	}
	n := 16
	if col.DataLen == 16 {
		n = 8
	}
	if pos+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos)
	}
	return pos, n, false, nil
}

// frameTimestamp frames TIMESTAMP (392): a leading 0xFF means NULL,
// otherwise the length is 20+data_len (§4.6).
func frameTimestamp(col *ColumnDescriptor, data []byte, pos int) (int, int, bool, error) {
	if pos < 0 || pos >= len(data) {
		return 0, 0, false, overrunErr(0, len(data)-pos)
	}
	if data[pos] == 0xFF {
		return pos, 0, true, nil
	}
	n := 20 + col.DataLen
	if pos+n > len(data) {
		return 0, 0, false, overrunErr(n, len(data)-pos)
	}
	return pos, n, false, nil
}

func decodeInt16(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	return Value{Kind: KindInt, Int: int64(readInt16LE(field))}, nil
}

func decodeInt32(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	return Value{Kind: KindInt, Int: int64(readInt32LE(field))}, nil
}

func decodeInt64(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	return Value{Kind: KindInt, Int: readInt64LE(field)}, nil
}

func decodeFloat(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	if len(field) == 4 {
		return Value{Kind: KindFloat, Float: float64(readFloat32LE(field))}, nil
	}
	return Value{Kind: KindFloat, Float: readFloat64LE(field)}, nil
}

func decodeRaw(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	return Value{Kind: KindRaw, Raw: append([]byte(nil), field...)}, nil
}

func decodeTextField(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	cp := ctx.resolveCodePage(col)
	s, err := decodeText(cp, field)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindText, Text: s}, nil
}

func decodeLocator(hasEncoding bool) decodeFunc {
	return func(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
		s := strings.TrimRight(string(field), "\x00 ")
		loc, err := parseLobLocatorString(s)
		if err != nil {
			return Value{}, err
		}
		if hasEncoding {
			loc.Encoding = ctx.resolveCodePage(col)
		}
		loc.LobFolder = ctx.lobFolder
		return Value{Kind: KindLocator, Locator: &loc}, nil
	}
}

func decodeXML(ctx *decodeContext, col *ColumnDescriptor, field []byte) (Value, error) {
	loc, err := parseXDS(string(field))
	if err != nil {
		return Value{}, err
	}
	loc.Encoding = ctx.resolveCodePage(col)
	loc.LobFolder = ctx.lobFolder
	return Value{Kind: KindLocator, Locator: &loc}, nil
}

// extractField dispatches a column to its type-specific extractor (§4.6).
// Framing overruns leave the column absent; decode failures (unknown code
// page, invalid text) fall back to raw bytes. Both are recovered locally,
// matching §7's policy that per-field faults never abort the row.
func extractField(ctx *decodeContext, col *ColumnDescriptor, columnData []byte) Value {
	pos := col.Pos - 1

	entry, ok := typeRegistry[col.Type]
	if !ok {
		start, length, isNull, err := frameDataLen(false)(col, columnData, pos)
		if err != nil {
			ctx.diag.warnf("column %q: unknown type %d: %v", col.Name, col.Type, err)
			return Value{Kind: KindAbsent}
		}
		if isNull {
			return Value{Kind: KindAbsent}
		}
		ctx.diag.warnf("column %q: unknown type code %d, decoded as raw bytes", col.Name, col.Type)
		return Value{Kind: KindRaw, Raw: append([]byte(nil), columnData[start:start+length]...)}
	}

	start, length, isNull, err := entry.frame(col, columnData, pos)
	if err != nil {
		ctx.diag.warnf("column %q (%s): %v", col.Name, entry.Name, err)
		return Value{Kind: KindAbsent}
	}
	if isNull {
		return Value{Kind: KindAbsent}
	}

	field := columnData[start : start+length]
	val, err := entry.decode(ctx, col, field)
	if err != nil {
		ctx.diag.warnf("column %q (%s): %v", col.Name, entry.Name, err)
		return Value{Kind: KindRaw, Raw: append([]byte(nil), field...)}
	}
	return val
}
