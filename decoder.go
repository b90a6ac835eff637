// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import (
	"io"

	"github.com/db2ixf/ixf/internal/log"
)

// decoderState is one node of the state machine in §4.10.
type decoderState int

const (
	stateNeedHeader decoderState = iota
	stateHaveHeader
	stateHaveTable
	stateSchema
	stateRows
	stateEnd
)

// Options configures a Decoder (§4, §6).
type Options struct {
	// MaxRecordSize caps a single record's payload; zero uses
	// DefaultMaxRecordSize.
	MaxRecordSize uint32

	// CodePage overrides the Code-Page Resolver's result for every column
	// (§4.3). Leave empty to use the resolver's normal precedence chain.
	CodePage string

	// LobFolder is the search root for external LOB/XML locators (§4.7).
	// Defaults to the source file's own directory.
	LobFolder string

	// FromRow skips this many rows (zero-origin) before the first OnRow
	// call (§4.9).
	FromRow int

	// MaxRows caps the number of rows emitted; zero means unbounded.
	MaxRows int

	// Logger receives decode diagnostics. If nil, log output is discarded;
	// warnings are still collected and returned by Decoder.Warnings.
	Logger log.Logger
}

// Decoder reads one PC/IXF stream and drives a Sink through it (§2, §4.10).
type Decoder struct {
	src     ByteSource
	opts    Options
	closer  func() error
	diag    *diagnostics
	helper  *log.Helper
	baseDir string
}

// New opens name and returns a Decoder over it, mirroring the teacher's
// file.go New/Options split.
func New(name string, opts Options) (*Decoder, error) {
	fs, err := OpenFile(name)
	if err != nil {
		return nil, err
	}
	d := newDecoder(fs, fs.Dir(), opts)
	d.closer = fs.Close
	return d, nil
}

// NewBytes wraps an in-memory IXF stream. dir, if non-empty, seeds the
// default LOB search directory.
func NewBytes(data []byte, dir string, opts Options) *Decoder {
	bs := NewBytesSource(data, dir)
	return newDecoder(bs, dir, opts)
}

func newDecoder(src ByteSource, dir string, opts Options) *Decoder {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewFilter(log.NewStdLogger(io.Discard), log.FilterLevel(log.LevelInfo))
	}
	helper := log.NewHelper(logger)
	return &Decoder{
		src:     src,
		opts:    opts,
		diag:    newDiagnostics(helper),
		helper:  helper,
		baseDir: dir,
	}
}

// Close releases any resources opened by New.
func (d *Decoder) Close() error {
	if d.closer != nil {
		return d.closer()
	}
	return nil
}

// Warnings returns the recovered-fault messages accumulated by the most
// recent Decode call (§7): out-of-order records, unknown type codes,
// framing overruns and decode failures are all reported here rather than
// aborting the stream.
func (d *Decoder) Warnings() []string { return d.diag.Warnings }

// Decode runs the full state machine of §4.10, driving sink through every
// record in the stream until EOF or the row limit.
func (d *Decoder) Decode(sink *Sink) error {
	framer := newRecordFramer(d.src, d.opts.MaxRecordSize)
	schema := newSchemaBuilder()

	lobFolder := d.opts.LobFolder
	if lobFolder == "" {
		lobFolder = d.baseDir
	}

	state := stateNeedHeader
	var assembler *rowAssembler
	emitted := 0
	rowsSeen := 0

	finish := func(flushPending bool) error {
		if flushPending && assembler != nil {
			if last := assembler.flush(); last != nil {
				if err := d.emitRow(sink, last, &rowsSeen, &emitted); err != nil {
					return err
				}
			}
		}
		sink.end()
		return nil
	}

	for {
		rec, err := framer.next()
		if err == io.EOF {
			state = stateEnd
			return finish(true)
		}
		if err != nil {
			// A framing error (truncated payload, oversized record) still
			// owes the sink its in-flight row and a final on_end, per §8's
			// "final in-flight row is still emitted" and §4.9's "on_end
			// fires last and exactly once". Only the returned error changes
			// from nil to the framing fault.
			state = stateEnd
			if ferr := finish(true); ferr != nil {
				return ferr
			}
			return err
		}
		d.helper.Debugf("record %q: %d payload bytes", string(rec.Type), len(rec.Payload))

		switch rec.Type {
		case 'H':
			if state != stateNeedHeader {
				d.diag.warnf("unexpected H record in state %d, ignoring", state)
				continue
			}
			schema.onH(rec.Payload)
			state = stateHaveHeader

		case 'T':
			if state != stateHaveHeader {
				d.diag.warnf("unexpected T record in state %d, ignoring", state)
				continue
			}
			schema.onT(rec.Payload)
			state = stateHaveTable

		case 'C':
			if state != stateHaveTable && state != stateSchema {
				d.diag.warnf("unexpected C record in state %d, ignoring", state)
				continue
			}
			if err := schema.onC(rec.Payload); err != nil {
				d.diag.warnf("column descriptor: %v", err)
				continue
			}
			state = stateSchema

		case 'D':
			if state != stateHaveTable && state != stateSchema && state != stateRows {
				d.diag.warnf("unexpected D record in state %d, ignoring", state)
				continue
			}
			if assembler == nil {
				table := schema.freeze()
				sink.tableDef(table)
				ctx := &decodeContext{
					header:           schema.header,
					table:            table,
					codePageOverride: d.opts.CodePage,
					lobFolder:        lobFolder,
					diag:             d.diag,
				}
				assembler = newRowAssembler(table, schema.cidMap, ctx)
				state = stateRows
			}
			if completed := assembler.onD(rec.Payload); completed != nil {
				if err := d.emitRow(sink, completed, &rowsSeen, &emitted); err != nil {
					return err
				}
				if d.opts.MaxRows > 0 && emitted >= d.opts.MaxRows {
					return finish(false)
				}
			}

		case 'A':
			if state == stateEnd {
				d.diag.warnf("unexpected A record after end of stream, ignoring")
				continue
			}
			sink.applicationRecord(decodeApplicationRecord(rec.Payload))

		default:
			d.diag.unknownRecordType(rec.Type)
		}
	}
}

func (d *Decoder) emitRow(sink *Sink, row Row, rowsSeen, emitted *int) error {
	idx := *rowsSeen
	*rowsSeen++
	if idx < d.opts.FromRow {
		return nil
	}
	sink.row(*emitted, row)
	d.helper.Debugf("row %d: %v", *emitted, row)
	*emitted++
	return nil
}
