// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "fmt"

// ValueKind tags the active field of a Value (§9, "tagged value variant").
type ValueKind int

const (
	// KindAbsent marks a NULL or otherwise absent field.
	KindAbsent ValueKind = iota
	KindInt
	KindFloat
	KindText
	KindRaw
	KindLocator
)

func (k ValueKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindRaw:
		return "raw"
	case KindLocator:
		return "locator"
	default:
		return "unknown"
	}
}

// Value is one Row slot: Null | Int | Float | Text | Raw | Locator (§9).
type Value struct {
	Kind    ValueKind
	Int     int64
	Float   float64
	Text    string
	Raw     []byte
	Locator *LobLocator
}

// Row is a dense, ordered sequence of Values, one per column (§3).
type Row []Value

func (v Value) String() string {
	switch v.Kind {
	case KindAbsent:
		return "<absent>"
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindText:
		return v.Text
	case KindRaw:
		return fmt.Sprintf("<%d raw bytes>", len(v.Raw))
	case KindLocator:
		if v.Locator != nil {
			return v.Locator.String()
		}
		return "<nil locator>"
	default:
		return "<unknown>"
	}
}
