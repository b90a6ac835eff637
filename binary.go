// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ixf

import "math"

// Column payloads are "machine format = PC": little-endian throughout (§6).

func readUint16LE(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

func readUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func readInt16LE(b []byte) int16 { return int16(readUint16LE(b)) }
func readInt32LE(b []byte) int32 { return int32(readUint32LE(b)) }

func readInt64LE(b []byte) int64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return int64(v)
}

func readFloat32LE(b []byte) float32 {
	return math.Float32frombits(readUint32LE(b))
}

func readFloat64LE(b []byte) float64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return math.Float64frombits(v)
}

// readUintLEWidth reads a little-endian unsigned integer of an arbitrary
// byte width, used by the Application-Record Decoder for its 2-byte
// SHORT INT length prefixes (§4.8).
func readUintLEWidth(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
