// Copyright 2026 The go-wiegand Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bitbuf implements the fixed-capacity ordered bit sequence that
// backs frame capture, plus the MSB-first field accumulation used by frame
// decoding.
package bitbuf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBitString reports a bit string containing characters other than
// '0' and '1'.
var ErrInvalidBitString = errors.New("invalid bit string")

// Buffer is an ordered sequence of bit values with a fixed maximum capacity.
// Appends beyond capacity are rejected rather than silently dropped, so the
// caller can surface the overflow. Buffer is not safe for concurrent use;
// callers serialize access (the capture layer holds its own lock).
type Buffer struct {
	bits []byte
	max  int
}

// New creates a buffer that holds at most max bits.
func New(max int) *Buffer {
	return &Buffer{
		bits: make([]byte, 0, max),
		max:  max,
	}
}

// Append adds one bit (any nonzero value is stored as 1) to the end of the
// buffer. It returns false without mutating the buffer when capacity is
// already reached.
func (b *Buffer) Append(bit byte) bool {
	if len(b.bits) >= b.max {
		return false
	}
	if bit != 0 {
		bit = 1
	}
	b.bits = append(b.bits, bit)
	return true
}

// Len returns the number of bits currently stored.
func (b *Buffer) Len() int {
	return len(b.bits)
}

// Cap returns the maximum number of bits the buffer holds.
func (b *Buffer) Cap() int {
	return b.max
}

// Snapshot returns a copy of the stored bits. The copy does not alias the
// buffer, so a later Reset cannot corrupt a frame already handed off.
func (b *Buffer) Snapshot() []byte {
	out := make([]byte, len(b.bits))
	copy(out, b.bits)
	return out
}

// Reset empties the buffer while retaining its capacity.
func (b *Buffer) Reset() {
	b.bits = b.bits[:0]
}

// Field accumulates bits[start:end] most-significant-bit-first into an
// unsigned integer via repeated shift-and-or. The range is half-open and
// must lie within the slice; decoding validates ranges at layout
// registration time.
func Field(bits []byte, start, end int) uint64 {
	var v uint64
	for _, bit := range bits[start:end] {
		v <<= 1
		if bit != 0 {
			v |= 1
		}
	}
	return v
}

// Parse converts a string of '0' and '1' characters to a bit slice.
// Spaces are ignored so test vectors can be grouped for readability.
func Parse(s string) ([]byte, error) {
	bits := make([]byte, 0, len(s))
	for _, r := range s {
		switch r {
		case '0':
			bits = append(bits, 0)
		case '1':
			bits = append(bits, 1)
		case ' ':
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidBitString, r)
		}
	}
	return bits, nil
}

// String renders a bit slice as a string of '0' and '1' characters.
func String(bits []byte) string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		if bit != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
