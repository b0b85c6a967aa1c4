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

package wiegand

import (
	"fmt"

	"github.com/hoangminh1109/go-wiegand/internal/bitbuf"
)

// FieldRange is a half-open [Start,End) range of bit positions within a
// frame, 0-indexed from the frame start, most-significant-bit-first.
type FieldRange struct {
	Start int
	End   int
}

// Width returns the number of bits in the range.
func (r FieldRange) Width() int {
	return r.End - r.Start
}

func (r FieldRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Layout describes how to extract the facility and card fields from a frame
// of one exact bit length. Frames are matched to layouts by length alone;
// bits outside the two ranges (parity positions) are ignored.
type Layout struct {
	// Name labels the layout in output and telemetry.
	Name string
	// Bits is the exact frame length the layout applies to.
	Bits int
	// Facility is the bit range of the facility code field.
	Facility FieldRange
	// Card is the bit range of the card code field.
	Card FieldRange
}

func (l Layout) validate() error {
	if l.Bits <= 0 {
		return fmt.Errorf("%w: frame length %d", ErrInvalidLayout, l.Bits)
	}
	for _, r := range []FieldRange{l.Facility, l.Card} {
		if r.Start < 0 || r.End > l.Bits || r.Start >= r.End {
			return fmt.Errorf("%w: range %s outside %d-bit frame", ErrInvalidLayout, r, l.Bits)
		}
		if r.Width() > 64 {
			return fmt.Errorf("%w: range %s wider than 64 bits", ErrInvalidLayout, r)
		}
	}
	return nil
}

// LayoutTable maps exact frame bit counts to layouts. The table is plain
// configuration data: adding a format is a Register call, never a change to
// the decode algorithm. A table is not safe for concurrent mutation; build
// it before starting capture.
type LayoutTable map[int]Layout

// DefaultLayouts returns the built-in layout table.
//
// The 26-bit entry reads facility from [1,9) and card from [9,25),
// excluding bits 0 and 25 as parity. Note this drops bit 9 from the
// facility field relative to the published H10301 layout; it reproduces the
// deployed reader firmware behavior and is kept intentionally.
func DefaultLayouts() LayoutTable {
	return LayoutTable{
		26: {
			Name:     "std26",
			Bits:     26,
			Facility: FieldRange{Start: 1, End: 9},
			Card:     FieldRange{Start: 9, End: 25},
		},
		35: {
			Name:     "corp35",
			Bits:     35,
			Facility: FieldRange{Start: 2, End: 14},
			Card:     FieldRange{Start: 14, End: 34},
		},
	}
}

// Register adds or replaces the layout for its bit length.
func (t LayoutTable) Register(l Layout) error {
	if err := l.validate(); err != nil {
		return err
	}
	if l.Name == "" {
		l.Name = fmt.Sprintf("len%d", l.Bits)
	}
	t[l.Bits] = l
	return nil
}

// Lookup returns the layout for an exact frame length.
func (t LayoutTable) Lookup(bits int) (Layout, bool) {
	l, ok := t[bits]
	return l, ok
}

// Decode extracts the facility and card fields from a completed frame by
// exact-length lookup. Decoding reads the frozen bit slice only; it has no
// side effects and may be repeated on the same frame with identical
// results. An unmatched length returns *UnknownFormatError, which is an
// expected outcome for foreign formats rather than a failure of the reader.
func (t LayoutTable) Decode(bits []byte) (*DecodedFrame, error) {
	layout, ok := t[len(bits)]
	if !ok {
		return nil, &UnknownFormatError{BitCount: len(bits)}
	}
	return &DecodedFrame{
		FacilityCode: bitbuf.Field(bits, layout.Facility.Start, layout.Facility.End),
		CardCode:     bitbuf.Field(bits, layout.Card.Start, layout.Card.End),
		Format:       layout.Name,
		Bits:         layout.Bits,
	}, nil
}
