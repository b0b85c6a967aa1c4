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

// Frame is a frozen snapshot of one captured pulse train, taken by the
// controller after the silence boundary fires. The bit slice does not alias
// capture state, so decoding is unaffected by pulses arriving for the next
// frame.
type Frame struct {
	// Bits holds the captured bit values in arrival order.
	Bits []byte
	// Overflow records that at least one pulse was rejected because the
	// capture buffer was full. Overflowed frames are published through the
	// failure path instead of being decoded.
	Overflow bool
}

// BitCount returns the number of captured bits.
func (f *Frame) BitCount() int {
	return len(f.Bits)
}

func (f *Frame) String() string {
	if f.Overflow {
		return fmt.Sprintf("%s (overflowed)", bitbuf.String(f.Bits))
	}
	return bitbuf.String(f.Bits)
}

// DecodedFrame carries the fields extracted from one completed frame. It is
// created by LayoutTable.Decode and handed to the display and telemetry
// collaborators; the library does not retain it.
type DecodedFrame struct {
	// Format is the name of the matched layout.
	Format string
	// FacilityCode identifies the issuing site.
	FacilityCode uint64
	// CardCode identifies the individual credential.
	CardCode uint64
	// Bits is the frame length the layout matched on.
	Bits int
}

func (d *DecodedFrame) String() string {
	return fmt.Sprintf("%s facility=%d card=%d", d.Format, d.FacilityCode, d.CardCode)
}
