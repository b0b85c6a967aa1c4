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

package main

import (
	"fmt"
	"io"

	wiegand "github.com/hoangminh1109/go-wiegand"
)

// terminalDisplay renders frame outcomes as two lines of text, the same
// surface a character LCD on the reader would show.
type terminalDisplay struct {
	w io.Writer
}

func (d *terminalDisplay) ShowWaiting() {
	_, _ = fmt.Fprintln(d.w, "Waiting for card...")
}

func (d *terminalDisplay) ShowFrame(frame *wiegand.DecodedFrame) {
	_, _ = fmt.Fprintf(d.w, "Facility: %d\n", frame.FacilityCode)
	_, _ = fmt.Fprintf(d.w, "Card:     %d  (%s, %d bits)\n", frame.CardCode, frame.Format, frame.Bits)
}

func (d *terminalDisplay) ShowUndecodable(bitCount int) {
	_, _ = fmt.Fprintf(d.w, "Unable to decode (%d bits)\n", bitCount)
}

// terminalIndicator stands in for the reader's beeper/LED pair.
type terminalIndicator struct {
	w io.Writer
}

func (i *terminalIndicator) Success() {
	_, _ = fmt.Fprintln(i.w, "[OK]")
}

func (i *terminalIndicator) Failure() {
	_, _ = fmt.Fprintln(i.w, "[FAIL]")
}
