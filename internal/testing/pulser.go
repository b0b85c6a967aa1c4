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

// Package testing provides scripted pulse trains for exercising capture and
// lifecycle code without hardware or real time. Ticks are injected
// explicitly, so tests are deterministic.
package testing

import (
	wiegand "github.com/hoangminh1109/go-wiegand"
	"github.com/hoangminh1109/go-wiegand/internal/bitbuf"
)

// Train is a scripted pulse sequence: one pulse per bit, each followed by
// GapTicks silence-timer ticks.
type Train struct {
	Bits     []byte
	GapTicks int
}

// TrainFromString builds a train from a '0'/'1' string. Spaces are allowed
// for grouping.
func TrainFromString(s string, gapTicks int) (Train, error) {
	bits, err := bitbuf.Parse(s)
	if err != nil {
		return Train{}, err
	}
	return Train{Bits: bits, GapTicks: gapTicks}, nil
}

// Play feeds the train into capture state: pulse, then GapTicks ticks,
// repeated for every bit. The boundary never fires during Play as long as
// GapTicks stays below the capture's silence budget.
func (tr Train) Play(c *wiegand.Capture) {
	for _, bit := range tr.Bits {
		if bit == 0 {
			c.OnZeroPulse()
		} else {
			c.OnOnePulse()
		}
		for i := 0; i < tr.GapTicks; i++ {
			c.Tick()
		}
	}
}

// PlayAndSettle plays the train and then ticks through the full silence
// budget so the frame boundary fires.
func (tr Train) PlayAndSettle(c *wiegand.Capture, silenceTicks int) {
	tr.Play(c)
	for i := 0; i < silenceTicks; i++ {
		c.Tick()
	}
}
