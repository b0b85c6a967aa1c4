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

package polling

// FrameState represents the finite state machine for frame capture
type FrameState int

const (
	// StateIdle means no bits have arrived; the buffer is empty.
	StateIdle FrameState = iota
	// StateAccumulating means bits are arriving and the boundary has not
	// fired.
	StateAccumulating
	// StateSettling means bits exist but none arrived during the last
	// cycle; the silence countdown is running out.
	StateSettling
	// StateReady means the boundary fired with at least one bit captured;
	// the frame is final and awaits its single decode.
	StateReady
)

func (s FrameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateSettling:
		return "settling"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// nextState derives the lifecycle state from one consistent (count,
// boundary) observation plus the count seen on the previous cycle.
//
// A boundary that fires with zero bits is spurious: the state stays Idle
// and no frame is published. The flag itself is left set; the first pulse
// of the next frame clears it.
func nextState(count, lastCount int, boundary bool) FrameState {
	switch {
	case count == 0:
		return StateIdle
	case boundary:
		return StateReady
	case count > lastCount:
		return StateAccumulating
	default:
		return StateSettling
	}
}
