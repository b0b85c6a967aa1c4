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
	"github.com/hoangminh1109/go-wiegand/internal/bitbuf"
	"github.com/hoangminh1109/go-wiegand/internal/syncutil"
)

// Default capture parameters
const (
	// DefaultMaxBits is the frame buffer capacity in bits.
	DefaultMaxBits = 100
	// DefaultSilenceTicks is the quiet interval, in timer ticks, that marks
	// the frame boundary. It must exceed the worst-case inter-bit gap and
	// stay under the minimum gap between two credential reads.
	DefaultSilenceTicks = 3000
)

// Capture owns the shared frame state mutated by the pulse entry points,
// the silence timer and the lifecycle controller: the bit buffer, the
// boundary-fired flag and the silence countdown. All three writers go
// through one mutex, so a pulse and a timer tick can never produce a torn
// read of the (bit count, boundary) pair.
//
// The pulse entry points do bounded work only: append, clear the boundary
// flag, rearm the countdown. They never decode, block or perform I/O, so
// they are safe to call from a line source's edge-dispatch goroutine.
type Capture struct {
	buf          *bitbuf.Buffer
	mu           syncutil.Mutex
	countdown    int
	silenceTicks int
	boundary     bool
	overflow     bool
}

// CaptureOption configures a Capture.
type CaptureOption func(*captureConfig)

type captureConfig struct {
	maxBits      int
	silenceTicks int
}

// WithMaxBits sets the frame buffer capacity in bits.
func WithMaxBits(n int) CaptureOption {
	return func(cfg *captureConfig) {
		if n > 0 {
			cfg.maxBits = n
		}
	}
}

// WithSilenceTicks sets the quiet interval, in ticks, that ends a frame.
func WithSilenceTicks(n int) CaptureOption {
	return func(cfg *captureConfig) {
		if n > 0 {
			cfg.silenceTicks = n
		}
	}
}

// NewCapture creates capture state with an empty buffer and a fully armed
// silence countdown.
func NewCapture(opts ...CaptureOption) *Capture {
	cfg := &captureConfig{
		maxBits:      DefaultMaxBits,
		silenceTicks: DefaultSilenceTicks,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Capture{
		buf:          bitbuf.New(cfg.maxBits),
		silenceTicks: cfg.silenceTicks,
		countdown:    cfg.silenceTicks,
	}
}

// OnZeroPulse records one pulse on the D0 line.
func (c *Capture) OnZeroPulse() {
	c.pulse(0)
}

// OnOnePulse records one pulse on the D1 line.
func (c *Capture) OnOnePulse() {
	c.pulse(1)
}

// pulse appends one bit, clears the boundary flag and rearms the countdown.
// A pulse arriving at capacity is rejected without touching frame state;
// only the overflow marker is set so the failure can be surfaced when the
// frame completes.
func (c *Capture) pulse(bit byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.buf.Append(bit) {
		c.overflow = true
		return
	}
	c.boundary = false
	c.countdown = c.silenceTicks
}

// Tick advances the silence countdown by one period. Once the countdown
// reaches zero the boundary flag is set and the countdown stays at zero
// until the next pulse or Reset rearms it. The tick source is external; the
// controller drives it from its own loop.
func (c *Capture) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.boundary {
		return
	}
	if c.countdown > 0 {
		c.countdown--
	}
	if c.countdown == 0 {
		c.boundary = true
	}
}

// State returns the current bit count and boundary flag as one consistent
// pair.
func (c *Capture) State() (count int, boundary bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len(), c.boundary
}

// Countdown returns the remaining silence budget in ticks.
func (c *Capture) Countdown() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown
}

// Snapshot freezes the current frame: a copy of the captured bits plus the
// overflow marker. Capture state is left untouched, so the caller decides
// when to Reset for the next frame.
func (c *Capture) Snapshot() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &Frame{
		Bits:     c.buf.Snapshot(),
		Overflow: c.overflow,
	}
}

// Reset clears the buffer, the boundary flag and the overflow marker, and
// rearms the silence countdown. Pulses that land while Reset holds the lock
// are serialized after it and open the next frame.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Reset()
	c.boundary = false
	c.overflow = false
	c.countdown = c.silenceTicks
}
