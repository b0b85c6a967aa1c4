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

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"github.com/hoangminh1109/go-wiegand/internal/syncutil"
)

// ErrAlreadyRunning indicates Run was called while a previous Run is still
// active. A controller drives exactly one decode loop.
var ErrAlreadyRunning = errors.New("controller already running")

// Controller orchestrates the frame lifecycle: wait, capture, decode,
// publish, reset. Its single Run goroutine is the only tick source and the
// only decoder, so each completed frame is decoded exactly once and no two
// decodes can overlap.
type Controller struct {
	// OnDecoded, if set, receives every successfully decoded frame after
	// the display and indicator have been updated. Telemetry publishers
	// hook in here.
	OnDecoded func(*wiegand.DecodedFrame)
	// OnUndecodable receives the observed bit count of frames that matched
	// no layout or overflowed the buffer.
	OnUndecodable func(bitCount int)

	reader    *wiegand.Reader
	config    *Config
	display   wiegand.Display
	indicator wiegand.Indicator

	state      FrameState
	stateMutex syncutil.RWMutex
	running    atomic.Bool
	published  atomic.Uint64
}

// NewController creates a lifecycle controller for the reader. A nil config
// uses DefaultConfig; nil display or indicator collaborators are replaced
// with no-ops.
func NewController(
	reader *wiegand.Reader,
	config *Config,
	display wiegand.Display,
	indicator wiegand.Indicator,
) *Controller {
	if config == nil {
		config = DefaultConfig()
	}
	if display == nil {
		display = wiegand.NopDisplay{}
	}
	if indicator == nil {
		indicator = wiegand.NopIndicator{}
	}
	return &Controller{
		reader:    reader,
		config:    config,
		display:   display,
		indicator: indicator,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() FrameState {
	c.stateMutex.RLock()
	defer c.stateMutex.RUnlock()
	return c.state
}

func (c *Controller) setState(s FrameState) {
	c.stateMutex.Lock()
	if s != c.state {
		wiegand.Debugf("frame state %s -> %s", c.state, s)
		c.state = s
	}
	c.stateMutex.Unlock()
}

// FramesPublished returns how many completed frames have been published,
// counting both decoded and undecodable outcomes.
func (c *Controller) FramesPublished() uint64 {
	return c.published.Load()
}

// Run drives the silence timer and the frame lifecycle until ctx is
// cancelled. It blocks; callers typically run it alongside Reader.Start in
// its own goroutine.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer c.running.Store(false)

	capture := c.reader.Capture()
	capture.Reset()
	c.setState(StateIdle)
	c.display.ShowWaiting()

	ticker := time.NewTicker(c.config.TickInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		capture.Tick()
		count, boundary := capture.State()
		state := nextState(count, lastCount, boundary)
		lastCount = count
		c.setState(state)

		if state != StateReady {
			continue
		}

		// The frame is final: freeze it, publish once, hold the result
		// visible for the dwell period, then clear everything for the
		// next frame.
		c.publish(capture.Snapshot())

		if err := c.sleepDwell(ctx); err != nil {
			capture.Reset()
			return err
		}

		capture.Reset()
		lastCount = 0
		c.display.ShowWaiting()
		c.setState(StateIdle)
	}
}

// publish hands one frozen frame to the display and indicator
// collaborators, then to the optional callbacks.
func (c *Controller) publish(frame *wiegand.Frame) {
	defer c.published.Add(1)

	decoded, err := c.reader.Decode(frame)
	if err != nil {
		wiegand.Debugf("frame rejected: %v", err)
		c.display.ShowUndecodable(frame.BitCount())
		c.indicator.Failure()
		if c.OnUndecodable != nil {
			c.OnUndecodable(frame.BitCount())
		}
		return
	}

	wiegand.Debugf("decoded %s from %d bits", decoded, frame.BitCount())
	c.display.ShowFrame(decoded)
	c.indicator.Success()
	if c.OnDecoded != nil {
		c.OnDecoded(decoded)
	}
}

// sleepDwell holds the published result for the configured dwell period.
func (c *Controller) sleepDwell(ctx context.Context) error {
	if c.config.DwellTime <= 0 {
		return nil
	}
	timer := time.NewTimer(c.config.DwellTime)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
