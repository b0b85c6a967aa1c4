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

// Package gpio implements the wiegand.Line interface over two GPIO pins
// carrying the D0 and D1 data lines. Edges are captured with periph.io
// falling-edge interrupts.
package gpio

import (
	"context"
	"fmt"
	"sync"
	"time"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// drainPoll is the pause between empty edge-queue sweeps. Wiegand inter-bit
// gaps are on the order of a millisecond, so a sweep every 200us cannot
// fall behind a real reader.
const drainPoll = 200 * time.Microsecond

var hostInitOnce sync.Once

// initHost initializes periph.io host drivers exactly once.
func initHost() error {
	var initErr error
	hostInitOnce.Do(func() {
		_, initErr = host.Init()
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize periph host: %w", initErr)
	}
	return nil
}

// Line reads Wiegand pulses from a D0/D1 GPIO pin pair.
type Line struct {
	d0     gpio.PinIn
	d1     gpio.PinIn
	d0Name string
	d1Name string
	mu     sync.Mutex
	open   bool
}

// New opens the two named pins (periph.io names, e.g. "GPIO17") as
// pulled-up falling-edge inputs. Both pins must resolve or neither is kept.
func New(d0Name, d1Name string) (*Line, error) {
	if err := initHost(); err != nil {
		return nil, err
	}

	d0, err := openPin(d0Name)
	if err != nil {
		return nil, err
	}
	d1, err := openPin(d1Name)
	if err != nil {
		_ = d0.Halt()
		return nil, err
	}

	return &Line{
		d0:     d0,
		d1:     d1,
		d0Name: d0Name,
		d1Name: d1Name,
		open:   true,
	}, nil
}

func openPin(name string) (gpio.PinIn, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, wiegand.NewLineError("open", name, wiegand.ErrLineNotFound, wiegand.ErrorTypePermanent)
	}
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return nil, wiegand.NewLineError("configure", name,
			fmt.Errorf("failed to set edge input: %w", err), wiegand.ErrorTypePermanent)
	}
	return pin, nil
}

// Start delivers pulses until ctx is cancelled. Edges queue in the kernel,
// so the loop drains both pins non-blockingly each sweep. D0 is always
// checked first: a simultaneous pair on both lines is appended zero-first,
// the documented tie-break for electrically ambiguous input.
func (l *Line) Start(ctx context.Context, onZero, onOne func()) error {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return wiegand.NewLineClosedError("start", l.name())
	}
	d0, d1 := l.d0, l.d1
	l.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.IsOpen() {
			return wiegand.NewLineClosedError("read", l.name())
		}

		fired := false
		if d0.WaitForEdge(0) {
			onZero()
			fired = true
		}
		if d1.WaitForEdge(0) {
			onOne()
			fired = true
		}
		if !fired {
			time.Sleep(drainPoll)
		}
	}
}

// Close halts both pins.
func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open {
		return nil
	}
	l.open = false

	if err := l.d0.Halt(); err != nil {
		_ = l.d1.Halt()
		return fmt.Errorf("failed to halt %s: %w", l.d0Name, err)
	}
	if err := l.d1.Halt(); err != nil {
		return fmt.Errorf("failed to halt %s: %w", l.d1Name, err)
	}
	return nil
}

// IsOpen implements wiegand.Line.
func (l *Line) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Type implements wiegand.Line.
func (*Line) Type() wiegand.LineType {
	return wiegand.LineGPIO
}

func (l *Line) name() string {
	return l.d0Name + "/" + l.d1Name
}
