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

// Package serial implements the wiegand.Line interface over a serial-
// attached Wiegand bridge: a small converter (typically a microcontroller
// on the reader's D0/D1 lines) that emits one byte per pulse, '0' for a D0
// edge and '1' for a D1 edge. Any other byte is framing noise and ignored.
package serial

import (
	"context"
	"fmt"
	"sync"
	"time"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"go.bug.st/serial"
)

// readTimeout bounds each port read so the loop notices cancellation.
const readTimeout = 100 * time.Millisecond

// Line reads Wiegand pulses from a serial-attached bridge.
type Line struct {
	port     serial.Port
	portName string
	mu       sync.Mutex
	open     bool
}

// New opens a serial pulse bridge on the named port at 9600 8N1, the rate
// common converter firmware uses.
func New(portName string) (*Line, error) {
	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout on %s: %w", portName, err)
	}

	return &Line{
		port:     port,
		portName: portName,
		open:     true,
	}, nil
}

// Start reads pulse bytes until ctx is cancelled or the port fails. Reads
// time out every readTimeout so cancellation is observed even on a silent
// line.
func (l *Line) Start(ctx context.Context, onZero, onOne func()) error {
	l.mu.Lock()
	if !l.open {
		l.mu.Unlock()
		return wiegand.NewLineClosedError("start", l.portName)
	}
	port := l.port
	l.mu.Unlock()

	buf := make([]byte, 64)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !l.IsOpen() {
			return wiegand.NewLineClosedError("read", l.portName)
		}

		n, err := port.Read(buf)
		if err != nil {
			if !l.IsOpen() {
				return wiegand.NewLineClosedError("read", l.portName)
			}
			readErr := wiegand.NewLineReadError("read", l.portName, err)
			if wiegand.IsFatal(err) {
				return readErr
			}
			wiegand.Debugf("serial pulse read retry: %v", readErr)
			time.Sleep(10 * time.Millisecond)
			continue
		}
		decodePulses(buf[:n], onZero, onOne)
	}
}

// decodePulses maps bridge bytes to pulse callbacks. Bytes are dispatched
// in wire order, preserving bit order within a frame.
func decodePulses(data []byte, onZero, onOne func()) {
	for _, b := range data {
		switch b {
		case '0':
			onZero()
		case '1':
			onOne()
		default:
			// Framing noise, line feeds from chatty bridges, etc.
		}
	}
}

// Close closes the serial port. A blocked Read returns once the port is
// closed.
func (l *Line) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.open {
		return nil
	}
	l.open = false
	if err := l.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", l.portName, err)
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
	return wiegand.LineSerial
}
