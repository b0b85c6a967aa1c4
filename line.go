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
	"context"
	"sync"
)

// Line delivers edge events from the two Wiegand data lines. Implementations
// translate a physical pulse source (GPIO falling edges, a serial bridge)
// into calls to the capture entry points. This can be backed by GPIO pins,
// a UART bridge, or a mock for testing.
type Line interface {
	// Start begins delivering pulses, invoking onZero once per D0 edge and
	// onOne once per D1 edge, until ctx is cancelled or the line fails.
	// The callbacks must be non-blocking and bounded; capture entry points
	// satisfy this. Start blocks for the lifetime of the line.
	Start(ctx context.Context, onZero, onOne func()) error

	// Close releases the underlying pins or port.
	Close() error

	// IsOpen returns true if the line can still deliver pulses.
	IsOpen() bool

	// Type returns the line source type.
	Type() LineType
}

// LineType represents the type of pulse source
type LineType string

const (
	// LineGPIO represents direct D0/D1 GPIO edge capture.
	LineGPIO LineType = "gpio"
	// LineSerial represents a serial-attached Wiegand bridge.
	LineSerial LineType = "serial"
	// LineMock represents a mock pulse source for testing
	LineMock LineType = "mock"
)

// MockLine is a Line implementation for testing. Pulses are injected
// manually with PulseZero/PulseOne after Start has been called.
type MockLine struct {
	started   chan struct{}
	startOnce sync.Once
	mu        sync.Mutex
	onZero    func()
	onOne     func()
	open      bool
}

// NewMockLine creates an open mock pulse source.
func NewMockLine() *MockLine {
	return &MockLine{
		open:    true,
		started: make(chan struct{}),
	}
}

// Start implements Line. It records the callbacks, signals Started and
// blocks until ctx is cancelled.
func (m *MockLine) Start(ctx context.Context, onZero, onOne func()) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return NewLineClosedError("start", string(LineMock))
	}
	m.onZero = onZero
	m.onOne = onOne
	m.mu.Unlock()

	m.startOnce.Do(func() { close(m.started) })
	<-ctx.Done()
	return ctx.Err()
}

// Started returns a channel closed once Start has registered its callbacks.
// Tests wait on it before injecting pulses.
func (m *MockLine) Started() <-chan struct{} {
	return m.started
}

// PulseZero injects one D0 pulse.
func (m *MockLine) PulseZero() {
	m.mu.Lock()
	fire := m.onZero
	open := m.open
	m.mu.Unlock()
	if open && fire != nil {
		fire()
	}
}

// PulseOne injects one D1 pulse.
func (m *MockLine) PulseOne() {
	m.mu.Lock()
	fire := m.onOne
	open := m.open
	m.mu.Unlock()
	if open && fire != nil {
		fire()
	}
}

// Close implements Line.
func (m *MockLine) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

// IsOpen implements Line.
func (m *MockLine) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Type implements Line.
func (*MockLine) Type() LineType {
	return LineMock
}
