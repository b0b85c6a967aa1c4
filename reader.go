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
	"fmt"
)

// Reader ties a pulse Line to capture state and a layout table. It is the
// root object applications construct; the polling package drives its frame
// lifecycle.
type Reader struct {
	line    Line
	capture *Capture
	layouts LayoutTable
}

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	layouts     LayoutTable
	captureOpts []CaptureOption
}

// WithLayouts replaces the default layout table.
func WithLayouts(t LayoutTable) Option {
	return func(cfg *readerConfig) {
		if t != nil {
			cfg.layouts = t
		}
	}
}

// WithCaptureOptions forwards options to the reader's capture state, such
// as WithMaxBits and WithSilenceTicks.
func WithCaptureOptions(opts ...CaptureOption) Option {
	return func(cfg *readerConfig) {
		cfg.captureOpts = append(cfg.captureOpts, opts...)
	}
}

// NewReader creates a reader over the given pulse line.
func NewReader(line Line, opts ...Option) (*Reader, error) {
	if line == nil {
		return nil, fmt.Errorf("%w: nil line", ErrInvalidParameter)
	}

	cfg := &readerConfig{
		layouts: DefaultLayouts(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Reader{
		line:    line,
		capture: NewCapture(cfg.captureOpts...),
		layouts: cfg.layouts,
	}, nil
}

// Capture returns the reader's shared capture state.
func (r *Reader) Capture() *Capture {
	return r.capture
}

// Layouts returns the reader's layout table.
func (r *Reader) Layouts() LayoutTable {
	return r.layouts
}

// Line returns the underlying pulse source.
func (r *Reader) Line() Line {
	return r.line
}

// Start attaches the capture entry points to the line and blocks until ctx
// is cancelled or the line fails.
func (r *Reader) Start(ctx context.Context) error {
	if err := r.line.Start(ctx, r.capture.OnZeroPulse, r.capture.OnOnePulse); err != nil {
		return fmt.Errorf("pulse line stopped: %w", err)
	}
	return nil
}

// Decode resolves a frozen frame against the reader's layout table.
// Overflowed frames never reach a layout; they report ErrBufferOverflow so
// the controller can publish them through the failure path.
func (r *Reader) Decode(frame *Frame) (*DecodedFrame, error) {
	if frame.Overflow {
		return nil, fmt.Errorf("%w: %d bits captured", ErrBufferOverflow, frame.BitCount())
	}
	return r.layouts.Decode(frame.Bits)
}

// Close releases the underlying line.
func (r *Reader) Close() error {
	if err := r.line.Close(); err != nil {
		return fmt.Errorf("failed to close line: %w", err)
	}
	return nil
}
