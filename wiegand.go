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

// Package wiegand decodes the two-line Wiegand pulse-train protocol into
// credential frames. Pulses on the D0 and D1 lines append bits to a shared
// capture buffer, a silence countdown marks the frame boundary, and a
// layout table extracts the facility and card fields from completed frames.
//
// The package has no notion of cards, only edge events: line sources
// (line/gpio, line/serial) deliver pulses at arbitrary times, the polling
// package drives the frame lifecycle, and decoded results are handed to
// Display and Indicator collaborators supplied by the application.
package wiegand

// Display is the output surface a controller publishes frame results to.
// Implementations render a waiting prompt between frames and the outcome of
// each completed frame. Methods are only ever called from the controller's
// single goroutine.
type Display interface {
	// ShowWaiting indicates the reader is idle and ready for the next frame.
	ShowWaiting()
	// ShowFrame renders a successfully decoded frame.
	ShowFrame(frame *DecodedFrame)
	// ShowUndecodable renders a frame whose bit count matched no layout,
	// or a frame that overflowed the capture buffer.
	ShowUndecodable(bitCount int)
}

// Indicator drives the reader's success/failure outputs, such as a beeper
// or LED pair. Like Display, it is called once per completed frame from the
// controller goroutine.
type Indicator interface {
	Success()
	Failure()
}

// NopDisplay is a Display that discards all output. Useful as a default and
// for embedding in partial implementations.
type NopDisplay struct{}

// ShowWaiting implements Display.
func (NopDisplay) ShowWaiting() {}

// ShowFrame implements Display.
func (NopDisplay) ShowFrame(*DecodedFrame) {}

// ShowUndecodable implements Display.
func (NopDisplay) ShowUndecodable(int) {}

// NopIndicator is an Indicator that does nothing.
type NopIndicator struct{}

// Success implements Indicator.
func (NopIndicator) Success() {}

// Failure implements Indicator.
func (NopIndicator) Failure() {}
