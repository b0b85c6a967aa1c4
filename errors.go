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
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Error categories for error handling and line-source recovery logic
var (
	// Line errors - potentially retryable
	ErrLineRead     = errors.New("line read failed")
	ErrLineClosed   = errors.New("line is closed")
	ErrLineNotFound = errors.New("line not found")
	ErrLineNotOpen  = errors.New("line not open")

	// Capture errors - recovered locally, surfaced at the next boundary
	ErrBufferOverflow = errors.New("frame buffer overflow")

	// Configuration errors - not retryable
	ErrInvalidLayout    = errors.New("invalid layout")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorType represents the category of error for recovery logic
type ErrorType int

const (
	// ErrorTypeTransient indicates a potentially retryable error
	ErrorTypeTransient ErrorType = iota
	// ErrorTypePermanent indicates a non-retryable error
	ErrorTypePermanent
	// ErrorTypeTimeout indicates a timeout error (special handling)
	ErrorTypeTimeout
)

// LineError wraps pulse-source errors with additional context
type LineError struct {
	Err       error     // Underlying error
	Op        string    // Operation that failed
	Name      string    // Pin pair or port identifier
	Type      ErrorType // Error category
	Retryable bool      // Whether the error is retryable
}

func (e *LineError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// NewLineError creates a standard line error with consistent formatting
func NewLineError(op, name string, err error, errType ErrorType) *LineError {
	return &LineError{
		Op:        op,
		Name:      name,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewLineReadError creates a read error (transient)
func NewLineReadError(op, name string, err error) *LineError {
	return &LineError{
		Op:        op,
		Name:      name,
		Err:       fmt.Errorf("%w: %w", ErrLineRead, err),
		Type:      ErrorTypeTransient,
		Retryable: true,
	}
}

// NewLineClosedError creates a line closed error (permanent)
func NewLineClosedError(op, name string) *LineError {
	return NewLineError(op, name, ErrLineClosed, ErrorTypePermanent)
}

// UnknownFormatError reports a completed frame whose bit count matches no
// registered layout. This is the expected outcome for foreign or truncated
// formats, not a device fault; controllers surface it through the failure
// output path and keep running.
type UnknownFormatError struct {
	BitCount int
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("no layout for %d-bit frame", e.BitCount)
}

// IsUnknownFormat reports whether err indicates a frame length with no
// registered layout.
func IsUnknownFormat(err error) bool {
	var ue *UnknownFormatError
	return errors.As(err, &ue)
}

// IsRetryable returns true if the error is potentially retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var le *LineError
	if errors.As(err, &le) {
		return le.Retryable
	}

	return errors.Is(err, ErrLineRead)
}

// IsFatal returns true if the error indicates the pulse source is gone and
// capture should stop entirely. This is distinct from IsRetryable, which
// indicates whether a single read can be retried.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var le *LineError
	if errors.As(err, &le) {
		return le.Type == ErrorTypePermanent
	}

	if isSourceGoneError(err) {
		return true
	}

	switch {
	case errors.Is(err, ErrLineClosed),
		errors.Is(err, ErrLineNotFound),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrClosedPipe):
		return true
	default:
		return false
	}
}

// isSourceGoneError checks for OS-level errors indicating the pulse source
// disappeared. These occur when a USB serial bridge is unplugged during a
// read.
func isSourceGoneError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		//nolint:exhaustive // Only checking specific device-gone errors, not all errno values
		switch errno {
		case syscall.EIO, syscall.ENXIO, syscall.ENODEV:
			return true
		}
	}
	return false
}
