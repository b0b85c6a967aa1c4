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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineError_Formatting(t *testing.T) {
	t.Parallel()

	withName := NewLineError("read", "/dev/ttyUSB0", ErrLineRead, ErrorTypeTransient)
	assert.Equal(t, "read /dev/ttyUSB0: line read failed", withName.Error())

	withoutName := NewLineError("start", "", ErrLineNotOpen, ErrorTypePermanent)
	assert.Equal(t, "start: line not open", withoutName.Error())
}

func TestLineError_Unwrap(t *testing.T) {
	t.Parallel()
	underlying := errors.New("boom")
	err := NewLineReadError("read", "GPIO17", underlying)

	require.ErrorIs(t, err, ErrLineRead)
	require.ErrorIs(t, err, underlying)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsFatal(err))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(ErrLineRead))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", ErrLineRead)))
	assert.False(t, IsRetryable(ErrInvalidParameter))
	assert.False(t, IsRetryable(NewLineClosedError("read", "x")))
}

func TestIsFatal(t *testing.T) {
	t.Parallel()

	assert.False(t, IsFatal(nil))
	assert.True(t, IsFatal(ErrLineClosed))
	assert.True(t, IsFatal(ErrLineNotFound))
	assert.True(t, IsFatal(io.EOF))
	assert.True(t, IsFatal(NewLineClosedError("start", "mock")))
	assert.False(t, IsFatal(errors.New("transient glitch")))

	// OS-level source-gone errors from an unplugged serial bridge.
	assert.True(t, IsFatal(fmt.Errorf("read: %w", syscall.ENODEV)))
	assert.True(t, IsFatal(fmt.Errorf("read: %w", syscall.EIO)))
	assert.False(t, IsFatal(fmt.Errorf("read: %w", syscall.EAGAIN)))
}

func TestUnknownFormatError(t *testing.T) {
	t.Parallel()
	err := &UnknownFormatError{BitCount: 37}

	assert.Equal(t, "no layout for 37-bit frame", err.Error())
	assert.True(t, IsUnknownFormat(err))
	assert.True(t, IsUnknownFormat(fmt.Errorf("decode: %w", err)))
	assert.False(t, IsUnknownFormat(ErrBufferOverflow))
	assert.False(t, IsUnknownFormat(nil))
}
