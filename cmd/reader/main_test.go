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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLine_Errors(t *testing.T) {
	t.Parallel()

	t.Run("UnsupportedType", func(t *testing.T) {
		t.Parallel()
		_, err := newLine(&config{lineType: "i2c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported line type")
	})

	t.Run("SerialWithoutDevice", func(t *testing.T) {
		t.Parallel()
		_, err := newLine(&config{lineType: "serial"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires -device")
	})
}

func TestFirstPositive(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 5, firstPositive(5, 3))
	assert.Equal(t, 3, firstPositive(0, 3))
	assert.Equal(t, 3, firstPositive(-1, 3))
	assert.Equal(t, 0, firstPositive(0, 0))
	assert.Equal(t, 0, firstPositive())
}
