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

package bitbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendAndLen(t *testing.T) {
	t.Parallel()
	buf := New(4)

	assert.Equal(t, 0, buf.Len())
	assert.True(t, buf.Append(1))
	assert.True(t, buf.Append(0))
	assert.Equal(t, 2, buf.Len())
	assert.Equal(t, []byte{1, 0}, buf.Snapshot())
}

func TestBuffer_AppendNormalizesBits(t *testing.T) {
	t.Parallel()
	buf := New(2)

	// Any nonzero value is stored as 1.
	assert.True(t, buf.Append(0xFF))
	assert.True(t, buf.Append(0))
	assert.Equal(t, []byte{1, 0}, buf.Snapshot())
}

func TestBuffer_RejectsOverflow(t *testing.T) {
	t.Parallel()
	buf := New(3)

	for ri := 0; ri < 3; ri++ {
		require.True(t, buf.Append(1))
	}

	// The fourth append is rejected and leaves state unchanged.
	assert.False(t, buf.Append(1))
	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, []byte{1, 1, 1}, buf.Snapshot())
}

func TestBuffer_SnapshotDoesNotAlias(t *testing.T) {
	t.Parallel()
	buf := New(4)
	require.True(t, buf.Append(1))
	require.True(t, buf.Append(1))

	snap := buf.Snapshot()
	buf.Reset()
	require.True(t, buf.Append(0))

	assert.Equal(t, []byte{1, 1}, snap)
}

func TestBuffer_ResetRetainsCapacity(t *testing.T) {
	t.Parallel()
	buf := New(2)
	require.True(t, buf.Append(1))
	require.True(t, buf.Append(1))
	require.False(t, buf.Append(1))

	buf.Reset()

	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 2, buf.Cap())
	assert.True(t, buf.Append(0))
}

func TestField_MSBFirst(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		bits       string
		start, end int
		want       uint64
	}{
		{name: "SingleBit", bits: "1", start: 0, end: 1, want: 1},
		{name: "LeadingZeros", bits: "00000001", start: 0, end: 8, want: 1},
		{name: "MSBWeighted", bits: "10000000", start: 0, end: 8, want: 128},
		{name: "MidRange", bits: "0110100101", start: 2, end: 8, want: 0b101001},
		{name: "EmptyRange", bits: "1111", start: 2, end: 2, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			bits, err := Parse(tt.bits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Field(bits, tt.start, tt.end))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("GroupedBits", func(t *testing.T) {
		t.Parallel()
		bits, err := Parse("1101 0010")
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 1, 0, 1, 0, 0, 1, 0}, bits)
	})

	t.Run("RejectsOtherCharacters", func(t *testing.T) {
		t.Parallel()
		_, err := Parse("10x1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBitString)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		t.Parallel()
		const s = "11010000000000010000000001"
		bits, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, s, String(bits))
	})
}
