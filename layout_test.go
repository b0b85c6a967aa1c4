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
	"testing"

	"github.com/hoangminh1109/go-wiegand/internal/bitbuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBits(t *testing.T, s string) []byte {
	t.Helper()
	bits, err := bitbuf.Parse(s)
	require.NoError(t, err)
	return bits
}

func TestLayoutTable_Decode(t *testing.T) {
	t.Parallel()
	layouts := DefaultLayouts()

	tests := []struct {
		name         string
		bits         string
		wantFormat   string
		wantFacility uint64
		wantCard     uint64
	}{
		{
			// facility [1,9) and card [9,25) both hold 1; bits 0 and 25
			// are parity positions and excluded from both fields.
			name:         "Std26MinimalFields",
			bits:         "1 00000001 0000000000000001 1",
			wantFormat:   "std26",
			wantFacility: 1,
			wantCard:     1,
		},
		{
			name:         "Std26TypicalCredential",
			bits:         "0 00101010 0011000000111001 0",
			wantFormat:   "std26",
			wantFacility: 42,
			wantCard:     12345,
		},
		{
			// Parity values must not affect either field.
			name:         "Std26ParityBitsIgnored",
			bits:         "1 00101010 0011000000111001 1",
			wantFormat:   "std26",
			wantFacility: 42,
			wantCard:     12345,
		},
		{
			name:         "Corp35",
			bits:         "10 000001100100 10011111101111110001 1",
			wantFormat:   "corp35",
			wantFacility: 100,
			wantCard:     654321,
		},
		{
			name:         "Corp35AllOnesFields",
			bits:         "00 111111111111 11111111111111111111 0",
			wantFormat:   "corp35",
			wantFacility: 4095,
			wantCard:     1048575,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			decoded, err := layouts.Decode(mustBits(t, tt.bits))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, decoded.Format)
			assert.Equal(t, tt.wantFacility, decoded.FacilityCode)
			assert.Equal(t, tt.wantCard, decoded.CardCode)
		})
	}
}

func TestLayoutTable_DecodeUnknownLength(t *testing.T) {
	t.Parallel()
	layouts := DefaultLayouts()

	for _, length := range []int{0, 1, 10, 25, 27, 34, 40, 100} {
		bits := make([]byte, length)
		decoded, err := layouts.Decode(bits)

		assert.Nil(t, decoded)
		require.Error(t, err)
		assert.True(t, IsUnknownFormat(err))

		var ue *UnknownFormatError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, length, ue.BitCount)
	}
}

func TestLayoutTable_DecodeIsPure(t *testing.T) {
	t.Parallel()
	layouts := DefaultLayouts()
	bits := mustBits(t, "0 00101010 0011000000111001 0")

	first, err := layouts.Decode(bits)
	require.NoError(t, err)
	second, err := layouts.Decode(bits)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, mustBits(t, "0 00101010 0011000000111001 0"), bits,
		"decode must not mutate the frame")
}

func TestLayoutTable_Register(t *testing.T) {
	t.Parallel()

	t.Run("AdditiveFormat", func(t *testing.T) {
		t.Parallel()
		layouts := DefaultLayouts()
		require.NoError(t, layouts.Register(Layout{
			Name:     "short8",
			Bits:     8,
			Facility: FieldRange{Start: 0, End: 4},
			Card:     FieldRange{Start: 4, End: 8},
		}))

		decoded, err := layouts.Decode(mustBits(t, "01011001"))
		require.NoError(t, err)
		assert.Equal(t, "short8", decoded.Format)
		assert.Equal(t, uint64(0b0101), decoded.FacilityCode)
		assert.Equal(t, uint64(0b1001), decoded.CardCode)

		// Existing formats still decode.
		_, err = layouts.Decode(make([]byte, 26))
		assert.NoError(t, err)
	})

	t.Run("DefaultName", func(t *testing.T) {
		t.Parallel()
		layouts := LayoutTable{}
		require.NoError(t, layouts.Register(Layout{
			Bits:     12,
			Facility: FieldRange{Start: 0, End: 4},
			Card:     FieldRange{Start: 4, End: 12},
		}))

		layout, ok := layouts.Lookup(12)
		require.True(t, ok)
		assert.Equal(t, "len12", layout.Name)
	})

	t.Run("RejectsInvalid", func(t *testing.T) {
		t.Parallel()
		layouts := LayoutTable{}

		invalid := []Layout{
			{Bits: 0, Facility: FieldRange{0, 1}, Card: FieldRange{1, 2}},
			{Bits: -4, Facility: FieldRange{0, 1}, Card: FieldRange{1, 2}},
			{Bits: 16, Facility: FieldRange{-1, 4}, Card: FieldRange{4, 8}},
			{Bits: 16, Facility: FieldRange{0, 4}, Card: FieldRange{4, 20}},
			{Bits: 16, Facility: FieldRange{4, 4}, Card: FieldRange{4, 8}},
			{Bits: 16, Facility: FieldRange{8, 4}, Card: FieldRange{4, 8}},
			{Bits: 100, Facility: FieldRange{0, 70}, Card: FieldRange{70, 80}},
		}
		for _, l := range invalid {
			err := layouts.Register(l)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		}
		assert.Empty(t, layouts)
	})
}

func TestFieldRange(t *testing.T) {
	t.Parallel()
	r := FieldRange{Start: 1, End: 9}
	assert.Equal(t, 8, r.Width())
	assert.Equal(t, "[1,9)", r.String())
}
