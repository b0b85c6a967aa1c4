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

package testing

import (
	"testing"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrain_PlayKeepsBoundaryUnfired(t *testing.T) {
	t.Parallel()
	capture := wiegand.NewCapture(wiegand.WithSilenceTicks(10))

	train, err := TrainFromString("1011 0100", 5)
	require.NoError(t, err)
	train.Play(capture)

	count, boundary := capture.State()
	assert.Equal(t, 8, count)
	assert.False(t, boundary, "gaps below the silence budget must not fire the boundary")
}

func TestTrain_PlayAndSettleFiresBoundary(t *testing.T) {
	t.Parallel()
	capture := wiegand.NewCapture(wiegand.WithSilenceTicks(10))

	train, err := TrainFromString("110", 2)
	require.NoError(t, err)
	train.PlayAndSettle(capture, 10)

	count, boundary := capture.State()
	assert.Equal(t, 3, count)
	assert.True(t, boundary)
	assert.Equal(t, []byte{1, 1, 0}, capture.Snapshot().Bits)
}

func TestTrainFromString_RejectsBadInput(t *testing.T) {
	t.Parallel()
	_, err := TrainFromString("10a", 1)
	require.Error(t, err)
}
