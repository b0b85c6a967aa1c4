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

package polling

import "time"

// Config holds frame lifecycle configuration options
type Config struct {
	// TickInterval is the period of the silence timer. Each controller
	// cycle advances the capture countdown by one tick, so the real quiet
	// interval is TickInterval multiplied by the capture's silence budget.
	TickInterval time.Duration

	// DwellTime is how long a published result stays visible before the
	// frame state is cleared and the reader rearms. Pulses arriving during
	// the dwell window belong to no frame and are cleared with it; that
	// loss window is inherent to single-frame capture.
	DwellTime time.Duration
}

// DefaultConfig returns the default lifecycle configuration: a 1ms tick
// (3 seconds of quiet with the default 3000-tick budget) and a 2 second
// result dwell.
func DefaultConfig() *Config {
	return &Config{
		TickInterval: time.Millisecond,
		DwellTime:    2 * time.Second,
	}
}
