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
	"fmt"
	"os"
	"sync/atomic"
)

// debugEnabled controls whether debug logging is active
var debugEnabled atomic.Bool

func init() {
	// Enable debug logging if DEBUG environment variable is set
	if os.Getenv("WIEGAND_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled.Store(true)
	}
}

// SetDebugEnabled enables or disables debug output at runtime
func SetDebugEnabled(enabled bool) {
	debugEnabled.Store(enabled)
}

// DebugEnabled returns whether debug output is currently enabled
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf prints debug information when debug mode is enabled.
// Capture pulse handlers never call this; it is reserved for the
// controller and line sources, which run outside the pulse path.
func Debugf(format string, args ...any) {
	if debugEnabled.Load() {
		_, _ = fmt.Printf("DEBUG: %s\n", fmt.Sprintf(format, args...))
	}
}

// Debugln prints debug information when debug mode is enabled
func Debugln(args ...any) {
	if debugEnabled.Load() {
		_, _ = fmt.Printf("DEBUG: %s\n", fmt.Sprint(args...))
	}
}
