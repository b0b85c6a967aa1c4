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

//go:build !deadlock

// Package syncutil provides the mutex types used throughout this module.
// Default builds wrap the standard sync mutexes with zero overhead;
// building with -tags=deadlock swaps in github.com/sasha-s/go-deadlock
// for lock-order and hold-timeout detection during development.
package syncutil

import "sync"

// Mutex is sync.Mutex in default builds.
type Mutex struct {
	sync.Mutex
}

// RWMutex is sync.RWMutex in default builds.
type RWMutex struct {
	sync.RWMutex
}
