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
	"fmt"
	"os"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file. Flags override file
// values; file values override defaults.
type fileConfig struct {
	Line         string             `yaml:"line"`
	Device       string             `yaml:"device"`
	D0           string             `yaml:"d0"`
	D1           string             `yaml:"d1"`
	MaxBits      int                `yaml:"maxBits"`
	SilenceTicks int                `yaml:"silenceTicks"`
	DwellMillis  int                `yaml:"dwellMillis"`
	MQTT         mqttFileConfig     `yaml:"mqtt"`
	Layouts      []layoutFileConfig `yaml:"layouts"`
}

type mqttFileConfig struct {
	Broker string `yaml:"broker"`
	Topic  string `yaml:"topic"`
}

// layoutFileConfig declares one additional frame layout. Ranges are
// half-open [start,end) bit positions, MSB first.
type layoutFileConfig struct {
	Name     string `yaml:"name"`
	Bits     int    `yaml:"bits"`
	Facility [2]int `yaml:"facility"`
	Card     [2]int `yaml:"card"`
}

// loadFileConfig reads and parses the YAML config file.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is operator-supplied configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// layoutTable builds the reader's layout table: the built-in formats plus
// any declared in the config file. File entries may replace a built-in by
// declaring the same bit count.
func (c *fileConfig) layoutTable() (wiegand.LayoutTable, error) {
	layouts := wiegand.DefaultLayouts()
	for _, entry := range c.Layouts {
		err := layouts.Register(wiegand.Layout{
			Name:     entry.Name,
			Bits:     entry.Bits,
			Facility: wiegand.FieldRange{Start: entry.Facility[0], End: entry.Facility[1]},
			Card:     wiegand.FieldRange{Start: entry.Card[0], End: entry.Card[1]},
		})
		if err != nil {
			return nil, fmt.Errorf("config layout %q: %w", entry.Name, err)
		}
	}
	return layouts, nil
}
