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

// Command reader runs a Wiegand credential-reader front end: it captures
// pulses from a GPIO pin pair or a serial bridge, decodes completed frames
// and prints the facility/card pair, optionally announcing each read over
// MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	wiegand "github.com/hoangminh1109/go-wiegand"
	"github.com/hoangminh1109/go-wiegand/line/gpio"
	"github.com/hoangminh1109/go-wiegand/line/serial"
	"github.com/hoangminh1109/go-wiegand/polling"
	"github.com/hoangminh1109/go-wiegand/telemetry/mqtt"
)

type config struct {
	lineType     string
	device       string
	d0           string
	d1           string
	configPath   string
	mqttBroker   string
	mqttTopic    string
	maxBits      int
	silenceTicks int
	dwellMillis  int
	debug        bool
}

// Package-level flag variables
var (
	flagLine    string
	flagDevice  string
	flagD0      string
	flagD1      string
	flagConfig  string
	flagMQTT    string
	flagTopic   string
	flagDwell   int
	flagSilence int
	flagMaxBits int
	flagDebug   bool
)

func init() {
	flag.StringVar(&flagLine, "line", "gpio", "Pulse source: gpio or serial")
	flag.StringVar(&flagDevice, "device", "", "Serial device path (serial line only)")
	flag.StringVar(&flagD0, "d0", "GPIO17", "D0 pin name (gpio line only)")
	flag.StringVar(&flagD1, "d1", "GPIO27", "D1 pin name (gpio line only)")
	flag.StringVar(&flagConfig, "config", "", "Path to YAML config file")
	flag.StringVar(&flagMQTT, "mqtt", "", "MQTT broker URL for read telemetry (disabled if empty)")
	flag.StringVar(&flagTopic, "topic", "", "MQTT topic for read telemetry")
	flag.IntVar(&flagDwell, "dwell", 0, "Result dwell time in milliseconds (0 = default)")
	flag.IntVar(&flagSilence, "silence", 0, "Silence budget in ticks (0 = default)")
	flag.IntVar(&flagMaxBits, "maxbits", 0, "Frame buffer capacity in bits (0 = default)")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

// parseConfig merges defaults, the optional config file and flags, in that
// order of precedence.
func parseConfig() (*config, *fileConfig, error) {
	cfg := &config{
		lineType:   flagLine,
		device:     flagDevice,
		d0:         flagD0,
		d1:         flagD1,
		configPath: flagConfig,
		mqttBroker: flagMQTT,
		mqttTopic:  flagTopic,
	}

	fileCfg := &fileConfig{}
	if cfg.configPath != "" {
		loaded, err := loadFileConfig(cfg.configPath)
		if err != nil {
			return nil, nil, err
		}
		fileCfg = loaded
	}

	if fileCfg.Line != "" && !isFlagSet("line") {
		cfg.lineType = fileCfg.Line
	}
	if fileCfg.Device != "" && cfg.device == "" {
		cfg.device = fileCfg.Device
	}
	if fileCfg.D0 != "" && !isFlagSet("d0") {
		cfg.d0 = fileCfg.D0
	}
	if fileCfg.D1 != "" && !isFlagSet("d1") {
		cfg.d1 = fileCfg.D1
	}
	if fileCfg.MQTT.Broker != "" && cfg.mqttBroker == "" {
		cfg.mqttBroker = fileCfg.MQTT.Broker
	}
	if fileCfg.MQTT.Topic != "" && cfg.mqttTopic == "" {
		cfg.mqttTopic = fileCfg.MQTT.Topic
	}

	cfg.maxBits = firstPositive(flagMaxBits, fileCfg.MaxBits)
	cfg.silenceTicks = firstPositive(flagSilence, fileCfg.SilenceTicks)
	cfg.dwellMillis = firstPositive(flagDwell, fileCfg.DwellMillis)
	cfg.debug = flagDebug

	if cfg.debug {
		wiegand.SetDebugEnabled(true)
	}

	return cfg, fileCfg, nil
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// newLine creates the configured pulse source.
func newLine(cfg *config) (wiegand.Line, error) {
	switch cfg.lineType {
	case "gpio":
		l, err := gpio.New(cfg.d0, cfg.d1)
		if err != nil {
			return nil, fmt.Errorf("failed to create GPIO line: %w", err)
		}
		return l, nil
	case "serial":
		if cfg.device == "" {
			return nil, errors.New("serial line requires -device")
		}
		l, err := serial.New(cfg.device)
		if err != nil {
			return nil, fmt.Errorf("failed to create serial line: %w", err)
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported line type: %s", cfg.lineType)
	}
}

func newReader(cfg *config, fileCfg *fileConfig, line wiegand.Line) (*wiegand.Reader, error) {
	layouts, err := fileCfg.layoutTable()
	if err != nil {
		return nil, err
	}

	var captureOpts []wiegand.CaptureOption
	if cfg.maxBits > 0 {
		captureOpts = append(captureOpts, wiegand.WithMaxBits(cfg.maxBits))
	}
	if cfg.silenceTicks > 0 {
		captureOpts = append(captureOpts, wiegand.WithSilenceTicks(cfg.silenceTicks))
	}

	reader, err := wiegand.NewReader(line,
		wiegand.WithLayouts(layouts),
		wiegand.WithCaptureOptions(captureOpts...))
	if err != nil {
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	return reader, nil
}

// newTelemetry connects the optional MQTT publisher.
func newTelemetry(cfg *config) (*mqtt.Publisher, error) {
	if cfg.mqttBroker == "" {
		return nil, nil //nolint:nilnil // Telemetry is optional; nil means disabled
	}

	mqttCfg := mqtt.DefaultConfig()
	mqttCfg.BrokerURL = cfg.mqttBroker
	if cfg.mqttTopic != "" {
		mqttCfg.Topic = cfg.mqttTopic
	}

	publisher, err := mqtt.New(mqttCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telemetry: %w", err)
	}
	return publisher, nil
}

func run(ctx context.Context, cfg *config, fileCfg *fileConfig) error {
	line, err := newLine(cfg)
	if err != nil {
		return err
	}

	reader, err := newReader(cfg, fileCfg, line)
	if err != nil {
		_ = line.Close()
		return err
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to close reader: %v\n", closeErr)
		}
	}()

	publisher, err := newTelemetry(cfg)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer publisher.Close()
	}

	pollCfg := polling.DefaultConfig()
	if cfg.dwellMillis > 0 {
		pollCfg.DwellTime = time.Duration(cfg.dwellMillis) * time.Millisecond
	}

	controller := polling.NewController(reader, pollCfg,
		&terminalDisplay{w: os.Stdout},
		&terminalIndicator{w: os.Stdout})

	if publisher != nil {
		controller.OnDecoded = func(frame *wiegand.DecodedFrame) {
			if pubErr := publisher.PublishFrame(frame); pubErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Telemetry publish failed: %v\n", pubErr)
			}
		}
		controller.OnUndecodable = func(bitCount int) {
			if pubErr := publisher.PublishUndecodable(bitCount); pubErr != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Telemetry publish failed: %v\n", pubErr)
			}
		}
	}

	done := make(chan error, 2)
	go func() { done <- reader.Start(ctx) }()
	go func() { done <- controller.Run(ctx) }()

	err = <-done
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func main() {
	flag.Parse()
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	cfg, fileCfg, err := parseConfig()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		_, _ = fmt.Print("\nShutting down gracefully...\n")
		cancel()
	}()

	if err := run(ctx, cfg, fileCfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
