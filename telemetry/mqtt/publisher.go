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

// Package mqtt publishes frame outcomes to an MQTT broker, the usual
// hand-off from a credential reader front end to an access-control
// back end. Hook Publisher into the controller's OnDecoded/OnUndecodable
// callbacks.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	wiegand "github.com/hoangminh1109/go-wiegand"
)

// ErrConnectTimeout indicates the broker did not accept the connection in
// time.
var ErrConnectTimeout = errors.New("broker connect timeout")

// ErrPublishTimeout indicates a publish was not acknowledged in time.
var ErrPublishTimeout = errors.New("publish timeout")

// Config holds broker connection and topic options
type Config struct {
	// BrokerURL is the broker address, e.g. "tcp://localhost:1883".
	BrokerURL string
	// ClientID identifies this reader to the broker.
	ClientID string
	// Topic receives one message per completed frame.
	Topic string
	// ConnectTimeout bounds the initial connection handshake.
	ConnectTimeout time.Duration
	// PublishTimeout bounds each publish acknowledgment.
	PublishTimeout time.Duration
	// QoS is the MQTT quality-of-service level for frame messages.
	QoS byte
}

// DefaultConfig returns broker defaults for a local mosquitto setup.
func DefaultConfig() *Config {
	return &Config{
		BrokerURL:      "tcp://localhost:1883",
		ClientID:       "go-wiegand",
		Topic:          "wiegand/frames",
		ConnectTimeout: 5 * time.Second,
		PublishTimeout: 2 * time.Second,
		QoS:            1,
	}
}

// frameMessage is the JSON payload for a decoded frame.
type frameMessage struct {
	ReadAt       time.Time `json:"readAt"`
	Outcome      string    `json:"outcome"`
	Format       string    `json:"format,omitempty"`
	FacilityCode uint64    `json:"facilityCode,omitempty"`
	CardCode     uint64    `json:"cardCode,omitempty"`
	BitCount     int       `json:"bitCount"`
}

// Publisher forwards frame outcomes to an MQTT broker.
type Publisher struct {
	client paho.Client
	config *Config
	now    func() time.Time
}

// New connects to the broker and returns a ready publisher. A nil config
// uses DefaultConfig.
func New(config *Config) (*Publisher, error) {
	if config == nil {
		config = DefaultConfig()
	}

	opts := paho.NewClientOptions().
		AddBroker(config.BrokerURL).
		SetClientID(config.ClientID).
		SetConnectTimeout(config.ConnectTimeout).
		SetAutoReconnect(true)

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(config.ConnectTimeout) {
		return nil, fmt.Errorf("%w: %s", ErrConnectTimeout, config.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", config.BrokerURL, err)
	}

	return &Publisher{
		client: client,
		config: config,
		now:    time.Now,
	}, nil
}

// PublishFrame announces one successfully decoded frame.
func (p *Publisher) PublishFrame(frame *wiegand.DecodedFrame) error {
	return p.publish(frameMessage{
		ReadAt:       p.now().UTC(),
		Outcome:      "decoded",
		Format:       frame.Format,
		FacilityCode: frame.FacilityCode,
		CardCode:     frame.CardCode,
		BitCount:     frame.Bits,
	})
}

// PublishUndecodable announces a frame that matched no layout or
// overflowed capture.
func (p *Publisher) PublishUndecodable(bitCount int) error {
	return p.publish(frameMessage{
		ReadAt:   p.now().UTC(),
		Outcome:  "undecodable",
		BitCount: bitCount,
	})
}

func (p *Publisher) publish(msg frameMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal frame message: %w", err)
	}

	token := p.client.Publish(p.config.Topic, p.config.QoS, false, payload)
	if !token.WaitTimeout(p.config.PublishTimeout) {
		return fmt.Errorf("%w: topic %s", ErrPublishTimeout, p.config.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.config.Topic, err)
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages a short
// drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
