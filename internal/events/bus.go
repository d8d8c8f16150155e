// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/cinematch/internal/logging"
)

// ErrClosed is returned by Publish and Subscribe after Close.
var ErrClosed = errors.New("event bus closed")

// Config configures the in-process bus.
type Config struct {
	// OutputChannelBuffer is the per-subscriber buffer.
	OutputChannelBuffer int64

	// BlockPublishUntilSubscriberAck makes Publish wait for consumers.
	BlockPublishUntilSubscriberAck bool
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		OutputChannelBuffer: 64,
	}
}

// Bus is a thin wrapper over a Watermill GoChannel that speaks the topic
// payloads of this package.
type Bus struct {
	pubsub *gochannel.GoChannel
	closed atomic.Bool
}

// NewBus creates a bus that logs through the process logger.
func NewBus(cfg Config) (*Bus, error) {
	return NewBusWithLogger(cfg, watermill.NewSlogLogger(logging.NewSlogLogger()))
}

// NewBusWithLogger creates a bus with an explicit Watermill logger.
func NewBusWithLogger(cfg Config, logger watermill.LoggerAdapter) (*Bus, error) {
	if cfg.OutputChannelBuffer < 0 {
		return nil, fmt.Errorf("output channel buffer must be >= 0, got %d", cfg.OutputChannelBuffer)
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            cfg.OutputChannelBuffer,
			BlockPublishUntilSubscriberAck: cfg.BlockPublishUntilSubscriberAck,
		}, logger),
	}, nil
}

// Publish encodes payload and publishes it on topic.
func (b *Bus) Publish(topic string, payload any) error {
	if b.closed.Load() {
		return ErrClosed
	}
	msg, err := NewMessage(eventID(payload), payload)
	if err != nil {
		return err
	}
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message channel for topic. Consumers must Ack or
// Nack each message. The channel closes when ctx is done or the bus closes.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}
	ch, err := b.pubsub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	return ch, nil
}

// Publisher exposes the underlying Watermill publisher.
func (b *Bus) Publisher() message.Publisher { return b.pubsub }

// Close stops delivery and closes every subscriber channel.
func (b *Bus) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.pubsub.Close()
}

func eventID(payload any) string {
	switch p := payload.(type) {
	case DatasetChanged:
		return p.EventID
	case *DatasetChanged:
		return p.EventID
	case ModelRebuilt:
		return p.EventID
	case *ModelRebuilt:
		return p.EventID
	case ReloadFailed:
		return p.EventID
	case *ReloadFailed:
		return p.EventID
	default:
		return ""
	}
}
