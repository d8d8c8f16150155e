// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
)

// Subscriber is the subset of *events.Bus the forwarder needs.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// Forwarder relays model lifecycle events from the bus to the hub.
type Forwarder struct {
	hub *Hub
	bus Subscriber
}

// NewForwarder creates a forwarder from bus to hub.
func NewForwarder(hub *Hub, bus Subscriber) *Forwarder {
	return &Forwarder{hub: hub, bus: bus}
}

// Serve implements suture.Service.
func (f *Forwarder) Serve(ctx context.Context) error {
	rebuilt, err := f.bus.Subscribe(ctx, events.TopicModelRebuilt)
	if err != nil {
		return fmt.Errorf("forwarder subscribe: %w", err)
	}
	failed, err := f.bus.Subscribe(ctx, events.TopicReloadFailed)
	if err != nil {
		return fmt.Errorf("forwarder subscribe: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-rebuilt:
			if !ok {
				return ctx.Err()
			}
			if ev, err := events.Decode[events.ModelRebuilt](msg); err != nil {
				logging.Warn().Err(err).Msg("dropping undecodable model_rebuilt event")
			} else {
				f.hub.BroadcastModelRebuilt(ev)
			}
			msg.Ack()

		case msg, ok := <-failed:
			if !ok {
				return ctx.Err()
			}
			if ev, err := events.Decode[events.ReloadFailed](msg); err != nil {
				logging.Warn().Err(err).Msg("dropping undecodable reload_failed event")
			} else {
				f.hub.BroadcastReloadFailed(ev)
			}
			msg.Ack()
		}
	}
}

// String implements fmt.Stringer for suture logging.
func (f *Forwarder) String() string {
	return "websocket-forwarder"
}
