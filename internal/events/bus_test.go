// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus, err := NewBusWithLogger(DefaultConfig(), watermill.NopLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestBus_PublishSubscribe(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscribe(ctx, TopicDatasetChanged)
	require.NoError(t, err)

	sent := NewDatasetChanged(SourceAPI, "/data/netflix_titles.csv")
	require.NoError(t, bus.Publish(TopicDatasetChanged, sent))

	msg := receive(t, ch)
	assert.Equal(t, sent.EventID, msg.UUID)

	got, err := Decode[DatasetChanged](msg)
	require.NoError(t, err)
	assert.Equal(t, sent.Source, got.Source)
	assert.Equal(t, sent.Path, got.Path)
	assert.True(t, sent.RequestedAt.Equal(got.RequestedAt))
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuilt, err := bus.Subscribe(ctx, TopicModelRebuilt)
	require.NoError(t, err)
	failed, err := bus.Subscribe(ctx, TopicReloadFailed)
	require.NoError(t, err)

	require.NoError(t, bus.Publish(TopicReloadFailed, ReloadFailed{
		EventID: "f-1",
		Source:  SourceWatcher,
		Error:   "missing required columns",
	}))

	msg := receive(t, failed)
	ev, err := Decode[ReloadFailed](msg)
	require.NoError(t, err)
	assert.Equal(t, "missing required columns", ev.Error)

	select {
	case m := <-rebuilt:
		t.Fatalf("unexpected message on %s: %s", TopicModelRebuilt, m.UUID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_Closed(t *testing.T) {
	bus, err := NewBusWithLogger(DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(TopicModelRebuilt, ModelRebuilt{}), ErrClosed)
	_, err = bus.Subscribe(context.Background(), TopicModelRebuilt)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestNewBus_RejectsNegativeBuffer(t *testing.T) {
	_, err := NewBusWithLogger(Config{OutputChannelBuffer: -1}, nil)
	assert.Error(t, err)
}

func TestDecode_Invalid(t *testing.T) {
	msg := message.NewMessage("bad", []byte("{not json"))
	_, err := Decode[ModelRebuilt](msg)
	assert.Error(t, err)
}

func TestNewMessage_GeneratesID(t *testing.T) {
	msg, err := NewMessage("", map[string]int{"rows": 3})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.UUID)
	assert.Equal(t, "application/json", msg.Metadata.Get("content_type"))
}
