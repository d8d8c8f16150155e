// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package websocket

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/cinematch/internal/events"
	"github.com/tomtom215/cinematch/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub creates and starts a hub that stops with the test.
func setupHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = hub.RunWithContext(ctx) }()
	return hub
}

func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 256)}
}

// registerClient registers a client and waits until the hub sees it.
func registerClient(t *testing.T, hub *Hub, client *Client) {
	t.Helper()
	want := hub.GetClientCount() + 1
	hub.Register <- client
	waitFor(t, func() bool { return hub.GetClientCount() == want })
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 1s")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func recv(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("client send channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub.clients == nil || hub.broadcast == nil || hub.Register == nil || hub.Unregister == nil {
		t.Fatal("NewHub left a field nil")
	}
	if cap(hub.broadcast) != 256 {
		t.Errorf("broadcast buffer = %d, want 256", cap(hub.broadcast))
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("GetClientCount() = %d, want 0", hub.GetClientCount())
	}
	if hub.String() != "websocket-hub" {
		t.Errorf("String() = %q", hub.String())
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := setupHub(t)
	c := createTestClient(hub)
	registerClient(t, hub, c)

	hub.Unregister <- c
	waitFor(t, func() bool { return hub.GetClientCount() == 0 })
	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed after unregister")
	}

	// Unregistering twice must not panic on a closed channel.
	hub.Unregister <- c
	waitFor(t, func() bool { return hub.GetClientCount() == 0 })
}

func TestHub_BroadcastModelRebuilt(t *testing.T) {
	hub := setupHub(t)
	a, b := createTestClient(hub), createTestClient(hub)
	registerClient(t, hub, a)
	registerClient(t, hub, b)

	hub.BroadcastModelRebuilt(events.ModelRebuilt{Version: 3, Rows: 8807, DatasetHash: "abc"})

	for _, c := range []*Client{a, b} {
		msg := recv(t, c)
		if msg.Type != MessageTypeModelRebuilt {
			t.Errorf("Type = %q, want %q", msg.Type, MessageTypeModelRebuilt)
		}
		ev, ok := msg.Data.(events.ModelRebuilt)
		if !ok || ev.Version != 3 || ev.Rows != 8807 {
			t.Errorf("Data = %#v", msg.Data)
		}
	}
}

func TestHub_BroadcastReloadFailed(t *testing.T) {
	hub := setupHub(t)
	c := createTestClient(hub)
	registerClient(t, hub, c)

	hub.BroadcastReloadFailed(events.ReloadFailed{Source: events.SourceWatcher, Error: "bad csv"})
	msg := recv(t, c)
	if msg.Type != MessageTypeReloadFailed {
		t.Errorf("Type = %q, want %q", msg.Type, MessageTypeReloadFailed)
	}
}

func TestHub_BroadcastWithoutRunningHubDoesNotBlock(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			hub.BroadcastJSON("test", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BroadcastJSON blocked on a full buffer")
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	fast := createTestClient(hub)
	hub.clients[slow] = true
	hub.clients[fast] = true

	hub.broadcastToClients(Message{Type: "test"})

	if hub.GetClientCount() != 1 {
		t.Fatalf("GetClientCount() = %d, want 1", hub.GetClientCount())
	}
	if _, ok := hub.clients[fast]; !ok {
		t.Error("fast client was removed")
	}
	if _, ok := <-slow.send; ok {
		t.Error("slow client channel should be closed")
	}
}

func TestHub_RunWithContext(t *testing.T) {
	t.Run("canceled", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- hub.Serve(ctx) }()

		c := createTestClient(hub)
		registerClient(t, hub, c)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("err = %v, want context.Canceled", err)
			}
		case <-time.After(time.Second):
			t.Fatal("RunWithContext did not return after cancel")
		}
		if hub.GetClientCount() != 0 {
			t.Errorf("clients left after shutdown: %d", hub.GetClientCount())
		}
		if _, ok := <-c.send; ok {
			t.Error("client channel should be closed on shutdown")
		}
	})

	t.Run("deadline", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		err := hub.RunWithContext(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("err = %v, want context.DeadlineExceeded", err)
		}
		if getShutdownReason(ctx) != ShutdownReasonContextDeadline {
			t.Errorf("reason = %q", getShutdownReason(ctx))
		}
	})
}

func TestMarshalMessage(t *testing.T) {
	data, err := MarshalMessage(Message{Type: MessageTypePong})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"type":"pong","data":null}` {
		t.Errorf("MarshalMessage = %s", data)
	}
}

func TestForwarder_RelaysBusEvents(t *testing.T) {
	hub := setupHub(t)
	c := createTestClient(hub)
	registerClient(t, hub, c)

	bus, err := events.NewBusWithLogger(events.DefaultConfig(), watermill.NopLogger{})
	if err != nil {
		t.Fatal(err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fwd := NewForwarder(hub, bus)
	go func() { _ = fwd.Serve(ctx) }()

	// The forwarder subscribes asynchronously; republish until it is seen.
	deadline := time.After(2 * time.Second)
	for {
		if err := bus.Publish(events.TopicModelRebuilt, events.ModelRebuilt{EventID: "e1", Version: 7}); err != nil {
			t.Fatal(err)
		}
		select {
		case msg := <-c.send:
			if msg.Type != MessageTypeModelRebuilt {
				t.Fatalf("Type = %q", msg.Type)
			}
			if ev := msg.Data.(events.ModelRebuilt); ev.Version != 7 {
				t.Errorf("Version = %d, want 7", ev.Version)
			}
			return
		case <-time.After(25 * time.Millisecond):
		case <-deadline:
			t.Fatal("forwarder never relayed the event")
		}
	}
}
