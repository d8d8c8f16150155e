// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package websocket pushes model lifecycle notifications to dashboard clients.

It uses gorilla/websocket with a hub-client architecture:

  - Hub: registers clients and fans messages out to them
  - Client: one connection with a read pump and a write pump
  - Forwarder: relays model.rebuilt and reload.failed bus events to the hub

Message Types:

  - model_rebuilt: a new similarity model is serving (version, rows, hash)
  - reload_failed: a reload was rejected; the previous model keeps serving
  - ping / pong: application-level keepalive

Usage:

	hub := websocket.NewHub()
	go hub.RunWithContext(ctx)
	go websocket.NewForwarder(hub, bus).Serve(ctx)

	// in the HTTP handler
	client := websocket.NewClient(hub, conn)
	hub.Register <- client
	client.Start()

Browser side:

	const ws = new WebSocket(`ws://${location.host}/api/v1/ws`);
	ws.onmessage = (e) => {
	    const msg = JSON.parse(e.data);
	    if (msg.type === 'model_rebuilt') refreshCatalog();
	};

Broadcasts never block: when the hub buffer is full the message is dropped,
and a client whose send buffer is full is disconnected. Clients are visited
in connection order so delivery order is deterministic.
*/
package websocket
