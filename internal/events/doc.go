// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package events carries dataset lifecycle notifications between components
over an in-process Watermill GoChannel.

Topics:

  - dataset.changed: an explicit signal that the CSV should be reloaded
    (admin endpoint, file watcher)
  - model.rebuilt: a new similarity model has been swapped in
  - reload.failed: a reload attempt failed and the previous model is
    still serving

Payloads are JSON encoded with goccy/go-json and carry a UUID event id.

	bus, _ := events.NewBus(events.DefaultConfig())
	defer bus.Close()
	ch, _ := bus.Subscribe(ctx, events.TopicDatasetChanged)
	_ = bus.Publish(events.TopicDatasetChanged, events.NewDatasetChanged("api", path))
*/
package events
