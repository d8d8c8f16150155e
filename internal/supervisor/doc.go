// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived services of cinematch under a suture v4
supervisor tree.

The tree has three layers so a failure in one does not take down the others:

	RootSupervisor ("cinematch")
	├── ModelSupervisor ("model-layer")
	│   ├── reload.Service          dataset.changed -> rebuild
	│   ├── watcher.Watcher         fsnotify (dataset.watch)
	│   └── services.PollService    interval signal (dataset.poll_interval)
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket.Hub
	│   └── websocket.Forwarder     model.rebuilt / reload.failed -> hub
	└── APISupervisor ("api-layer")
	    └── services.HTTPServerService

The HTTP server keeps answering from the last good model while the model
layer restarts, and a crashed hub only drops websocket clients.

Supervisor events (starts, failures, backoff) are logged through the
sutureslog hook on a slog.Logger backed by zerolog:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddModelService(reloadSvc)
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
