// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package supervisor runs the long-lived parts of the server under a
// suture v4 supervisor tree.
//
// The tree has two layers so that a crashing maintenance task cannot take
// the API down with it:
//
//	marquee
//	├── store-layer   (store maintenance, e.g. Badger value-log GC)
//	└── api-layer     (HTTP server)
//
// Supervisor events are logged through sutureslog on top of the zerolog
// slog bridge:
//
//	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{})
//	tree.AddAPIService(services.NewHTTPServerService(server, 30*time.Second))
//	err = tree.Serve(ctx)
package supervisor
