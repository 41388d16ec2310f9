// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra provides container helpers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/store/mongostore/...
//
// # MongoDB Container
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo)
//
//	    s, err := mongostore.Open(ctx, mongostore.Config{URI: mongo.URI})
//	    ...
//	}
package testinfra
