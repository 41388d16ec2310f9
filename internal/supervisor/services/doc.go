// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package services adapts server components to suture.Service.
//
//   - HTTPServerService: runs an *http.Server and shuts it down gracefully
//   - PeriodicService: runs a maintenance task on a fixed interval
package services
