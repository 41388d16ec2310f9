// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package metrics provides Prometheus metrics collection for Marquee.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Store operation latency and errors, per backend operation
  - Circuit breaker state transitions around the store
  - Registration and login outcomes

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

All collectors are registered with the default registry through promauto.
*/
package metrics
