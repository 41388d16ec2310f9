// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides HTTP infrastructure middleware in the
func(http.Handler) http.Handler shape used by chi.

Key Components:

  - RequestID: accepts or generates X-Request-ID and puts it on the
    logging context
  - PrometheusMetrics: request counts, latency and in-flight gauge, labelled
    by chi route pattern to keep cardinality bounded
  - AccessLog: one structured log line per completed request

Typical order:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
