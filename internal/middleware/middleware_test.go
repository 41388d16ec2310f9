// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"upstream id kept", "abc-123", true},
		{"control characters replaced", "abc\n123", false},
		{"spaces replaced", "abc 123", false},
		{"oversized replaced", strings.Repeat("a", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = logging.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header == "" || header != seen {
				t.Fatalf("header %q and context %q should match and be set", header, seen)
			}
			if tt.keep && header != tt.incoming {
				t.Errorf("request id = %q, want upstream %q", header, tt.incoming)
			}
			if !tt.keep && header == tt.incoming {
				t.Errorf("request id %q should have been regenerated", header)
			}
		})
	}
}

func TestPrometheusMetrics(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/probe/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/probe-ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/probe/1", "/probe/2", "/probe-ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/probe/{id}", "418")); got != 2 {
		t.Errorf("pattern-labelled count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/probe-ok", "200")); got != 1 {
		t.Errorf("implicit 200 count = %v, want 1", got)
	}
}

func TestRoutePatternOutsideChi(t *testing.T) {
	t.Parallel()

	if got := routePattern(httptest.NewRequest(http.MethodGet, "/x", nil)); got != unmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, unmatchedRoute)
	}
}

//nolint:paralleltest // replaces the global logger
func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	prevLevel := zerolog.GlobalLevel()
	logging.SetLogger(logging.NewTestLogger(&buf))
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		logging.SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/titles/details/s9", nil)
	req.Header.Set(RequestIDHeader, "req-7")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"status":404`,
		`"path":"/titles/details/s9"`,
		`"request_id":"req-7"`,
		`"bytes":7`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("access log missing %s: %s", want, out)
		}
	}
}
