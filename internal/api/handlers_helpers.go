// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// parseIntParam reads an integer query parameter. A missing or empty value
// yields def; a malformed one is invalid input.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", models.ErrInvalidInput, name)
	}
	return v, nil
}

// decodeJSON decodes a bounded JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = body.Close() }()

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", models.ErrInvalidInput)
		}
		return fmt.Errorf("%w: malformed JSON body", models.ErrInvalidInput)
	}
	return validation.ValidateStruct(dst)
}

// clientIP returns the request's remote address, already rewritten by
// chi's RealIP middleware when behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
