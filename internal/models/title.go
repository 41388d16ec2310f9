// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "strings"

// Well-known title document fields.
const (
	FieldShowID = "show_id"
	FieldTitle  = "title"
	FieldKind   = "type"
	FieldRating = "rating"
	FieldCast   = "cast"
)

// Stored values of the "type" field.
const (
	KindMovie  = "Movie"
	KindSeries = "TV Show"
)

// RestrictedRating is the content rating hidden from minors.
const RestrictedRating = "R"

// Title is a catalog document. Only a handful of fields are interpreted;
// everything else written by the ingestion process is passed through
// verbatim, so the type is an open map rather than a struct.
type Title map[string]any

// ID returns the show_id of the title.
func (t Title) ID() string {
	return t.str(FieldShowID)
}

// Name returns the title text.
func (t Title) Name() string {
	return t.str(FieldTitle)
}

// Kind returns the stored kind label ("Movie" or "TV Show").
func (t Title) Kind() string {
	return t.str(FieldKind)
}

// Rating returns the content rating.
func (t Title) Rating() string {
	return t.str(FieldRating)
}

// Cast returns the cast as a list of names. Legacy documents store the cast
// as one comma-separated string; those are split.
func (t Title) Cast() []string {
	switch v := t[FieldCast].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return SplitCast(v)
	default:
		return nil
	}
}

func (t Title) str(field string) string {
	if s, ok := t[field].(string); ok {
		return s
	}
	return ""
}

// SplitCast splits a comma-separated cast string into trimmed names.
func SplitCast(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
