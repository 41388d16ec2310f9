// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
)

// Kind labels accepted on the list endpoint.
const (
	KindAll = "All"
	KindTV  = "TV"
)

// minWordQueryLen is the rune length from which search switches from
// substring to whole-word matching.
const minWordQueryLen = 3

// Word boundaries over Unicode letters and digits. \b only knows ASCII
// word characters in both Go regexp and MongoDB $regex.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

// ageGate returns the restricted-rating exclusion for minors, or nil.
func ageGate(age int) filter.Predicate {
	if age < models.AdultAge {
		return filter.NotEqual{Field: models.FieldRating, Value: models.RestrictedRating}
	}
	return nil
}

// ListFilter builds the listing predicate for a kind label and requester age.
func ListFilter(kind string, age int) filter.Predicate {
	p := filter.And{}
	if gate := ageGate(age); gate != nil {
		p = filter.Conjoin(p, gate)
	}
	if kind != "" && kind != KindAll {
		stored := models.KindMovie
		if kind == KindTV {
			stored = models.KindSeries
		}
		p = filter.Conjoin(p, filter.Equal{Field: models.FieldKind, Value: stored})
	}
	return p
}

// SearchPattern returns the escaped, case-insensitive pattern for q.
// q must already be trimmed and non-empty.
func SearchPattern(q string) string {
	escaped := regexp.QuoteMeta(q)
	if utf8.RuneCountInString(q) < minWordQueryLen {
		return escaped
	}
	return wordStart + escaped + wordEnd
}

// SearchFilter builds the search predicate for q and requester age.
func SearchFilter(q string, age int) (filter.Predicate, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("search: %w", models.ErrEmptyQuery)
	}

	pattern := SearchPattern(q)
	p := filter.And{
		filter.Or{
			filter.Regex{Field: models.FieldTitle, Pattern: pattern, IgnoreCase: true},
			filter.Regex{Field: models.FieldCast, Pattern: pattern, IgnoreCase: true},
		},
	}
	if gate := ageGate(age); gate != nil {
		p = filter.Conjoin(p, gate)
	}
	return p, nil
}

// WatchlistFilter selects the titles referenced by ids, age-gated.
func WatchlistFilter(ids []string, age int) filter.Predicate {
	p := filter.And{filter.In{Field: models.FieldShowID, Values: ids}}
	if gate := ageGate(age); gate != nil {
		p = filter.Conjoin(p, gate)
	}
	return p
}
