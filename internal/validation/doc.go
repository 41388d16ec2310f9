// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide (it caches struct
// metadata). Field names in error messages come from the `json` or `query`
// struct tags so clients see the names they sent:
//
//	type SearchQuery struct {
//	    Q     string `query:"q" validate:"notblank,max=200"`
//	    Limit int    `query:"limit" validate:"gte=0"`
//	}
//
//	if err := validation.ValidateStruct(&q); err != nil {
//	    // errors.Is(err, models.ErrInvalidInput) == true
//	}
//
// Custom tags:
//   - notblank: string must contain a non-space character
//   - showid: catalog identifier (letters, digits, '_', '-', '.'; up to 64)
package validation
