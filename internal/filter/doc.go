// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package filter provides a store-agnostic predicate model over catalog
// documents.
//
// Predicates are small value trees built per request by the catalog and
// watchlist services and handed to a store. Each store backend translates
// them to its native form: the MongoDB store renders BSON query documents,
// the embedded Badger store compiles them with Compile and evaluates them
// against decoded documents.
//
// Matching follows document-store semantics:
//
//   - Equal matches a scalar field equal to the value, or an array field
//     containing an element equal to the value
//   - NotEqual is the negation of Equal, so a missing field matches
//   - In matches when the field (or any array element) is one of the values
//   - Regex matches a string field, or an array field with any matching element
//   - And with no operands matches every document
//
// Example:
//
//	p := filter.And{
//	    filter.NotEqual{Field: "rating", Value: "R"},
//	    filter.Or{
//	        filter.Regex{Field: "title", Pattern: `(?:^|\W)cat(?:$|\W)`, IgnoreCase: true},
//	        filter.Regex{Field: "cast", Pattern: `(?:^|\W)cat(?:$|\W)`, IgnoreCase: true},
//	    },
//	}
package filter
