// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
)

// Translate converts a predicate into a MongoDB query document.
// A nil predicate or empty conjunction yields the match-all document.
func Translate(p filter.Predicate) (bson.D, error) {
	switch v := p.(type) {
	case nil:
		return bson.D{}, nil
	case filter.Equal:
		return bson.D{{Key: v.Field, Value: v.Value}}, nil
	case filter.NotEqual:
		return bson.D{{Key: v.Field, Value: bson.D{{Key: "$ne", Value: v.Value}}}}, nil
	case filter.In:
		values := v.Values
		if values == nil {
			values = []string{}
		}
		return bson.D{{Key: v.Field, Value: bson.D{{Key: "$in", Value: values}}}}, nil
	case filter.Regex:
		re := bson.Regex{Pattern: v.Pattern}
		if v.IgnoreCase {
			re.Options = "i"
		}
		return bson.D{{Key: v.Field, Value: re}}, nil
	case filter.And:
		if len(v) == 0 {
			return bson.D{}, nil
		}
		if len(v) == 1 {
			return Translate(v[0])
		}
		parts, err := translateAll(v)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$and", Value: parts}}, nil
	case filter.Or:
		if len(v) == 0 {
			// An empty disjunction matches nothing.
			return bson.D{{Key: "$expr", Value: false}}, nil
		}
		parts, err := translateAll(v)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$or", Value: parts}}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported predicate %T", models.ErrInvalidInput, p)
	}
}

func translateAll(ps []filter.Predicate) (bson.A, error) {
	out := make(bson.A, 0, len(ps))
	for _, p := range ps {
		d, err := Translate(p)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// normalize converts driver container types into plain Go maps and slices
// so decoded titles behave the same as documents from other backends.
func normalize(v any) any {
	switch x := v.(type) {
	case bson.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[k] = normalize(e)
		}
		return m
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case bson.A:
		s := make([]any, len(x))
		for i, e := range x {
			s[i] = normalize(e)
		}
		return s
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}

func toTitle(doc bson.M) models.Title {
	t := make(models.Title, len(doc))
	for k, v := range doc {
		t[k] = normalize(v)
	}
	return t
}
