// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package mongostore

import (
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tomtom215/marquee/internal/filter"
	"github.com/tomtom215/marquee/internal/models"
)

type unknownPredicate struct{ filter.Predicate }

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pred filter.Predicate
		want bson.D
	}{
		{"nil", nil, bson.D{}},
		{"empty and", filter.All(), bson.D{}},
		{
			"equal",
			filter.Equal{Field: "type", Value: "Movie"},
			bson.D{{Key: "type", Value: "Movie"}},
		},
		{
			"not equal",
			filter.NotEqual{Field: "rating", Value: "R"},
			bson.D{{Key: "rating", Value: bson.D{{Key: "$ne", Value: "R"}}}},
		},
		{
			"in",
			filter.In{Field: "show_id", Values: []string{"s1", "s2"}},
			bson.D{{Key: "show_id", Value: bson.D{{Key: "$in", Value: []string{"s1", "s2"}}}}},
		},
		{
			"in nil values",
			filter.In{Field: "show_id"},
			bson.D{{Key: "show_id", Value: bson.D{{Key: "$in", Value: []string{}}}}},
		},
		{
			"regex ignore case",
			filter.Regex{Field: "title", Pattern: `\bcat\b`, IgnoreCase: true},
			bson.D{{Key: "title", Value: bson.Regex{Pattern: `\bcat\b`, Options: "i"}}},
		},
		{
			"single element and collapses",
			filter.And{filter.Equal{Field: "type", Value: "Movie"}},
			bson.D{{Key: "type", Value: "Movie"}},
		},
		{
			"and of or",
			filter.And{
				filter.Or{
					filter.Regex{Field: "title", Pattern: "ca", IgnoreCase: true},
					filter.Regex{Field: "cast", Pattern: "ca", IgnoreCase: true},
				},
				filter.NotEqual{Field: "rating", Value: "R"},
			},
			bson.D{{Key: "$and", Value: bson.A{
				bson.D{{Key: "$or", Value: bson.A{
					bson.D{{Key: "title", Value: bson.Regex{Pattern: "ca", Options: "i"}}},
					bson.D{{Key: "cast", Value: bson.Regex{Pattern: "ca", Options: "i"}}},
				}}},
				bson.D{{Key: "rating", Value: bson.D{{Key: "$ne", Value: "R"}}}},
			}}},
		},
		{"empty or", filter.Or{}, bson.D{{Key: "$expr", Value: false}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Translate(tt.pred)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Translate() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTranslate_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Translate(unknownPredicate{})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Translate() error = %v, want ErrInvalidInput", err)
	}
}

func TestToTitle_Normalizes(t *testing.T) {
	t.Parallel()

	doc := bson.M{
		"show_id": "s1",
		"cast":    bson.A{"Ann", "Bo"},
		"meta":    bson.D{{Key: "tags", Value: bson.A{"x"}}},
	}
	got := toTitle(doc)

	if _, ok := got["cast"].([]any); !ok {
		t.Errorf("cast type = %T, want []any", got["cast"])
	}
	if cast := got.Cast(); len(cast) != 2 || cast[1] != "Bo" {
		t.Errorf("Cast() = %v", cast)
	}
	meta, ok := got["meta"].(map[string]any)
	if !ok {
		t.Fatalf("meta type = %T, want map[string]any", got["meta"])
	}
	if _, ok := meta["tags"].([]any); !ok {
		t.Errorf("meta.tags type = %T, want []any", meta["tags"])
	}
}
