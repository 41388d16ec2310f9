// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/marquee/internal/models"
)

type testRequest struct {
	Email  string `json:"email" validate:"notblank,max=20"`
	Age    *int   `json:"age" validate:"required,gte=0"`
	ShowID string `query:"show_id" validate:"omitempty,showid"`
	Kind   string `query:"type" validate:"omitempty,oneof=Movie TV"`
	Limit  int    `validate:"gte=0,lte=100"`
}

func intPtr(v int) *int { return &v }

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     testRequest
		wantField string
		wantTag   string
	}{
		{
			name:  "valid",
			input: testRequest{Email: "a@x.com", Age: intPtr(15), ShowID: "s42", Kind: "TV", Limit: 10},
		},
		{
			name:  "zero age is valid",
			input: testRequest{Email: "a@x.com", Age: intPtr(0)},
		},
		{
			name:      "blank email",
			input:     testRequest{Email: "   ", Age: intPtr(1)},
			wantField: "email",
			wantTag:   "notblank",
		},
		{
			name:      "email too long",
			input:     testRequest{Email: strings.Repeat("a", 21), Age: intPtr(1)},
			wantField: "email",
			wantTag:   "max",
		},
		{
			name:      "missing age",
			input:     testRequest{Email: "a@x.com"},
			wantField: "age",
			wantTag:   "required",
		},
		{
			name:      "negative age",
			input:     testRequest{Email: "a@x.com", Age: intPtr(-1)},
			wantField: "age",
			wantTag:   "gte",
		},
		{
			name:      "bad show id",
			input:     testRequest{Email: "a@x.com", Age: intPtr(1), ShowID: "s1; drop"},
			wantField: "show_id",
			wantTag:   "showid",
		},
		{
			name:      "unknown kind",
			input:     testRequest{Email: "a@x.com", Age: intPtr(1), Kind: "Podcast"},
			wantField: "type",
			wantTag:   "oneof",
		},
		{
			name:      "limit above cap",
			input:     testRequest{Email: "a@x.com", Age: intPtr(1), Limit: 101},
			wantField: "Limit",
			wantTag:   "lte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() unexpected error: %v", err)
				}
				return
			}

			var verr *RequestValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidateStruct() error = %v, want *RequestValidationError", err)
			}
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Error("validation error should match models.ErrInvalidInput")
			}
			if len(verr.Fields) != 1 {
				t.Fatalf("got %d field errors, want 1: %v", len(verr.Fields), verr)
			}
			got := verr.Fields[0]
			if got.Field != tt.wantField || got.Tag != tt.wantTag {
				t.Errorf("field error = %+v, want field=%s tag=%s", got, tt.wantField, tt.wantTag)
			}
			if !strings.HasPrefix(got.Message, tt.wantField) {
				t.Errorf("message %q should name the field", got.Message)
			}
		})
	}
}

func TestRequestValidationError_Error(t *testing.T) {
	t.Parallel()

	empty := &RequestValidationError{}
	if empty.Error() != "validation failed" {
		t.Errorf("empty Error() = %q", empty.Error())
	}

	multi := &RequestValidationError{Fields: []FieldError{
		{Message: "email is required"},
		{Message: "age is required"},
	}}
	if got := multi.Error(); got != "email is required; age is required" {
		t.Errorf("Error() = %q", got)
	}
}

func TestValidateStruct_NonStruct(t *testing.T) {
	t.Parallel()

	err := ValidateStruct("not a struct")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("ValidateStruct(non-struct) = %v, want invalid input", err)
	}
}
