// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/komik/internal/platform/apperr"
	"github.com/taibuivan/komik/internal/platform/validate"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	require.Equal(t, apperr.CodeValidation, ae.Code)

	names := make([]string, 0, len(ae.Details))
	for _, detail := range ae.Details {
		names = append(names, detail.Field)
	}
	return names
}

/*
TestValidator_Rules runs each rule against a passing and a failing value.
*/
func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		check func(*validate.Validator) *validate.Validator
		valid bool
	}{
		{"required", func(v *validate.Validator) *validate.Validator { return v.Required("title", "Galactic Warriors") }, true},
		{"required_blank", func(v *validate.Validator) *validate.Validator { return v.Required("title", "   ") }, false},
		{"max_len_runes", func(v *validate.Validator) *validate.Validator { return v.MaxLen("title", "ñandú", 5) }, true},
		{"max_len_over", func(v *validate.Validator) *validate.Validator { return v.MaxLen("title", "abcdef", 5) }, false},
		{"min_len_under", func(v *validate.Validator) *validate.Validator { return v.MinLen("password", "12345", 6) }, false},
		{"rating_bounds", func(v *validate.Validator) *validate.Validator { return v.RangeFloat("rating", 5, 0, 5) }, true},
		{"rating_over", func(v *validate.Validator) *validate.Validator { return v.RangeFloat("rating", 5.01, 0, 5) }, false},
		{"rating_negative", func(v *validate.Validator) *validate.Validator { return v.RangeFloat("rating", -0.1, 0, 5) }, false},
		{"chapter_number", func(v *validate.Validator) *validate.Validator { return v.Positive("chapter_number", 1) }, true},
		{"chapter_zero", func(v *validate.Validator) *validate.Validator { return v.Positive("chapter_number", 0) }, false},
		{"email", func(v *validate.Validator) *validate.Validator { return v.Email("email", "reader@komik.app") }, true},
		{"email_no_domain", func(v *validate.Validator) *validate.Validator { return v.Email("email", "reader@") }, false},
		{"email_display_name", func(v *validate.Validator) *validate.Validator { return v.Email("email", "Tai <tai@komik.app>") }, false},
		{"slug", func(v *validate.Validator) *validate.Validator { return v.Slug("slug", "pedang-terakhir") }, true},
		{"slug_upper", func(v *validate.Validator) *validate.Validator { return v.Slug("slug", "Pedang-Terakhir") }, false},
		{"status", func(v *validate.Validator) *validate.Validator { return v.OneOf("status", "hiatus", "ongoing", "completed", "hiatus") }, true},
		{"status_unknown", func(v *validate.Validator) *validate.Validator { return v.OneOf("status", "dropped", "ongoing", "completed") }, false},
		{"custom", func(v *validate.Validator) *validate.Validator { return v.Custom("author", false, "unused") }, true},
		{"custom_failed", func(v *validate.Validator) *validate.Validator {
			return v.Custom("author", true, "Author or artist is required")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.check(&validate.Validator{})
			assert.Equal(t, !tt.valid, v.HasErrors())
			if tt.valid {
				assert.NoError(t, v.Err())
			} else {
				assert.Len(t, fields(t, v.Err()), 1)
			}
		})
	}
}

/*
TestValidator_Accumulates reports every failing field in chain order.
*/
func TestValidator_Accumulates(t *testing.T) {
	err := (&validate.Validator{}).
		Required("title", "").
		Required("description", "A hero returns").
		Slug("slug", "-bad-").
		Email("email", "not-an-email").
		Err()

	assert.Equal(t, []string{"title", "slug", "email"}, fields(t, err))
}

/*
TestRequiredError builds a single-field validation failure.
*/
func TestRequiredError(t *testing.T) {
	err := validate.RequiredError("confirm", "Deletion must be confirmed with confirm=true")

	assert.Equal(t, []string{"confirm"}, fields(t, err))
	assert.Equal(t, 400, err.HTTPStatus)
}
