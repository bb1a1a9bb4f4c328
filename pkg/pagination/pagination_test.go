// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/komik/pkg/pagination"
)

/*
TestFromRequest falls back on bad input and caps the limit.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-1&limit=1000", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
		{"?page=abc&limit=0", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/komik"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

/*
TestClampLimit uses the caller's fallback for the latest-comics default.
*/
func TestClampLimit(t *testing.T) {
	assert.Equal(t, 8, pagination.ClampLimit(0, 8))
	assert.Equal(t, 8, pagination.ClampLimit(-3, 8))
	assert.Equal(t, 12, pagination.ClampLimit(12, 8))
	assert.Equal(t, pagination.MaxLimit, pagination.ClampLimit(500, 8))
}

/*
TestWindow slices the requested page and tolerates overflow.
*/
func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, pagination.Window(items, pagination.Params{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, pagination.Window(items, pagination.Params{Page: 3, Limit: 2}))
	assert.Equal(t, []int{}, pagination.Window(items, pagination.Params{Page: 4, Limit: 2}))
}

/*
TestNewMeta rounds the page count up and flags a following page.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 8, 17)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	assert.False(t, pagination.NewMeta(3, 8, 17).HasNext)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 5).TotalPages)
}
