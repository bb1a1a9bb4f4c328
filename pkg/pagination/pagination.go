// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page/limit query values and builds the meta block
// of the {data, meta} list envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of items before the requested page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta describes the page that was served.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta derives the page count from total and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

/*
FromRequest reads ?page= and ?limit=.

A missing, malformed or non-positive page becomes [DefaultPage]. The limit
goes through [ClampLimit] with [DefaultLimit] as the fallback.
*/
func FromRequest(request *http.Request) Params {
	page, ok := queryInt(request, "page")
	if !ok || page < 1 {
		page = DefaultPage
	}
	limit, _ := queryInt(request, "limit")

	return Params{Page: page, Limit: ClampLimit(limit, DefaultLimit)}
}

// ClampLimit returns fallback for a non-positive limit and caps it at [MaxLimit].
func ClampLimit(limit, fallback int) int {
	switch {
	case limit <= 0:
		return fallback
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// Window returns the items on the requested page; pages past the end are empty, not nil.
func Window[T any](items []T, params Params) []T {
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	return items[start:min(start+params.Limit, len(items))]
}

func queryInt(request *http.Request, key string) (int, bool) {
	value, err := strconv.Atoi(request.URL.Query().Get(key))
	return value, err == nil
}
