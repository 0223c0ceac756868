// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Collections in the dashboard are small and kept in memory, so paging is a
// window over an already-loaded slice rather than a database OFFSET.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page when only "page" is given.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
//
// All is set when the caller asked for neither page nor limit; the full
// collection is returned in that case.
type Params struct {
	Page  int
	Limit int
	All   bool
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	if p.All || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(params Params, total int) Meta {
	if params.All {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return Meta{Page: DefaultPage, Limit: total, Total: total, TotalPages: pages}
	}

	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Window returns the items on the requested page and the matching metadata.
// Pages past the end yield an empty, non-nil slice.
func Window[T any](items []T, params Params) ([]T, Meta) {
	meta := NewMeta(params, len(items))
	if params.All {
		if items == nil {
			return []T{}, meta
		}
		return items, meta
	}

	start := min(params.Offset(), len(items))
	end := min(start+params.Limit, len(items))
	return items[start:end], meta
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values fall back to [DefaultPage] and
// [DefaultLimit].
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	if !query.Has("page") && !query.Has("limit") {
		return Params{Page: DefaultPage, All: true}
	}

	page := parseIntParam(query.Get("page"), DefaultPage)
	limit := parseIntParam(query.Get("limit"), DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query value with a fallback default.
func parseIntParam(raw string, defaultVal int) int {
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
