// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from Page and Limit.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Envelope is the pagination metadata included in API list responses.
type Envelope struct {
	CurrentRecords int  `json:"currentRecords"`
	TotalRecords   int  `json:"totalRecords"`
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	NextPage       *int `json:"nextPage"`
	PrevPage       *int `json:"prevPage"`
}

// New constructs the pagination envelope for a list response.
//
// # Semantics
//
//   - totalPages = ceil(totalRecords / limit), 0 when the set is empty.
//   - nextPage   = currentPage+1 only while currentPage < totalPages.
//   - prevPage   = currentPage-1 for in-range pages past the first; a page
//     more than one past the end yields null. The totalPages+1 boundary is
//     deliberate: the first out-of-range page still links back, anything
//     further does not.
func New(totalRecords, currentRecords, currentPage, limit int) Envelope {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalRecords + limit - 1) / limit
	}

	envelope := Envelope{
		CurrentRecords: currentRecords,
		TotalRecords:   totalRecords,
		CurrentPage:    currentPage,
		TotalPages:     totalPages,
	}

	if currentPage < totalPages {
		next := currentPage + 1
		envelope.NextPage = &next
	}

	if currentPage <= totalPages+1 && currentPage > 1 {
		prev := currentPage - 1
		envelope.PrevPage = &prev
	}

	return envelope
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
