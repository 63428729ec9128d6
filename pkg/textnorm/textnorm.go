// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package textnorm normalizes arbitrary Unicode strings for search matching.
//
// # Usage
//
// Program titles and user names may carry accents or mixed casing; search
// parameters are folded through this package before they are compared so
// that "Pemrograman Dasar" matches "pemrograman dasar".
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold converts an arbitrary Unicode string into a lowercase, accent-free
// form suitable for case-insensitive matching.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase and trims surrounding whitespace.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	return strings.TrimSpace(strings.ToLower(result))
}

// LikePattern escapes SQL LIKE wildcards in a folded search term and wraps
// it for substring matching.
func LikePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(Fold(term))
	return "%" + escaped + "%"
}
