// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package query provides helpers for parsing list-endpoint filter values.

Filters that accept several values take them as one comma-separated query
parameter (e.g. `status=Unverified,Expired`); the literal "all" acts as a
wildcard that disables the filter entirely.
*/
package query

import "strings"

// CSV splits a comma-separated filter value into its trimmed, non-empty
// parts. An empty value yields nil.
func CSV(val string) []string {
	if val == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(part); clean != "" {
			parts = append(parts, clean)
		}
	}
	return parts
}

// HasAll reports whether the "all" wildcard is among the values.
func HasAll(vals []string) bool {
	for _, val := range vals {
		if val == "all" {
			return true
		}
	}
	return false
}
