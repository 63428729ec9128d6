// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package sortkey maps public sort keys from query strings onto internal
database columns, per listable resource.

# Overview

List endpoints accept a `sort` parameter such as "createdAt" or "-price".
A leading '-' selects descending order and is stripped before the key is
mapped. Each resource owns an explicit lookup table from public key to
column identifier; keys without an entry pass through unchanged (aggregate
aliases like "likesCount" are already valid ORDER BY targets).

Allowed keys are enforced upstream by request validation, so Resolve is a
pure, total function with no failure mode.
*/
package sortkey

import "strings"

// Direction is a SQL sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// Resource identifies a listable resource with its own sort-key table.
type Resource int

const (
	Programs Resource = iota
	Enrollments
	Invoices
	Certificates
	Discussions
	Comments
	Feedbacks
	Users
)

// columns maps public sort keys to internal column identifiers per resource.
// Unlisted keys pass through as-is.
var columns = map[Resource]map[string]string{
	Programs: {
		"price":         "price_idr",
		"availableDate": "available_date",
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
	},
	Enrollments: {
		"progress":    "progress_percentage",
		"completedAt": "completed_at",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	},
	Invoices: {
		"paymentDue": "payment_due_datetime",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
	},
	Certificates: {
		"issuedAt":  "issued_at",
		"expiredAt": "expired_at",
		"updatedAt": "updated_at",
	},
	Discussions: {
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Comments: {
		// likesCount and repliesCount pass through: they are aliases of the
		// correlated count subqueries in the comment listing.
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
	Feedbacks: {
		"createdAt": "created_at",
	},
	Users: {
		"fullName":  "full_name",
		"createdAt": "created_at",
	},
}

// Resolve maps a public sort key onto (column, direction).
//
// A '-' prefix yields [Descending] and is stripped before column mapping;
// its absence yields [Ascending].
func Resolve(resource Resource, sortKey string) (string, Direction) {
	direction := Ascending
	key := sortKey

	if strings.HasPrefix(key, "-") {
		direction = Descending
		key = strings.TrimPrefix(key, "-")
	}

	if mapped, ok := columns[resource][key]; ok {
		return mapped, direction
	}

	return key, direction
}

// OrderClause renders the resolved sort as a SQL ORDER BY fragment
// (without the "ORDER BY" keyword).
func OrderClause(resource Resource, sortKey string) string {
	column, direction := Resolve(resource, sortKey)
	return column + " " + string(direction)
}
