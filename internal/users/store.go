// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package users handles member administration and profile management.

It provides the admin-facing user listing (role and level filters, name
search) and the self-or-admin gated profile read, update, and delete
operations. The [auth.User] entity is shared; this package owns only the
query and mutation concerns on top of it.
*/
package users

import (
	"context"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the admin user listing.
//
// Zero values (and the literal "all") mean "no constraint"; the composed
// SQL only gains a predicate when a filter is present.
type ListFilter struct {
	Role        string
	MemberLevel string
	Search      string

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for user administration.
type Repository interface {
	/*
		Count returns the total number of users matching the filter,
		ignoring pagination.
	*/
	Count(ctx context.Context, filter ListFilter) (int, error)

	/*
		FindMany returns one page of users matching the filter, ordered by
		the resolved sort key.
	*/
	FindMany(ctx context.Context, filter ListFilter) ([]auth.User, error)

	// FindByID retrieves a user by primary key (dberr.ErrNoRows when absent).
	FindByID(ctx context.Context, id int) (*auth.User, error)

	// Update persists the mutable profile fields of an existing user.
	Update(ctx context.Context, user *auth.User) error

	// Delete removes a user permanently (dberr.ErrNoRows when absent).
	Delete(ctx context.Context, id int) error
}
