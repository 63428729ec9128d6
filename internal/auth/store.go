// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines the persistence contract for identity records.
type UserRepository interface {
	/*
		Create inserts a new user and hydrates its generated id and timestamps.

		Returns:
		  - error: unique-violation on duplicate email, or storage failures
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByEmail retrieves a user by their unique email address.

		Returns:
		  - *User: the hydrated entity
		  - error: dberr.ErrNoRows when no account matches
	*/
	FindByEmail(ctx context.Context, email string) (*User, error)

	/*
		FindByID retrieves a user by primary key.

		Returns:
		  - *User: the hydrated entity
		  - error: dberr.ErrNoRows when no account matches
	*/
	FindByID(ctx context.Context, id int) (*User, error)
}

// RevocationStore marks individual tokens (by user id + jti) as logged out.
//
// Marks expire together with the token itself, so Redis never accumulates
// state beyond the access-token lifetime.
type RevocationStore interface {
	Revoke(ctx context.Context, userID int, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, userID int, tokenID string) (bool, error)
}
