// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/informatics-lc/backend/internal/platform/apperr"
)

// ErrNoRows is a sentinel for "row absent" checks in service code. Stores
// return it so services can attach the proper resource name and context
// before the error reaches the client.
var ErrNoRows = pgx.ErrNoRows

// IsNotFound reports whether err means the queried row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgerrcode.UniqueViolation
}

// Wrap classifies a database error into a meaningful [apperr.Error].
// It hides internal database details from the client.
//
// Not-found rows are passed through unchanged so that callers can raise a
// context-aware 404 with the right resource name and key.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
