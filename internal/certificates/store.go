// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import (
	"context"

	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the certificate listing.
//
// UserID is injected by the authorization layer for non-admin callers;
// ProgramType scopes through the joined program row.
type ListFilter struct {
	Credential  string
	UserID      int
	ProgramID   int
	ProgramType string

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for certificates.
type Repository interface {
	// Count returns the total matching certificates, ignoring pagination.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// FindMany returns one page of certificates with joined holder and
	// program fields.
	FindMany(ctx context.Context, filter ListFilter) ([]Certificate, error)

	// FindByID retrieves one certificate (dberr.ErrNoRows when absent).
	FindByID(ctx context.Context, id int) (*Certificate, error)

	/*
		FindCompletedProgramType returns the program's type when the user
		holds a Completed enrollment in it (dberr.ErrNoRows otherwise).
	*/
	FindCompletedProgramType(ctx context.Context, userID, programID int) (string, error)

	// Create inserts a certificate, hydrating the generated id and
	// timestamps. Unique violations on the credential pass through raw.
	Create(ctx context.Context, certificate *Certificate) error

	// Delete removes a certificate (admin operation).
	Delete(ctx context.Context, id int) error

	// OwnerUserID resolves the holding user for authorization.
	OwnerUserID(ctx context.Context, certificateID int) (userID int, found bool, err error)
}
