// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package enrollments

import (
	"context"

	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the enrollment listing.
//
// UserID is injected by the authorization layer for non-admin callers;
// ProgramType scopes through the joined program row.
type ListFilter struct {
	Status      string
	ProgramType string
	UserID      int
	ProgramID   int

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for enrollments.
type Repository interface {
	// Count returns the total matching enrollments, ignoring pagination.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// FindMany returns one page of enrollments with flattened program fields.
	FindMany(ctx context.Context, filter ListFilter) ([]Enrollment, error)

	// FindByID retrieves one enrollment (dberr.ErrNoRows when absent).
	FindByID(ctx context.Context, id int) (*Enrollment, error)

	// FindCompletedModules lists the finished modules of an enrollment.
	FindCompletedModules(ctx context.Context, enrollmentID int) ([]CompletedModule, error)

	// Exists reports whether the user already has an enrollment in the program.
	Exists(ctx context.Context, userID, programID int) (bool, error)

	/*
		CreateWithInvoice inserts the Unpaid enrollment and its Unverified
		invoice in a single transaction, hydrating both records.
	*/
	CreateWithInvoice(ctx context.Context, enrollment *Enrollment, invoice *invoices.Invoice) error

	/*
		CompleteModule records a finished module and recomputes the
		enrollment's progress percentage against the course's module count.
		Returns the updated progress and whether the course is now complete.
	*/
	CompleteModule(ctx context.Context, enrollmentID, moduleID int) (progress int, completed bool, err error)

	// Delete removes an enrollment and its dependents (admin operation).
	Delete(ctx context.Context, id int) error

	// HasActiveEnrollment backs the program-access gate (status != Unpaid).
	HasActiveEnrollment(ctx context.Context, userID, programID int) (bool, error)

	// OwnerUserID resolves the owning user for authorization.
	OwnerUserID(ctx context.Context, enrollmentID int) (userID int, found bool, err error)
}
