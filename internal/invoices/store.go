// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices

import (
	"context"

	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the invoice listing.
//
// UserID is injected by the authorization layer for non-admin callers;
// scoping by user and program type goes through the enrollment/program
// joins. Statuses holds the comma-separated `status` values; the "all"
// wildcard (or an empty list) disables the status filter.
type ListFilter struct {
	Statuses    []string
	ProgramType string
	UserID      int

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for invoices.
type Repository interface {
	// Count returns the total matching invoices, ignoring pagination.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// FindMany returns one page of invoices with joined enrollment fields.
	FindMany(ctx context.Context, filter ListFilter) ([]Invoice, error)

	// FindByID retrieves one invoice with its payment, when settled
	// (dberr.ErrNoRows when absent).
	FindByID(ctx context.Context, id int) (*Invoice, error)

	/*
		Settle records the payment, marks the invoice Verified, and moves
		the owning enrollment to 'In Progress', in a single transaction.
	*/
	Settle(ctx context.Context, invoice *Invoice, payment *Payment) error

	// Delete removes an invoice and its payment (admin operation).
	Delete(ctx context.Context, id int) error

	// OwnerUserID resolves the owning user through the enrollment join.
	OwnerUserID(ctx context.Context, invoiceID int) (userID int, found bool, err error)
}
