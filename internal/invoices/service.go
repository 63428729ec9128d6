// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices

import (
	"context"
	"log/slog"
	"time"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/query"
)

// # Service Layer

// Service orchestrates invoice listing and payment.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new invoices [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListResult bundles one page of invoices with its pagination envelope.
type ListResult struct {
	Invoices   []Invoice
	Pagination pagination.Envelope
}

/*
List returns one page of invoices.

Description: Non-admin callers reach this with UserID already forced to
their own id by the authorization layer; admins may pass any scoping.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if !query.HasAll(filter.Statuses) {
		for _, status := range filter.Statuses {
			v.OneOf("status", status, Statuses()...)
		}
	}
	if filter.ProgramType != "" {
		v.OneOf("programType", filter.ProgramType, append([]string{"all"}, programs.Types()...)...)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	total, err := service.repository.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := service.repository.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Invoices:   rows,
		Pagination: pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

// Get retrieves a single invoice, payment included when settled.
func (service *Service) Get(ctx context.Context, id int) (*Invoice, error) {
	invoice, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Invoice", "id", id)
		}
		return nil, err
	}
	return invoice, nil
}

/*
Pay settles an Unverified invoice.

Description: Rejects invoices that are past due or already settled; on
success the payment row, the Verified status, and the enrollment
activation land in one transaction.
*/
func (service *Service) Pay(ctx context.Context, id int) (*Invoice, error) {
	invoice, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Invoice", "invoiceId", id)
		}
		return nil, err
	}

	if invoice.Status == StatusVerified {
		return nil, apperr.Conflict("Invoice has already been paid", "invoiceId", id)
	}
	if invoice.Status == StatusExpired || time.Now().After(invoice.PaymentDueDatetime) {
		return nil, apperr.BadRequest("Invoice has passed its payment due date", "invoiceId", id)
	}

	payment := &Payment{
		InvoiceID: invoice.ID,
		AmountIDR: invoice.AmountIDR,
		PaidAt:    time.Now(),
	}

	if err := service.repository.Settle(ctx, invoice, payment); err != nil {
		return nil, err
	}

	service.logger.Info("invoice_paid",
		slog.Int("invoice_id", invoice.ID),
		slog.Int("enrollment_id", invoice.EnrollmentID),
		slog.Int64("amount_idr", payment.AmountIDR),
	)

	return invoice, nil
}

// Delete removes an invoice permanently. Admin operation.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Invoice", "id", id)
		}
		return err
	}

	service.logger.Warn("invoice_deleted", slog.Int("invoice_id", id))

	return nil
}
