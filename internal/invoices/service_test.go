// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/query"
)

// fakeRepository is an in-memory invoices.Repository for service tests.
type fakeRepository struct {
	byID        map[int]*invoices.Invoice
	settleCalls int
}

func newFakeRepository(rows ...*invoices.Invoice) *fakeRepository {
	repo := &fakeRepository{byID: map[int]*invoices.Invoice{}}
	for _, row := range rows {
		repo.byID[row.ID] = row
	}
	return repo
}

func (f *fakeRepository) Count(_ context.Context, _ invoices.ListFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ invoices.ListFilter) ([]invoices.Invoice, error) {
	rows := make([]invoices.Invoice, 0, len(f.byID))
	for _, row := range f.byID {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*invoices.Invoice, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) Settle(_ context.Context, invoice *invoices.Invoice, payment *invoices.Payment) error {
	f.settleCalls++
	payment.ID = 1
	payment.CreatedAt = time.Now()
	invoice.Status = invoices.StatusVerified
	invoice.Payment = payment
	f.byID[invoice.ID] = invoice
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepository) OwnerUserID(_ context.Context, _ int) (int, bool, error) {
	return 0, false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Pay tests the settlement state machine: payable invoices settle
exactly once, everything else is rejected with the right status.
*/
func TestService_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("settles_unverified_invoice", func(t *testing.T) {
		repo := newFakeRepository(&invoices.Invoice{
			ID:                 1,
			EnrollmentID:       10,
			AmountIDR:          250_000,
			Status:             invoices.StatusUnverified,
			PaymentDueDatetime: time.Now().Add(30 * time.Minute),
		})
		service := invoices.NewService(repo, testLogger())

		paid, err := service.Pay(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, invoices.StatusVerified, paid.Status)
		require.NotNil(t, paid.Payment)
		assert.Equal(t, int64(250_000), paid.Payment.AmountIDR)
		assert.Equal(t, 1, repo.settleCalls)
	})

	t.Run("unknown_invoice_is_404", func(t *testing.T) {
		service := invoices.NewService(newFakeRepository(), testLogger())

		_, err := service.Pay(ctx, 99)

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})

	t.Run("already_paid_is_409", func(t *testing.T) {
		repo := newFakeRepository(&invoices.Invoice{
			ID:                 1,
			Status:             invoices.StatusVerified,
			PaymentDueDatetime: time.Now().Add(time.Hour),
		})
		service := invoices.NewService(repo, testLogger())

		_, err := service.Pay(ctx, 1)

		assert.True(t, apperr.IsStatus(err, http.StatusConflict))
		assert.Zero(t, repo.settleCalls)
	})

	t.Run("expired_status_is_400", func(t *testing.T) {
		repo := newFakeRepository(&invoices.Invoice{
			ID:                 1,
			Status:             invoices.StatusExpired,
			PaymentDueDatetime: time.Now().Add(time.Hour),
		})
		service := invoices.NewService(repo, testLogger())

		_, err := service.Pay(ctx, 1)

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("past_due_is_400_even_if_unswept", func(t *testing.T) {
		// The sweep runs once a minute; an overdue invoice may still read
		// Unverified and must be rejected on its timestamp alone.
		repo := newFakeRepository(&invoices.Invoice{
			ID:                 1,
			Status:             invoices.StatusUnverified,
			PaymentDueDatetime: time.Now().Add(-time.Minute),
		})
		service := invoices.NewService(repo, testLogger())

		_, err := service.Pay(ctx, 1)

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
		assert.Zero(t, repo.settleCalls)
	})
}

/*
TestService_List tests listing validation and the pagination envelope.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects_unknown_status", func(t *testing.T) {
		service := invoices.NewService(newFakeRepository(), testLogger())

		_, err := service.List(ctx, invoices.ListFilter{Statuses: query.CSV("Paid")})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("rejects_unknown_status_among_valid_ones", func(t *testing.T) {
		service := invoices.NewService(newFakeRepository(), testLogger())

		_, err := service.List(ctx, invoices.ListFilter{Statuses: query.CSV("Unverified,Paid")})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("accepts_comma_separated_statuses", func(t *testing.T) {
		service := invoices.NewService(newFakeRepository(), testLogger())

		_, err := service.List(ctx, invoices.ListFilter{Statuses: query.CSV("Unverified,Expired")})

		assert.NoError(t, err)
	})

	t.Run("accepts_all_sentinel", func(t *testing.T) {
		service := invoices.NewService(newFakeRepository(), testLogger())

		_, err := service.List(ctx, invoices.ListFilter{Statuses: query.CSV("all"), ProgramType: "all"})

		assert.NoError(t, err)
	})
}

func TestService_Get(t *testing.T) {
	service := invoices.NewService(newFakeRepository(), testLogger())

	_, err := service.Get(context.Background(), 123)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusNotFound, ae.StatusCode)
	assert.Equal(t, "Resource not found.", ae.Message)
}
