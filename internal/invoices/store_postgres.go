// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/query"
	"github.com/informatics-lc/backend/pkg/sortkey"
)

// enrollmentActiveStatus is what a settled invoice moves its enrollment to.
const enrollmentActiveStatus = "In Progress"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for invoices.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany. User and program-type scoping go through the joins so the count
// always matches the fetched page.
func buildWhere(filter ListFilter) (string, []any) {
	i, e, p := schema.Invoices, schema.Enrollments, schema.Programs
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if len(filter.Statuses) > 0 && !query.HasAll(filter.Statuses) {
		conditions = append(conditions, fmt.Sprintf("i.%s = ANY($%d)", i.Status, argID))
		args = append(args, filter.Statuses)
		argID++
	}

	if filter.ProgramType != "" && filter.ProgramType != "all" {
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", p.Type, argID))
		args = append(args, filter.ProgramType)
		argID++
	}

	if filter.UserID > 0 {
		conditions = append(conditions, fmt.Sprintf("e.%s = $%d", e.UserID, argID))
		args = append(args, filter.UserID)
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// fromClause joins invoices through their enrollment to the program and the
// settled payment, when any.
func fromClause() string {
	i, e, p, pay := schema.Invoices, schema.Enrollments, schema.Programs, schema.Payments
	return fmt.Sprintf(
		"%s i LEFT JOIN %s e ON e.%s = i.%s LEFT JOIN %s p ON p.%s = e.%s LEFT JOIN %s pay ON pay.%s = i.%s",
		i.Table,
		e.Table, e.ID, i.EnrollmentID,
		p.Table, p.ID, e.ProgramID,
		pay.Table, pay.InvoiceID, i.ID,
	)
}

// invoiceColumns selects the flattened row shape, payment included.
func invoiceColumns() string {
	i, e, p, pay := schema.Invoices, schema.Enrollments, schema.Programs, schema.Payments
	return fmt.Sprintf(
		"i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, i.%s, e.%s, p.%s, p.%s, pay.%s, pay.%s, pay.%s, pay.%s",
		i.ID, i.EnrollmentID, i.AmountIDR, i.Status, i.VirtualAccountNumber,
		i.PaymentDueDatetime, i.CreatedAt, i.UpdatedAt,
		e.UserID, p.Title, p.Type,
		pay.ID, pay.AmountIDR, pay.PaidAt, pay.CreatedAt,
	)
}

func scanInvoice(row interface{ Scan(dest ...any) error }) (*Invoice, error) {
	invoice := &Invoice{}
	payment := &Payment{}

	var paymentID *int
	var paymentAmount *int64
	var paidAt, paymentCreatedAt *time.Time

	err := row.Scan(
		&invoice.ID, &invoice.EnrollmentID, &invoice.AmountIDR, &invoice.Status,
		&invoice.VirtualAccountNumber, &invoice.PaymentDueDatetime,
		&invoice.CreatedAt, &invoice.UpdatedAt,
		&invoice.UserID, &invoice.ProgramTitle, &invoice.ProgramType,
		&paymentID, &paymentAmount, &paidAt, &paymentCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentID != nil {
		payment.ID = *paymentID
		payment.InvoiceID = invoice.ID
		payment.AmountIDR = *paymentAmount
		payment.PaidAt = *paidAt
		payment.CreatedAt = *paymentCreatedAt
		invoice.Payment = payment
	}

	return invoice, nil
}

// Count returns the total matching invoices.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, fromClause(), where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "invoices_repo_count")
	}

	return total, nil
}

// FindMany returns one page of invoices with flattened joined fields.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]Invoice, error) {
	where, args := buildWhere(filter)
	order := "i." + sortkey.OrderClause(sortkey.Invoices, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, i.%s ASC
		LIMIT $%d OFFSET $%d`,
		invoiceColumns(), fromClause(), where, order, schema.Invoices.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "invoices_repo_find_many")
	}
	defer rows.Close()

	var result []Invoice
	for rows.Next() {
		invoice, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "invoices_repo_scan")
		}
		result = append(result, *invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "invoices_repo_rows")
	}

	return result, nil
}

// FindByID retrieves one invoice with its payment, when settled.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE i.%s = $1`,
		invoiceColumns(), fromClause(), schema.Invoices.ID)

	invoice, err := scanInvoice(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "invoices_repo_find_by_id")
	}

	return invoice, nil
}

// Settle records the payment and activates the enrollment atomically.
func (repository *PostgresRepository) Settle(ctx context.Context, invoice *Invoice, payment *Payment) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "invoices_repo_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pay := schema.Payments
	paymentQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		pay.Table, pay.InvoiceID, pay.AmountIDR, pay.PaidAt,
		pay.ID, pay.CreatedAt,
	)

	err = tx.QueryRow(ctx, paymentQuery, payment.InvoiceID, payment.AmountIDR, payment.PaidAt).
		Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "invoices_repo_create_payment")
	}

	i := schema.Invoices
	invoiceQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		i.Table, i.Status, i.UpdatedAt, i.ID)
	if _, err := tx.Exec(ctx, invoiceQuery, invoice.ID, StatusVerified); err != nil {
		return dberr.Wrap(err, "invoices_repo_verify")
	}

	e := schema.Enrollments
	enrollmentQuery := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		e.Table, e.Status, e.UpdatedAt, e.ID)
	if _, err := tx.Exec(ctx, enrollmentQuery, invoice.EnrollmentID, enrollmentActiveStatus); err != nil {
		return dberr.Wrap(err, "invoices_repo_activate_enrollment")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "invoices_repo_commit")
	}

	invoice.Status = StatusVerified
	invoice.Payment = payment

	return nil
}

// Delete removes an invoice; its payment cascades.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	i := schema.Invoices
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, i.Table, i.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "invoices_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// OwnerUserID resolves the owning user through the enrollment join.
func (repository *PostgresRepository) OwnerUserID(ctx context.Context, invoiceID int) (int, bool, error) {
	i, e := schema.Invoices, schema.Enrollments
	query := fmt.Sprintf(`
		SELECT e.%s
		FROM %s i
		JOIN %s e ON e.%s = i.%s
		WHERE i.%s = $1`,
		e.UserID, i.Table, e.Table, e.ID, i.EnrollmentID, i.ID,
	)

	var userID int
	err := repository.pool.QueryRow(ctx, query, invoiceID).Scan(&userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, dberr.Wrap(err, "invoices_repo_owner")
	}

	return userID, true, nil
}
