// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package enrollments

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/sortkey"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for enrollments.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany. Program-type scoping joins through the programs table, so the
// count always matches the fetched page.
func buildWhere(filter ListFilter) (string, []any) {
	e, p := schema.Enrollments, schema.Programs
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if filter.Status != "" && filter.Status != "all" {
		conditions = append(conditions, fmt.Sprintf("e.%s = $%d", e.Status, argID))
		args = append(args, filter.Status)
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

	if filter.ProgramID > 0 {
		conditions = append(conditions, fmt.Sprintf("e.%s = $%d", e.ProgramID, argID))
		args = append(args, filter.ProgramID)
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// fromClause joins enrollments to their (possibly deleted) programs.
func fromClause() string {
	e, p := schema.Enrollments, schema.Programs
	return fmt.Sprintf("%s e LEFT JOIN %s p ON p.%s = e.%s", e.Table, p.Table, p.ID, e.ProgramID)
}

// enrollmentColumns selects the flattened row shape.
func enrollmentColumns() string {
	e, p := schema.Enrollments, schema.Programs
	return fmt.Sprintf("e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, e.%s, p.%s, p.%s",
		e.ID, e.UserID, e.ProgramID, e.Status, e.ProgressPercentage,
		e.CompletedAt, e.CreatedAt, e.UpdatedAt, p.Title, p.Type,
	)
}

func scanEnrollment(row interface{ Scan(dest ...any) error }) (*Enrollment, error) {
	enrollment := &Enrollment{}
	err := row.Scan(
		&enrollment.ID, &enrollment.UserID, &enrollment.ProgramID,
		&enrollment.Status, &enrollment.ProgressPercentage,
		&enrollment.CompletedAt, &enrollment.CreatedAt, &enrollment.UpdatedAt,
		&enrollment.ProgramTitle, &enrollment.ProgramType,
	)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Count returns the total matching enrollments.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, fromClause(), where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "enrollments_repo_count")
	}

	return total, nil
}

// FindMany returns one page of enrollments with flattened program fields.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]Enrollment, error) {
	where, args := buildWhere(filter)
	order := "e." + sortkey.OrderClause(sortkey.Enrollments, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, e.%s ASC
		LIMIT $%d OFFSET $%d`,
		enrollmentColumns(), fromClause(), where, order, schema.Enrollments.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "enrollments_repo_find_many")
	}
	defer rows.Close()

	var result []Enrollment
	for rows.Next() {
		enrollment, scanErr := scanEnrollment(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "enrollments_repo_scan")
		}
		result = append(result, *enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "enrollments_repo_rows")
	}

	return result, nil
}

// FindByID retrieves one enrollment with flattened program fields.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Enrollment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE e.%s = $1`,
		enrollmentColumns(), fromClause(), schema.Enrollments.ID)

	enrollment, err := scanEnrollment(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "enrollments_repo_find_by_id")
	}

	return enrollment, nil
}

// FindCompletedModules lists the finished modules of an enrollment.
func (repository *PostgresRepository) FindCompletedModules(ctx context.Context, enrollmentID int) ([]CompletedModule, error) {
	cm := schema.CompletedModules
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		cm.ID, cm.EnrollmentID, cm.ModuleID, cm.CompletedAt, cm.Table, cm.EnrollmentID, cm.ID)

	rows, err := repository.pool.Query(ctx, query, enrollmentID)
	if err != nil {
		return nil, dberr.Wrap(err, "enrollments_repo_completed_modules")
	}
	defer rows.Close()

	var result []CompletedModule
	for rows.Next() {
		var module CompletedModule
		if err := rows.Scan(&module.ID, &module.EnrollmentID, &module.ModuleID, &module.CompletedAt); err != nil {
			return nil, dberr.Wrap(err, "enrollments_repo_scan_module")
		}
		result = append(result, module)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "enrollments_repo_rows")
	}

	return result, nil
}

// Exists reports whether the user already enrolled in the program.
func (repository *PostgresRepository) Exists(ctx context.Context, userID, programID int) (bool, error) {
	e := schema.Enrollments
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		e.Table, e.UserID, e.ProgramID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, userID, programID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "enrollments_repo_exists")
	}

	return exists, nil
}

// CreateWithInvoice inserts the enrollment and its first invoice atomically.
func (repository *PostgresRepository) CreateWithInvoice(ctx context.Context, enrollment *Enrollment, invoice *invoices.Invoice) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "enrollments_repo_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e := schema.Enrollments
	enrollmentQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		e.Table, e.UserID, e.ProgramID, e.Status, e.ProgressPercentage,
		e.ID, e.CreatedAt, e.UpdatedAt,
	)

	err = tx.QueryRow(ctx, enrollmentQuery,
		enrollment.UserID, enrollment.ProgramID, enrollment.Status, enrollment.ProgressPercentage,
	).Scan(&enrollment.ID, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return err
		}
		return dberr.Wrap(err, "enrollments_repo_create")
	}

	i := schema.Invoices
	invoiceQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s, %s`,
		i.Table, i.EnrollmentID, i.AmountIDR, i.Status, i.VirtualAccountNumber, i.PaymentDueDatetime,
		i.ID, i.CreatedAt, i.UpdatedAt,
	)

	invoice.EnrollmentID = enrollment.ID
	err = tx.QueryRow(ctx, invoiceQuery,
		invoice.EnrollmentID, invoice.AmountIDR, invoice.Status,
		invoice.VirtualAccountNumber, invoice.PaymentDueDatetime,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "enrollments_repo_create_invoice")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "enrollments_repo_commit")
	}

	return nil
}

// CompleteModule records a finished module and recomputes progress.
//
// The module must belong to the course behind the enrollment's program;
// re-completing a module is idempotent (ON CONFLICT DO NOTHING).
func (repository *PostgresRepository) CompleteModule(ctx context.Context, enrollmentID, moduleID int) (int, bool, error) {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	e, c, m := schema.Enrollments, schema.Courses, schema.CourseModules

	// Resolve the course and verify the module belongs to it.
	scopeQuery := fmt.Sprintf(`
		SELECT c.%s
		FROM %s e
		JOIN %s c ON c.%s = e.%s
		JOIN %s m ON m.%s = c.%s AND m.%s = $2
		WHERE e.%s = $1`,
		c.ID, e.Table, c.Table, c.ProgramID, e.ProgramID,
		m.Table, m.CourseID, c.ID, m.ID, e.ID,
	)

	var courseID int
	if err := tx.QueryRow(ctx, scopeQuery, enrollmentID, moduleID).Scan(&courseID); err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_module_scope")
	}

	cm := schema.CompletedModules
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		cm.Table, cm.EnrollmentID, cm.ModuleID, cm.EnrollmentID, cm.ModuleID,
	)
	if _, err := tx.Exec(ctx, insertQuery, enrollmentID, moduleID); err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_complete_module")
	}

	// Recompute progress against the course's full module count.
	progressQuery := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s WHERE %s = $1),
			(SELECT COUNT(*) FROM %s WHERE %s = $2)`,
		cm.Table, cm.EnrollmentID, m.Table, m.CourseID,
	)

	var completedCount, totalCount int
	if err := tx.QueryRow(ctx, progressQuery, enrollmentID, courseID).Scan(&completedCount, &totalCount); err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_progress")
	}

	progress := 0
	if totalCount > 0 {
		progress = completedCount * 100 / totalCount
	}
	completed := totalCount > 0 && completedCount == totalCount

	updateQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2,
		    %s = CASE WHEN $3 THEN '%s' ELSE %s END,
		    %s = CASE WHEN $3 THEN NOW() ELSE %s END,
		    %s = NOW()
		WHERE %s = $1`,
		e.Table,
		e.ProgressPercentage,
		e.Status, StatusCompleted, e.Status,
		e.CompletedAt, e.CompletedAt,
		e.UpdatedAt,
		e.ID,
	)
	if _, err := tx.Exec(ctx, updateQuery, enrollmentID, progress, completed); err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_update_progress")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, dberr.Wrap(err, "enrollments_repo_commit")
	}

	return progress, completed, nil
}

// Delete removes an enrollment; invoices and completed modules cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	e := schema.Enrollments
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, e.Table, e.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "enrollments_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// HasActiveEnrollment backs the program-access gate.
func (repository *PostgresRepository) HasActiveEnrollment(ctx context.Context, userID, programID int) (bool, error) {
	e := schema.Enrollments
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s = $2 AND %s <> $3
		)`,
		e.Table, e.UserID, e.ProgramID, e.Status,
	)

	var active bool
	if err := repository.pool.QueryRow(ctx, query, userID, programID, StatusUnpaid).Scan(&active); err != nil {
		return false, dberr.Wrap(err, "enrollments_repo_active_check")
	}

	return active, nil
}

// OwnerUserID resolves the owning user for authorization.
func (repository *PostgresRepository) OwnerUserID(ctx context.Context, enrollmentID int) (int, bool, error) {
	e := schema.Enrollments
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, e.UserID, e.Table, e.ID)

	var userID int
	err := repository.pool.QueryRow(ctx, query, enrollmentID).Scan(&userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, dberr.Wrap(err, "enrollments_repo_owner")
	}

	return userID, true, nil
}
