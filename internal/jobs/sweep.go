// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package jobs

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
)

// Sweeper expires overdue Unverified invoices together with their
// enrollments.
type Sweeper interface {
	ExpireOverdue(ctx context.Context) (invoices int64, enrollments int64, err error)
}

// PostgresSweeper implements [Sweeper] with one transaction per sweep.
type PostgresSweeper struct {
	pool *pgxpool.Pool
}

// NewSweeper creates the Postgres sweep implementation.
func NewSweeper(pool *pgxpool.Pool) *PostgresSweeper {
	return &PostgresSweeper{pool: pool}
}

// ExpireOverdue marks every Unverified invoice past its payment due as
// Expired and expires the enrollments behind them atomically.
func (sweeper *PostgresSweeper) ExpireOverdue(ctx context.Context) (int64, int64, error) {
	tx, err := sweeper.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("begin sweep: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	i, e := schema.Invoices, schema.Enrollments

	invoiceQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = 'Expired', %s = NOW()
		WHERE %s = 'Unverified' AND %s < NOW()
		RETURNING %s`,
		i.Table, i.Status, i.UpdatedAt, i.Status, i.PaymentDueDatetime, i.EnrollmentID,
	)

	rows, err := tx.Query(ctx, invoiceQuery)
	if err != nil {
		return 0, 0, fmt.Errorf("expire invoices: %w", err)
	}

	var enrollmentIDs []int
	for rows.Next() {
		var enrollmentID int
		if err := rows.Scan(&enrollmentID); err != nil {
			rows.Close()
			return 0, 0, fmt.Errorf("scan expired invoice: %w", err)
		}
		enrollmentIDs = append(enrollmentIDs, enrollmentID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("read expired invoices: %w", err)
	}

	if len(enrollmentIDs) == 0 {
		return 0, 0, tx.Commit(ctx)
	}

	enrollmentQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = 'Expired', %s = NOW()
		WHERE %s = ANY($1) AND %s = 'Unpaid'`,
		e.Table, e.Status, e.UpdatedAt, e.ID, e.Status,
	)

	tag, err := tx.Exec(ctx, enrollmentQuery, enrollmentIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("expire enrollments: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("commit sweep: %w", err)
	}

	return int64(len(enrollmentIDs)), tag.RowsAffected(), nil
}
