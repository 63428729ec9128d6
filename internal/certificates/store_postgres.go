// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/sortkey"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for certificates.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany.
func buildWhere(filter ListFilter) (string, []any) {
	c, p := schema.Certificates, schema.Programs
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if filter.Credential != "" {
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", c.CredentialNumber, argID))
		args = append(args, filter.Credential)
		argID++
	}

	if filter.UserID > 0 {
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", c.UserID, argID))
		args = append(args, filter.UserID)
		argID++
	}

	if filter.ProgramID > 0 {
		conditions = append(conditions, fmt.Sprintf("c.%s = $%d", c.ProgramID, argID))
		args = append(args, filter.ProgramID)
		argID++
	}

	if filter.ProgramType != "" && filter.ProgramType != "all" {
		conditions = append(conditions, fmt.Sprintf("p.%s = $%d", p.Type, argID))
		args = append(args, filter.ProgramType)
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// fromClause joins certificates to their holder and program.
func fromClause() string {
	c, u, p := schema.Certificates, schema.Users, schema.Programs
	return fmt.Sprintf("%s c LEFT JOIN %s u ON u.%s = c.%s LEFT JOIN %s p ON p.%s = c.%s",
		c.Table, u.Table, u.ID, c.UserID, p.Table, p.ID, c.ProgramID)
}

// certificateColumns selects the flattened row shape.
func certificateColumns() string {
	c, u, p := schema.Certificates, schema.Users, schema.Programs
	return fmt.Sprintf("c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, u.%s, p.%s, p.%s",
		c.ID, c.UserID, c.ProgramID, c.CredentialNumber, c.IssuedAt, c.ExpiredAt,
		c.PDFURL, c.CreatedAt, c.UpdatedAt, u.FullName, p.Title, p.Type,
	)
}

func scanCertificate(row interface{ Scan(dest ...any) error }) (*Certificate, error) {
	certificate := &Certificate{}
	err := row.Scan(
		&certificate.ID, &certificate.UserID, &certificate.ProgramID,
		&certificate.CredentialNumber, &certificate.IssuedAt, &certificate.ExpiredAt,
		&certificate.PDFURL, &certificate.CreatedAt, &certificate.UpdatedAt,
		&certificate.UserFullName, &certificate.ProgramTitle, &certificate.ProgramType,
	)
	if err != nil {
		return nil, err
	}
	return certificate, nil
}

// Count returns the total matching certificates.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, fromClause(), where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "certificates_repo_count")
	}

	return total, nil
}

// FindMany returns one page of certificates with flattened joined fields.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]Certificate, error) {
	where, args := buildWhere(filter)
	order := "c." + sortkey.OrderClause(sortkey.Certificates, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, c.%s ASC
		LIMIT $%d OFFSET $%d`,
		certificateColumns(), fromClause(), where, order, schema.Certificates.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "certificates_repo_find_many")
	}
	defer rows.Close()

	var result []Certificate
	for rows.Next() {
		certificate, scanErr := scanCertificate(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "certificates_repo_scan")
		}
		result = append(result, *certificate)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "certificates_repo_rows")
	}

	return result, nil
}

// FindByID retrieves one certificate with flattened joined fields.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Certificate, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1`,
		certificateColumns(), fromClause(), schema.Certificates.ID)

	certificate, err := scanCertificate(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "certificates_repo_find_by_id")
	}

	return certificate, nil
}

// FindCompletedProgramType reports the program type behind the user's
// Completed enrollment.
func (repository *PostgresRepository) FindCompletedProgramType(ctx context.Context, userID, programID int) (string, error) {
	e, p := schema.Enrollments, schema.Programs
	query := fmt.Sprintf(`
		SELECT p.%s
		FROM %s e
		JOIN %s p ON p.%s = e.%s
		WHERE e.%s = $1 AND e.%s = $2 AND e.%s = 'Completed'`,
		p.Type, e.Table, p.Table, p.ID, e.ProgramID,
		e.UserID, e.ProgramID, e.Status,
	)

	var programType string
	if err := repository.pool.QueryRow(ctx, query, userID, programID).Scan(&programType); err != nil {
		return "", dberr.Wrap(err, "certificates_repo_completion")
	}

	return programType, nil
}

// Create inserts a certificate, hydrating generated fields.
func (repository *PostgresRepository) Create(ctx context.Context, certificate *Certificate) error {
	c := schema.Certificates
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		c.Table, c.UserID, c.ProgramID, c.CredentialNumber, c.IssuedAt, c.ExpiredAt, c.PDFURL,
		c.ID, c.CreatedAt, c.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		certificate.UserID, certificate.ProgramID, certificate.CredentialNumber,
		certificate.IssuedAt, certificate.ExpiredAt, certificate.PDFURL,
	).Scan(&certificate.ID, &certificate.CreatedAt, &certificate.UpdatedAt)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return err
		}
		return dberr.Wrap(err, "certificates_repo_create")
	}

	return nil
}

// Delete removes a certificate.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	c := schema.Certificates
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, c.Table, c.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "certificates_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// OwnerUserID resolves the holding user for authorization.
func (repository *PostgresRepository) OwnerUserID(ctx context.Context, certificateID int) (int, bool, error) {
	c := schema.Certificates
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, c.UserID, c.Table, c.ID)

	var userID int
	err := repository.pool.QueryRow(ctx, query, certificateID).Scan(&userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, dberr.Wrap(err, "certificates_repo_owner")
	}

	return userID, true, nil
}
