// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/sortkey"
	"github.com/informatics-lc/backend/pkg/textnorm"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for user administration.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany, so both always see the same result set.
func buildWhere(filter ListFilter) (string, []any) {
	u := schema.Users
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if filter.Role != "" && filter.Role != "all" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", u.Role, argID))
		args = append(args, filter.Role)
		argID++
	}

	if filter.MemberLevel != "" && filter.MemberLevel != "all" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", u.MemberLevel, argID))
		args = append(args, filter.MemberLevel)
		argID++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(%s ILIKE $%d OR %s ILIKE $%d)", u.FullName, argID, u.Email, argID))
		args = append(args, textnorm.LikePattern(filter.Search))
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// Count returns the total number of users matching the filter.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.Users.Table, where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "users_repo_count")
	}

	return total, nil
}

// FindMany returns one page of users matching the filter.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]auth.User, error) {
	u := schema.Users
	where, args := buildWhere(filter)
	order := sortkey.OrderClause(sortkey.Users, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s, %s ASC
		LIMIT $%d OFFSET $%d`,
		u.ID, u.FullName, u.Email, u.Role, u.MemberLevel,
		u.PhoneNumber, u.PictureURL, u.CreatedAt, u.UpdatedAt,
		u.Table, where, order, u.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "users_repo_find_many")
	}
	defer rows.Close()

	var result []auth.User
	for rows.Next() {
		var user auth.User
		if err := rows.Scan(
			&user.ID, &user.FullName, &user.Email, &user.Role, &user.MemberLevel,
			&user.PhoneNumber, &user.PictureURL, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "users_repo_scan")
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "users_repo_rows")
	}

	return result, nil
}

// FindByID retrieves a user by primary key.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*auth.User, error) {
	u := schema.Users
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Role, u.MemberLevel,
		u.PhoneNumber, u.PictureURL, u.CreatedAt, u.UpdatedAt,
		u.Table, u.ID,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FullName, &user.Email, &user.PasswordHash, &user.Role,
		&user.MemberLevel, &user.PhoneNumber, &user.PictureURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "users_repo_find_by_id")
	}

	return user, nil
}

// Update persists mutable profile fields.
func (repository *PostgresRepository) Update(ctx context.Context, user *auth.User) error {
	u := schema.Users
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1`,
		u.Table,
		u.FullName, u.PasswordHash, u.MemberLevel, u.PhoneNumber, u.PictureURL, u.UpdatedAt,
		u.ID,
	)

	tag, err := repository.pool.Exec(ctx, query,
		user.ID, user.FullName, user.PasswordHash, user.MemberLevel,
		user.PhoneNumber, user.PictureURL,
	)
	if err != nil {
		return dberr.Wrap(err, "users_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// Delete removes a user permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "users_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}
