// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new Postgres implementation for identity records.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the shared SELECT column list for hydrating a [User].
func userColumns() string {
	u := schema.Users
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Role,
		u.MemberLevel, u.PhoneNumber, u.PictureURL, u.CreatedAt, u.UpdatedAt,
	)
}

// scanUser hydrates a [User] from a pgx row.
func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.MemberLevel,
		&user.PhoneNumber,
		&user.PictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user row and hydrates generated fields.
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	u := schema.Users
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s`,
		u.Table, u.FullName, u.Email, u.PasswordHash, u.Role,
		u.MemberLevel, u.PhoneNumber, u.PictureURL,
		u.ID, u.CreatedAt, u.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.MemberLevel,
		user.PhoneNumber,
		user.PictureURL,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return err
		}
		return dberr.Wrap(err, "auth_repo_create")
	}

	return nil
}

// FindByEmail retrieves a user by email.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u := schema.Users
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns(), u.Table, u.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "auth_repo_find_by_email")
	}

	return user, nil
}

// FindByID retrieves a user by primary key.
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	u := schema.Users
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, userColumns(), u.Table, u.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "auth_repo_find_by_id")
	}

	return user, nil
}
