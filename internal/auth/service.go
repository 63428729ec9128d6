// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/constants"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/sec"
	"github.com/informatics-lc/backend/internal/platform/validate"
)

// # Service Layer

// Service orchestrates registration, login, and logout.
type Service struct {
	users       UserRepository
	revocations RevocationStore
	tokens      *sec.TokenService
	logger      *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(users UserRepository, revocations RevocationStore, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		revocations: revocations,
		tokens:      tokens,
		logger:      logger,
	}
}

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber *string
}

/*
Register creates a new member account.

Description: Validates the input, hashes the password with bcrypt, and
inserts the user with the default User role and Basic level. A duplicate
email surfaces as a 409 conflict.

Returns:
  - *User: the created account (password hash never serialized)
  - error: validation, conflict, or storage failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	v := &validate.Validator{}
	v.Required("fullName", input.FullName).MaxLen("fullName", input.FullName, 100)
	v.Required("email", input.Email).Email("email", input.Email)
	v.Required("password", input.Password).MinLen("password", input.Password, 8)
	if err := v.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		MemberLevel:  LevelBasic,
		PhoneNumber:  input.PhoneNumber,
	}

	if err := service.users.Create(ctx, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict(`User with "email" already exists`, "email", input.Email)
		}
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.Int("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// LoginResult bundles the issued token with the authenticated identity.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        *User  `json:"user"`
}

/*
Login verifies credentials and issues a fresh access token.

Description: A wrong email and a wrong password are indistinguishable to
the caller; both yield the same 401.

Returns:
  - *LoginResult: token + identity
  - error: 401 on bad credentials, storage failures otherwise
*/
func (service *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	v := &validate.Validator{}
	v.Required("email", email).Email("email", email)
	v.Required("password", password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid email or password", "credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password", "credentials")
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.IsAdmin(), constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("user_logged_in", slog.Int("user_id", user.ID))

	return &LoginResult{AccessToken: token, User: user}, nil
}

/*
Logout revokes the presented token.

Description: Writes a Redis mark keyed by (user id, jti) with a TTL equal
to the token's remaining lifetime. Authentication middleware rejects any
subsequent use of the same token.
*/
func (service *Service) Logout(ctx context.Context, claims *sec.AuthClaims) error {
	remaining := time.Until(claims.ExpiresAt.Time)

	if err := service.revocations.Revoke(ctx, claims.SubjectID(), claims.ID, remaining); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("user_logged_out",
		slog.Int("user_id", claims.SubjectID()),
		slog.String("jti", claims.ID),
	)

	return nil
}
