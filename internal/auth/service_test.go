// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/sec"
)

// fakeUserRepository is an in-memory auth.UserRepository.
type fakeUserRepository struct {
	byEmail map[string]*auth.User
	nextID  int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: map[string]*auth.User{}, nextID: 1}
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}

	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int) (*auth.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, dberr.ErrNoRows
}

// fakeRevocationStore records revocation marks in memory.
type fakeRevocationStore struct {
	revoked map[string]time.Duration
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: map[string]time.Duration{}}
}

func (f *fakeRevocationStore) Revoke(_ context.Context, _ int, tokenID string, ttl time.Duration) error {
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeRevocationStore) IsRevoked(_ context.Context, _ int, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeRevocationStore) {
	users := newFakeUserRepository()
	revocations := newFakeRevocationStore()
	tokens := sec.NewTokenService("test-secret", "learning-center")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(users, revocations, tokens, logger), users, revocations
}

/*
TestService_Register tests account creation, hashing, and duplicates.
*/
func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_basic_member", func(t *testing.T) {
		service, _, _ := newTestService()

		user, err := service.Register(ctx, auth.RegisterInput{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
		})

		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, user.Role)
		assert.Equal(t, auth.LevelBasic, user.MemberLevel)
		assert.NotEqual(t, "supersecret", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("supersecret", user.PasswordHash))
	})

	t.Run("duplicate_email_is_409", func(t *testing.T) {
		service, _, _ := newTestService()

		input := auth.RegisterInput{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
		}
		_, err := service.Register(ctx, input)
		require.NoError(t, err)

		_, err = service.Register(ctx, input)
		assert.True(t, apperr.IsStatus(err, http.StatusConflict))
	})

	t.Run("invalid_input_is_400", func(t *testing.T) {
		service, _, _ := newTestService()

		_, err := service.Register(ctx, auth.RegisterInput{
			FullName: "",
			Email:    "not-an-email",
			Password: "short",
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
		assert.Len(t, ae.Details, 3)
	})
}

/*
TestService_Login tests credential checks; bad email and bad password are
indistinguishable.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, service *auth.Service) {
		t.Helper()
		_, err := service.Register(ctx, auth.RegisterInput{
			FullName: "Budi Santoso",
			Email:    "budi@example.com",
			Password: "supersecret",
		})
		require.NoError(t, err)
	}

	t.Run("issues_token_on_valid_credentials", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		result, err := service.Login(ctx, "budi@example.com", "supersecret")

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "budi@example.com", result.User.Email)
	})

	t.Run("wrong_password_is_401", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, err := service.Login(ctx, "budi@example.com", "wrong")

		assert.True(t, apperr.IsStatus(err, http.StatusUnauthorized))
	})

	t.Run("unknown_email_is_401", func(t *testing.T) {
		service, _, _ := newTestService()
		register(t, service)

		_, wrongPassword := service.Login(ctx, "budi@example.com", "wrong")
		_, unknownEmail := service.Login(ctx, "nobody@example.com", "supersecret")

		// Same status, same message: no account enumeration.
		assert.Equal(t, apperr.As(wrongPassword).Message, apperr.As(unknownEmail).Message)
		assert.Equal(t, apperr.As(wrongPassword).StatusCode, apperr.As(unknownEmail).StatusCode)
	})
}

/*
TestService_Logout tests that the presented token's jti is revoked with a
TTL bounded by the token's remaining lifetime.
*/
func TestService_Logout(t *testing.T) {
	service, _, revocations := newTestService()

	tokens := sec.NewTokenService("test-secret", "learning-center")
	token, err := tokens.GenerateAccessToken(42, false, time.Hour)
	require.NoError(t, err)

	claims, err := tokens.VerifyToken(token)
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), claims))

	revoked, err := revocations.IsRevoked(context.Background(), 42, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := revocations.revoked[claims.ID]
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
