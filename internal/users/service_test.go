// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package users_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/informatics-lc/backend/internal/auth"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/users"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// fakeRepository is an in-memory users.Repository.
type fakeRepository struct {
	byID map[int]*auth.User
}

func newFakeRepository(seed ...*auth.User) *fakeRepository {
	f := &fakeRepository{byID: map[int]*auth.User{}}
	for _, user := range seed {
		stored := *user
		f.byID[user.ID] = &stored
	}
	return f
}

func (f *fakeRepository) Count(_ context.Context, _ users.ListFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ users.ListFilter) ([]auth.User, error) {
	rows := make([]auth.User, 0, len(f.byID))
	for _, row := range f.byID {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*auth.User, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return dberr.ErrNoRows
	}
	stored := *user
	f.byID[user.ID] = &stored
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func member() *auth.User {
	return &auth.User{
		ID:          7,
		FullName:    "Siti Rahma",
		Email:       "siti@example.com",
		Role:        auth.RoleUser,
		MemberLevel: auth.LevelBasic,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

/*
TestService_Update tests partial profile updates, including the password
re-hash path.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("overlays_provided_fields_only", func(t *testing.T) {
		repo := newFakeRepository(member())
		service := users.NewService(repo, testLogger())

		updated, err := service.Update(ctx, 7, users.UpdateInput{
			FullName:    pointer.To("Siti Rahmawati"),
			MemberLevel: pointer.To("Premium"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Siti Rahmawati", updated.FullName)
		assert.Equal(t, auth.LevelPremium, updated.MemberLevel)
		assert.Equal(t, "siti@example.com", updated.Email)
	})

	t.Run("rehashes_new_password", func(t *testing.T) {
		repo := newFakeRepository(member())
		service := users.NewService(repo, testLogger())

		updated, err := service.Update(ctx, 7, users.UpdateInput{
			Password: pointer.To("rahasia-baru"),
		})

		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(updated.PasswordHash), []byte("rahasia-baru")))
	})

	t.Run("short_password_is_400", func(t *testing.T) {
		service := users.NewService(newFakeRepository(member()), testLogger())

		_, err := service.Update(ctx, 7, users.UpdateInput{
			Password: pointer.To("abc"),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("unknown_level_is_400", func(t *testing.T) {
		service := users.NewService(newFakeRepository(member()), testLogger())

		_, err := service.Update(ctx, 7, users.UpdateInput{
			MemberLevel: pointer.To("Gold"),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("unknown_user_is_404", func(t *testing.T) {
		service := users.NewService(newFakeRepository(), testLogger())

		_, err := service.Update(ctx, 99, users.UpdateInput{
			FullName: pointer.To("X"),
		})

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})
}

/*
TestService_List tests the role and level filter validation.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects_unknown_role", func(t *testing.T) {
		service := users.NewService(newFakeRepository(), testLogger())

		_, err := service.List(ctx, users.ListFilter{Role: "Moderator"})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("all_disables_filters", func(t *testing.T) {
		service := users.NewService(newFakeRepository(member()), testLogger())

		result, err := service.List(ctx, users.ListFilter{Role: "all", MemberLevel: "all"})

		require.NoError(t, err)
		assert.Len(t, result.Users, 1)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	service := users.NewService(newFakeRepository(member()), testLogger())

	require.NoError(t, service.Delete(ctx, 7))

	err := service.Delete(ctx, 7)
	assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
}
