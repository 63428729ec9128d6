// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates_test

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

	"github.com/informatics-lc/backend/internal/certificates"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
)

// fakeRepository is an in-memory certificates.Repository for service tests.
type fakeRepository struct {
	byID map[int]*certificates.Certificate

	// completedType maps "userID/programID" style keys onto the program
	// type of a Completed enrollment.
	completedType map[[2]int]string

	// issuedCredentials simulates the unique credential constraint.
	issuedCredentials map[string]bool

	nextID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:              map[int]*certificates.Certificate{},
		completedType:     map[[2]int]string{},
		issuedCredentials: map[string]bool{},
		nextID:            1,
	}
}

func (f *fakeRepository) Count(_ context.Context, _ certificates.ListFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ certificates.ListFilter) ([]certificates.Certificate, error) {
	rows := make([]certificates.Certificate, 0, len(f.byID))
	for _, row := range f.byID {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*certificates.Certificate, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) FindCompletedProgramType(_ context.Context, userID, programID int) (string, error) {
	programType, ok := f.completedType[[2]int{userID, programID}]
	if !ok {
		return "", dberr.ErrNoRows
	}
	return programType, nil
}

func (f *fakeRepository) Create(_ context.Context, certificate *certificates.Certificate) error {
	if f.issuedCredentials[certificate.CredentialNumber] {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	f.issuedCredentials[certificate.CredentialNumber] = true

	certificate.ID = f.nextID
	f.nextID++
	certificate.CreatedAt = time.Now()
	certificate.UpdatedAt = certificate.CreatedAt
	stored := *certificate
	f.byID[certificate.ID] = &stored
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
TestService_Issue tests issuance against the completed-enrollment
precondition and the derived credential number.
*/
func TestService_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("issues_for_completed_enrollment", func(t *testing.T) {
		repo := newFakeRepository()
		repo.completedType[[2]int{7, 42}] = "Seminar"
		service := certificates.NewService(repo, testLogger())

		certificate, err := service.Issue(ctx, 7, 42)

		require.NoError(t, err)
		assert.Equal(t, "SMN0042-U0007", certificate.CredentialNumber)
		assert.False(t, certificate.IssuedAt.IsZero())
		assert.Nil(t, certificate.ExpiredAt)
		require.NotNil(t, certificate.PDFURL)
		assert.Equal(t, "/api/v1/certificates/1/pdf", *certificate.PDFURL)
	})

	t.Run("no_completed_enrollment_is_400", func(t *testing.T) {
		service := certificates.NewService(newFakeRepository(), testLogger())

		_, err := service.Issue(ctx, 7, 42)

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("duplicate_issue_is_409", func(t *testing.T) {
		repo := newFakeRepository()
		repo.completedType[[2]int{7, 42}] = "Course"
		service := certificates.NewService(repo, testLogger())

		_, err := service.Issue(ctx, 7, 42)
		require.NoError(t, err)

		_, err = service.Issue(ctx, 7, 42)
		assert.True(t, apperr.IsStatus(err, http.StatusConflict))
	})
}

/*
TestService_List tests the credential and type filter validation.
*/
func TestService_List(t *testing.T) {
	ctx := context.Background()
	service := certificates.NewService(newFakeRepository(), testLogger())

	t.Run("rejects_malformed_credential", func(t *testing.T) {
		_, err := service.List(ctx, certificates.ListFilter{Credential: "nope"})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("rejects_unknown_type", func(t *testing.T) {
		_, err := service.List(ctx, certificates.ListFilter{ProgramType: "Bootcamp"})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("accepts_valid_filters", func(t *testing.T) {
		_, err := service.List(ctx, certificates.ListFilter{
			Credential:  "CRS0001-U0001",
			ProgramType: "all",
		})

		assert.NoError(t, err)
	})
}

func TestService_Render(t *testing.T) {
	repo := newFakeRepository()
	repo.completedType[[2]int{1, 1}] = "Course"
	service := certificates.NewService(repo, testLogger())

	issued, err := service.Issue(context.Background(), 1, 1)
	require.NoError(t, err)

	document, err := service.Render(context.Background(), issued.ID)

	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(document[:4]))
}
