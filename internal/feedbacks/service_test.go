// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package feedbacks_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/feedbacks"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
)

// fakeRepository is an in-memory feedbacks.Repository.
type fakeRepository struct {
	byID           map[int]*feedbacks.Feedback
	responses      []feedbacks.Response
	nextID         int
	nextResponseID int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byID: map[int]*feedbacks.Feedback{}, nextID: 1, nextResponseID: 1}
}

func (f *fakeRepository) Count(_ context.Context, _ feedbacks.ListFilter) (int, error) {
	return len(f.byID), nil
}

func (f *fakeRepository) FindMany(_ context.Context, _ feedbacks.ListFilter) ([]feedbacks.Feedback, error) {
	rows := make([]feedbacks.Feedback, 0, len(f.byID))
	for _, row := range f.byID {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int) (*feedbacks.Feedback, error) {
	row, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) Create(_ context.Context, feedback *feedbacks.Feedback) error {
	feedback.ID = f.nextID
	f.nextID++
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = feedback.CreatedAt
	stored := *feedback
	f.byID[feedback.ID] = &stored
	return nil
}

func (f *fakeRepository) CreateResponse(_ context.Context, response *feedbacks.Response) error {
	response.ID = f.nextResponseID
	f.nextResponseID++
	response.CreatedAt = time.Now()
	f.responses = append(f.responses, *response)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	if _, ok := f.byID[id]; !ok {
		return dberr.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

// fakeEnqueuer records queued mail; err makes every enqueue fail.
type fakeEnqueuer struct {
	queued []string
	err    error
}

func (f *fakeEnqueuer) EnqueueMail(_ context.Context, to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.queued = append(f.queued, to)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func submit(t *testing.T, service *feedbacks.Service) *feedbacks.Feedback {
	t.Helper()
	feedback, err := service.Create(context.Background(), feedbacks.CreateInput{
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		Subject:  "Kelas tidak bisa diakses",
		Body:     "Materi minggu ini tidak muncul.",
	})
	require.NoError(t, err)
	return feedback
}

/*
TestService_Create tests the public submission validation.
*/
func TestService_Create(t *testing.T) {
	t.Run("records_valid_submission", func(t *testing.T) {
		service := feedbacks.NewService(newFakeRepository(), nil, testLogger())

		feedback := submit(t, service)

		assert.NotZero(t, feedback.ID)
	})

	t.Run("rejects_incomplete_submission", func(t *testing.T) {
		service := feedbacks.NewService(newFakeRepository(), nil, testLogger())

		_, err := service.Create(context.Background(), feedbacks.CreateInput{
			Email: "not-an-email",
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
	})
}

/*
TestService_Respond tests that the reply lands first and the notification
mail is queued best-effort.
*/
func TestService_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("queues_notification_mail", func(t *testing.T) {
		repo := newFakeRepository()
		mail := &fakeEnqueuer{}
		service := feedbacks.NewService(repo, mail, testLogger())
		feedback := submit(t, service)

		response, err := service.Respond(ctx, feedback.ID, 1, "Sudah kami perbaiki.")

		require.NoError(t, err)
		assert.NotZero(t, response.ID)
		assert.Equal(t, []string{"budi@example.com"}, mail.queued)
	})

	t.Run("enqueue_failure_does_not_lose_response", func(t *testing.T) {
		repo := newFakeRepository()
		mail := &fakeEnqueuer{err: errors.New("queue down")}
		service := feedbacks.NewService(repo, mail, testLogger())
		feedback := submit(t, service)

		response, err := service.Respond(ctx, feedback.ID, 1, "Sudah kami perbaiki.")

		require.NoError(t, err)
		assert.NotZero(t, response.ID)
		assert.Len(t, repo.responses, 1)
	})

	t.Run("nil_enqueuer_disables_mail", func(t *testing.T) {
		repo := newFakeRepository()
		service := feedbacks.NewService(repo, nil, testLogger())
		feedback := submit(t, service)

		_, err := service.Respond(ctx, feedback.ID, 1, "Sudah kami perbaiki.")

		assert.NoError(t, err)
	})

	t.Run("unknown_feedback_is_404", func(t *testing.T) {
		service := feedbacks.NewService(newFakeRepository(), nil, testLogger())

		_, err := service.Respond(ctx, 99, 1, "Halo")

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})
}

func TestService_List_ValidatesEmail(t *testing.T) {
	service := feedbacks.NewService(newFakeRepository(), nil, testLogger())

	_, err := service.List(context.Background(), feedbacks.ListFilter{Email: "nope"})

	assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
}
