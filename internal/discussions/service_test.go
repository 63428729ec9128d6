// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions_test

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

	"github.com/informatics-lc/backend/internal/discussions"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
)

// fakeRepository is an in-memory discussions.Repository.
type fakeRepository struct {
	discussions map[int]*discussions.Discussion
	comments    map[int]*discussions.Comment

	// likes is keyed by (userID, commentID) to simulate the unique
	// constraint backing CreateLike.
	likes map[[2]int]bool

	nextDiscussionID int
	nextCommentID    int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		discussions:      map[int]*discussions.Discussion{},
		comments:         map[int]*discussions.Comment{},
		likes:            map[[2]int]bool{},
		nextDiscussionID: 1,
		nextCommentID:    1,
	}
}

func (f *fakeRepository) addDiscussion(title string) *discussions.Discussion {
	discussion := &discussions.Discussion{ID: f.nextDiscussionID, ProgramID: 1, UserID: 1, Title: title}
	f.nextDiscussionID++
	f.discussions[discussion.ID] = discussion
	return discussion
}

func (f *fakeRepository) addComment(discussionID int, parentID *int, body string) *discussions.Comment {
	comment := &discussions.Comment{
		ID:              f.nextCommentID,
		DiscussionID:    discussionID,
		UserID:          1,
		ParentCommentID: parentID,
		Body:            body,
	}
	f.nextCommentID++
	f.comments[comment.ID] = comment
	return comment
}

func (f *fakeRepository) CountDiscussions(_ context.Context, _ discussions.ListFilter) (int, error) {
	return len(f.discussions), nil
}

func (f *fakeRepository) FindManyDiscussions(_ context.Context, _ discussions.ListFilter) ([]discussions.Discussion, error) {
	rows := make([]discussions.Discussion, 0, len(f.discussions))
	for _, row := range f.discussions {
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindDiscussionByID(_ context.Context, id int) (*discussions.Discussion, error) {
	row, ok := f.discussions[id]
	if !ok {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) DiscussionExists(_ context.Context, id int) (bool, error) {
	_, ok := f.discussions[id]
	return ok, nil
}

func (f *fakeRepository) CreateDiscussion(_ context.Context, discussion *discussions.Discussion) error {
	discussion.ID = f.nextDiscussionID
	f.nextDiscussionID++
	discussion.CreatedAt = time.Now()
	discussion.UpdatedAt = discussion.CreatedAt
	stored := *discussion
	f.discussions[discussion.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdateDiscussion(_ context.Context, discussion *discussions.Discussion) error {
	if _, ok := f.discussions[discussion.ID]; !ok {
		return dberr.ErrNoRows
	}
	stored := *discussion
	f.discussions[discussion.ID] = &stored
	return nil
}

func (f *fakeRepository) DeleteDiscussion(_ context.Context, id int) error {
	if _, ok := f.discussions[id]; !ok {
		return dberr.ErrNoRows
	}
	delete(f.discussions, id)
	return nil
}

func (f *fakeRepository) CountComments(_ context.Context, filter discussions.CommentFilter) (int, error) {
	rows, _ := f.FindManyComments(context.Background(), filter)
	return len(rows), nil
}

func (f *fakeRepository) FindManyComments(_ context.Context, filter discussions.CommentFilter) ([]discussions.Comment, error) {
	rows := []discussions.Comment{}
	for _, row := range f.comments {
		if row.DiscussionID != filter.DiscussionID {
			continue
		}
		if filter.ParentCommentID == nil {
			if row.ParentCommentID != nil {
				continue
			}
		} else if row.ParentCommentID == nil || *row.ParentCommentID != *filter.ParentCommentID {
			continue
		}
		rows = append(rows, *row)
	}
	return rows, nil
}

func (f *fakeRepository) FindCommentInDiscussion(_ context.Context, discussionID, commentID int) (*discussions.Comment, error) {
	row, ok := f.comments[commentID]
	if !ok || row.DiscussionID != discussionID {
		return nil, dberr.ErrNoRows
	}
	copied := *row
	return &copied, nil
}

func (f *fakeRepository) FindReplies(_ context.Context, commentID int) ([]discussions.Comment, error) {
	rows := []discussions.Comment{}
	for _, row := range f.comments {
		if row.ParentCommentID != nil && *row.ParentCommentID == commentID {
			rows = append(rows, *row)
		}
	}
	return rows, nil
}

func (f *fakeRepository) CreateComment(_ context.Context, comment *discussions.Comment) error {
	comment.ID = f.nextCommentID
	f.nextCommentID++
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeRepository) UpdateComment(_ context.Context, comment *discussions.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return dberr.ErrNoRows
	}
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeRepository) DeleteComment(_ context.Context, id int) error {
	if _, ok := f.comments[id]; !ok {
		return dberr.ErrNoRows
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeRepository) CreateLike(_ context.Context, userID, commentID int) error {
	key := [2]int{userID, commentID}
	if f.likes[key] {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	f.likes[key] = true
	return nil
}

func (f *fakeRepository) CountLikes(_ context.Context, commentID int) (int, error) {
	count := 0
	for key := range f.likes {
		if key[1] == commentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CommentOwnerUserID(_ context.Context, commentID int) (int, bool, error) {
	row, ok := f.comments[commentID]
	if !ok {
		return 0, false, nil
	}
	return row.UserID, true, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_ListComments tests the ordered preconditions and the
top-level-versus-replies split.
*/
func TestService_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("top_level_only_without_parent_filter", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		top := repo.addComment(discussion.ID, nil, "first")
		repo.addComment(discussion.ID, &top.ID, "a reply")
		service := discussions.NewService(repo, testLogger())

		result, err := service.ListComments(ctx, discussions.CommentFilter{DiscussionID: discussion.ID})

		require.NoError(t, err)
		require.Len(t, result.Comments, 1)
		assert.Equal(t, "first", result.Comments[0].Body)
	})

	t.Run("replies_with_parent_filter", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		top := repo.addComment(discussion.ID, nil, "first")
		repo.addComment(discussion.ID, &top.ID, "a reply")
		service := discussions.NewService(repo, testLogger())

		result, err := service.ListComments(ctx, discussions.CommentFilter{
			DiscussionID:    discussion.ID,
			ParentCommentID: &top.ID,
		})

		require.NoError(t, err)
		require.Len(t, result.Comments, 1)
		assert.Equal(t, "a reply", result.Comments[0].Body)
	})

	t.Run("missing_discussion_fails_first", func(t *testing.T) {
		repo := newFakeRepository()
		service := discussions.NewService(repo, testLogger())

		parent := 1
		_, err := service.ListComments(ctx, discussions.CommentFilter{
			DiscussionID:    99,
			ParentCommentID: &parent,
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.StatusCode)
		assert.Equal(t, "discussionId", ae.Details[0].Context.Key)
	})

	t.Run("missing_parent_fails_second", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		service := discussions.NewService(repo, testLogger())

		parent := 42
		_, err := service.ListComments(ctx, discussions.CommentFilter{
			DiscussionID:    discussion.ID,
			ParentCommentID: &parent,
		})

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusNotFound, ae.StatusCode)
		assert.Equal(t, "parentCommentId", ae.Details[0].Context.Key)
	})
}

/*
TestService_CreateComment tests reply depth and cross-discussion parents.
*/
func TestService_CreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_reply_to_top_level", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		top := repo.addComment(discussion.ID, nil, "first")
		service := discussions.NewService(repo, testLogger())

		comment, err := service.CreateComment(ctx, discussion.ID, 7, discussions.CommentInput{
			ParentCommentID: &top.ID,
			Body:            "a reply",
		})

		require.NoError(t, err)
		require.NotNil(t, comment.ParentCommentID)
		assert.Equal(t, top.ID, *comment.ParentCommentID)
	})

	t.Run("reply_to_reply_is_400", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		top := repo.addComment(discussion.ID, nil, "first")
		reply := repo.addComment(discussion.ID, &top.ID, "a reply")
		service := discussions.NewService(repo, testLogger())

		_, err := service.CreateComment(ctx, discussion.ID, 7, discussions.CommentInput{
			ParentCommentID: &reply.ID,
			Body:            "too deep",
		})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("parent_in_other_discussion_is_404", func(t *testing.T) {
		repo := newFakeRepository()
		first := repo.addDiscussion("First")
		second := repo.addDiscussion("Second")
		foreign := repo.addComment(first.ID, nil, "elsewhere")
		service := discussions.NewService(repo, testLogger())

		_, err := service.CreateComment(ctx, second.ID, 7, discussions.CommentInput{
			ParentCommentID: &foreign.ID,
			Body:            "orphan",
		})

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})

	t.Run("empty_body_is_400", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		service := discussions.NewService(repo, testLogger())

		_, err := service.CreateComment(ctx, discussion.ID, 7, discussions.CommentInput{Body: "  "})

		assert.True(t, apperr.IsStatus(err, http.StatusBadRequest))
	})
}

/*
TestService_LikeComment tests the one-like-per-user rule and the count in
the result.
*/
func TestService_LikeComment(t *testing.T) {
	ctx := context.Background()

	t.Run("counts_committed_likes", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		comment := repo.addComment(discussion.ID, nil, "first")
		service := discussions.NewService(repo, testLogger())

		first, err := service.LikeComment(ctx, discussion.ID, comment.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, 1, first.LikesCount)

		second, err := service.LikeComment(ctx, discussion.ID, comment.ID, 8)
		require.NoError(t, err)
		assert.Equal(t, comment.ID, second.CommentID)
		assert.Equal(t, 2, second.LikesCount)
	})

	t.Run("second_like_by_same_user_is_409", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		comment := repo.addComment(discussion.ID, nil, "first")
		service := discussions.NewService(repo, testLogger())

		_, err := service.LikeComment(ctx, discussion.ID, comment.ID, 7)
		require.NoError(t, err)

		_, err = service.LikeComment(ctx, discussion.ID, comment.ID, 7)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusConflict, ae.StatusCode)
		// Historical context key, kept for wire compatibility.
		assert.Equal(t, "commmentId", ae.Details[0].Context.Key)
	})

	t.Run("unknown_comment_is_404", func(t *testing.T) {
		repo := newFakeRepository()
		discussion := repo.addDiscussion("Kickoff")
		service := discussions.NewService(repo, testLogger())

		_, err := service.LikeComment(ctx, discussion.ID, 99, 7)

		assert.True(t, apperr.IsStatus(err, http.StatusNotFound))
	})
}

/*
TestService_GetComment tests optional reply attachment.
*/
func TestService_GetComment(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepository()
	discussion := repo.addDiscussion("Kickoff")
	top := repo.addComment(discussion.ID, nil, "first")
	repo.addComment(discussion.ID, &top.ID, "a reply")
	service := discussions.NewService(repo, testLogger())

	bare, err := service.GetComment(ctx, discussion.ID, top.ID, false)
	require.NoError(t, err)
	assert.Empty(t, bare.Replies)

	expanded, err := service.GetComment(ctx, discussion.ID, top.ID, true)
	require.NoError(t, err)
	assert.Len(t, expanded.Replies, 1)
}

func TestService_Create_Validation(t *testing.T) {
	service := discussions.NewService(newFakeRepository(), testLogger())

	_, err := service.Create(context.Background(), 1, discussions.CreateInput{ProgramID: 0, Title: ""})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, http.StatusBadRequest, ae.StatusCode)
	assert.Len(t, ae.Details, 2)
}
