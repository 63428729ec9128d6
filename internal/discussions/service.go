// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions

import (
	"context"
	"log/slog"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// # Service Layer

// Service orchestrates discussion threads, comments, and likes.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new discussions [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListResult bundles one page of discussions with its pagination envelope.
type ListResult struct {
	Discussions []Discussion
	Pagination  pagination.Envelope
}

// List returns one page of discussion threads.
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	total, err := service.repository.CountDiscussions(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := service.repository.FindManyDiscussions(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Discussions: rows,
		Pagination:  pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

// Get retrieves a single discussion thread.
func (service *Service) Get(ctx context.Context, id int) (*Discussion, error) {
	discussion, err := service.repository.FindDiscussionByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Discussion", "id", id)
		}
		return nil, err
	}
	return discussion, nil
}

// CreateInput carries a new discussion thread.
type CreateInput struct {
	ProgramID int
	Title     string
}

// Create opens a discussion thread. Admin operation.
func (service *Service) Create(ctx context.Context, userID int, input CreateInput) (*Discussion, error) {
	v := &validate.Validator{}
	v.Positive("programId", input.ProgramID)
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	if err := v.Err(); err != nil {
		return nil, err
	}

	discussion := &Discussion{
		ProgramID: input.ProgramID,
		UserID:    userID,
		Title:     input.Title,
	}

	if err := service.repository.CreateDiscussion(ctx, discussion); err != nil {
		return nil, err
	}

	service.logger.Info("discussion_created",
		slog.Int("discussion_id", discussion.ID),
		slog.Int("program_id", input.ProgramID),
	)

	return discussion, nil
}

// Update renames a discussion thread. Admin operation.
func (service *Service) Update(ctx context.Context, id int, title string) (*Discussion, error) {
	v := &validate.Validator{}
	v.Required("title", title).MaxLen("title", title, 200)
	if err := v.Err(); err != nil {
		return nil, err
	}

	discussion, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	discussion.Title = title
	if err := service.repository.UpdateDiscussion(ctx, discussion); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Discussion", "id", id)
		}
		return nil, err
	}

	return discussion, nil
}

// Delete removes a discussion thread and its comments. Admin operation.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.DeleteDiscussion(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Discussion", "id", id)
		}
		return err
	}

	service.logger.Warn("discussion_deleted", slog.Int("discussion_id", id))

	return nil
}

// # Comments

// CommentsResult bundles one page of comments with its pagination envelope.
type CommentsResult struct {
	Comments   []Comment
	Pagination pagination.Envelope
}

/*
ListComments returns one page of a discussion's comments.

Description: Without a parent filter only top-level comments are returned;
with one, only the direct replies of that comment. Preconditions fail in
order: discussion first, then the parent comment within it.
*/
func (service *Service) ListComments(ctx context.Context, filter CommentFilter) (*CommentsResult, error) {
	if err := service.requireDiscussion(ctx, filter.DiscussionID); err != nil {
		return nil, err
	}

	if filter.ParentCommentID != nil {
		_, err := service.repository.FindCommentInDiscussion(ctx, filter.DiscussionID, *filter.ParentCommentID)
		if err != nil {
			if dberr.IsNotFound(err) {
				return nil, apperr.NotFound("Comment", "parentCommentId", *filter.ParentCommentID)
			}
			return nil, err
		}
	}

	total, err := service.repository.CountComments(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := service.repository.FindManyComments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &CommentsResult{
		Comments:   rows,
		Pagination: pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

/*
GetComment retrieves one comment within a discussion.

Description: With includeReplies the direct replies are attached, one
level deep; each reply carries its own derived counts.
*/
func (service *Service) GetComment(ctx context.Context, discussionID, commentID int, includeReplies bool) (*Comment, error) {
	if err := service.requireDiscussion(ctx, discussionID); err != nil {
		return nil, err
	}

	comment, err := service.repository.FindCommentInDiscussion(ctx, discussionID, commentID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment", "commentId", commentID)
		}
		return nil, err
	}

	if includeReplies {
		replies, repliesErr := service.repository.FindReplies(ctx, commentID)
		if repliesErr != nil {
			return nil, repliesErr
		}
		comment.Replies = replies
	}

	return comment, nil
}

// CommentInput carries a new comment or reply.
type CommentInput struct {
	ParentCommentID *int
	Body            string
}

/*
CreateComment posts a comment or a direct reply.

Description: Preconditions fail in order: the discussion must exist, then
the parent comment must exist within the same discussion. A parent living
in another discussion is indistinguishable from a nonexistent one. Replies
to replies are rejected; threads stay one level deep.
*/
func (service *Service) CreateComment(ctx context.Context, discussionID, userID int, input CommentInput) (*Comment, error) {
	v := &validate.Validator{}
	v.Required("body", input.Body).MaxLen("body", input.Body, 2000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := service.requireDiscussion(ctx, discussionID); err != nil {
		return nil, err
	}

	if input.ParentCommentID != nil {
		parent, err := service.repository.FindCommentInDiscussion(ctx, discussionID, *input.ParentCommentID)
		if err != nil {
			if dberr.IsNotFound(err) {
				return nil, apperr.NotFound("Comment", "parentCommentId", *input.ParentCommentID)
			}
			return nil, err
		}
		if parent.ParentCommentID != nil {
			return nil, apperr.BadRequest("Replies cannot be nested", "parentCommentId", *input.ParentCommentID)
		}
	}

	comment := &Comment{
		DiscussionID:    discussionID,
		UserID:          userID,
		ParentCommentID: input.ParentCommentID,
		Body:            input.Body,
	}

	if err := service.repository.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int("comment_id", comment.ID),
		slog.Int("discussion_id", discussionID),
	)

	return comment, nil
}

// UpdateComment edits a comment's body.
func (service *Service) UpdateComment(ctx context.Context, discussionID, commentID int, body string) (*Comment, error) {
	v := &validate.Validator{}
	v.Required("body", body).MaxLen("body", body, 2000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	comment, err := service.GetComment(ctx, discussionID, commentID, false)
	if err != nil {
		return nil, err
	}

	comment.Body = body
	if err := service.repository.UpdateComment(ctx, comment); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment", "commentId", commentID)
		}
		return nil, err
	}

	return comment, nil
}

// DeleteComment tombstones a comment.
func (service *Service) DeleteComment(ctx context.Context, discussionID, commentID int) error {
	if _, err := service.GetComment(ctx, discussionID, commentID, false); err != nil {
		return err
	}

	if err := service.repository.DeleteComment(ctx, commentID); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Comment", "commentId", commentID)
		}
		return err
	}

	service.logger.Info("comment_deleted", slog.Int("comment_id", commentID))

	return nil
}

/*
LikeComment records one user's like on a comment.

Description: At most one like per user per comment, enforced by the unique
constraint backing the insert. Returns the updated committed like count.
The duplicate-like context key keeps its historical spelling for wire
compatibility.
*/
func (service *Service) LikeComment(ctx context.Context, discussionID, commentID, userID int) (*LikeResult, error) {
	if err := service.requireDiscussion(ctx, discussionID); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindCommentInDiscussion(ctx, discussionID, commentID); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Comment", "commentId", commentID)
		}
		return nil, err
	}

	if err := service.repository.CreateLike(ctx, userID, commentID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User has already liked this comment", "commmentId", commentID)
		}
		return nil, err
	}

	likes, err := service.repository.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("comment_liked",
		slog.Int("comment_id", commentID),
		slog.Int("user_id", userID),
	)

	return &LikeResult{CommentID: commentID, LikesCount: likes}, nil
}

// requireDiscussion raises the ordered discussion-exists precondition.
func (service *Service) requireDiscussion(ctx context.Context, id int) error {
	exists, err := service.repository.DiscussionExists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Discussion", "discussionId", id)
	}
	return nil
}
