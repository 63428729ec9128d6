// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions

import (
	"context"

	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the discussion listing.
type ListFilter struct {
	ProgramID int
	Search    string

	Page pagination.Params
	Sort string
}

// CommentFilter narrows a discussion's comment listing.
//
// A nil ParentCommentID selects top-level comments (parent IS NULL); a set
// one selects the direct replies of that comment.
type CommentFilter struct {
	DiscussionID    int
	ParentCommentID *int

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for discussions, comments,
// and likes.
type Repository interface {
	// CountDiscussions returns the total matching discussions.
	CountDiscussions(ctx context.Context, filter ListFilter) (int, error)

	// FindManyDiscussions returns one page of discussions.
	FindManyDiscussions(ctx context.Context, filter ListFilter) ([]Discussion, error)

	// FindDiscussionByID retrieves one discussion (dberr.ErrNoRows when absent).
	FindDiscussionByID(ctx context.Context, id int) (*Discussion, error)

	// DiscussionExists reports whether a discussion exists at all.
	DiscussionExists(ctx context.Context, id int) (bool, error)

	// CreateDiscussion inserts a thread, hydrating generated fields.
	CreateDiscussion(ctx context.Context, discussion *Discussion) error

	// UpdateDiscussion persists title changes (dberr.ErrNoRows when absent).
	UpdateDiscussion(ctx context.Context, discussion *Discussion) error

	// DeleteDiscussion removes a thread and its comments.
	DeleteDiscussion(ctx context.Context, id int) error

	// CountComments returns the total comments matching the filter.
	CountComments(ctx context.Context, filter CommentFilter) (int, error)

	// FindManyComments returns one page of comments with derived counts.
	FindManyComments(ctx context.Context, filter CommentFilter) ([]Comment, error)

	/*
		FindCommentInDiscussion retrieves one comment scoped to its
		discussion; a comment living in another discussion is dberr.ErrNoRows,
		indistinguishable from a nonexistent one.
	*/
	FindCommentInDiscussion(ctx context.Context, discussionID, commentID int) (*Comment, error)

	// FindReplies lists the direct replies of a comment, derived counts
	// included.
	FindReplies(ctx context.Context, commentID int) ([]Comment, error)

	// CreateComment inserts a comment, hydrating generated fields.
	CreateComment(ctx context.Context, comment *Comment) error

	// UpdateComment persists body changes (dberr.ErrNoRows when absent).
	UpdateComment(ctx context.Context, comment *Comment) error

	// DeleteComment removes a comment and its replies and likes.
	DeleteComment(ctx context.Context, id int) error

	// CreateLike inserts a like row. Unique violations pass through raw so
	// the service can raise the duplicate-like conflict.
	CreateLike(ctx context.Context, userID, commentID int) error

	// CountLikes returns the committed like count of a comment.
	CountLikes(ctx context.Context, commentID int) (int, error)

	// CommentOwnerUserID resolves a comment's author for authorization.
	CommentOwnerUserID(ctx context.Context, commentID int) (userID int, found bool, err error)
}
