// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package discussions manages program discussion threads, their comments,
and comment likes.

# Architecture

Comments form a single-level thread: a top-level comment may carry direct
replies, and replies cannot be nested further. The like and reply counts
are derived aggregates, computed per row as correlated subqueries at read
time, so they always reflect committed state.
*/
package discussions

import "time"

// Discussion is one thread attached to a program.
//
// AuthorName and ProgramTitle are flattened from joins; they are null when
// the relation is missing, never an error.
type Discussion struct {
	ID        int       `json:"id"`
	ProgramID int       `json:"programId"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AuthorName   *string `json:"authorName"`
	ProgramTitle *string `json:"programTitle"`
}

// Comment is one entry in a discussion thread.
//
// LikesCount and RepliesCount are derived aggregates; Replies is populated
// only on single-comment reads with includeReplies, one level deep.
type Comment struct {
	ID              int       `json:"id"`
	DiscussionID    int       `json:"discussionId"`
	UserID          int       `json:"userId"`
	ParentCommentID *int      `json:"parentCommentId"`
	Body            string    `json:"body"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	AuthorName   *string `json:"authorName"`
	LikesCount   int     `json:"likesCount"`
	RepliesCount int     `json:"repliesCount"`

	Replies []Comment `json:"replies,omitempty"`
}

// LikeResult reports the state after liking a comment.
type LikeResult struct {
	CommentID  int `json:"commentId"`
	LikesCount int `json:"likesCount"`
}
