// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions

import "context"

// CommentOwnerLookup adapts the repository to the authorization layer's
// ownership resolution contract for comment edits and removals.
type CommentOwnerLookup struct {
	repository Repository
}

// NewCommentOwnerLookup constructs the comment owner lookup.
func NewCommentOwnerLookup(repository Repository) *CommentOwnerLookup {
	return &CommentOwnerLookup{repository: repository}
}

// ResourceName is the client-facing entity name used in 404 details.
func (lookup *CommentOwnerLookup) ResourceName() string { return "Comment" }

// OwnerID resolves the authoring user of a comment.
func (lookup *CommentOwnerLookup) OwnerID(ctx context.Context, id int) (int, bool, error) {
	return lookup.repository.CommentOwnerUserID(ctx, id)
}
