package schema

// DiscussionsTable represents the 'discussions' table
type DiscussionsTable struct {
	Table     string
	ID        string
	ProgramID string
	UserID    string
	Title     string
	CreatedAt string
	UpdatedAt string
}

// Discussions is the schema definition for discussions
var Discussions = DiscussionsTable{
	Table:     "discussions",
	ID:        "id",
	ProgramID: "program_id",
	UserID:    "user_id",
	Title:     "title",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// CommentsTable represents the 'comments' table
type CommentsTable struct {
	Table           string
	ID              string
	DiscussionID    string
	UserID          string
	ParentCommentID string
	Body            string
	IsDeleted       string
	CreatedAt       string
	UpdatedAt       string
}

// Comments is the schema definition for comments
var Comments = CommentsTable{
	Table:           "comments",
	ID:              "id",
	DiscussionID:    "discussion_id",
	UserID:          "user_id",
	ParentCommentID: "parent_comment_id",
	Body:            "body",
	IsDeleted:       "is_deleted",
	CreatedAt:       "created_at",
	UpdatedAt:       "updated_at",
}

// CommentLikesTable represents the 'comment_likes' table
type CommentLikesTable struct {
	Table     string
	ID        string
	CommentID string
	UserID    string
	CreatedAt string
}

// CommentLikes is the schema definition for comment_likes
var CommentLikes = CommentLikesTable{
	Table:     "comment_likes",
	ID:        "id",
	CommentID: "comment_id",
	UserID:    "user_id",
	CreatedAt: "created_at",
}
