// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/sortkey"
	"github.com/informatics-lc/backend/pkg/textnorm"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for discussions.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Discussions

// buildWhere composes the presence-gated WHERE clause for discussion
// listing.
func buildWhere(filter ListFilter) (string, []any) {
	d := schema.Discussions
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if filter.ProgramID > 0 {
		conditions = append(conditions, fmt.Sprintf("d.%s = $%d", d.ProgramID, argID))
		args = append(args, filter.ProgramID)
		argID++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("d.%s ILIKE $%d", d.Title, argID))
		args = append(args, textnorm.LikePattern(filter.Search))
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// discussionFrom joins discussions to their author and program.
func discussionFrom() string {
	d, u, p := schema.Discussions, schema.Users, schema.Programs
	return fmt.Sprintf("%s d LEFT JOIN %s u ON u.%s = d.%s LEFT JOIN %s p ON p.%s = d.%s",
		d.Table, u.Table, u.ID, d.UserID, p.Table, p.ID, d.ProgramID)
}

// discussionColumns selects the flattened row shape.
func discussionColumns() string {
	d, u, p := schema.Discussions, schema.Users, schema.Programs
	return fmt.Sprintf("d.%s, d.%s, d.%s, d.%s, d.%s, d.%s, u.%s, p.%s",
		d.ID, d.ProgramID, d.UserID, d.Title, d.CreatedAt, d.UpdatedAt,
		u.FullName, p.Title,
	)
}

func scanDiscussion(row interface{ Scan(dest ...any) error }) (*Discussion, error) {
	discussion := &Discussion{}
	err := row.Scan(
		&discussion.ID, &discussion.ProgramID, &discussion.UserID,
		&discussion.Title, &discussion.CreatedAt, &discussion.UpdatedAt,
		&discussion.AuthorName, &discussion.ProgramTitle,
	)
	if err != nil {
		return nil, err
	}
	return discussion, nil
}

// CountDiscussions returns the total matching discussions.
func (repository *PostgresRepository) CountDiscussions(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, discussionFrom(), where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "discussions_repo_count")
	}

	return total, nil
}

// FindManyDiscussions returns one page of discussions.
func (repository *PostgresRepository) FindManyDiscussions(ctx context.Context, filter ListFilter) ([]Discussion, error) {
	where, args := buildWhere(filter)
	order := "d." + sortkey.OrderClause(sortkey.Discussions, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, d.%s ASC
		LIMIT $%d OFFSET $%d`,
		discussionColumns(), discussionFrom(), where, order, schema.Discussions.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "discussions_repo_find_many")
	}
	defer rows.Close()

	var result []Discussion
	for rows.Next() {
		discussion, scanErr := scanDiscussion(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "discussions_repo_scan")
		}
		result = append(result, *discussion)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "discussions_repo_rows")
	}

	return result, nil
}

// FindDiscussionByID retrieves one discussion.
func (repository *PostgresRepository) FindDiscussionByID(ctx context.Context, id int) (*Discussion, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE d.%s = $1`,
		discussionColumns(), discussionFrom(), schema.Discussions.ID)

	discussion, err := scanDiscussion(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "discussions_repo_find_by_id")
	}

	return discussion, nil
}

// DiscussionExists reports whether a discussion exists.
func (repository *PostgresRepository) DiscussionExists(ctx context.Context, id int) (bool, error) {
	d := schema.Discussions
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`, d.Table, d.ID)

	var exists bool
	if err := repository.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "discussions_repo_exists")
	}

	return exists, nil
}

// CreateDiscussion inserts a thread.
func (repository *PostgresRepository) CreateDiscussion(ctx context.Context, discussion *Discussion) error {
	d := schema.Discussions
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		d.Table, d.ProgramID, d.UserID, d.Title,
		d.ID, d.CreatedAt, d.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		discussion.ProgramID, discussion.UserID, discussion.Title,
	).Scan(&discussion.ID, &discussion.CreatedAt, &discussion.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "discussions_repo_create")
	}

	return nil
}

// UpdateDiscussion persists title changes.
func (repository *PostgresRepository) UpdateDiscussion(ctx context.Context, discussion *Discussion) error {
	d := schema.Discussions
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		d.Table, d.Title, d.UpdatedAt, d.ID)

	tag, err := repository.pool.Exec(ctx, query, discussion.ID, discussion.Title)
	if err != nil {
		return dberr.Wrap(err, "discussions_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// DeleteDiscussion removes a thread; comments and likes cascade.
func (repository *PostgresRepository) DeleteDiscussion(ctx context.Context, id int) error {
	d := schema.Discussions
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, d.Table, d.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "discussions_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// # Comments

// commentColumns selects the comment row shape with correlated aggregate
// aliases. The aliases are quoted camelCase so public sort keys like
// "likesCount" hit them directly in ORDER BY.
func commentColumns() string {
	c, u, cl := schema.Comments, schema.Users, schema.CommentLikes
	return fmt.Sprintf(`c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, u.%s,
		(SELECT COUNT(*) FROM %s cl WHERE cl.%s = c.%s) AS "likesCount",
		(SELECT COUNT(*) FROM %s r WHERE r.%s = c.%s AND r.%s = FALSE) AS "repliesCount"`,
		c.ID, c.DiscussionID, c.UserID, c.ParentCommentID, c.Body, c.CreatedAt, c.UpdatedAt,
		u.FullName,
		cl.Table, cl.CommentID, c.ID,
		c.Table, c.ParentCommentID, c.ID, c.IsDeleted,
	)
}

// commentFrom joins comments to their (possibly removed) author.
func commentFrom() string {
	c, u := schema.Comments, schema.Users
	return fmt.Sprintf("%s c LEFT JOIN %s u ON u.%s = c.%s", c.Table, u.Table, u.ID, c.UserID)
}

// commentOrder resolves the sort key; aggregate aliases are ordered by
// alias, real columns by the comment table prefix.
func commentOrder(sort string) string {
	column, direction := sortkey.Resolve(sortkey.Comments, sort)
	if column == "likesCount" || column == "repliesCount" {
		return fmt.Sprintf("%q %s", column, direction)
	}
	return fmt.Sprintf("c.%s %s", column, direction)
}

func scanComment(row interface{ Scan(dest ...any) error }) (*Comment, error) {
	comment := &Comment{}
	err := row.Scan(
		&comment.ID, &comment.DiscussionID, &comment.UserID,
		&comment.ParentCommentID, &comment.Body,
		&comment.CreatedAt, &comment.UpdatedAt,
		&comment.AuthorName, &comment.LikesCount, &comment.RepliesCount,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// buildCommentWhere composes the comment filter; a nil parent selects
// top-level comments.
func buildCommentWhere(filter CommentFilter) (string, []any) {
	c := schema.Comments
	conditions := []string{
		fmt.Sprintf("c.%s = FALSE", c.IsDeleted),
		fmt.Sprintf("c.%s = $1", c.DiscussionID),
	}
	args := []any{filter.DiscussionID}

	if filter.ParentCommentID != nil {
		conditions = append(conditions, fmt.Sprintf("c.%s = $2", c.ParentCommentID))
		args = append(args, *filter.ParentCommentID)
	} else {
		conditions = append(conditions, fmt.Sprintf("c.%s IS NULL", c.ParentCommentID))
	}

	return strings.Join(conditions, " AND "), args
}

// CountComments returns the total comments matching the filter.
func (repository *PostgresRepository) CountComments(ctx context.Context, filter CommentFilter) (int, error) {
	where, args := buildCommentWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, commentFrom(), where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "comments_repo_count")
	}

	return total, nil
}

// FindManyComments returns one page of comments with derived counts.
func (repository *PostgresRepository) FindManyComments(ctx context.Context, filter CommentFilter) ([]Comment, error) {
	where, args := buildCommentWhere(filter)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, c.%s ASC
		LIMIT $%d OFFSET $%d`,
		commentColumns(), commentFrom(), where, commentOrder(filter.Sort), schema.Comments.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "comments_repo_find_many")
	}
	defer rows.Close()

	var result []Comment
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "comments_repo_scan")
		}
		result = append(result, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "comments_repo_rows")
	}

	return result, nil
}

// FindCommentInDiscussion retrieves one comment scoped to its discussion.
func (repository *PostgresRepository) FindCommentInDiscussion(ctx context.Context, discussionID, commentID int) (*Comment, error) {
	c := schema.Comments
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1 AND c.%s = $2 AND c.%s = FALSE`,
		commentColumns(), commentFrom(), c.DiscussionID, c.ID, c.IsDeleted)

	comment, err := scanComment(repository.pool.QueryRow(ctx, query, discussionID, commentID))
	if err != nil {
		return nil, dberr.Wrap(err, "comments_repo_find_in_discussion")
	}

	return comment, nil
}

// FindReplies lists the direct replies of a comment.
func (repository *PostgresRepository) FindReplies(ctx context.Context, commentID int) ([]Comment, error) {
	c := schema.Comments
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE c.%s = $1 AND c.%s = FALSE ORDER BY c.%s ASC`,
		commentColumns(), commentFrom(), c.ParentCommentID, c.IsDeleted, c.ID)

	rows, err := repository.pool.Query(ctx, query, commentID)
	if err != nil {
		return nil, dberr.Wrap(err, "comments_repo_find_replies")
	}
	defer rows.Close()

	var result []Comment
	for rows.Next() {
		comment, scanErr := scanComment(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "comments_repo_scan")
		}
		result = append(result, *comment)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "comments_repo_rows")
	}

	return result, nil
}

// CreateComment inserts a comment.
func (repository *PostgresRepository) CreateComment(ctx context.Context, comment *Comment) error {
	c := schema.Comments
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		c.Table, c.DiscussionID, c.UserID, c.ParentCommentID, c.Body,
		c.ID, c.CreatedAt, c.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		comment.DiscussionID, comment.UserID, comment.ParentCommentID, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "comments_repo_create")
	}

	return nil
}

// UpdateComment persists body changes.
func (repository *PostgresRepository) UpdateComment(ctx context.Context, comment *Comment) error {
	c := schema.Comments
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		c.Table, c.Body, c.UpdatedAt, c.ID, c.IsDeleted)

	tag, err := repository.pool.Exec(ctx, query, comment.ID, comment.Body)
	if err != nil {
		return dberr.Wrap(err, "comments_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// DeleteComment tombstones a comment; replies and likes stay in place but
// the comment drops out of listings and counts.
func (repository *PostgresRepository) DeleteComment(ctx context.Context, id int) error {
	c := schema.Comments
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s = FALSE`,
		c.Table, c.IsDeleted, c.UpdatedAt, c.ID, c.IsDeleted)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "comments_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// # Likes

// CreateLike inserts a like row; duplicates surface as unique violations.
func (repository *PostgresRepository) CreateLike(ctx context.Context, userID, commentID int) error {
	cl := schema.CommentLikes
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		cl.Table, cl.CommentID, cl.UserID)

	if _, err := repository.pool.Exec(ctx, query, commentID, userID); err != nil {
		if dberr.IsUniqueViolation(err) {
			return err
		}
		return dberr.Wrap(err, "likes_repo_create")
	}

	return nil
}

// CountLikes returns the committed like count of a comment.
func (repository *PostgresRepository) CountLikes(ctx context.Context, commentID int) (int, error) {
	cl := schema.CommentLikes
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, cl.Table, cl.CommentID)

	var total int
	if err := repository.pool.QueryRow(ctx, query, commentID).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "likes_repo_count")
	}

	return total, nil
}

// CommentOwnerUserID resolves a comment's author for authorization.
func (repository *PostgresRepository) CommentOwnerUserID(ctx context.Context, commentID int) (int, bool, error) {
	c := schema.Comments
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE`,
		c.UserID, c.Table, c.ID, c.IsDeleted)

	var userID int
	err := repository.pool.QueryRow(ctx, query, commentID).Scan(&userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, dberr.Wrap(err, "comments_repo_owner")
	}

	return userID, true, nil
}
