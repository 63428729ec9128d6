// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package feedbacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/informatics-lc/backend/internal/platform/database/schema"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/pkg/slice"
	"github.com/informatics-lc/backend/pkg/sortkey"
	"github.com/informatics-lc/backend/pkg/textnorm"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for feedbacks.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany.
func buildWhere(filter ListFilter) (string, []any) {
	f := schema.Feedbacks
	conditions := []string{"TRUE"}
	var args []any
	argID := 1

	if filter.Email != "" {
		conditions = append(conditions, fmt.Sprintf("f.%s = $%d", f.Email, argID))
		args = append(args, filter.Email)
		argID++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(f.%s ILIKE $%d OR f.%s ILIKE $%d)", f.Subject, argID, f.Body, argID))
		args = append(args, textnorm.LikePattern(filter.Search))
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

func feedbackColumns() string {
	f := schema.Feedbacks
	return fmt.Sprintf("f.%s, f.%s, f.%s, f.%s, f.%s, f.%s, f.%s",
		f.ID, f.FullName, f.Email, f.Subject, f.Body, f.CreatedAt, f.UpdatedAt)
}

func scanFeedback(row interface{ Scan(dest ...any) error }) (*Feedback, error) {
	feedback := &Feedback{Responses: []Response{}}
	err := row.Scan(
		&feedback.ID, &feedback.FullName, &feedback.Email,
		&feedback.Subject, &feedback.Body,
		&feedback.CreatedAt, &feedback.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// Count returns the total matching feedback entries.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s f WHERE %s`, schema.Feedbacks.Table, where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "feedbacks_repo_count")
	}

	return total, nil
}

// FindMany returns one page of feedback entries with their responses.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]Feedback, error) {
	where, args := buildWhere(filter)
	order := "f." + sortkey.OrderClause(sortkey.Feedbacks, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s f
		WHERE %s
		ORDER BY %s, f.%s ASC
		LIMIT $%d OFFSET $%d`,
		feedbackColumns(), schema.Feedbacks.Table, where, order, schema.Feedbacks.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "feedbacks_repo_find_many")
	}
	defer rows.Close()

	var result []Feedback
	for rows.Next() {
		feedback, scanErr := scanFeedback(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "feedbacks_repo_scan")
		}
		result = append(result, *feedback)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "feedbacks_repo_rows")
	}

	if err := repository.attachResponses(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// FindByID retrieves one entry with its responses.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s f WHERE f.%s = $1`,
		feedbackColumns(), schema.Feedbacks.Table, schema.Feedbacks.ID)

	feedback, err := scanFeedback(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "feedbacks_repo_find_by_id")
	}

	page := []Feedback{*feedback}
	if err := repository.attachResponses(ctx, page); err != nil {
		return nil, err
	}

	return &page[0], nil
}

// attachResponses loads the responses of all entries in one batched query
// and distributes them onto their owners.
func (repository *PostgresRepository) attachResponses(ctx context.Context, feedbacks []Feedback) error {
	if len(feedbacks) == 0 {
		return nil
	}

	ids := slice.Map(feedbacks, func(feedback Feedback) int { return feedback.ID })
	index := make(map[int]*Feedback, len(feedbacks))
	for i := range feedbacks {
		index[feedbacks[i].ID] = &feedbacks[i]
	}

	r, u := schema.FeedbackResponses, schema.Users
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, r.%s, u.%s
		FROM %s r
		LEFT JOIN %s u ON u.%s = r.%s
		WHERE r.%s = ANY($1)
		ORDER BY r.%s ASC`,
		r.ID, r.FeedbackID, r.AdminID, r.Body, r.CreatedAt, u.FullName,
		r.Table, u.Table, u.ID, r.AdminID,
		r.FeedbackID, r.ID,
	)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return dberr.Wrap(err, "feedbacks_repo_responses")
	}
	defer rows.Close()

	for rows.Next() {
		var response Response
		err := rows.Scan(&response.ID, &response.FeedbackID, &response.AdminID,
			&response.Body, &response.CreatedAt, &response.AdminName)
		if err != nil {
			return dberr.Wrap(err, "feedbacks_repo_scan_response")
		}
		if owner, ok := index[response.FeedbackID]; ok {
			owner.Responses = append(owner.Responses, response)
		}
	}

	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "feedbacks_repo_rows")
	}

	return nil
}

// Create inserts a feedback entry.
func (repository *PostgresRepository) Create(ctx context.Context, feedback *Feedback) error {
	f := schema.Feedbacks
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		f.Table, f.FullName, f.Email, f.Subject, f.Body,
		f.ID, f.CreatedAt, f.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		feedback.FullName, feedback.Email, feedback.Subject, feedback.Body,
	).Scan(&feedback.ID, &feedback.CreatedAt, &feedback.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "feedbacks_repo_create")
	}

	return nil
}

// CreateResponse inserts an admin reply.
func (repository *PostgresRepository) CreateResponse(ctx context.Context, response *Response) error {
	r := schema.FeedbackResponses
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s`,
		r.Table, r.FeedbackID, r.AdminID, r.Body,
		r.ID, r.CreatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		response.FeedbackID, response.AdminID, response.Body,
	).Scan(&response.ID, &response.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "feedbacks_repo_create_response")
	}

	return nil
}

// Delete removes an entry; responses cascade.
func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	f := schema.Feedbacks
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, f.Table, f.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "feedbacks_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}
