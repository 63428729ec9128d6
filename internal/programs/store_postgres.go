// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package programs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
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

// NewRepository creates a new Postgres implementation for the catalogue.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildWhere composes the presence-gated WHERE clause shared by Count and
// FindMany. Soft-deleted programs are always excluded.
func buildWhere(filter ListFilter) (string, []any) {
	p := schema.Programs
	conditions := []string{fmt.Sprintf("%s IS NULL", p.DeletedAt)}
	var args []any
	argID := 1

	if filter.Type != "" && filter.Type != "all" {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", p.Type, argID))
		args = append(args, filter.Type)
		argID++
	}

	// The lower price bound always applies; zero is the open default.
	conditions = append(conditions, fmt.Sprintf("%s >= $%d", p.PriceIDR, argID))
	args = append(args, filter.PriceMin)
	argID++

	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", p.PriceIDR, argID))
		args = append(args, *filter.PriceMax)
		argID++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", p.Title, argID))
		args = append(args, textnorm.LikePattern(filter.Search))
		argID++
	}

	return strings.Join(conditions, " AND "), args
}

// programColumns is the shared SELECT column list for hydrating a [Program].
func programColumns() string {
	p := schema.Programs
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		p.ID, p.Title, p.Description, p.Type, p.PriceIDR,
		p.AvailableDate, p.PictureURL, p.CreatedAt, p.UpdatedAt,
	)
}

func scanProgram(row pgx.Row) (*Program, error) {
	program := &Program{}
	err := row.Scan(
		&program.ID, &program.Title, &program.Description, &program.Type,
		&program.PriceIDR, &program.AvailableDate, &program.PictureURL,
		&program.CreatedAt, &program.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// Count returns the total matching programs.
func (repository *PostgresRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.Programs.Table, where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "programs_repo_count")
	}

	return total, nil
}

// FindMany returns one page of programs.
func (repository *PostgresRepository) FindMany(ctx context.Context, filter ListFilter) ([]Program, error) {
	p := schema.Programs
	where, args := buildWhere(filter)
	order := sortkey.OrderClause(sortkey.Programs, filter.Sort)

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s, %s ASC
		LIMIT $%d OFFSET $%d`,
		programColumns(), p.Table, where, order, p.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "programs_repo_find_many")
	}
	defer rows.Close()

	var result []Program
	for rows.Next() {
		program, scanErr := scanProgram(rows)
		if scanErr != nil {
			return nil, dberr.Wrap(scanErr, "programs_repo_scan")
		}
		result = append(result, *program)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "programs_repo_rows")
	}

	return result, nil
}

// FindByID retrieves a non-deleted program.
func (repository *PostgresRepository) FindByID(ctx context.Context, id int) (*Program, error) {
	p := schema.Programs
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		programColumns(), p.Table, p.ID, p.DeletedAt)

	program, err := scanProgram(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "programs_repo_find_by_id")
	}

	return program, nil
}

// LoadDetail fetches the per-type payload. Missing rows yield nil fields.
func (repository *PostgresRepository) LoadDetail(ctx context.Context, program *Program) (*Detail, error) {
	detail := &Detail{}

	switch program.Type {
	case TypeCourse:
		c, m := schema.Courses, schema.CourseModules
		query := fmt.Sprintf(`
			SELECT c.%s, COUNT(m.%s)
			FROM %s c
			LEFT JOIN %s m ON m.%s = c.%s
			WHERE c.%s = $1
			GROUP BY c.%s`,
			c.ID, m.ID, c.Table, m.Table, m.CourseID, c.ID, c.ProgramID, c.ID,
		)

		course := &CourseDetail{}
		err := repository.pool.QueryRow(ctx, query, program.ID).Scan(&course.CourseID, &course.TotalModules)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return detail, nil
			}
			return nil, dberr.Wrap(err, "programs_repo_load_course")
		}
		detail.Course = course

	case TypeSeminar:
		s := schema.Seminars
		query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
			s.Speaker, s.Venue, s.StartDatetime, s.EndDatetime, s.Table, s.ProgramID)

		seminar := &SeminarDetail{}
		err := repository.pool.QueryRow(ctx, query, program.ID).Scan(
			&seminar.Speaker, &seminar.Venue, &seminar.StartDatetime, &seminar.EndDatetime)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return detail, nil
			}
			return nil, dberr.Wrap(err, "programs_repo_load_seminar")
		}
		detail.Seminar = seminar

	case TypeWorkshop:
		w := schema.Workshops
		query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
			w.Instructor, w.Venue, w.StartDatetime, w.EndDatetime, w.Table, w.ProgramID)

		workshop := &WorkshopDetail{}
		err := repository.pool.QueryRow(ctx, query, program.ID).Scan(
			&workshop.Instructor, &workshop.Venue, &workshop.StartDatetime, &workshop.EndDatetime)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return detail, nil
			}
			return nil, dberr.Wrap(err, "programs_repo_load_workshop")
		}
		detail.Workshop = workshop

	case TypeCompetition:
		c := schema.Competitions
		query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
			c.Organizer, c.Venue, c.PrizePoolIDR, c.StartDatetime, c.EndDatetime, c.Table, c.ProgramID)

		competition := &CompetitionDetail{}
		err := repository.pool.QueryRow(ctx, query, program.ID).Scan(
			&competition.Organizer, &competition.Venue, &competition.PrizePoolIDR,
			&competition.StartDatetime, &competition.EndDatetime)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return detail, nil
			}
			return nil, dberr.Wrap(err, "programs_repo_load_competition")
		}
		detail.Competition = competition
	}

	return detail, nil
}

// Create inserts the program header and its detail row in one transaction.
func (repository *PostgresRepository) Create(ctx context.Context, program *Program, detail DetailInput) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p := schema.Programs
	headerQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		p.Table, p.Title, p.Description, p.Type, p.PriceIDR, p.AvailableDate, p.PictureURL,
		p.ID, p.CreatedAt, p.UpdatedAt,
	)

	err = tx.QueryRow(ctx, headerQuery,
		program.Title, program.Description, program.Type,
		program.PriceIDR, program.AvailableDate, program.PictureURL,
	).Scan(&program.ID, &program.CreatedAt, &program.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_create_header")
	}

	if err := insertDetail(ctx, tx, program, detail); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "programs_repo_commit")
	}

	return nil
}

// insertDetail writes the per-type row matching program.Type.
func insertDetail(ctx context.Context, tx pgx.Tx, program *Program, detail DetailInput) error {
	switch program.Type {
	case TypeCourse:
		c := schema.Courses
		query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`, c.Table, c.ProgramID)
		if _, err := tx.Exec(ctx, query, program.ID); err != nil {
			return dberr.Wrap(err, "programs_repo_create_course")
		}

	case TypeSeminar:
		if detail.Seminar == nil {
			return nil
		}
		s := schema.Seminars
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
			s.Table, s.ProgramID, s.Speaker, s.Venue, s.StartDatetime, s.EndDatetime)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Seminar.Speaker, detail.Seminar.Venue,
			detail.Seminar.StartDatetime, detail.Seminar.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_create_seminar")
		}

	case TypeWorkshop:
		if detail.Workshop == nil {
			return nil
		}
		w := schema.Workshops
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
			w.Table, w.ProgramID, w.Instructor, w.Venue, w.StartDatetime, w.EndDatetime)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Workshop.Instructor, detail.Workshop.Venue,
			detail.Workshop.StartDatetime, detail.Workshop.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_create_workshop")
		}

	case TypeCompetition:
		if detail.Competition == nil {
			return nil
		}
		c := schema.Competitions
		query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6)`,
			c.Table, c.ProgramID, c.Organizer, c.Venue, c.PrizePoolIDR, c.StartDatetime, c.EndDatetime)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Competition.Organizer, detail.Competition.Venue, detail.Competition.PrizePoolIDR,
			detail.Competition.StartDatetime, detail.Competition.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_create_competition")
		}
	}

	return nil
}

// Update persists header changes and optionally the per-type detail row.
func (repository *PostgresRepository) Update(ctx context.Context, program *Program, detail *DetailInput) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_begin")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p := schema.Programs
	headerQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		p.Table,
		p.Title, p.Description, p.PriceIDR, p.AvailableDate, p.PictureURL, p.UpdatedAt,
		p.ID, p.DeletedAt,
	)

	tag, err := tx.Exec(ctx, headerQuery,
		program.ID, program.Title, program.Description,
		program.PriceIDR, program.AvailableDate, program.PictureURL,
	)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_update_header")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	if detail != nil {
		if err := updateDetail(ctx, tx, program, *detail); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "programs_repo_commit")
	}

	return nil
}

// updateDetail rewrites the per-type row matching program.Type.
func updateDetail(ctx context.Context, tx pgx.Tx, program *Program, detail DetailInput) error {
	switch program.Type {
	case TypeSeminar:
		if detail.Seminar == nil {
			return nil
		}
		s := schema.Seminars
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
			s.Table, s.Speaker, s.Venue, s.StartDatetime, s.EndDatetime, s.ProgramID)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Seminar.Speaker, detail.Seminar.Venue,
			detail.Seminar.StartDatetime, detail.Seminar.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_update_seminar")
		}

	case TypeWorkshop:
		if detail.Workshop == nil {
			return nil
		}
		w := schema.Workshops
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
			w.Table, w.Instructor, w.Venue, w.StartDatetime, w.EndDatetime, w.ProgramID)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Workshop.Instructor, detail.Workshop.Venue,
			detail.Workshop.StartDatetime, detail.Workshop.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_update_workshop")
		}

	case TypeCompetition:
		if detail.Competition == nil {
			return nil
		}
		c := schema.Competitions
		query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1`,
			c.Table, c.Organizer, c.Venue, c.PrizePoolIDR, c.StartDatetime, c.EndDatetime, c.ProgramID)
		if _, err := tx.Exec(ctx, query, program.ID,
			detail.Competition.Organizer, detail.Competition.Venue, detail.Competition.PrizePoolIDR,
			detail.Competition.StartDatetime, detail.Competition.EndDatetime); err != nil {
			return dberr.Wrap(err, "programs_repo_update_competition")
		}
	}

	return nil
}

// SoftDelete stamps deleted_at on a live program.
func (repository *PostgresRepository) SoftDelete(ctx context.Context, id int) error {
	p := schema.Programs
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		p.Table, p.DeletedAt, p.ID, p.DeletedAt)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_soft_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNoRows
	}

	return nil
}

// FindModules lists the ordered modules of a Course program.
func (repository *PostgresRepository) FindModules(ctx context.Context, programID int) ([]Module, error) {
	c, m := schema.Courses, schema.CourseModules
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s, m.%s, m.%s, m.%s
		FROM %s m
		JOIN %s c ON c.%s = m.%s
		WHERE c.%s = $1
		ORDER BY m.%s ASC`,
		m.ID, m.CourseID, m.Title, m.MaterialURL, m.OrderNumber, m.CreatedAt, m.UpdatedAt,
		m.Table, c.Table, c.ID, m.CourseID, c.ProgramID, m.OrderNumber,
	)

	rows, err := repository.pool.Query(ctx, query, programID)
	if err != nil {
		return nil, dberr.Wrap(err, "programs_repo_find_modules")
	}
	defer rows.Close()

	var result []Module
	for rows.Next() {
		var module Module
		if err := rows.Scan(
			&module.ID, &module.CourseID, &module.Title, &module.MaterialURL,
			&module.OrderNumber, &module.CreatedAt, &module.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "programs_repo_scan_module")
		}
		result = append(result, module)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "programs_repo_rows")
	}

	return result, nil
}

// CreateModule appends a module to the course behind a program.
func (repository *PostgresRepository) CreateModule(ctx context.Context, programID int, module *Module) error {
	c := schema.Courses
	lookup := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, c.ID, c.Table, c.ProgramID)

	var courseID int
	if err := repository.pool.QueryRow(ctx, lookup, programID).Scan(&courseID); err != nil {
		return dberr.Wrap(err, "programs_repo_course_lookup")
	}

	m := schema.CourseModules
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s, %s, %s`,
		m.Table, m.CourseID, m.Title, m.MaterialURL, m.OrderNumber,
		m.ID, m.CreatedAt, m.UpdatedAt,
	)

	module.CourseID = courseID
	err := repository.pool.QueryRow(ctx, query,
		courseID, module.Title, module.MaterialURL, module.OrderNumber,
	).Scan(&module.ID, &module.CreatedAt, &module.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "programs_repo_create_module")
	}

	return nil
}
