// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package programs

import (
	"context"
	"time"

	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the program listing.
//
// PriceMin always applies (default 0); PriceMax only when provided.
type ListFilter struct {
	Type     string
	PriceMin int64
	PriceMax *int64
	Search   string

	Page pagination.Params
	Sort string
}

// DetailInput carries the per-type payload for create and update. The
// service guarantees the field matching the program type is set.
type DetailInput struct {
	Seminar     *SeminarDetail
	Workshop    *WorkshopDetail
	Competition *CompetitionDetail
}

// # Repository Contracts

// Repository defines the persistence contract for the program catalogue.
type Repository interface {
	// Count returns the total matching programs, ignoring pagination.
	Count(ctx context.Context, filter ListFilter) (int, error)

	// FindMany returns one page of programs, ordered by the resolved sort.
	FindMany(ctx context.Context, filter ListFilter) ([]Program, error)

	// FindByID retrieves a non-deleted program (dberr.ErrNoRows when absent).
	FindByID(ctx context.Context, id int) (*Program, error)

	/*
		LoadDetail fetches the per-type payload of a program. A missing
		detail row yields a Detail with all fields nil, never an error.
	*/
	LoadDetail(ctx context.Context, program *Program) (*Detail, error)

	/*
		Create inserts the program header and its per-type detail row in a
		single transaction, hydrating the generated id and timestamps.
	*/
	Create(ctx context.Context, program *Program, detail DetailInput) error

	/*
		Update persists header changes and, when detail is non-nil, the
		per-type detail row, in a single transaction.
	*/
	Update(ctx context.Context, program *Program, detail *DetailInput) error

	// SoftDelete stamps deleted_at (dberr.ErrNoRows when absent or already deleted).
	SoftDelete(ctx context.Context, id int) error

	// FindModules lists the ordered modules of a Course program.
	FindModules(ctx context.Context, programID int) ([]Module, error)

	// CreateModule appends a module to a course (used by admin seeding).
	CreateModule(ctx context.Context, programID int, module *Module) error
}

// sessionWindow is a small helper shared by seminar/workshop validation.
func sessionWindowValid(start, end time.Time) bool {
	return !start.IsZero() && !end.IsZero() && end.After(start)
}
