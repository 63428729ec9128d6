// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package feedbacks

import (
	"context"

	"github.com/informatics-lc/backend/pkg/pagination"
)

// ListFilter narrows the feedback listing.
type ListFilter struct {
	Email  string
	Search string

	Page pagination.Params
	Sort string
}

// # Repository Contracts

// Repository defines the persistence contract for feedback entries and
// their responses.
type Repository interface {
	// Count returns the total matching feedback entries.
	Count(ctx context.Context, filter ListFilter) (int, error)

	/*
		FindMany returns one page of feedback entries, responses included.
		Responses are loaded in one batched query keyed by the page's ids.
	*/
	FindMany(ctx context.Context, filter ListFilter) ([]Feedback, error)

	// FindByID retrieves one entry with its responses (dberr.ErrNoRows
	// when absent).
	FindByID(ctx context.Context, id int) (*Feedback, error)

	// Create inserts a feedback entry, hydrating generated fields.
	Create(ctx context.Context, feedback *Feedback) error

	// CreateResponse inserts an admin reply, hydrating generated fields.
	CreateResponse(ctx context.Context, response *Response) error

	// Delete removes an entry and its responses (admin operation).
	Delete(ctx context.Context, id int) error
}
