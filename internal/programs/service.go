// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package programs

import (
	"context"
	"log/slog"
	"time"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// # Service Layer

// Service orchestrates catalogue reads and admin writes.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new programs [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListResult bundles one page of programs with its pagination envelope.
type ListResult struct {
	Programs   []Program
	Pagination pagination.Envelope
}

/*
List returns one page of the catalogue.

Description: Presence-gated filters (type, price range, title search); a
single count plus a single fetch keep the envelope consistent with the
result set.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if filter.Type != "" && filter.Type != "all" {
		v.OneOf("type", filter.Type, Types()...)
	}
	v.Custom("price.gte", filter.PriceMin < 0, filter.PriceMin, `"price.gte" must not be negative`)
	if filter.PriceMax != nil {
		v.Custom("price.lte", *filter.PriceMax < filter.PriceMin, *filter.PriceMax,
			`"price.lte" must not be below "price.gte"`)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	total, err := service.repository.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := service.repository.FindMany(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Programs:   rows,
		Pagination: pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

/*
Get retrieves a program with its per-type detail.

Description: A missing detail row is reported as null detail fields, never
an error, so partially-seeded catalogues stay readable.
*/
func (service *Service) Get(ctx context.Context, id int) (*WithDetail, error) {
	program, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "id", id)
		}
		return nil, err
	}

	detail, err := service.repository.LoadDetail(ctx, program)
	if err != nil {
		return nil, err
	}

	return &WithDetail{Program: *program, Detail: detail}, nil
}

// CreateInput carries a new program header plus its per-type payload.
type CreateInput struct {
	Title         string
	Description   string
	Type          string
	PriceIDR      int64
	AvailableDate time.Time
	PictureURL    *string
	Detail        DetailInput
}

/*
Create inserts a new program and its detail row in one transaction.
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*WithDetail, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	v.Required("description", input.Description)
	v.OneOf("type", input.Type, Types()...)
	v.Custom("priceIdr", input.PriceIDR < 0, input.PriceIDR, `"priceIdr" must not be negative`)
	v.Custom("availableDate", input.AvailableDate.IsZero(), nil, `"availableDate" is required`)

	switch Type(input.Type) {
	case TypeSeminar:
		if input.Detail.Seminar == nil {
			v.Custom("detail.seminar", true, nil, `"detail.seminar" is required for Seminar programs`)
		} else {
			v.Required("detail.seminar.speaker", input.Detail.Seminar.Speaker)
			v.Custom("detail.seminar.endDatetime",
				!sessionWindowValid(input.Detail.Seminar.StartDatetime, input.Detail.Seminar.EndDatetime),
				nil, `"endDatetime" must be after "startDatetime"`)
		}
	case TypeWorkshop:
		if input.Detail.Workshop == nil {
			v.Custom("detail.workshop", true, nil, `"detail.workshop" is required for Workshop programs`)
		} else {
			v.Required("detail.workshop.instructor", input.Detail.Workshop.Instructor)
			v.Custom("detail.workshop.endDatetime",
				!sessionWindowValid(input.Detail.Workshop.StartDatetime, input.Detail.Workshop.EndDatetime),
				nil, `"endDatetime" must be after "startDatetime"`)
		}
	case TypeCompetition:
		if input.Detail.Competition == nil {
			v.Custom("detail.competition", true, nil, `"detail.competition" is required for Competition programs`)
		} else {
			v.Required("detail.competition.organizer", input.Detail.Competition.Organizer)
		}
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	program := &Program{
		Title:         input.Title,
		Description:   input.Description,
		Type:          Type(input.Type),
		PriceIDR:      input.PriceIDR,
		AvailableDate: input.AvailableDate,
		PictureURL:    input.PictureURL,
	}

	if err := service.repository.Create(ctx, program, input.Detail); err != nil {
		return nil, err
	}

	service.logger.Info("program_created",
		slog.Int("program_id", program.ID),
		slog.String("type", string(program.Type)),
	)

	return service.Get(ctx, program.ID)
}

// UpdateInput defines the mutable subset of program fields. Type is
// immutable; an attempt to change it is a 400.
type UpdateInput struct {
	Title         *string
	Description   *string
	Type          *string
	PriceIDR      *int64
	AvailableDate *time.Time
	PictureURL    *string
	Detail        *DetailInput
}

/*
Update applies partial changes to a program header and detail.
*/
func (service *Service) Update(ctx context.Context, id int, input UpdateInput) (*WithDetail, error) {
	program, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "id", id)
		}
		return nil, err
	}

	// Type is fixed at creation; the detail tables hang off it.
	if input.Type != nil && Type(*input.Type) != program.Type {
		return nil, apperr.BadRequest(`"type" cannot be changed after creation`, "type", *input.Type)
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	if input.PriceIDR != nil {
		v.Custom("priceIdr", *input.PriceIDR < 0, *input.PriceIDR, `"priceIdr" must not be negative`)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Title != nil {
		program.Title = *input.Title
	}
	if input.Description != nil {
		program.Description = *input.Description
	}
	if input.PriceIDR != nil {
		program.PriceIDR = *input.PriceIDR
	}
	if input.AvailableDate != nil {
		program.AvailableDate = *input.AvailableDate
	}
	if input.PictureURL != nil {
		program.PictureURL = input.PictureURL
	}

	if err := service.repository.Update(ctx, program, input.Detail); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "id", id)
		}
		return nil, err
	}

	service.logger.Info("program_updated", slog.Int("program_id", id))

	return service.Get(ctx, id)
}

// Delete soft-deletes a program; existing enrollments keep their history.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.SoftDelete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Program", "id", id)
		}
		return err
	}

	service.logger.Warn("program_deleted", slog.Int("program_id", id))

	return nil
}

/*
ListModules returns the ordered module list of a Course program.

Description: The program must exist and be a Course; access control (the
paid-enrollment gate) runs in middleware before this is reached.
*/
func (service *Service) ListModules(ctx context.Context, programID int) ([]Module, error) {
	program, err := service.repository.FindByID(ctx, programID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "programId", programID)
		}
		return nil, err
	}

	if program.Type != TypeCourse {
		return nil, apperr.BadRequest(`Modules are only available for Course programs`, "programId", programID)
	}

	return service.repository.FindModules(ctx, programID)
}

// CreateModuleInput carries a new course module.
type CreateModuleInput struct {
	Title       string
	MaterialURL string
	OrderNumber int
}

// CreateModule appends a module to a Course program (admin only).
func (service *Service) CreateModule(ctx context.Context, programID int, input CreateModuleInput) (*Module, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	v.Required("materialUrl", input.MaterialURL)
	v.Positive("orderNumber", input.OrderNumber)
	if err := v.Err(); err != nil {
		return nil, err
	}

	program, err := service.repository.FindByID(ctx, programID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "programId", programID)
		}
		return nil, err
	}
	if program.Type != TypeCourse {
		return nil, apperr.BadRequest(`Modules are only available for Course programs`, "programId", programID)
	}

	module := &Module{
		Title:       input.Title,
		MaterialURL: input.MaterialURL,
		OrderNumber: input.OrderNumber,
	}

	if err := service.repository.CreateModule(ctx, programID, module); err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Course", "programId", programID)
		}
		return nil, err
	}

	service.logger.Info("course_module_created",
		slog.Int("program_id", programID),
		slog.Int("module_id", module.ID),
	)

	return module, nil
}
