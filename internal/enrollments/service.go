// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package enrollments

import (
	"context"
	"log/slog"
	"time"

	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/constants"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// ProgramCatalog is the slice of the program repository the enrollment flow
// needs: existence checks, pricing, and type-dependent behavior.
type ProgramCatalog interface {
	FindByID(ctx context.Context, id int) (*programs.Program, error)
}

// # Service Layer

// Service orchestrates enrollment lifecycle operations.
type Service struct {
	repository Repository
	catalog    ProgramCatalog
	logger     *slog.Logger
}

// NewService constructs a new enrollments [Service].
func NewService(repository Repository, catalog ProgramCatalog, logger *slog.Logger) *Service {
	return &Service{repository: repository, catalog: catalog, logger: logger}
}

// ListResult bundles one page of enrollments with its pagination envelope.
type ListResult struct {
	Enrollments []Enrollment
	Pagination  pagination.Envelope
}

/*
List returns one page of enrollments.

Description: Non-admin callers reach this with UserID already forced to
their own id by the authorization layer; admins may pass any scoping.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if filter.Status != "" {
		v.OneOf("status", filter.Status, append([]string{"all"}, Statuses()...)...)
	}
	if filter.ProgramType != "" {
		v.OneOf("programType", filter.ProgramType, append([]string{"all"}, programs.Types()...)...)
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
		Enrollments: rows,
		Pagination:  pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

/*
Get retrieves one enrollment.

Description: Course enrollments carry their completed modules; other
program types return the bare enrollment.
*/
func (service *Service) Get(ctx context.Context, id int) (*WithModules, error) {
	enrollment, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Enrollment", "id", id)
		}
		return nil, err
	}

	result := &WithModules{Enrollment: *enrollment}

	if pointer.Val(enrollment.ProgramType) == string(programs.TypeCourse) {
		modules, modulesErr := service.repository.FindCompletedModules(ctx, id)
		if modulesErr != nil {
			return nil, modulesErr
		}
		result.CompletedModules = modules
	}

	return result, nil
}

/*
Create enrolls a user into a program.

Description: The enrollment starts Unpaid with a fresh Unverified invoice
priced at the program's current price; the invoice stays payable for
[constants.InvoicePaymentWindow]. A user can hold at most one enrollment
per program, regardless of its status.
*/
func (service *Service) Create(ctx context.Context, userID, programID int) (*WithInvoice, error) {
	program, err := service.catalog.FindByID(ctx, programID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Program", "programId", programID)
		}
		return nil, err
	}

	exists, err := service.repository.Exists(ctx, userID, programID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("User is already enrolled in this program", "programId", programID)
	}

	enrollment := &Enrollment{
		UserID:             userID,
		ProgramID:          programID,
		Status:             StatusUnpaid,
		ProgressPercentage: 0,
		ProgramTitle:       pointer.To(program.Title),
		ProgramType:        pointer.To(string(program.Type)),
	}

	invoice := &invoices.Invoice{
		AmountIDR:            program.PriceIDR,
		Status:               invoices.StatusUnverified,
		VirtualAccountNumber: invoices.NewVirtualAccountNumber(),
		PaymentDueDatetime:   time.Now().Add(constants.InvoicePaymentWindow),
	}

	if err := service.repository.CreateWithInvoice(ctx, enrollment, invoice); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User is already enrolled in this program", "programId", programID)
		}
		return nil, err
	}

	service.logger.Info("enrollment_created",
		slog.Int("enrollment_id", enrollment.ID),
		slog.Int("user_id", userID),
		slog.Int("program_id", programID),
	)

	return &WithInvoice{Enrollment: *enrollment, Invoice: invoice}, nil
}

// ProgressResult reports the state after completing a module.
type ProgressResult struct {
	EnrollmentID       int    `json:"enrollmentId"`
	ProgressPercentage int    `json:"progressPercentage"`
	Status             Status `json:"status"`
}

/*
CompleteModule marks a course module as finished.

Description: Only Course enrollments in progress accept completions. The
progress percentage is recomputed against the course's full module count;
reaching 100% flips the enrollment to Completed.
*/
func (service *Service) CompleteModule(ctx context.Context, enrollmentID, moduleID int) (*ProgressResult, error) {
	enrollment, err := service.repository.FindByID(ctx, enrollmentID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Enrollment", "enrollmentId", enrollmentID)
		}
		return nil, err
	}

	if pointer.Val(enrollment.ProgramType) != string(programs.TypeCourse) {
		return nil, apperr.BadRequest("Only course enrollments track module progress", "enrollmentId", enrollmentID)
	}
	if enrollment.Status != StatusInProgress && enrollment.Status != StatusCompleted {
		return nil, apperr.BadRequest("Enrollment is not active", "enrollmentId", enrollmentID)
	}

	progress, completed, err := service.repository.CompleteModule(ctx, enrollmentID, moduleID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Module", "moduleId", moduleID)
		}
		return nil, err
	}

	status := StatusInProgress
	if completed {
		status = StatusCompleted
	}

	service.logger.Info("module_completed",
		slog.Int("enrollment_id", enrollmentID),
		slog.Int("module_id", moduleID),
		slog.Int("progress", progress),
	)

	return &ProgressResult{
		EnrollmentID:       enrollmentID,
		ProgressPercentage: progress,
		Status:             status,
	}, nil
}

// Delete removes an enrollment and its dependents. Admin operation.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Enrollment", "id", id)
		}
		return err
	}

	service.logger.Warn("enrollment_deleted", slog.Int("enrollment_id", id))

	return nil
}
