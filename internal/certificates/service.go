// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/internal/programs"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// # Service Layer

// Service orchestrates certificate issuance and lookup.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new certificates [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ListResult bundles one page of certificates with its pagination envelope.
type ListResult struct {
	Certificates []Certificate
	Pagination   pagination.Envelope
}

/*
List returns one page of certificates.

Description: Non-admin callers reach this with UserID already forced to
their own id by the authorization layer. The credential filter is an exact
match, validated against the credential format first.
*/
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if filter.Credential != "" {
		v.Credential("credential", filter.Credential)
	}
	if filter.ProgramType != "" {
		v.OneOf("type", filter.ProgramType, append([]string{"all"}, programs.Types()...)...)
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
		Certificates: rows,
		Pagination:   pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

// Get retrieves a single certificate by id.
func (service *Service) Get(ctx context.Context, id int) (*Certificate, error) {
	certificate, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Certificate", "id", id)
		}
		return nil, err
	}
	return certificate, nil
}

/*
Issue creates a certificate for a user's Completed enrollment.

Description: The credential number is derived from the program type and
the two ids, so re-issuing the same pair hits the unique constraint and
surfaces as a conflict.
*/
func (service *Service) Issue(ctx context.Context, userID, programID int) (*Certificate, error) {
	programType, err := service.repository.FindCompletedProgramType(ctx, userID, programID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.BadRequest("User has no completed enrollment in this program", "programId", programID)
		}
		return nil, err
	}

	credential := NewCredentialNumber(programs.Type(programType), programID, userID)

	certificate := &Certificate{
		UserID:           userID,
		ProgramID:        programID,
		CredentialNumber: credential,
		IssuedAt:         time.Now(),
	}

	if err := service.repository.Create(ctx, certificate); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Certificate has already been issued for this enrollment", "credential", credential)
		}
		return nil, err
	}

	certificate.PDFURL = pointer.To(documentPath(certificate.ID))

	service.logger.Info("certificate_issued",
		slog.Int("certificate_id", certificate.ID),
		slog.String("credential", credential),
	)

	return certificate, nil
}

// Render returns the PDF document of a certificate.
func (service *Service) Render(ctx context.Context, id int) ([]byte, error) {
	certificate, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	document, err := RenderPDF(certificate)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return document, nil
}

// Delete removes a certificate permanently. Admin operation.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Certificate", "id", id)
		}
		return err
	}

	service.logger.Warn("certificate_deleted", slog.Int("certificate_id", id))

	return nil
}

// documentPath is where the rendered PDF of a certificate is served.
func documentPath(id int) string {
	return fmt.Sprintf("/api/v1/certificates/%d/pdf", id)
}
