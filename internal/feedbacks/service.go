// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package feedbacks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/dberr"
	"github.com/informatics-lc/backend/internal/platform/validate"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// MailEnqueuer queues an outbound notification mail for background
// delivery. A nil enqueuer disables notifications.
type MailEnqueuer interface {
	EnqueueMail(ctx context.Context, to, subject, body string) error
}

// # Service Layer

// Service orchestrates feedback intake and admin responses.
type Service struct {
	repository Repository
	mail       MailEnqueuer
	logger     *slog.Logger
}

// NewService constructs a new feedbacks [Service].
func NewService(repository Repository, mail MailEnqueuer, logger *slog.Logger) *Service {
	return &Service{repository: repository, mail: mail, logger: logger}
}

// ListResult bundles one page of feedback entries with its pagination
// envelope.
type ListResult struct {
	Feedbacks  []Feedback
	Pagination pagination.Envelope
}

// List returns one page of feedback entries, responses included.
func (service *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	v := &validate.Validator{}
	if filter.Email != "" {
		v.Email("email", filter.Email)
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
		Feedbacks:  rows,
		Pagination: pagination.New(total, len(rows), filter.Page.Page, filter.Page.Limit),
	}, nil
}

// Get retrieves a single feedback entry with its responses.
func (service *Service) Get(ctx context.Context, id int) (*Feedback, error) {
	feedback, err := service.repository.FindByID(ctx, id)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, apperr.NotFound("Feedback", "id", id)
		}
		return nil, err
	}
	return feedback, nil
}

// CreateInput carries a new public feedback submission.
type CreateInput struct {
	FullName string
	Email    string
	Subject  string
	Body     string
}

// Create records a public feedback submission.
func (service *Service) Create(ctx context.Context, input CreateInput) (*Feedback, error) {
	v := &validate.Validator{}
	v.Required("fullName", input.FullName).MaxLen("fullName", input.FullName, 100)
	v.Required("email", input.Email).Email("email", input.Email)
	v.Required("subject", input.Subject).MaxLen("subject", input.Subject, 200)
	v.Required("body", input.Body).MaxLen("body", input.Body, 5000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	feedback := &Feedback{
		FullName: input.FullName,
		Email:    input.Email,
		Subject:  input.Subject,
		Body:     input.Body,
	}

	if err := service.repository.Create(ctx, feedback); err != nil {
		return nil, err
	}

	service.logger.Info("feedback_created", slog.Int("feedback_id", feedback.ID))

	return feedback, nil
}

/*
Respond records an admin reply and queues the notification mail.

Description: The reply lands first; the mail is queued best-effort, so a
broken queue never loses the response. Delivery itself happens in the
background worker.
*/
func (service *Service) Respond(ctx context.Context, feedbackID, adminID int, body string) (*Response, error) {
	v := &validate.Validator{}
	v.Required("body", body).MaxLen("body", body, 5000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	feedback, err := service.Get(ctx, feedbackID)
	if err != nil {
		return nil, err
	}

	response := &Response{
		FeedbackID: feedbackID,
		AdminID:    adminID,
		Body:       body,
	}

	if err := service.repository.CreateResponse(ctx, response); err != nil {
		return nil, err
	}

	service.logger.Info("feedback_responded",
		slog.Int("feedback_id", feedbackID),
		slog.Int("response_id", response.ID),
	)

	if service.mail != nil {
		subject := fmt.Sprintf("Re: %s", feedback.Subject)
		mailBody := fmt.Sprintf("Hello %s,\r\n\r\n%s\r\n\r\nInformatics Learning Center",
			feedback.FullName, body)

		if err := service.mail.EnqueueMail(ctx, feedback.Email, subject, mailBody); err != nil {
			service.logger.Error("feedback_mail_enqueue_failed",
				slog.Int("feedback_id", feedbackID),
				slog.String("error", err.Error()),
			)
		}
	}

	return response, nil
}

// Delete removes a feedback entry permanently. Admin operation.
func (service *Service) Delete(ctx context.Context, id int) error {
	if err := service.repository.Delete(ctx, id); err != nil {
		if dberr.IsNotFound(err) {
			return apperr.NotFound("Feedback", "id", id)
		}
		return err
	}

	service.logger.Warn("feedback_deleted", slog.Int("feedback_id", id))

	return nil
}
