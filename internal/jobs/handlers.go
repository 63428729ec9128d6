// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// MailSender delivers one outbound mail. Implemented by the SMTP mailer.
type MailSender interface {
	Send(to, subject, body string) error
}

// Handlers holds the task handler dependencies.
type Handlers struct {
	sweeper Sweeper
	mail    MailSender
	logger  *slog.Logger
}

// NewHandlers constructs the worker-side task [Handlers].
func NewHandlers(sweeper Sweeper, mail MailSender, logger *slog.Logger) *Handlers {
	return &Handlers{sweeper: sweeper, mail: mail, logger: logger}
}

// Mux returns the asynq mux with every task type registered.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMailSend, h.handleMailSend)
	mux.HandleFunc(TypeInvoiceExpirySweep, h.handleInvoiceExpirySweep)
	return mux
}

// handleMailSend delivers one queued notification mail.
func (h *Handlers) handleMailSend(_ context.Context, task *asynq.Task) error {
	var payload MailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload never repairs itself; skip retries.
		return fmt.Errorf("unmarshal mail payload: %w: %w", err, asynq.SkipRetry)
	}

	if h.mail == nil {
		h.logger.Warn("mail_skipped_no_smtp", slog.String("to", payload.To))
		return nil
	}

	if err := h.mail.Send(payload.To, payload.Subject, payload.Body); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	h.logger.Info("mail_sent", slog.String("to", payload.To))

	return nil
}

// handleInvoiceExpirySweep expires overdue invoices and their enrollments.
func (h *Handlers) handleInvoiceExpirySweep(ctx context.Context, _ *asynq.Task) error {
	invoices, enrollments, err := h.sweeper.ExpireOverdue(ctx)
	if err != nil {
		return fmt.Errorf("invoice expiry sweep: %w", err)
	}

	if invoices > 0 {
		h.logger.Info("invoices_expired",
			slog.Int64("invoices", invoices),
			slog.Int64("enrollments", enrollments),
		)
	}

	return nil
}
