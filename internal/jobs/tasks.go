// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package jobs defines the background work of the platform: asynq task types,
their handlers, and the cron schedule.

Two kinds of work run outside the request path:

  - mail:send — one outbound notification mail, queued by the feedbacks
    service and delivered through SMTP by the worker.
  - invoice:expiry_sweep — the every-minute sweep marking overdue
    Unverified invoices Expired together with their enrollments.
*/
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names, as registered on the worker mux.
const (
	TypeMailSend           = "mail:send"
	TypeInvoiceExpirySweep = "invoice:expiry_sweep"
)

// MailPayload is the body of a mail:send task.
type MailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewMailTask builds a mail:send task.
func NewMailTask(to, subject, body string) (*asynq.Task, error) {
	payload, err := json.Marshal(MailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		return nil, fmt.Errorf("marshal mail payload: %w", err)
	}
	return asynq.NewTask(TypeMailSend, payload), nil
}

// NewInvoiceExpirySweepTask builds the sweep task registered on the cron
// schedule. It carries no payload.
func NewInvoiceExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TypeInvoiceExpirySweep, nil)
}
