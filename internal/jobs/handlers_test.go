// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/jobs"
)

type fakeSweeper struct {
	invoices    int64
	enrollments int64
	err         error
	calls       int
}

func (f *fakeSweeper) ExpireOverdue(_ context.Context) (int64, int64, error) {
	f.calls++
	return f.invoices, f.enrollments, f.err
}

type fakeMailSender struct {
	sent []string
	err  error
}

func (f *fakeMailSender) Send(to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestHandlers_MailSend tests delivery, the no-SMTP fallback, and the
skip-retry classification of malformed payloads.
*/
func TestHandlers_MailSend(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers_queued_mail", func(t *testing.T) {
		mail := &fakeMailSender{}
		handlers := jobs.NewHandlers(&fakeSweeper{}, mail, testLogger())

		task, err := jobs.NewMailTask("user@example.com", "Re: Help", "Hello")
		require.NoError(t, err)

		require.NoError(t, handlers.Mux().ProcessTask(ctx, task))
		assert.Equal(t, []string{"user@example.com"}, mail.sent)
	})

	t.Run("no_smtp_drops_mail_without_error", func(t *testing.T) {
		handlers := jobs.NewHandlers(&fakeSweeper{}, nil, testLogger())

		task, err := jobs.NewMailTask("user@example.com", "Re: Help", "Hello")
		require.NoError(t, err)

		assert.NoError(t, handlers.Mux().ProcessTask(ctx, task))
	})

	t.Run("malformed_payload_skips_retry", func(t *testing.T) {
		handlers := jobs.NewHandlers(&fakeSweeper{}, &fakeMailSender{}, testLogger())

		task := asynq.NewTask(jobs.TypeMailSend, []byte("not json"))

		err := handlers.Mux().ProcessTask(ctx, task)
		require.Error(t, err)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("delivery_failure_is_retryable", func(t *testing.T) {
		mail := &fakeMailSender{err: errors.New("smtp down")}
		handlers := jobs.NewHandlers(&fakeSweeper{}, mail, testLogger())

		task, err := jobs.NewMailTask("user@example.com", "Re: Help", "Hello")
		require.NoError(t, err)

		err = handlers.Mux().ProcessTask(ctx, task)
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}

/*
TestHandlers_InvoiceExpirySweep tests that the sweep handler delegates and
propagates failures for retry.
*/
func TestHandlers_InvoiceExpirySweep(t *testing.T) {
	ctx := context.Background()

	t.Run("runs_sweep", func(t *testing.T) {
		sweeper := &fakeSweeper{invoices: 3, enrollments: 2}
		handlers := jobs.NewHandlers(sweeper, nil, testLogger())

		require.NoError(t, handlers.Mux().ProcessTask(ctx, jobs.NewInvoiceExpirySweepTask()))
		assert.Equal(t, 1, sweeper.calls)
	})

	t.Run("propagates_sweep_errors", func(t *testing.T) {
		sweeper := &fakeSweeper{err: errors.New("db down")}
		handlers := jobs.NewHandlers(sweeper, nil, testLogger())

		assert.Error(t, handlers.Mux().ProcessTask(ctx, jobs.NewInvoiceExpirySweepTask()))
	})
}
