// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package mailer delivers transactional email over SMTP.
//
// # Architecture
//
// The Mailer is an infrastructure service injected into background workers.
// Handlers never send mail inline; they enqueue a task and the worker calls
// [Mailer.Send], keeping request latency independent of the mail relay.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text email through an authenticated SMTP relay.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// New creates a Mailer for the given relay. Authentication is skipped when
// username is empty (local relays in development).
func New(host, port, username, password, from string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single plain-text message to the recipient.
func (m *Mailer) Send(to, subject, body string) error {
	var message strings.Builder
	message.WriteString("From: " + m.from + "\r\n")
	message.WriteString("To: " + to + "\r\n")
	message.WriteString("Subject: " + subject + "\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	address := m.host + ":" + m.port

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(address, auth, m.from, []string{to}, []byte(message.String())); err != nil {
		return fmt.Errorf("mailer: failed to send to %s: %w", to, err)
	}

	return nil
}
