// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package feedbacks manages visitor feedback and admin responses.

Feedback arrives through a public form, so entries carry a free-form name
and email rather than a user reference. Admins review entries and respond;
each response is emailed to the submitter through the background mail task.
*/
package feedbacks

import "time"

// Feedback is one submitted feedback entry with its admin responses.
type Feedback struct {
	ID        int       `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Responses []Response `json:"responses"`
}

// Response is one admin reply to a feedback entry.
//
// AdminName is flattened from the join; it is null when the admin account
// was removed, never an error.
type Response struct {
	ID         int       `json:"id"`
	FeedbackID int       `json:"feedbackId"`
	AdminID    int       `json:"adminId"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`

	AdminName *string `json:"adminName"`
}
