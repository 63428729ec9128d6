// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package enrollments manages a user's participation in programs.

Enrolling creates an Unpaid enrollment together with its first invoice in
one transaction; paying the invoice moves the enrollment to 'In Progress';
completing all course modules moves it to 'Completed'. Overdue invoices
expire both the invoice and the enrollment via the background sweep.

# Architecture

  - Entities: Enrollment (flattened with joined program fields) and
    CompletedModule.
  - Authorization: the package exports an authz.OwnerLookup so routes can
    resolve record ownership, and the paid-enrollment check backing the
    program-access gate.
*/
package enrollments

import (
	"time"

	"github.com/informatics-lc/backend/internal/invoices"
	"github.com/informatics-lc/backend/pkg/slice"
)

// Status is the lifecycle state of an enrollment.
type Status string

const (
	StatusUnpaid     Status = "Unpaid"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusExpired    Status = "Expired"
)

// Statuses lists every valid enrollment status, for validation.
func Statuses() []string {
	return slice.Map(
		[]Status{StatusUnpaid, StatusInProgress, StatusCompleted, StatusExpired},
		func(status Status) string { return string(status) },
	)
}

// Enrollment is one user's participation in one program.
//
// ProgramTitle and ProgramType are flattened from the joined program row;
// they are null when the program has been removed, never an error.
type Enrollment struct {
	ID                 int        `json:"id"`
	UserID             int        `json:"userId"`
	ProgramID          int        `json:"programId"`
	Status             Status     `json:"status"`
	ProgressPercentage int        `json:"progressPercentage"`
	CompletedAt        *time.Time `json:"completedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	ProgramTitle *string `json:"programTitle"`
	ProgramType  *string `json:"programType"`
}

// CompletedModule marks one finished course module within an enrollment.
type CompletedModule struct {
	ID           int       `json:"id"`
	EnrollmentID int       `json:"enrollmentId"`
	ModuleID     int       `json:"moduleId"`
	CompletedAt  time.Time `json:"completedAt"`
}

// WithModules is the single-enrollment response shape; CompletedModules is
// only populated for Course programs.
type WithModules struct {
	Enrollment
	CompletedModules []CompletedModule `json:"completedModules,omitempty"`
}

// WithInvoice is the enroll response shape: the new Unpaid enrollment
// alongside the invoice that must be settled to activate it.
type WithInvoice struct {
	Enrollment
	Invoice *invoices.Invoice `json:"invoice"`
}
