// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package invoices manages program payment invoices.

An invoice is created Unverified alongside its enrollment and stays payable
for one hour. Paying it records a payment row, marks the invoice Verified,
and activates the enrollment — all in one transaction. The background sweep
expires overdue Unverified invoices together with their enrollments.
*/
package invoices

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/informatics-lc/backend/pkg/slice"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusUnverified Status = "Unverified"
	StatusVerified   Status = "Verified"
	StatusExpired    Status = "Expired"
)

// Statuses lists every valid invoice status, for validation.
func Statuses() []string {
	return slice.Map(
		[]Status{StatusUnverified, StatusVerified, StatusExpired},
		func(status Status) string { return string(status) },
	)
}

// Invoice is one payable bill attached to an enrollment.
//
// The user, program, and payment fields are flattened from joins; they are
// null when the relation is missing, never an error.
type Invoice struct {
	ID                   int       `json:"id"`
	EnrollmentID         int       `json:"enrollmentId"`
	AmountIDR            int64     `json:"amountIdr"`
	Status               Status    `json:"status"`
	VirtualAccountNumber string    `json:"virtualAccountNumber"`
	PaymentDueDatetime   time.Time `json:"paymentDueDatetime"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	UserID       *int    `json:"userId"`
	ProgramTitle *string `json:"programTitle"`
	ProgramType  *string `json:"programType"`

	Payment *Payment `json:"payment,omitempty"`
}

// Payment records a settled invoice.
type Payment struct {
	ID        int       `json:"id"`
	InvoiceID int       `json:"invoiceId"`
	AmountIDR int64     `json:"amountIdr"`
	PaidAt    time.Time `json:"paidAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewVirtualAccountNumber generates a random 16-18 digit account number.
//
// The first digit is never zero so the printed number keeps its full width.
func NewVirtualAccountNumber() string {
	length := 16 + int(mustRandInt(3)) // 16, 17, or 18

	digits := make([]byte, length)
	digits[0] = byte('1' + mustRandInt(9))
	for i := 1; i < length; i++ {
		digits[i] = byte('0' + mustRandInt(10))
	}

	return string(digits)
}

// mustRandInt returns a uniform random int in [0, bound) from crypto/rand.
func mustRandInt(bound int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(bound))
	if err != nil {
		panic("invoices: random source unavailable: " + err.Error())
	}
	return n.Int64()
}
