// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package certificates manages program completion certificates.

A certificate is issued against a Completed enrollment and carries a
credential number encoding the program type, program, and holder, e.g.
"CRS0042-U0007". The PDF document is rendered on demand.
*/
package certificates

import (
	"fmt"
	"regexp"
	"time"

	"github.com/informatics-lc/backend/internal/programs"
)

// CredentialPattern validates a credential number: a program-type prefix,
// the zero-padded program id, and the zero-padded holder id.
var CredentialPattern = regexp.MustCompile(`^(CRS|SMN|CMP|WRS)\d{4}-U\d{4}$`)

// credentialPrefixes maps a program type to its credential prefix.
var credentialPrefixes = map[programs.Type]string{
	programs.TypeCourse:      "CRS",
	programs.TypeSeminar:     "SMN",
	programs.TypeWorkshop:    "WRS",
	programs.TypeCompetition: "CMP",
}

// NewCredentialNumber derives the credential number for a holder's
// certificate in a program.
func NewCredentialNumber(programType programs.Type, programID, userID int) string {
	return fmt.Sprintf("%s%04d-U%04d", credentialPrefixes[programType], programID, userID)
}

// Certificate is one issued completion credential.
//
// The holder and program fields are flattened from joins; they are null
// when the relation is missing, never an error.
type Certificate struct {
	ID               int        `json:"id"`
	UserID           int        `json:"userId"`
	ProgramID        int        `json:"programId"`
	CredentialNumber string     `json:"credentialNumber"`
	IssuedAt         time.Time  `json:"issuedAt"`
	ExpiredAt        *time.Time `json:"expiredAt"`
	PDFURL           *string    `json:"pdfUrl"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	UserFullName *string `json:"userFullName"`
	ProgramTitle *string `json:"programTitle"`
	ProgramType  *string `json:"programType"`
}
