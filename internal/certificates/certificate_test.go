// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/internal/certificates"
	"github.com/informatics-lc/backend/internal/programs"
)

/*
TestNewCredentialNumber tests the credential derivation per program type.
*/
func TestNewCredentialNumber(t *testing.T) {
	tests := []struct {
		name        string
		programType programs.Type
		programID   int
		userID      int
		want        string
	}{
		{"course", programs.TypeCourse, 1, 1, "CRS0001-U0001"},
		{"seminar", programs.TypeSeminar, 42, 7, "SMN0042-U0007"},
		{"workshop", programs.TypeWorkshop, 1234, 5678, "WRS1234-U5678"},
		{"competition", programs.TypeCompetition, 3, 9, "CMP0003-U0009"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credential := certificates.NewCredentialNumber(tt.programType, tt.programID, tt.userID)

			assert.Equal(t, tt.want, credential)
			assert.Regexp(t, certificates.CredentialPattern, credential)
		})
	}
}

func TestCredentialPattern(t *testing.T) {
	assert.Regexp(t, certificates.CredentialPattern, "CRS0001-U0001")
	assert.NotRegexp(t, certificates.CredentialPattern, "CRS1-U1")
	assert.NotRegexp(t, certificates.CredentialPattern, "ABC0001-U0001")
}

/*
TestRenderPDF smoke-tests the certificate document renderer.
*/
func TestRenderPDF(t *testing.T) {
	holder := "Budi Santoso"
	title := "Pemrograman Dasar"
	certificate := &certificates.Certificate{
		ID:               1,
		UserID:           1,
		ProgramID:        1,
		CredentialNumber: "CRS0001-U0001",
		UserFullName:     &holder,
		ProgramTitle:     &title,
	}

	document, err := certificates.RenderPDF(certificate)

	assert.NoError(t, err)
	assert.NotEmpty(t, document)
	assert.Equal(t, "%PDF", string(document[:4]))
}
