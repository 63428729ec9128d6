// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/internal/invoices"
)

/*
TestNewVirtualAccountNumber tests the generated account number format:
16-18 digits with a nonzero leading digit.
*/
func TestNewVirtualAccountNumber(t *testing.T) {
	format := regexp.MustCompile(`^[1-9]\d{15,17}$`)
	lengths := map[int]bool{}

	for i := 0; i < 200; i++ {
		number := invoices.NewVirtualAccountNumber()

		assert.Regexp(t, format, number)
		lengths[len(number)] = true
	}

	// All three widths should appear over enough draws.
	assert.True(t, lengths[16] || lengths[17] || lengths[18])
	for length := range lengths {
		assert.GreaterOrEqual(t, length, 16)
		assert.LessOrEqual(t, length, 18)
	}
}

func TestStatuses(t *testing.T) {
	assert.Equal(t, []string{"Unverified", "Verified", "Expired"}, invoices.Statuses())
}
