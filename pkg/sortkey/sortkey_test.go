// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package sortkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/pkg/sortkey"
)

/*
TestResolve tests key mapping and the descending prefix.
*/
func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		resource      sortkey.Resource
		sortKey       string
		wantColumn    string
		wantDirection sortkey.Direction
	}{
		{"mapped_ascending", sortkey.Programs, "price", "price_idr", sortkey.Ascending},
		{"mapped_descending", sortkey.Programs, "-price", "price_idr", sortkey.Descending},
		{"camel_case_mapping", sortkey.Programs, "availableDate", "available_date", sortkey.Ascending},
		{"enrollment_progress", sortkey.Enrollments, "-progress", "progress_percentage", sortkey.Descending},
		{"invoice_due", sortkey.Invoices, "paymentDue", "payment_due_datetime", sortkey.Ascending},
		{"unmapped_passthrough", sortkey.Comments, "likesCount", "likesCount", sortkey.Ascending},
		{"unmapped_descending", sortkey.Comments, "-repliesCount", "repliesCount", sortkey.Descending},
		{"plain_column", sortkey.Users, "fullName", "full_name", sortkey.Ascending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, direction := sortkey.Resolve(tt.resource, tt.sortKey)

			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantDirection, direction)
		})
	}
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "created_at ASC", sortkey.OrderClause(sortkey.Discussions, "createdAt"))
	assert.Equal(t, "created_at DESC", sortkey.OrderClause(sortkey.Discussions, "-createdAt"))
	assert.Equal(t, "issued_at DESC", sortkey.OrderClause(sortkey.Certificates, "-issuedAt"))
}
