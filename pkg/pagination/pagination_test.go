// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/pkg/pagination"
)

/*
TestNew_Envelope tests the pagination metadata across page positions.
*/
func TestNew_Envelope(t *testing.T) {
	tests := []struct {
		name           string
		totalRecords   int
		currentRecords int
		currentPage    int
		limit          int
		wantTotalPages int
		wantNext       *int
		wantPrev       *int
	}{
		{"first_of_three", 25, 10, 1, 10, 3, intPtr(2), nil},
		{"middle_of_three", 25, 10, 2, 10, 3, intPtr(3), intPtr(1)},
		{"last_partial_page", 25, 5, 3, 10, 3, nil, intPtr(2)},
		{"single_page", 7, 7, 1, 10, 1, nil, nil},
		{"empty_set", 0, 0, 1, 10, 0, nil, nil},
		{"exact_multiple", 20, 10, 2, 10, 2, nil, intPtr(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope := pagination.New(tt.totalRecords, tt.currentRecords, tt.currentPage, tt.limit)

			assert.Equal(t, tt.totalRecords, envelope.TotalRecords)
			assert.Equal(t, tt.currentRecords, envelope.CurrentRecords)
			assert.Equal(t, tt.currentPage, envelope.CurrentPage)
			assert.Equal(t, tt.wantTotalPages, envelope.TotalPages)
			assert.Equal(t, tt.wantNext, envelope.NextPage)
			assert.Equal(t, tt.wantPrev, envelope.PrevPage)
		})
	}
}

/*
TestNew_OutOfRangePrev tests the prev-page boundary: the first page past the
end still links back, anything further yields null.
*/
func TestNew_OutOfRangePrev(t *testing.T) {
	// 25 records, limit 10 -> 3 total pages.
	justPast := pagination.New(25, 0, 4, 10)
	require.NotNil(t, justPast.PrevPage)
	assert.Equal(t, 3, *justPast.PrevPage)
	assert.Nil(t, justPast.NextPage)

	farPast := pagination.New(25, 0, 5, 10)
	assert.Nil(t, farPast.PrevPage)
	assert.Nil(t, farPast.NextPage)
}

/*
TestFromRequest tests query-parameter parsing and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit", "page=3&limit=25", 3, 25},
		{"zero_page", "page=0", 1, 10},
		{"negative_page", "page=-2", 1, 10},
		{"garbage_page", "page=abc", 1, 10},
		{"limit_over_max", "limit=500", 1, 10},
		{"limit_at_max", "limit=100", 1, 100},
		{"zero_limit", "limit=0", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tt.query, nil)
			params := pagination.FromRequest(req)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, pagination.Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 50, pagination.Params{Page: 3, Limit: 25}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 10}.Offset())
}

func intPtr(n int) *int { return &n }
