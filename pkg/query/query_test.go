// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/pkg/query"
)

/*
TestCSV tests comma splitting, trimming, and the empty-value cases.
*/
func TestCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single_value",
			input: "Unverified",
			want:  []string{"Unverified"},
		},
		{
			name:  "comma_separated_values",
			input: "Unverified,Expired",
			want:  []string{"Unverified", "Expired"},
		},
		{
			name:  "trims_whitespace",
			input: " Unverified , Expired ",
			want:  []string{"Unverified", "Expired"},
		},
		{
			name:  "drops_empty_parts",
			input: "Unverified,,Expired,",
			want:  []string{"Unverified", "Expired"},
		},
		{
			name:  "empty_value_is_nil",
			input: "",
			want:  nil,
		},
		{
			name:  "only_commas_is_nil",
			input: ",,",
			want:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, query.CSV(tc.input))
		})
	}
}

func TestHasAll(t *testing.T) {
	assert.True(t, query.HasAll([]string{"Unverified", "all"}))
	assert.False(t, query.HasAll([]string{"Unverified", "Expired"}))
	assert.False(t, query.HasAll(nil))
}
