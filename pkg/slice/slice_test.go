// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/pkg/slice"
)

/*
TestMap tests order preservation and the nil passthrough.
*/
func TestMap(t *testing.T) {
	t.Run("projects_in_order", func(t *testing.T) {
		got := slice.Map([]int{3, 1, 2}, strconv.Itoa)

		assert.Equal(t, []string{"3", "1", "2"}, got)
	})

	t.Run("nil_stays_nil", func(t *testing.T) {
		assert.Nil(t, slice.Map(nil, strconv.Itoa))
	})

	t.Run("empty_stays_empty", func(t *testing.T) {
		got := slice.Map([]int{}, strconv.Itoa)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
