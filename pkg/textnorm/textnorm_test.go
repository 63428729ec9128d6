// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/informatics-lc/backend/pkg/textnorm"
)

/*
TestFold tests accent stripping, case folding, and whitespace trimming.
*/
func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain_lowercase", "pemrograman dasar", "pemrograman dasar"},
		{"mixed_case", "Pemrograman Dasar", "pemrograman dasar"},
		{"accented", "Café Résumé", "cafe resume"},
		{"surrounding_whitespace", "  Kelas Go  ", "kelas go"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Fold(tt.input))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%golang%", textnorm.LikePattern("Golang"))
	assert.Equal(t, `%100\%\_done%`, textnorm.LikePattern("100%_done"))
	assert.Equal(t, `%a\\b%`, textnorm.LikePattern(`a\b`))
}
