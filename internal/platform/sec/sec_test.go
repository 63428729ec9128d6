// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/platform/sec"
)

/*
TestHashPassword tests bcrypt hashing and verification round trips.
*/
func TestHashPassword(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("wrong password", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", "not-a-hash"))
}

/*
TestTokenService_RoundTrip tests token generation and verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := sec.NewTokenService("test-secret", "learning-center")

	token, err := service.GenerateAccessToken(42, true, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.SubjectID())
	assert.True(t, claims.Admin)
	assert.NotEmpty(t, claims.ID, "token must carry a jti for revocation")
	assert.Equal(t, "learning-center", claims.Issuer)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	service := sec.NewTokenService("test-secret", "learning-center")

	t.Run("wrong_secret", func(t *testing.T) {
		other := sec.NewTokenService("other-secret", "learning-center")
		token, err := other.GenerateAccessToken(1, false, time.Hour)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken(1, false, -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := service.VerifyToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestAuthClaims_SubjectID(t *testing.T) {
	claims := &sec.AuthClaims{}
	claims.Subject = "17"
	assert.Equal(t, 17, claims.SubjectID())

	claims.Subject = "abc"
	assert.Equal(t, 0, claims.SubjectID())
}
