// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package sec provides cryptographic primitives and token management.

It isolates security-sensitive code (hashing, JWT signing) from the domain
logic. It acts as an infrastructure service injected into the application
layer via narrow interfaces.
*/
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the subject id and admin flag directly inside the JWT, the
// authentication middleware can reconstruct the acting principal WITHOUT
// querying the database on every single API request. The `jti` claim (in
// [jwt.RegisteredClaims.ID]) lets logout revoke individual tokens via Redis.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Admin is true for administrator accounts.
	Admin bool `json:"admin"`
}

// SubjectID returns the numeric user id carried in the `sub` claim.
// It returns 0 when the claim is missing or malformed.
func (claims *AuthClaims) SubjectID() int {
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0
	}
	return id
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer}
}

// GenerateAccessToken creates a new JWT access token for a user.
//
// Each token carries a fresh `jti` so that individual sessions can be
// revoked without invalidating the user's other tokens.
func (service *TokenService) GenerateAccessToken(userID int, isAdmin bool, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    service.issuer,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Admin: isAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a JWT string.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.SubjectID() <= 0 || claims.ID == "" {
		return nil, fmt.Errorf("sec: token payload is incomplete")
	}

	return claims, nil
}
