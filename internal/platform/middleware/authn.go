// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Authentication middleware: token extraction, verification, and the
// revocation check that makes logout effective before token expiry.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// TokenRevocations reports whether a specific token (user id + jti) has been
// revoked by logout. Implemented by the auth feature's Redis store.
type TokenRevocations interface {
	IsRevoked(ctx context.Context, userID int, tokenID string) (bool, error)
}

// Authenticate extracts and verifies the JWT from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, parse and verify the JWT via [TokenVerifier].
//  4. Reject tokens whose jti has been revoked by logout.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
func Authenticate(verifier TokenVerifier, revocations TokenRevocations) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format", "authorization"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			tokenString := parts[1]
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token", "authorization"))
				return
			}

			// ── 4. Revocation Check ───────────────────────────────────────────
			if revocations != nil {
				revoked, err := revocations.IsRevoked(request.Context(), claims.SubjectID(), claims.ID)
				if err != nil {
					respond.Error(writer, request, apperr.Internal(err))
					return
				}
				if revoked {
					respond.Error(writer, request, apperr.Unauthorized("Token has been revoked", "authorization"))
					return
				}
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required", "authorization"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests whose principal is not an administrator.
//
// It automatically implies [RequireAuth], so routes need only mount one.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetClaims(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required", "authorization"))
			return
		}
		if !claims.Admin {
			respond.Error(writer, request, apperr.Forbidden())
			return
		}
		next.ServeHTTP(writer, request)
	})
}
