// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package request

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/internal/platform/sec"
	"github.com/informatics-lc/backend/internal/platform/validate"
)

// DecodeJSON reads the request body and decodes it into the target structure.
//
// Returns [validate.ErrInvalidJSON] if decoding fails.
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// IntParam retrieves a named URL parameter and parses it as a positive integer.
//
// Returns a 400 [apperr.Error] when the parameter is not a positive number.
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest(
			strconv.Quote(name)+" must be a positive number", name, raw)
	}
	return id, nil
}

// QueryInt retrieves a named query parameter and parses it as a positive integer.
func QueryInt(request *http.Request, name string) (int, error) {
	raw := request.URL.Query().Get(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest(
			strconv.Quote(name)+" must be a positive number", name, raw)
	}
	return id, nil
}

// Claims extracts the authenticated user claims from the request context.
//
// Returns nil if the request is not authenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetClaims(request.Context())
}

// RequiredClaims ensures the request is authenticated and returns the claims.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetClaims(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required", "authorization")
	}
	return claims, nil
}

// RequiredUserID returns the user id of the currently logged-in user.
func RequiredUserID(request *http.Request) (int, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return 0, err
	}
	return claims.SubjectID(), nil
}
