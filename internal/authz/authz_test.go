// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package authz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/internal/platform/sec"
)

// fakeOwner resolves record ownership from a fixed table.
type fakeOwner struct {
	owners map[int]int
}

func (f fakeOwner) ResourceName() string { return "Enrollment" }

func (f fakeOwner) OwnerID(_ context.Context, id int) (int, bool, error) {
	owner, ok := f.owners[id]
	return owner, ok, nil
}

// newRequest builds an authenticated request carrying the given path
// parameter through a chi route context.
func newRequest(t *testing.T, target string, subject int, admin bool, params map[string]string) *http.Request {
	t.Helper()

	req := httptest.NewRequest("GET", target, nil)

	routeCtx := chi.NewRouteContext()
	for key, value := range params {
		routeCtx.URLParams.Add(key, value)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)

	if subject > 0 {
		claims := &sec.AuthClaims{Admin: admin}
		claims.Subject = strconv.Itoa(subject)
		ctx = ctxutil.WithClaims(ctx, claims)
	}

	return req.WithContext(ctx)
}

// serve runs the middleware with a handler that records the effective
// userId query parameter it saw.
func serve(middleware func(http.Handler) http.Handler, req *http.Request) (*httptest.ResponseRecorder, string) {
	var seenUserID string
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = r.URL.Query().Get("userId")
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder, seenUserID
}

/*
TestRequire_AdminRule tests the admin grant and the anonymous rejection.
*/
func TestRequire_AdminRule(t *testing.T) {
	middleware := authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleAdmin}})

	t.Run("admin_granted", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/", 1, true, nil))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("member_forbidden", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/", 1, false, nil))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("anonymous_unauthorized", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/", 0, false, nil))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

/*
TestRequire_PathIdentity tests "self" where the path parameter is the user
id itself (e.g. /users/{id}).
*/
func TestRequire_PathIdentity(t *testing.T) {
	middleware := authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleSelf, authz.RuleAdmin}})

	t.Run("own_id_granted", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/users/7", 7, false, map[string]string{"id": "7"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("other_id_forbidden", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/users/8", 7, false, map[string]string{"id": "8"}))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_reaches_any_id", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/users/8", 7, true, map[string]string{"id": "8"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

/*
TestRequire_QueryRequired tests list-route scoping: non-admin callers are
forced into their own userId scope, implicitly or explicitly.
*/
func TestRequire_QueryRequired(t *testing.T) {
	middleware := authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		OwnerQuery: authz.QueryRequired,
	})

	t.Run("missing_userid_is_injected", func(t *testing.T) {
		recorder, seenUserID := serve(middleware, newRequest(t, "/enrollments", 7, false, nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "7", seenUserID)
	})

	t.Run("own_userid_granted", func(t *testing.T) {
		recorder, seenUserID := serve(middleware, newRequest(t, "/enrollments?userId=7", 7, false, nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "7", seenUserID)
	})

	t.Run("foreign_userid_forbidden", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments?userId=8", 7, false, nil))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_scopes_freely", func(t *testing.T) {
		recorder, seenUserID := serve(middleware, newRequest(t, "/enrollments?userId=8", 7, true, nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "8", seenUserID)
	})
}

/*
TestRequire_OwnerLookup tests record-ownership resolution, including the
miss-beats-forbidden ordering.
*/
func TestRequire_OwnerLookup(t *testing.T) {
	owner := fakeOwner{owners: map[int]int{10: 7}}
	middleware := authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		Owner:      owner,
		Param:      "id",
		OwnerQuery: authz.QueryProhibited,
	})

	t.Run("owner_granted", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/10", 7, false, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("non_owner_forbidden", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/10", 8, false, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing_record_is_404_even_for_non_owner", func(t *testing.T) {
		// Existence wins over permission: the caller learns the record is
		// gone, not that it belongs to someone else.
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/99", 8, false, map[string]string{"id": "99"}))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed_id_is_404", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/abc", 7, false, map[string]string{"id": "abc"}))
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("prohibited_query_falls_through_to_forbidden", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/10?userId=7", 7, false, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_bypasses_lookup", func(t *testing.T) {
		recorder, _ := serve(middleware, newRequest(t, "/enrollments/10", 99, true, map[string]string{"id": "10"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

// fakeEnrollments backs the program-access gate.
type fakeEnrollments struct {
	active map[[2]int]bool
}

func (f fakeEnrollments) HasActiveEnrollment(_ context.Context, userID, programID int) (bool, error) {
	return f.active[[2]int{userID, programID}], nil
}

/*
TestProgramAccess tests the paid-enrollment gate on program content.
*/
func TestProgramAccess(t *testing.T) {
	gate := authz.ProgramAccess(fakeEnrollments{active: map[[2]int]bool{
		{7, 5}: true,
	}})

	t.Run("active_enrollment_granted", func(t *testing.T) {
		recorder, _ := serve(gate, newRequest(t, "/programs/5/modules", 7, false, map[string]string{"programId": "5"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("no_enrollment_forbidden", func(t *testing.T) {
		recorder, _ := serve(gate, newRequest(t, "/programs/5/modules", 8, false, map[string]string{"programId": "5"}))
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("admin_granted_without_enrollment", func(t *testing.T) {
		recorder, _ := serve(gate, newRequest(t, "/programs/5/modules", 99, true, map[string]string{"programId": "5"}))
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("anonymous_unauthorized", func(t *testing.T) {
		recorder, _ := serve(gate, newRequest(t, "/programs/5/modules", 0, false, map[string]string{"programId": "5"}))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed_program_id_is_400", func(t *testing.T) {
		recorder, _ := serve(gate, newRequest(t, "/programs/abc/modules", 7, false, map[string]string{"programId": "abc"}))
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestRequire_RuleOrder(t *testing.T) {
	// A self-only policy must not grant admins implicitly.
	middleware := authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleSelf}})

	recorder, _ := serve(middleware, newRequest(t, "/users/8", 7, true, map[string]string{"id": "8"}))

	require.Equal(t, http.StatusForbidden, recorder.Code)
}
