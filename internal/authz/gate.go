// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Program-access gate: content routes under a program are reachable only by
// administrators or by users holding a paid (non-Unpaid) enrollment.
package authz

import (
	"context"
	"net/http"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
)

// EnrollmentChecker reports whether a user holds an active (anything but
// Unpaid) enrollment in a program. Implemented by the enrollments store.
type EnrollmentChecker interface {
	HasActiveEnrollment(ctx context.Context, userID, programID int) (bool, error)
}

// ProgramAccess guards program content (module listings, materials).
//
// # Decision
//
//   - Admin principal: granted.
//   - Enrollment (programId, userId) exists with status != 'Unpaid': granted.
//   - Otherwise: the canonical 403.
//
// The program id is read from the "programId" path parameter.
func ProgramAccess(enrollments EnrollmentChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			claims := ctxutil.GetClaims(req.Context())
			if claims == nil {
				respond.Error(writer, req, apperr.Unauthorized("Authentication required", "authorization"))
				return
			}

			if claims.Admin {
				next.ServeHTTP(writer, req)
				return
			}

			programID, err := request.IntParam(req, "programId")
			if err != nil {
				respond.Error(writer, req, err)
				return
			}

			active, err := enrollments.HasActiveEnrollment(req.Context(), claims.SubjectID(), programID)
			if err != nil {
				respond.Error(writer, req, err)
				return
			}

			if !active {
				respond.Error(writer, req, apperr.Forbidden())
				return
			}

			next.ServeHTTP(writer, req)
		})
	}
}
