// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package enrollments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/convert"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// Handler implements the HTTP layer for enrollments.
type Handler struct {
	enrollmentService *Service
	owner             *OwnerLookup
}

// NewHandler constructs a new enrollments [Handler].
func NewHandler(service *Service, owner *OwnerLookup) *Handler {
	return &Handler{enrollmentService: service, owner: owner}
}

// Routes returns a [chi.Router] with the enrollment endpoints.
//
// Listing scopes non-admins to their own enrollments; single-record routes
// resolve ownership against the database. Deletion stays admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		OwnerQuery: authz.QueryRequired,
	})).Get("/", handler.list)

	router.Post("/", handler.create)

	ownRecord := authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		Owner:      handler.owner,
		Param:      "id",
		OwnerQuery: authz.QueryProhibited,
	})

	router.With(ownRecord).Get("/{id}", handler.get)
	router.With(ownRecord).Post("/{id}/modules/{moduleId}", handler.completeModule)

	router.With(authz.Require(authz.Config{
		Rules: []authz.Rule{authz.RuleAdmin},
	})).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/enrollments.

Query:
  - status, programType: presence-gated equality filters ("all" is a no-op)
  - userId: scoping; injected for non-admin callers
  - programId: scoping
  - page, limit, sort (incl. "progress" / "-progress")
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.enrollmentService.List(req.Context(), ListFilter{
		Status:      queryValues.Get("status"),
		ProgramType: queryValues.Get("programType"),
		UserID:      convert.ToInt(queryValues.Get("userId")),
		ProgramID:   convert.ToInt(queryValues.Get("programId")),
		Page:        pagination.FromRequest(req),
		Sort:        sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Enrollments retrieved successfully.", result.Enrollments, result.Pagination)
}

/*
GET /api/v1/enrollments/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	enrollment, err := handler.enrollmentService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Enrollment retrieved successfully.", enrollment)
}

// createRequest defines the expected JSON payload for enrolling.
type createRequest struct {
	ProgramID int `json:"programId"`
}

/*
POST /api/v1/enrollments.

Description: Enrolls the authenticated user; the program comes from the
body, the user always from the token.
*/
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	userID, err := request.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	enrollment, err := handler.enrollmentService.Create(req.Context(), userID, input.ProgramID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Enrollment created successfully.", enrollment)
}

/*
POST /api/v1/enrollments/{id}/modules/{moduleId}.

Description: Marks a course module as finished and returns the recomputed
progress.
*/
func (handler *Handler) completeModule(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	moduleID, err := request.IntParam(req, "moduleId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	progress, err := handler.enrollmentService.CompleteModule(req.Context(), id, moduleID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Module completed successfully.", progress)
}

/*
DELETE /api/v1/enrollments/{id}. Admin only.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.enrollmentService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Enrollment deleted successfully.", nil)
}
