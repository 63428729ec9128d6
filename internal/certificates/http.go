// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package certificates

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/convert"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// Handler implements the HTTP layer for certificates.
type Handler struct {
	certificateService *Service
	owner              *OwnerLookup
}

// NewHandler constructs a new certificates [Handler].
func NewHandler(service *Service, owner *OwnerLookup) *Handler {
	return &Handler{certificateService: service, owner: owner}
}

// Routes returns a [chi.Router] with the certificate endpoints.
//
// Listing scopes non-admins to their own certificates; issuance and
// deletion are admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		OwnerQuery: authz.QueryRequired,
	})).Get("/", handler.list)

	ownRecord := authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		Owner:      handler.owner,
		Param:      "id",
		OwnerQuery: authz.QueryProhibited,
	})

	router.With(ownRecord).Get("/{id}", handler.get)
	router.With(ownRecord).Get("/{id}/pdf", handler.renderPDF)

	router.Group(func(admin chi.Router) {
		admin.Use(authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleAdmin}}))

		admin.Post("/", handler.issue)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/certificates.

Query:
  - credential: exact credential-number match
  - userId: scoping; injected for non-admin callers
  - programId, type: program scoping ("all" is a no-op)
  - page, limit, sort
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.certificateService.List(req.Context(), ListFilter{
		Credential:  queryValues.Get("credential"),
		UserID:      convert.ToInt(queryValues.Get("userId")),
		ProgramID:   convert.ToInt(queryValues.Get("programId")),
		ProgramType: queryValues.Get("type"),
		Page:        pagination.FromRequest(req),
		Sort:        sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Certificates retrieved successfully.", result.Certificates, result.Pagination)
}

/*
GET /api/v1/certificates/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	certificate, err := handler.certificateService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Certificate retrieved successfully.", certificate)
}

/*
GET /api/v1/certificates/{id}/pdf.

Description: Streams the rendered certificate document.
*/
func (handler *Handler) renderPDF(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	document, err := handler.certificateService.Render(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	writer.Header().Set("Content-Type", "application/pdf")
	writer.Header().Set("Content-Length", strconv.Itoa(len(document)))
	writer.Header().Set("Content-Disposition", `inline; filename="certificate.pdf"`)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(document)
}

// issueRequest defines the expected JSON payload for issuance.
type issueRequest struct {
	UserID    int `json:"userId"`
	ProgramID int `json:"programId"`
}

/*
POST /api/v1/certificates. Admin only.
*/
func (handler *Handler) issue(writer http.ResponseWriter, req *http.Request) {
	var input issueRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	certificate, err := handler.certificateService.Issue(req.Context(), input.UserID, input.ProgramID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Certificate issued successfully.", certificate)
}

/*
DELETE /api/v1/certificates/{id}. Admin only.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.certificateService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Certificate deleted successfully.", nil)
}
