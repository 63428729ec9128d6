// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package invoices

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/convert"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/query"
)

// Handler implements the HTTP layer for invoices.
type Handler struct {
	invoiceService *Service
	owner          *OwnerLookup
}

// NewHandler constructs a new invoices [Handler].
func NewHandler(service *Service, owner *OwnerLookup) *Handler {
	return &Handler{invoiceService: service, owner: owner}
}

// Routes returns a [chi.Router] with the invoice endpoints.
//
// Listing scopes non-admins to their own invoices; single-record routes
// resolve ownership through the enrollment join. Deletion stays admin-only.
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
	router.With(ownRecord).Post("/{id}/pay", handler.pay)

	router.With(authz.Require(authz.Config{
		Rules: []authz.Rule{authz.RuleAdmin},
	})).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/invoices.

Query:
  - status: comma-separated statuses ("all" is a no-op)
  - programType: presence-gated equality filter ("all" is a no-op)
  - userId: scoping; injected for non-admin callers
  - page, limit, sort (incl. "paymentDue" / "-paymentDue")
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.invoiceService.List(req.Context(), ListFilter{
		Statuses:    query.CSV(queryValues.Get("status")),
		ProgramType: queryValues.Get("programType"),
		UserID:      convert.ToInt(queryValues.Get("userId")),
		Page:        pagination.FromRequest(req),
		Sort:        sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Invoices retrieved successfully.", result.Invoices, result.Pagination)
}

/*
GET /api/v1/invoices/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	invoice, err := handler.invoiceService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Invoice retrieved successfully.", invoice)
}

/*
POST /api/v1/invoices/{id}/pay.

Description: Settles the invoice at its full amount and activates the
owning enrollment.
*/
func (handler *Handler) pay(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	invoice, err := handler.invoiceService.Pay(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Payment created successfully.", invoice)
}

/*
DELETE /api/v1/invoices/{id}. Admin only.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.invoiceService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Invoice deleted successfully.", nil)
}
