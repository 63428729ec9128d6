// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package feedbacks

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// Handler implements the HTTP layer for feedback.
type Handler struct {
	feedbackService *Service
}

// NewHandler constructs a new feedbacks [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{feedbackService: service}
}

// Routes returns a [chi.Router] with the feedback endpoints.
//
// Submission is public; everything else is admin-only.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.create)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleAdmin}}))

		admin.Get("/", handler.list)
		admin.Get("/{id}", handler.get)
		admin.Post("/{id}/responses", handler.respond)
		admin.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/feedbacks. Admin only.

Query:
  - email: exact submitter match
  - q: subject or body search
  - page, limit, sort
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.feedbackService.List(req.Context(), ListFilter{
		Email:  queryValues.Get("email"),
		Search: queryValues.Get("q"),
		Page:   pagination.FromRequest(req),
		Sort:   sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Feedbacks retrieved successfully.", result.Feedbacks, result.Pagination)
}

/*
GET /api/v1/feedbacks/{id}. Admin only.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	feedback, err := handler.feedbackService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Feedback retrieved successfully.", feedback)
}

// createRequest defines the expected JSON payload for a submission.
type createRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

/*
POST /api/v1/feedbacks. Public.
*/
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	var input createRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	feedback, err := handler.feedbackService.Create(req.Context(), CreateInput{
		FullName: input.FullName,
		Email:    input.Email,
		Subject:  input.Subject,
		Body:     input.Body,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Feedback created successfully.", feedback)
}

// respondRequest defines the expected JSON payload for an admin reply.
type respondRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/feedbacks/{id}/responses. Admin only.

Description: Records the reply and queues a notification mail to the
submitter.
*/
func (handler *Handler) respond(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	adminID, err := request.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input respondRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	response, err := handler.feedbackService.Respond(req.Context(), id, adminID, input.Body)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Response created successfully.", response)
}

/*
DELETE /api/v1/feedbacks/{id}. Admin only.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.feedbackService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Feedback deleted successfully.", nil)
}
