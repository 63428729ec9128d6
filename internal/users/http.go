// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// Handler implements the HTTP layer for user administration.
type Handler struct {
	userService *Service
}

// NewHandler constructs a new users [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{userService: service}
}

// Routes returns a [chi.Router] with the user endpoints.
//
// The listing is admin-only; single-user operations are granted to the
// subject themselves or to administrators via the path-identity rule.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(authz.Require(authz.Config{
		Rules: []authz.Rule{authz.RuleAdmin},
	})).Get("/", handler.list)

	selfOrAdmin := authz.Require(authz.Config{
		Rules: []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		Param: "id",
	})

	router.With(selfOrAdmin).Get("/{id}", handler.get)
	router.With(selfOrAdmin).Patch("/{id}", handler.update)
	router.With(selfOrAdmin).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/users.

Query:
  - role, level: presence-gated equality filters ("all" is a no-op)
  - q: case/accent-insensitive name or email search
  - page, limit, sort
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.userService.List(req.Context(), ListFilter{
		Role:        queryValues.Get("role"),
		MemberLevel: queryValues.Get("level"),
		Search:      queryValues.Get("q"),
		Page:        pagination.FromRequest(req),
		Sort:        sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Users retrieved successfully.", result.Users, result.Pagination)
}

/*
GET /api/v1/users/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.userService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "User retrieved successfully.", user)
}

// updateRequest defines the expected JSON payload for profile updates.
type updateRequest struct {
	FullName    *string `json:"fullName"`
	Password    *string `json:"password"`
	MemberLevel *string `json:"memberLevel"`
	PhoneNumber *string `json:"phoneNumber"`
	PictureURL  *string `json:"pictureUrl"`
}

/*
PATCH /api/v1/users/{id}.
*/
func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input updateRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.userService.Update(req.Context(), id, UpdateInput{
		FullName:    input.FullName,
		Password:    input.Password,
		MemberLevel: input.MemberLevel,
		PhoneNumber: input.PhoneNumber,
		PictureURL:  input.PictureURL,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "User updated successfully.", user)
}

/*
DELETE /api/v1/users/{id}.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.userService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "User deleted successfully.", nil)
}
