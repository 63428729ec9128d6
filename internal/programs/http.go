// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package programs

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/convert"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// Handler implements the HTTP layer for the program catalogue.
type Handler struct {
	programService *Service
}

// NewHandler constructs a new programs [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{programService: service}
}

// Routes returns a [chi.Router] with the catalogue endpoints.
//
// Reads are public; writes are admin-only; module content sits behind the
// paid-enrollment gate.
func (handler *Handler) Routes(gate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth)
		admin.Use(authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleAdmin}}))

		admin.Post("/", handler.create)
		admin.Patch("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
		admin.Post("/{programId}/modules", handler.createModule)
	})

	router.Group(func(content chi.Router) {
		content.Use(middleware.RequireAuth)
		content.Use(gate)

		content.Get("/{programId}/modules", handler.listModules)
	})

	return router
}

/*
GET /api/v1/programs.

Query:
  - type: presence-gated equality filter ("all" is a no-op)
  - price.gte / price.lte: inclusive price range (lower bound defaults to 0)
  - q: case/accent-insensitive title search
  - page, limit, sort (incl. "price" / "-price")
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	filter := ListFilter{
		Type:     queryValues.Get("type"),
		PriceMin: int64(convert.ToInt(queryValues.Get("price.gte"))),
		Search:   queryValues.Get("q"),
		Page:     pagination.FromRequest(req),
		Sort:     sort,
	}

	if raw := queryValues.Get("price.lte"); raw != "" {
		filter.PriceMax = pointer.To(int64(convert.ToInt(raw)))
	}

	result, err := handler.programService.List(req.Context(), filter)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Programs retrieved successfully.", result.Programs, result.Pagination)
}

/*
GET /api/v1/programs/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	program, err := handler.programService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Program retrieved successfully.", program)
}

// detailRequest mirrors [DetailInput] in transport form.
type detailRequest struct {
	Seminar     *SeminarDetail     `json:"seminar"`
	Workshop    *WorkshopDetail    `json:"workshop"`
	Competition *CompetitionDetail `json:"competition"`
}

// createRequest defines the expected JSON payload for program creation.
type createRequest struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Type          string        `json:"type"`
	PriceIDR      int64         `json:"priceIdr"`
	AvailableDate time.Time     `json:"availableDate"`
	PictureURL    *string       `json:"pictureUrl"`
	Detail        detailRequest `json:"detail"`
}

/*
POST /api/v1/programs. Admin only.
*/
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	var input createRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	program, err := handler.programService.Create(req.Context(), CreateInput{
		Title:         input.Title,
		Description:   input.Description,
		Type:          input.Type,
		PriceIDR:      input.PriceIDR,
		AvailableDate: input.AvailableDate,
		PictureURL:    input.PictureURL,
		Detail: DetailInput{
			Seminar:     input.Detail.Seminar,
			Workshop:    input.Detail.Workshop,
			Competition: input.Detail.Competition,
		},
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Program created successfully.", program)
}

// updateRequest defines the expected JSON payload for program updates.
type updateRequest struct {
	Title         *string        `json:"title"`
	Description   *string        `json:"description"`
	Type          *string        `json:"type"`
	PriceIDR      *int64         `json:"priceIdr"`
	AvailableDate *time.Time     `json:"availableDate"`
	PictureURL    *string        `json:"pictureUrl"`
	Detail        *detailRequest `json:"detail"`
}

/*
PATCH /api/v1/programs/{id}. Admin only; type is immutable.
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

	serviceInput := UpdateInput{
		Title:         input.Title,
		Description:   input.Description,
		Type:          input.Type,
		PriceIDR:      input.PriceIDR,
		AvailableDate: input.AvailableDate,
		PictureURL:    input.PictureURL,
	}
	if input.Detail != nil {
		serviceInput.Detail = &DetailInput{
			Seminar:     input.Detail.Seminar,
			Workshop:    input.Detail.Workshop,
			Competition: input.Detail.Competition,
		}
	}

	program, err := handler.programService.Update(req.Context(), id, serviceInput)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Program updated successfully.", program)
}

/*
DELETE /api/v1/programs/{id}. Admin only; soft delete.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.programService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Program deleted successfully.", nil)
}

/*
GET /api/v1/programs/{programId}/modules.

Description: Course content; reachable by admins or users holding a paid
enrollment (enforced by the gate middleware).
*/
func (handler *Handler) listModules(writer http.ResponseWriter, req *http.Request) {
	programID, err := request.IntParam(req, "programId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	modules, err := handler.programService.ListModules(req.Context(), programID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Modules retrieved successfully.", modules)
}

// createModuleRequest defines the expected JSON payload for a new module.
type createModuleRequest struct {
	Title       string `json:"title"`
	MaterialURL string `json:"materialUrl"`
	OrderNumber int    `json:"orderNumber"`
}

/*
POST /api/v1/programs/{programId}/modules. Admin only.
*/
func (handler *Handler) createModule(writer http.ResponseWriter, req *http.Request) {
	programID, err := request.IntParam(req, "programId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input createModuleRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	module, err := handler.programService.CreateModule(req.Context(), programID, CreateModuleInput{
		Title:       input.Title,
		MaterialURL: input.MaterialURL,
		OrderNumber: input.OrderNumber,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Module created successfully.", module)
}
