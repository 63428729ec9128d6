// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package discussions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/authz"
	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
	"github.com/informatics-lc/backend/pkg/convert"
	"github.com/informatics-lc/backend/pkg/pagination"
	"github.com/informatics-lc/backend/pkg/pointer"
)

// Handler implements the HTTP layer for discussions, comments, and likes.
type Handler struct {
	discussionService *Service
	commentOwner      *CommentOwnerLookup
}

// NewHandler constructs a new discussions [Handler].
func NewHandler(service *Service, commentOwner *CommentOwnerLookup) *Handler {
	return &Handler{discussionService: service, commentOwner: commentOwner}
}

// Routes returns a [chi.Router] with the discussion endpoints.
//
// Thread writes are admin-only; commenting and liking are open to any
// authenticated user; comment edits belong to the author or an admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(admin chi.Router) {
		admin.Use(authz.Require(authz.Config{Rules: []authz.Rule{authz.RuleAdmin}}))

		admin.Post("/", handler.create)
		admin.Patch("/{id}", handler.update)
		admin.Delete("/{id}", handler.delete)
	})

	router.Get("/{discussionId}/comments", handler.listComments)
	router.Post("/{discussionId}/comments", handler.createComment)
	router.Get("/{discussionId}/comments/{commentId}", handler.getComment)
	router.Post("/{discussionId}/comments/{commentId}/likes", handler.likeComment)

	authorOrAdmin := authz.Require(authz.Config{
		Rules:      []authz.Rule{authz.RuleSelf, authz.RuleAdmin},
		Owner:      handler.commentOwner,
		Param:      "commentId",
		OwnerQuery: authz.QueryProhibited,
	})

	router.With(authorOrAdmin).Patch("/{discussionId}/comments/{commentId}", handler.updateComment)
	router.With(authorOrAdmin).Delete("/{discussionId}/comments/{commentId}", handler.deleteComment)

	return router
}

/*
GET /api/v1/discussions.

Query:
  - programId: scoping
  - q: case/accent-insensitive title search
  - page, limit, sort
*/
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	result, err := handler.discussionService.List(req.Context(), ListFilter{
		ProgramID: convert.ToInt(queryValues.Get("programId")),
		Search:    queryValues.Get("q"),
		Page:      pagination.FromRequest(req),
		Sort:      sort,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Discussions retrieved successfully.", result.Discussions, result.Pagination)
}

/*
GET /api/v1/discussions/{id}.
*/
func (handler *Handler) get(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	discussion, err := handler.discussionService.Get(req.Context(), id)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Discussion retrieved successfully.", discussion)
}

// createRequest defines the expected JSON payload for a new thread.
type createRequest struct {
	ProgramID int    `json:"programId"`
	Title     string `json:"title"`
}

/*
POST /api/v1/discussions. Admin only.
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

	discussion, err := handler.discussionService.Create(req.Context(), userID, CreateInput{
		ProgramID: input.ProgramID,
		Title:     input.Title,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Discussion created successfully.", discussion)
}

// updateRequest defines the expected JSON payload for renaming a thread.
type updateRequest struct {
	Title string `json:"title"`
}

/*
PATCH /api/v1/discussions/{id}. Admin only.
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

	discussion, err := handler.discussionService.Update(req.Context(), id, input.Title)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Discussion updated successfully.", discussion)
}

/*
DELETE /api/v1/discussions/{id}. Admin only.
*/
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id, err := request.IntParam(req, "id")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.discussionService.Delete(req.Context(), id); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Discussion deleted successfully.", nil)
}

/*
GET /api/v1/discussions/{discussionId}/comments.

Query:
  - parentCommentId: absent selects top-level comments, present selects
    the direct replies of that comment
  - page, limit, sort (incl. "likesCount" / "-likesCount", "repliesCount")
*/
func (handler *Handler) listComments(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	queryValues := req.URL.Query()

	sort := queryValues.Get("sort")
	if sort == "" {
		sort = "id"
	}

	filter := CommentFilter{
		DiscussionID: discussionID,
		Page:         pagination.FromRequest(req),
		Sort:         sort,
	}
	if raw := queryValues.Get("parentCommentId"); raw != "" {
		filter.ParentCommentID = pointer.To(convert.ToInt(raw))
	}

	result, err := handler.discussionService.ListComments(req.Context(), filter)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Paginated(writer, "Comments retrieved successfully.", result.Comments, result.Pagination)
}

/*
GET /api/v1/discussions/{discussionId}/comments/{commentId}.

Query:
  - includeReplies: attach the direct replies, one level deep
*/
func (handler *Handler) getComment(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	commentID, err := request.IntParam(req, "commentId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	includeReplies := convert.ToBool(req.URL.Query().Get("includeReplies"))

	comment, err := handler.discussionService.GetComment(req.Context(), discussionID, commentID, includeReplies)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Comment retrieved successfully.", comment)
}

// commentRequest defines the expected JSON payload for a new comment.
type commentRequest struct {
	ParentCommentID *int   `json:"parentCommentId"`
	Body            string `json:"body"`
}

/*
POST /api/v1/discussions/{discussionId}/comments.
*/
func (handler *Handler) createComment(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	userID, err := request.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input commentRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	comment, err := handler.discussionService.CreateComment(req.Context(), discussionID, userID, CommentInput{
		ParentCommentID: input.ParentCommentID,
		Body:            input.Body,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Comment created successfully.", comment)
}

// commentUpdateRequest defines the expected JSON payload for a comment edit.
type commentUpdateRequest struct {
	Body string `json:"body"`
}

/*
PATCH /api/v1/discussions/{discussionId}/comments/{commentId}.
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	commentID, err := request.IntParam(req, "commentId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	var input commentUpdateRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	comment, err := handler.discussionService.UpdateComment(req.Context(), discussionID, commentID, input.Body)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Comment updated successfully.", comment)
}

/*
DELETE /api/v1/discussions/{discussionId}/comments/{commentId}.
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	commentID, err := request.IntParam(req, "commentId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.discussionService.DeleteComment(req.Context(), discussionID, commentID); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Comment deleted successfully.", nil)
}

/*
POST /api/v1/discussions/{discussionId}/comments/{commentId}/likes.

Description: At most one like per user per comment; a duplicate fails with
a conflict. Returns the updated like count.
*/
func (handler *Handler) likeComment(writer http.ResponseWriter, req *http.Request) {
	discussionID, err := request.IntParam(req, "discussionId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	commentID, err := request.IntParam(req, "commentId")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	userID, err := request.RequiredUserID(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	result, err := handler.discussionService.LikeComment(req.Context(), discussionID, commentID, userID)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "Like created successfully.", result)
}
