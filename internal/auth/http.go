// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/informatics-lc/backend/internal/platform/middleware"
	"github.com/informatics-lc/backend/internal/platform/request"
	"github.com/informatics-lc/backend/internal/platform/respond"
)

// Handler implements the HTTP layer for authentication.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] with the authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/logout", handler.logout)
	})

	return router
}

// registerRequest defines the expected JSON payload for registration.
type registerRequest struct {
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phoneNumber"`
}

/*
POST /api/v1/auth/register.

Response:
  - 201: the created user
  - 400: validation failures
  - 409: email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, req *http.Request) {
	var input registerRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	user, err := handler.authService.Register(req.Context(), RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		Password:    input.Password,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.Created(writer, "User registered successfully.", user)
}

// loginRequest defines the expected JSON payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/login.

Response:
  - 200: access token + user
  - 401: invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, req *http.Request) {
	var input loginRequest
	if err := request.DecodeJSON(req, &input); err != nil {
		respond.Error(writer, req, err)
		return
	}

	result, err := handler.authService.Login(req.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Login successful.", result)
}

/*
POST /api/v1/auth/logout.

Description: Revokes the presented token's jti. Requires authentication.

Response:
  - 200: logout confirmation
  - 401: missing or already-revoked token
*/
func (handler *Handler) logout(writer http.ResponseWriter, req *http.Request) {
	claims, err := request.RequiredClaims(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	if err := handler.authService.Logout(req.Context(), claims); err != nil {
		respond.Error(writer, req, err)
		return
	}

	respond.OK(writer, "Logout successful.", nil)
}
