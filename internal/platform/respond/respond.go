// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// It ensures that every response (success or error) across the entire
// application follows a strict, predictable JSON envelope structure. This
// consistency is crucial for the web frontend to parse data robustly.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/informatics-lc/backend/internal/platform/apperr"
	"github.com/informatics-lc/backend/internal/platform/ctxutil"
	"github.com/informatics-lc/backend/pkg/pagination"
)

// Envelope is the JSON envelope shared by every API response.
//
// # Shape
//
// Success responses carry `data` (and `pagination` on list endpoints) with
// `errors` null. Error responses carry `errors` with `data` null. The
// `success`, `statusCode`, and `message` fields are always present.
type Envelope struct {
	Success    bool                 `json:"success"`
	StatusCode int                  `json:"statusCode"`
	Message    string               `json:"message"`
	Data       any                  `json:"data"`
	Pagination *pagination.Envelope `json:"pagination,omitempty"`
	Errors     []apperr.Detail      `json:"errors"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Success writes a success envelope with an arbitrary status code.
func Success(writer http.ResponseWriter, statusCode int, message string, data any) {
	JSON(writer, statusCode, Envelope{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// OK writes a 200 OK success envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	Success(writer, http.StatusOK, message, data)
}

// Created writes a 201 Created success envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	Success(writer, http.StatusCreated, message, data)
}

// Paginated writes a 200 OK success envelope with a pagination block.
func Paginated(writer http.ResponseWriter, message string, data any, metadata pagination.Envelope) {
	JSON(writer, http.StatusOK, Envelope{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Pagination: &metadata,
	})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the
		// client for security.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.As(apperr.Internal(err))
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.StatusCode >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.Int("status_code", appError.StatusCode),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.StatusCode, Envelope{
		Success:    false,
		StatusCode: appError.StatusCode,
		Message:    appError.Message,
		Errors:     appError.Details,
	})
}
