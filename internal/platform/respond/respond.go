// Copyright (c) 2026 Smile. All rights reserved.

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response — success or failure — follows one envelope:
//
//	{"flag": bool, "message": string, "data": any|null}
//
// flag=false is always paired with a non-2xx status, and validation failures
// carry a field->message map in data. Clients parse this shape everywhere.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/ctxkey"
)

// Result is the uniform JSON envelope returned by every endpoint.
type Result struct {
	Flag    bool        `json:"flag"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 response with flag=true and the given message and data.
func OK(writer http.ResponseWriter, message string, data interface{}) {
	JSON(writer, http.StatusOK, Result{Flag: true, Message: message, Data: data})
}

// Fail writes a failure envelope with flag=false.
func Fail(writer http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(writer, statusCode, Result{Flag: false, Message: message, Data: data})
}

// Error converts any Go error into the standardized failure envelope.
//
// Unrecognized errors are logged server-side and collapsed into the generic
// 500 response; their causes never reach the client.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", getRequestIDFromContext(request)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := getLoggerFromContext(request)
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", getRequestIDFromContext(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	// Validation failures expose the field->message map through data.
	var data interface{}
	if len(appError.Fields) > 0 {
		data = appError.Fields
	}

	Fail(writer, appError.HTTPStatus, appError.Message, data)
}

// getLoggerFromContext extracts the per-request logger.
func getLoggerFromContext(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// getRequestIDFromContext extracts the X-Request-ID for log correlation.
func getRequestIDFromContext(request *http.Request) string {
	if id, ok := request.Context().Value(ctxkey.KeyRequestID).(string); ok {
		return id
	}
	return ""
}
