package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/nyc-taxi/internal/domain"
	"github.com/pkordes/nyc-taxi/internal/handler/gen"
)

const (
	codeValidation = "validation_error"
	codeInternal   = "internal_error"
)

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: codeValidation, Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. an unparseable date).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: codeValidation, Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.List: validation error: limit must be at least 1" → "limit must be at least 1"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// StrictOptions returns the error hooks for the generated strict handler.
// Parameter binding failures become 400 validation errors; anything a
// handler returns as an error becomes a 500 with the details logged, not
// sent to the client.
func StrictOptions(log *slog.Logger) gen.StrictHTTPServerOptions {
	return gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  RequestErrorHandler(log),
		ResponseErrorHandlerFunc: ResponseErrorHandler(log),
	}
}

// RequestErrorHandler writes a 400 JSON error body. It is also used as the
// chi wrapper's ErrorHandlerFunc so malformed query parameters (e.g.
// vendor_id=abc) produce the same body as handler-level validation.
func RequestErrorHandler(log *slog.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		msg := err.Error()
		var paramErr *gen.InvalidParamFormatError
		if errors.As(err, &paramErr) {
			msg = "invalid value for parameter " + paramErr.ParamName
		}
		log.DebugContext(r.Context(), "bad request",
			"path", r.URL.Path,
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusBadRequest, requestBody(msg))
	}
}

// ResponseErrorHandler writes a 500 JSON error body and logs the cause.
func ResponseErrorHandler(log *slog.Logger) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeJSON(w, http.StatusInternalServerError, gen.ErrorResponse{
			Error: gen.ErrorDetail{Code: codeInternal, Message: "internal server error"},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
