package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bookarc/bookarc/internal/api"
	apperrors "github.com/bookarc/bookarc/internal/errors"
)

// writeJSONResponse encodes v with the given status code.
func writeJSONResponse(w http.ResponseWriter, statusCode int, v any) {
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorResponse writes a standardized error response without a code.
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, details string) {
	writeErrorResponseWithCode(w, statusCode, "", message, details)
}

// writeErrorResponseWithCode writes a standardized error response.
func writeErrorResponseWithCode(w http.ResponseWriter, statusCode int, errorCode, message, details string) {
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   message,
		Code:    errorCode,
		Details: details,
	})
}

// extractErrorInfo extracts statusCode, errorCode, and errorDetails from an
// error. Details for server errors never include the cause.
func extractErrorInfo(err error) (statusCode int, errorCode, errorDetails string) {
	return apperrors.GetStatusCode(err),
		apperrors.GetErrorCode(err),
		apperrors.GetErrorDetails(err)
}

// decodeRequestBody decodes a JSON request body into v. On failure it writes
// a bad request response and returns the error.
func decodeRequestBody(w http.ResponseWriter, req *http.Request, v any) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid request body", err.Error())
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// requireAuthenticatedUser extracts the authenticated user from the request
// context. Writes an unauthorized response and returns false when absent.
func (r *Router) requireAuthenticatedUser(w http.ResponseWriter, req *http.Request) (*api.User, bool) {
	user, ok := r.getUserFromContext(req)
	if !ok {
		writeErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "user not found in context")
		return nil, false
	}
	return user, true
}

// getRequiredIDParam extracts and parses a positive integer URL parameter.
// Writes a bad request response and returns false on failure.
func getRequiredIDParam(w http.ResponseWriter, req *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(req, name))
	if raw == "" {
		writeErrorResponse(w, http.StatusBadRequest, "invalid "+name, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErrorResponse(w, http.StatusBadRequest, "invalid "+name, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, returning def when absent or
// malformed.
func queryInt(req *http.Request, name string, def int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// pageParams reads the limit/offset query parameters.
func pageParams(req *http.Request) (limit, offset int) {
	return queryInt(req, "limit", 0), queryInt(req, "offset", 0)
}

// handleAndLogError logs an error and writes a standardized error response.
// Use this for all service call failures in handlers.
//
// Example:
//
//	if err := r.svc.DeleteList(req.Context(), user.UserID, listID); err != nil {
//	    r.handleAndLogError(w, req, err, "delete list")
//	    return
//	}
func (r *Router) handleAndLogError(
	w http.ResponseWriter,
	req *http.Request,
	err error,
	operationName string,
) {
	logger := r.GetLoggerFromContext(req.Context())
	statusCode, errorCode, errorDetails := extractErrorInfo(err)

	logger.Error(
		"operation failed",
		"operation", operationName,
		"error", err,
		"status_code", statusCode,
		"error_code", errorCode,
	)

	writeErrorResponseWithCode(w, statusCode, errorCode, "failed to "+operationName, errorDetails)
}
