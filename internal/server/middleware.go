package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/auth"
	"github.com/bookarc/bookarc/internal/constants"
	apperrors "github.com/bookarc/bookarc/internal/errors"
	loggerPkg "github.com/bookarc/bookarc/internal/logger"
)

type contextKey string

const (
	loggerContextKey contextKey = "logger"
	userContextKey   contextKey = "user"
)

// generateRequestID generates a random request ID using crypto/rand.
func generateRequestID() string {
	b := make([]byte, constants.RequestIDByteSize)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}

// requestIDMiddleware extracts the request ID from the context (if present)
// or generates a random one.
// Priority: 1) Existing request ID in context, 2) Lambda request ID,
// 3) Generated random ID.
func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := loggerPkg.GetRequestID(req.Context())

		if requestID == "" {
			if lc, ok := lambdacontext.FromContext(req.Context()); ok && lc.AwsRequestID != "" {
				requestID = lc.AwsRequestID
			}
		}

		if requestID == "" {
			requestID = generateRequestID()
		}

		ctx := loggerPkg.WithRequestID(req.Context(), requestID)
		log := r.svc.Logger.With("requestID", requestID)
		ctx = context.WithValue(ctx, loggerContextKey, log)

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestTimeoutMiddleware creates a context with timeout for each request.
func (r *Router) requestTimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			req = req.WithContext(ctx)

			next.ServeHTTP(w, req)

			if ctx.Err() == context.DeadlineExceeded {
				logger := r.GetLoggerFromContext(req.Context())
				logger.Warn("request timeout exceeded", "request", map[string]any{
					"method":  req.Method,
					"path":    req.URL.Path,
					"timeout": timeout,
				})
			}
		})
	}
}

// corsMiddleware handles CORS headers for cross-origin requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Preflight requests short-circuit before auth.
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}

// setContentTypeJSONMiddleware sets Content-Type to application/json for all responses.
func setContentTypeJSONMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set(constants.ContentTypeHeader, "application/json")
		next.ServeHTTP(w, req)
	})
}

// handleAuthError writes an error response for authentication failures.
func handleAuthError(w http.ResponseWriter, err error) {
	statusCode := apperrors.GetStatusCode(err)
	errorCode := apperrors.GetErrorCode(err)
	errorMsg := apperrors.GetErrorMessage(err)

	if statusCode < 400 || statusCode >= 600 {
		statusCode = http.StatusUnauthorized
	}

	messagePrefix := "Unauthorized"
	if statusCode >= constants.HTTPStatusServerError {
		messagePrefix = "Server error"
	}

	writeErrorResponseWithCode(w, statusCode, errorCode, messagePrefix, errorMsg)
}

// authenticateRequestMiddleware resolves the caller's gateway claims to the
// local user row and stores it in the request context.
func (r *Router) authenticateRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logger := r.GetLoggerFromContext(req.Context())
		logger.Debug("authenticating request")

		claims, err := auth.FromRequest(req)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		user, err := r.svc.ResolveUser(req.Context(), claims)
		if err != nil {
			handleAuthError(w, err)
			return
		}

		logger.Debug("user authenticated", "user_id", user.UserID, "role", user.Role)

		ctx := context.WithValue(req.Context(), userContextKey, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// authorizeRoleMiddleware enforces the casbin role policy against the
// request path and method. Runs after authentication.
func (r *Router) authorizeRoleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if r.enforcer == nil {
			next.ServeHTTP(w, req)
			return
		}

		user, ok := r.getUserFromContext(req)
		if !ok {
			writeErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "user not found in context")
			return
		}

		allowed, err := r.enforcer.EnforceRole(user.Role, req.URL.Path, req.Method)
		if err != nil {
			r.handleAndLogError(w, req, apperrors.ErrInternalError("authorization check failed", err), "authorize request")
			return
		}
		if !allowed {
			writeErrorResponse(w, http.StatusForbidden, "Forbidden",
				"your role does not allow this operation")
			return
		}

		next.ServeHTTP(w, req)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLoggingMiddleware logs incoming requests and their responses.
func (r *Router) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logger := r.GetLoggerFromContext(req.Context())
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		logger.Info("processing incoming client request", "request", map[string]string{
			"method":     req.Method,
			"path":       req.URL.Path,
			"remoteAddr": req.RemoteAddr,
		})

		next.ServeHTTP(wrapped, req)
		duration := time.Since(start)

		logger.Info("response sent to client", "response", map[string]any{
			"status":   wrapped.statusCode,
			"duration": duration.String(),
		})
	})
}

// GetLoggerFromContext extracts the request-scoped logger from context,
// falling back to the service logger.
func (r *Router) GetLoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return r.svc.Logger
}

// getUserFromContext returns the authenticated user stored by the
// authentication middleware.
func (r *Router) getUserFromContext(req *http.Request) (*api.User, bool) {
	user, ok := req.Context().Value(userContextKey).(*api.User)
	return user, ok && user != nil
}
