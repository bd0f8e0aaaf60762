package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleAdminListBooks handles GET /api/v1/admin/books. Defaults to the
// pending review queue; ?status= selects another approval state.
func (r *Router) handleAdminListBooks(w http.ResponseWriter, req *http.Request) {
	limit, offset := pageParams(req)
	books, total, err := r.svc.AdminListBooks(req.Context(), req.URL.Query().Get("status"), limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list books for review")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.BooksResponse{
		Books:  books,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleAdminAddBook handles POST /api/v1/admin/books.
func (r *Router) handleAdminAddBook(w http.ResponseWriter, req *http.Request) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var submitReq api.SubmitBookRequest
	if err := decodeRequestBody(w, req, &submitReq); err != nil {
		return
	}

	book, err := r.svc.AdminAddBook(req.Context(), admin, submitReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "add book")
		return
	}
	writeJSONResponse(w, http.StatusCreated, book)
}

// handleApproveBook handles PUT /api/v1/admin/books/{bookID}/approve.
func (r *Router) handleApproveBook(w http.ResponseWriter, req *http.Request) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	if err := r.svc.ApproveBook(req.Context(), admin, bookID); err != nil {
		r.handleAndLogError(w, req, err, "approve book")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "book approved"})
}

// handleRejectBook handles PUT /api/v1/admin/books/{bookID}/reject.
func (r *Router) handleRejectBook(w http.ResponseWriter, req *http.Request) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	var rejectReq api.RejectRequest
	if err := decodeRequestBody(w, req, &rejectReq); err != nil {
		return
	}

	if err := r.svc.RejectBook(req.Context(), admin, bookID, rejectReq); err != nil {
		r.handleAndLogError(w, req, err, "reject book")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "book rejected"})
}

// handleListPendingVerifications handles GET /api/v1/admin/verifications.
func (r *Router) handleListPendingVerifications(w http.ResponseWriter, req *http.Request) {
	limit, offset := pageParams(req)
	requests, total, err := r.svc.ListPendingVerifications(req.Context(), limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list pending verifications")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.VerificationRequestsResponse{
		Requests: requests,
		Total:    total,
	})
}

// handleApproveVerification handles PUT /api/v1/admin/verifications/{requestID}/approve.
func (r *Router) handleApproveVerification(w http.ResponseWriter, req *http.Request) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	requestID, ok := getRequiredIDParam(w, req, "requestID")
	if !ok {
		return
	}

	if err := r.svc.ApproveVerification(req.Context(), admin, requestID); err != nil {
		r.handleAndLogError(w, req, err, "approve verification")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "verification approved"})
}

// handleRejectVerification handles PUT /api/v1/admin/verifications/{requestID}/reject.
func (r *Router) handleRejectVerification(w http.ResponseWriter, req *http.Request) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	requestID, ok := getRequiredIDParam(w, req, "requestID")
	if !ok {
		return
	}

	var rejectReq api.RejectRequest
	if err := decodeRequestBody(w, req, &rejectReq); err != nil {
		return
	}

	if err := r.svc.RejectVerification(req.Context(), admin, requestID, rejectReq); err != nil {
		r.handleAndLogError(w, req, err, "reject verification")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "verification rejected"})
}

// handleAdminListUsers handles GET /api/v1/admin/users.
func (r *Router) handleAdminListUsers(w http.ResponseWriter, req *http.Request) {
	var activeOnly *bool
	switch req.URL.Query().Get("active") {
	case "true":
		v := true
		activeOnly = &v
	case "false":
		v := false
		activeOnly = &v
	}

	limit, offset := pageParams(req)
	users, total, err := r.svc.ListUsers(req.Context(), req.URL.Query().Get("role"), activeOnly, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list users")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.UsersResponse{Users: users, Total: total})
}

// handleEnableUser handles PUT /api/v1/admin/users/{userID}/enable.
func (r *Router) handleEnableUser(w http.ResponseWriter, req *http.Request) {
	r.setUserActive(w, req, true)
}

// handleDisableUser handles PUT /api/v1/admin/users/{userID}/disable.
func (r *Router) handleDisableUser(w http.ResponseWriter, req *http.Request) {
	r.setUserActive(w, req, false)
}

func (r *Router) setUserActive(w http.ResponseWriter, req *http.Request, active bool) {
	admin, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	userID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	if err := r.svc.SetUserActive(req.Context(), admin, userID, active); err != nil {
		r.handleAndLogError(w, req, err, "update user status")
		return
	}

	message := "user disabled"
	if active {
		message = "user enabled"
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: message})
}

// handleAdminStats handles GET /api/v1/admin/stats.
func (r *Router) handleAdminStats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.svc.GetAdminStats(req.Context())
	if err != nil {
		r.handleAndLogError(w, req, err, "get admin stats")
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}

// handleListAuditLogs handles GET /api/v1/admin/audit-logs.
func (r *Router) handleListAuditLogs(w http.ResponseWriter, req *http.Request) {
	limit, offset := pageParams(req)
	logs, total, err := r.svc.ListAuditLogs(req.Context(), limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list audit logs")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.AuditLogsResponse{Logs: logs, Total: total})
}
