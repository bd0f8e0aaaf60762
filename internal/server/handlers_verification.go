package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/constants"
)

// handleSubmitVerification handles POST /api/v1/verification.
func (r *Router) handleSubmitVerification(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var submitReq api.SubmitVerificationRequest
	if err := decodeRequestBody(w, req, &submitReq); err != nil {
		return
	}

	request, err := r.svc.SubmitVerification(req.Context(), user, submitReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "submit verification request")
		return
	}
	writeJSONResponse(w, http.StatusCreated, request)
}

// handleVerificationStatus handles GET /api/v1/verification.
func (r *Router) handleVerificationStatus(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	request, err := r.svc.GetVerificationStatus(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get verification status")
		return
	}

	status := constants.VerificationNone
	if request != nil {
		status = request.Status
	}
	writeJSONResponse(w, http.StatusOK, api.VerificationStatusResponse{
		Status:  status,
		Request: request,
	})
}
