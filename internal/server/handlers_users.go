package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleGetProfile handles GET /api/v1/profile.
func (r *Router) handleGetProfile(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	profile, err := r.svc.GetProfile(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get profile")
		return
	}
	writeJSONResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile handles PUT /api/v1/profile.
func (r *Router) handleUpdateProfile(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var updateReq api.UpdateProfileRequest
	if err := decodeRequestBody(w, req, &updateReq); err != nil {
		return
	}

	profile, err := r.svc.UpdateProfile(req.Context(), user.UserID, updateReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "update profile")
		return
	}
	writeJSONResponse(w, http.StatusOK, profile)
}

// handleDeleteAccount handles DELETE /api/v1/profile. The deletion is
// permanent; dependent data cascades.
func (r *Router) handleDeleteAccount(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	if err := r.svc.DeleteAccount(req.Context(), user.UserID); err != nil {
		r.handleAndLogError(w, req, err, "delete account")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "account deleted"})
}

// handleGetUserStats handles GET /api/v1/profile/stats.
func (r *Router) handleGetUserStats(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	stats, err := r.svc.GetUserStats(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get user stats")
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}

// handleChangePassword handles POST /api/v1/profile/password.
func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var changeReq api.ChangePasswordRequest
	if err := decodeRequestBody(w, req, &changeReq); err != nil {
		return
	}

	if err := r.svc.ChangePassword(req.Context(), user.UserID, changeReq); err != nil {
		r.handleAndLogError(w, req, err, "change password")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "password changed"})
}

// handleGetUser handles GET /api/v1/users/{userID}.
func (r *Router) handleGetUser(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	targetID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	target, err := r.svc.GetPublicUser(req.Context(), user.UserID, targetID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get user")
		return
	}
	writeJSONResponse(w, http.StatusOK, target)
}

// handleSearchUsers handles GET /api/v1/users/search?q=...
func (r *Router) handleSearchUsers(w http.ResponseWriter, req *http.Request) {
	if _, ok := r.requireAuthenticatedUser(w, req); !ok {
		return
	}

	limit, offset := pageParams(req)
	users, total, err := r.svc.SearchUsers(req.Context(), req.URL.Query().Get("q"), limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "search users")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.UsersResponse{Users: users, Total: total})
}
