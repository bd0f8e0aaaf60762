package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleFollowUser handles POST /api/v1/users/{userID}/follow.
func (r *Router) handleFollowUser(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	targetID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	if err := r.svc.FollowUser(req.Context(), user, targetID); err != nil {
		r.handleAndLogError(w, req, err, "follow user")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "now following"})
}

// handleUnfollowUser handles DELETE /api/v1/users/{userID}/follow.
func (r *Router) handleUnfollowUser(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	targetID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	if err := r.svc.UnfollowUser(req.Context(), user, targetID); err != nil {
		r.handleAndLogError(w, req, err, "unfollow user")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "unfollowed"})
}

// handleUserFollowStatus handles GET /api/v1/users/{userID}/follow.
func (r *Router) handleUserFollowStatus(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	targetID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	following, err := r.svc.IsFollowingUser(req.Context(), user.UserID, targetID)
	if err != nil {
		r.handleAndLogError(w, req, err, "check follow status")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.FollowStatusResponse{IsFollowing: following})
}

// handleFollowAuthor handles POST /api/v1/authors/{authorID}/follow.
func (r *Router) handleFollowAuthor(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	if err := r.svc.FollowAuthor(req.Context(), user, authorID); err != nil {
		r.handleAndLogError(w, req, err, "follow author")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "now following"})
}

// handleUnfollowAuthor handles DELETE /api/v1/authors/{authorID}/follow.
func (r *Router) handleUnfollowAuthor(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	if err := r.svc.UnfollowAuthor(req.Context(), user, authorID); err != nil {
		r.handleAndLogError(w, req, err, "unfollow author")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "unfollowed"})
}

// handleAuthorFollowStatus handles GET /api/v1/authors/{authorID}/follow.
func (r *Router) handleAuthorFollowStatus(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	following, err := r.svc.IsFollowingAuthor(req.Context(), user.UserID, authorID)
	if err != nil {
		r.handleAndLogError(w, req, err, "check follow status")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.FollowStatusResponse{IsFollowing: following})
}

// handleListFollowers handles GET /api/v1/users/{userID}/followers.
func (r *Router) handleListFollowers(w http.ResponseWriter, req *http.Request) {
	userID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	limit, offset := pageParams(req)
	users, total, err := r.svc.ListFollowers(req.Context(), userID, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list followers")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.FollowersResponse{Users: users, Total: total})
}

// handleListFollowing handles GET /api/v1/users/{userID}/following.
func (r *Router) handleListFollowing(w http.ResponseWriter, req *http.Request) {
	userID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	limit, offset := pageParams(req)
	users, total, err := r.svc.ListFollowing(req.Context(), userID, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list following")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.FollowersResponse{Users: users, Total: total})
}
