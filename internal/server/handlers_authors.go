package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleSearchAuthors handles GET /api/v1/authors?search=...
func (r *Router) handleSearchAuthors(w http.ResponseWriter, req *http.Request) {
	limit, offset := pageParams(req)
	authors, total, err := r.svc.SearchAuthors(req.Context(), req.URL.Query().Get("search"), limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "search authors")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.AuthorsResponse{Authors: authors, Total: total})
}

// handleGetAuthor handles GET /api/v1/authors/{authorID}.
func (r *Router) handleGetAuthor(w http.ResponseWriter, req *http.Request) {
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	author, err := r.svc.GetAuthor(req.Context(), authorID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get author")
		return
	}
	writeJSONResponse(w, http.StatusOK, author)
}

// handleRateAuthor handles PUT /api/v1/authors/{authorID}/rating.
func (r *Router) handleRateAuthor(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	var rateReq api.RateRequest
	if err := decodeRequestBody(w, req, &rateReq); err != nil {
		return
	}

	average, err := r.svc.RateAuthor(req.Context(), user, authorID, rateReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "rate author")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{AverageRating: average})
}

// handleGetMyAuthorRating handles GET /api/v1/authors/{authorID}/rating.
func (r *Router) handleGetMyAuthorRating(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	rating, err := r.svc.GetMyAuthorRating(req.Context(), user.UserID, authorID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get author rating")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{Rating: rating})
}

// handleDeleteAuthorRating handles DELETE /api/v1/authors/{authorID}/rating.
func (r *Router) handleDeleteAuthorRating(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	average, err := r.svc.DeleteAuthorRating(req.Context(), user.UserID, authorID)
	if err != nil {
		r.handleAndLogError(w, req, err, "delete author rating")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{AverageRating: average})
}

// handleReviewAuthor handles POST /api/v1/authors/{authorID}/reviews.
func (r *Router) handleReviewAuthor(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	var reviewReq api.ReviewRequest
	if err := decodeRequestBody(w, req, &reviewReq); err != nil {
		return
	}

	review, err := r.svc.ReviewAuthor(req.Context(), user.UserID, authorID, reviewReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "review author")
		return
	}
	writeJSONResponse(w, http.StatusCreated, review)
}

// handleListAuthorReviews handles GET /api/v1/authors/{authorID}/reviews.
func (r *Router) handleListAuthorReviews(w http.ResponseWriter, req *http.Request) {
	authorID, ok := getRequiredIDParam(w, req, "authorID")
	if !ok {
		return
	}

	limit, offset := pageParams(req)
	reviews, total, err := r.svc.ListAuthorReviews(req.Context(), authorID, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list author reviews")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ReviewsResponse{Reviews: reviews, Total: total})
}
