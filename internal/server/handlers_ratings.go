package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleRateBook handles PUT /api/v1/books/{bookID}/rating. Re-rating
// overwrites the previous value.
func (r *Router) handleRateBook(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	var rateReq api.RateRequest
	if err := decodeRequestBody(w, req, &rateReq); err != nil {
		return
	}

	average, err := r.svc.RateBook(req.Context(), user, bookID, rateReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "rate book")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{AverageRating: average})
}

// handleGetMyBookRating handles GET /api/v1/books/{bookID}/rating.
func (r *Router) handleGetMyBookRating(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	rating, err := r.svc.GetMyBookRating(req.Context(), user.UserID, bookID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get book rating")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{Rating: rating})
}

// handleDeleteBookRating handles DELETE /api/v1/books/{bookID}/rating.
func (r *Router) handleDeleteBookRating(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	average, err := r.svc.DeleteBookRating(req.Context(), user.UserID, bookID)
	if err != nil {
		r.handleAndLogError(w, req, err, "delete book rating")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.RatingResponse{AverageRating: average})
}

// handleReviewBook handles POST /api/v1/books/{bookID}/reviews.
func (r *Router) handleReviewBook(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	var reviewReq api.ReviewRequest
	if err := decodeRequestBody(w, req, &reviewReq); err != nil {
		return
	}

	review, err := r.svc.ReviewBook(req.Context(), user.UserID, bookID, reviewReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "review book")
		return
	}
	writeJSONResponse(w, http.StatusCreated, review)
}

// handleListBookReviews handles GET /api/v1/books/{bookID}/reviews.
func (r *Router) handleListBookReviews(w http.ResponseWriter, req *http.Request) {
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	limit, offset := pageParams(req)
	reviews, total, err := r.svc.ListBookReviews(req.Context(), bookID, limit, offset)
	if err != nil {
		r.handleAndLogError(w, req, err, "list book reviews")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ReviewsResponse{Reviews: reviews, Total: total})
}

// handleDeleteBookReview handles DELETE /api/v1/reviews/{reviewID}.
func (r *Router) handleDeleteBookReview(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	reviewID, ok := getRequiredIDParam(w, req, "reviewID")
	if !ok {
		return
	}

	if err := r.svc.DeleteBookReview(req.Context(), user.UserID, reviewID); err != nil {
		r.handleAndLogError(w, req, err, "delete review")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "review deleted"})
}

// handleDeleteAuthorReview handles DELETE /api/v1/reviews/authors/{reviewID}.
func (r *Router) handleDeleteAuthorReview(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	reviewID, ok := getRequiredIDParam(w, req, "reviewID")
	if !ok {
		return
	}

	if err := r.svc.DeleteAuthorReview(req.Context(), user.UserID, reviewID); err != nil {
		r.handleAndLogError(w, req, err, "delete author review")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "review deleted"})
}
