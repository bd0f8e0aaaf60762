package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
	"github.com/bookarc/bookarc/internal/database"
)

// handleListBooks handles GET /api/v1/books with search, genre, and sort
// query parameters.
func (r *Router) handleListBooks(w http.ResponseWriter, req *http.Request) {
	limit, offset := pageParams(req)
	filter := database.BookFilter{
		Search:  req.URL.Query().Get("search"),
		GenreID: int64(queryInt(req, "genre_id", 0)),
		SortBy:  req.URL.Query().Get("sort_by"),
		Limit:   limit,
		Offset:  offset,
	}

	books, total, err := r.svc.ListBooks(req.Context(), filter)
	if err != nil {
		r.handleAndLogError(w, req, err, "list books")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.BooksResponse{
		Books:  books,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// handleGetBook handles GET /api/v1/books/{bookID}.
func (r *Router) handleGetBook(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	book, err := r.svc.GetBook(req.Context(), user, bookID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get book")
		return
	}
	writeJSONResponse(w, http.StatusOK, book)
}

// handleSubmitBook handles POST /api/v1/author/books.
func (r *Router) handleSubmitBook(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var submitReq api.SubmitBookRequest
	if err := decodeRequestBody(w, req, &submitReq); err != nil {
		return
	}

	book, err := r.svc.SubmitBook(req.Context(), user, submitReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "submit book")
		return
	}
	writeJSONResponse(w, http.StatusCreated, book)
}

// handleListMyBooks handles GET /api/v1/author/books.
func (r *Router) handleListMyBooks(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	books, err := r.svc.ListMyBooks(req.Context(), user.UserID, req.URL.Query().Get("status"))
	if err != nil {
		r.handleAndLogError(w, req, err, "list my books")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.BooksResponse{Books: books, Total: len(books)})
}

// handleMyBookStats handles GET /api/v1/author/stats.
func (r *Router) handleMyBookStats(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	stats, err := r.svc.MyBookStats(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get book stats")
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}
