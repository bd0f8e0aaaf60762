package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleGetMyLists handles GET /api/v1/lists.
func (r *Router) handleGetMyLists(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	lists, err := r.svc.GetMyLists(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get lists")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ListsResponse{Lists: lists})
}

// handleCreateList handles POST /api/v1/lists.
func (r *Router) handleCreateList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var createReq api.CreateListRequest
	if err := decodeRequestBody(w, req, &createReq); err != nil {
		return
	}

	list, err := r.svc.CreateList(req.Context(), user.UserID, createReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "create list")
		return
	}
	writeJSONResponse(w, http.StatusCreated, list)
}

// handleGetList handles GET /api/v1/lists/{listID}.
func (r *Router) handleGetList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	listID, ok := getRequiredIDParam(w, req, "listID")
	if !ok {
		return
	}

	list, books, err := r.svc.GetList(req.Context(), user.UserID, listID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get list")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ListDetailResponse{List: *list, Books: books})
}

// handleUpdateList handles PUT /api/v1/lists/{listID}.
func (r *Router) handleUpdateList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	listID, ok := getRequiredIDParam(w, req, "listID")
	if !ok {
		return
	}

	var updateReq api.UpdateListRequest
	if err := decodeRequestBody(w, req, &updateReq); err != nil {
		return
	}

	list, err := r.svc.UpdateList(req.Context(), user.UserID, listID, updateReq)
	if err != nil {
		r.handleAndLogError(w, req, err, "update list")
		return
	}
	writeJSONResponse(w, http.StatusOK, list)
}

// handleDeleteList handles DELETE /api/v1/lists/{listID}.
func (r *Router) handleDeleteList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	listID, ok := getRequiredIDParam(w, req, "listID")
	if !ok {
		return
	}

	if err := r.svc.DeleteList(req.Context(), user.UserID, listID); err != nil {
		r.handleAndLogError(w, req, err, "delete list")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "list deleted"})
}

// handleAddBookToList handles POST /api/v1/lists/{listID}/books.
func (r *Router) handleAddBookToList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	listID, ok := getRequiredIDParam(w, req, "listID")
	if !ok {
		return
	}

	var addReq api.AddBookToListRequest
	if err := decodeRequestBody(w, req, &addReq); err != nil {
		return
	}

	if err := r.svc.AddBookToList(req.Context(), user.UserID, listID, addReq); err != nil {
		r.handleAndLogError(w, req, err, "add book to list")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "book added to list"})
}

// handleRemoveBookFromList handles DELETE /api/v1/lists/{listID}/books/{bookID}.
func (r *Router) handleRemoveBookFromList(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	listID, ok := getRequiredIDParam(w, req, "listID")
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	if err := r.svc.RemoveBookFromList(req.Context(), user.UserID, listID, bookID); err != nil {
		r.handleAndLogError(w, req, err, "remove book from list")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "book removed from list"})
}

// handleListMembership handles GET /api/v1/books/{bookID}/lists.
func (r *Router) handleListMembership(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	bookID, ok := getRequiredIDParam(w, req, "bookID")
	if !ok {
		return
	}

	membership, err := r.svc.GetListMembership(req.Context(), user.UserID, bookID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get list membership")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ListMembershipResponse{Lists: membership})
}

// handleGetPublicLists handles GET /api/v1/users/{userID}/lists.
func (r *Router) handleGetPublicLists(w http.ResponseWriter, req *http.Request) {
	userID, ok := getRequiredIDParam(w, req, "userID")
	if !ok {
		return
	}

	lists, err := r.svc.GetPublicLists(req.Context(), userID)
	if err != nil {
		r.handleAndLogError(w, req, err, "get public lists")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.ListsResponse{Lists: lists})
}
