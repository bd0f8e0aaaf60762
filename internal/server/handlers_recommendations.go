package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleGetRecommendations handles GET /api/v1/recommendations?num_results=N.
func (r *Router) handleGetRecommendations(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	count := queryInt(req, "num_results", 0)
	result, err := r.svc.GetRecommendations(req.Context(), user.UserID, count)
	if err != nil {
		r.handleAndLogError(w, req, err, "get recommendations")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.RecommendationsResponse{
		Recommendations:   result.Recommendations,
		Total:             len(result.Recommendations),
		HasFavoriteGenres: result.BasedOnFavorites,
	})
}

// handleRecordInteraction handles POST /api/v1/recommendations/interactions.
func (r *Router) handleRecordInteraction(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	var recordReq api.RecordInteractionRequest
	if err := decodeRequestBody(w, req, &recordReq); err != nil {
		return
	}

	if err := r.svc.RecordInteraction(req.Context(), user.UserID, recordReq); err != nil {
		r.handleAndLogError(w, req, err, "record interaction")
		return
	}
	writeJSONResponse(w, http.StatusCreated, api.MessageResponse{Message: "interaction recorded"})
}
