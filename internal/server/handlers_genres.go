package server

import (
	"net/http"

	"github.com/bookarc/bookarc/internal/api"
)

// handleListGenres handles GET /api/v1/genres, flagging the caller's
// favorites.
func (r *Router) handleListGenres(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}

	genres, err := r.svc.ListGenres(req.Context())
	if err != nil {
		r.handleAndLogError(w, req, err, "list genres")
		return
	}

	favorites, err := r.svc.ListFavoriteGenres(req.Context(), user.UserID)
	if err != nil {
		r.handleAndLogError(w, req, err, "list favorite genres")
		return
	}
	favoriteIDs := make([]int64, len(favorites))
	for i, genre := range favorites {
		favoriteIDs[i] = genre.GenreID
	}

	writeJSONResponse(w, http.StatusOK, api.GenresResponse{
		Genres:    genres,
		Favorites: favoriteIDs,
	})
}

// handleAddFavoriteGenre handles POST /api/v1/genres/{genreID}/favorite.
func (r *Router) handleAddFavoriteGenre(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	genreID, ok := getRequiredIDParam(w, req, "genreID")
	if !ok {
		return
	}

	if err := r.svc.AddFavoriteGenre(req.Context(), user.UserID, genreID); err != nil {
		r.handleAndLogError(w, req, err, "add favorite genre")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "genre added to favorites"})
}

// handleRemoveFavoriteGenre handles DELETE /api/v1/genres/{genreID}/favorite.
func (r *Router) handleRemoveFavoriteGenre(w http.ResponseWriter, req *http.Request) {
	user, ok := r.requireAuthenticatedUser(w, req)
	if !ok {
		return
	}
	genreID, ok := getRequiredIDParam(w, req, "genreID")
	if !ok {
		return
	}

	if err := r.svc.RemoveFavoriteGenre(req.Context(), user.UserID, genreID); err != nil {
		r.handleAndLogError(w, req, err, "remove favorite genre")
		return
	}
	writeJSONResponse(w, http.StatusOK, api.MessageResponse{Message: "genre removed from favorites"})
}
